package records

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollExpenditures = "expenditures"
	CollProjects     = "projects"
	CollActivities   = "activities"
	CollDecisions    = "decisions"
	CollTimeline     = "timeline"
	CollBudget       = "budget"
	CollStats        = "stats"
)

var allCollections = []string{
	CollExpenditures, CollProjects, CollActivities, CollDecisions,
	CollTimeline, CollBudget, CollStats,
}

// envelope keeps store order: Mongo's natural order is not guaranteed.
type envelope[T any] struct {
	Position int `bson:"position"`
	Record   T   `bson:"record"`
}

// Repo reads the record stores from MongoDB.
type Repo struct {
	db *mongo.Database
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{db: db}
}

// EnsureIndexes creates the ordering index on every record collection
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	for _, name := range allCollections {
		_, err := r.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "position", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", name, err)
		}
	}
	return nil
}

// Load reads every store. Empty collections are first seeded from seed.
func (r *Repo) Load(ctx context.Context, seed *Catalog) (*Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Expenditures, err = loadCollection(ctx, r.db.Collection(CollExpenditures), seed.Expenditures); err != nil {
		return nil, err
	}
	if c.Projects, err = loadCollection(ctx, r.db.Collection(CollProjects), seed.Projects); err != nil {
		return nil, err
	}
	if c.Activities, err = loadCollection(ctx, r.db.Collection(CollActivities), seed.Activities); err != nil {
		return nil, err
	}
	if c.Decisions, err = loadCollection(ctx, r.db.Collection(CollDecisions), seed.Decisions); err != nil {
		return nil, err
	}
	if c.Timeline, err = loadCollection(ctx, r.db.Collection(CollTimeline), seed.Timeline); err != nil {
		return nil, err
	}
	if c.Budget, err = loadCollection(ctx, r.db.Collection(CollBudget), seed.Budget); err != nil {
		return nil, err
	}

	stats, err := loadCollection(ctx, r.db.Collection(CollStats), []Stats{seed.Stats})
	if err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		c.Stats = stats[0]
	}
	return &c, nil
}

func loadCollection[T any](ctx context.Context, coll *mongo.Collection, seed []T) ([]T, error) {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", coll.Name(), err)
	}

	if count == 0 && len(seed) > 0 {
		docs := make([]any, len(seed))
		for i, rec := range seed {
			docs[i] = envelope[T]{Position: i, Record: rec}
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return nil, fmt.Errorf("seed %s: %w", coll.Name(), err)
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var envs []envelope[T]
	if err := cursor.All(ctx, &envs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}

	out := make([]T, len(envs))
	for i, e := range envs {
		out[i] = e.Record
	}
	return out, nil
}
