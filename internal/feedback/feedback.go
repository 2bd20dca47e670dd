// Package feedback records how helpful citizens found assistant answers.
package feedback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"opengov/internal/forms"
	"opengov/internal/simulate"
)

// Ratings.
const (
	Positive = "positive"
	Negative = "negative"
)

type Feedback struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	Rating    string    `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Repo persists submitted feedback.
type Repo interface {
	Insert(ctx context.Context, f *Feedback) error
	Recent(ctx context.Context, userID string, limit int) ([]*Feedback, error)
}

// MemoryRepo keeps feedback for the life of the process.
type MemoryRepo struct {
	mu    sync.Mutex
	items []*Feedback
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(_ context.Context, f *Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *f
	m.items = append(m.items, &cp)
	return nil
}

// Recent returns up to limit entries left by userID, newest first.
func (m *MemoryRepo) Recent(_ context.Context, userID string, limit int) ([]*Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Feedback, 0, min(limit, len(m.items)))
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if m.items[i].UserID != userID {
			continue
		}
		cp := *m.items[i]
		out = append(out, &cp)
	}
	return out, nil
}

// MongoRepo stores feedback in the "feedback" collection.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("feedback")}
}

// EnsureIndexes creates the per-visitor recency index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, f *Feedback) error {
	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *MongoRepo) Recent(ctx context.Context, userID string, limit int) ([]*Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*Feedback
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return out, nil
}

// Ack is the confirmation shown once feedback is stored.
type Ack struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var submitted = Ack{
	Title:       "Feedback submitted",
	Description: "Thank you for helping us improve our AI assistant.",
}

type Service struct {
	repo    Repo
	forms   *forms.Validator
	latency simulate.Latency
	now     func() time.Time
}

func NewService(repo Repo, validator *forms.Validator, delay time.Duration) *Service {
	return &Service{
		repo:    repo,
		forms:   validator,
		latency: simulate.Latency(delay),
		now:     time.Now,
	}
}

// Submit validates and stores one feedback card.
func (s *Service) Submit(ctx context.Context, userID string, in forms.Feedback) (*Feedback, Ack, error) {
	if err := s.forms.Validate(&in); err != nil {
		return nil, Ack{}, err
	}

	f := &Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now(),
	}
	err := s.latency.Do(ctx, func() error {
		return s.repo.Insert(ctx, f)
	})
	if err != nil {
		return nil, Ack{}, err
	}
	return f, submitted, nil
}

// Recent lists the latest feedback left by userID.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]*Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.Recent(ctx, userID, limit)
}
