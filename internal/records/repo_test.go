package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// emptyCollection answers a count and a find on a collection with no documents.
func emptyCollection(ns string) []bson.D {
	return []bson.D{
		mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
	}
}

func TestRepoLoad(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := &Catalog{
		Expenditures: []Expenditure{
			{ID: "EXP-001", Department: "Education", Amount: 1200, Date: day, Status: "Completed"},
			{ID: "EXP-002", Department: "Transportation", Amount: 800, Date: day, Status: "In Progress"},
		},
	}

	mt.Run("seeds empty collections in store order", func(mt *mtest.T) {
		ns := func(coll string) string { return mt.DB.Name() + "." + coll }

		mt.AddMockResponses(
			// expenditures: empty, seeded, read back
			mtest.CreateCursorResponse(0, ns(CollExpenditures), mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateCursorResponse(0, ns(CollExpenditures), mtest.FirstBatch,
				bson.D{{Key: "position", Value: 0}, {Key: "record", Value: bson.D{{Key: "id", Value: "EXP-001"}, {Key: "department", Value: "Education"}, {Key: "amount", Value: int64(1200)}}}},
				bson.D{{Key: "position", Value: 1}, {Key: "record", Value: bson.D{{Key: "id", Value: "EXP-002"}, {Key: "department", Value: "Transportation"}, {Key: "amount", Value: int64(800)}}}},
			),
		)
		for _, coll := range []string{CollProjects, CollActivities, CollDecisions, CollTimeline, CollBudget} {
			mt.AddMockResponses(emptyCollection(ns(coll))...)
		}
		// stats always seeds its single document
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(CollStats), mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCursorResponse(0, ns(CollStats), mtest.FirstBatch),
		)

		c, err := NewRepo(mt.DB).Load(mt.Context(), seed)
		require.NoError(mt, err)
		require.Len(mt, c.Expenditures, 2)
		assert.Equal(mt, "EXP-001", c.Expenditures[0].ID)
		assert.Equal(mt, "EXP-002", c.Expenditures[1].ID)
		assert.Equal(mt, int64(800), c.Expenditures[1].Amount)
		assert.Empty(mt, c.Projects)

		var inserts, finds []bson.Raw
		for _, evt := range mt.GetAllStartedEvents() {
			switch evt.CommandName {
			case "insert":
				inserts = append(inserts, evt.Command)
			case "find":
				finds = append(finds, evt.Command)
			}
		}
		require.Len(mt, inserts, 2)
		assert.Equal(mt, CollExpenditures, inserts[0].Lookup("insert").StringValue())
		docs, err := inserts[0].Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		for i, doc := range docs {
			assert.Equal(mt, int64(i), doc.Document().Lookup("position").AsInt64())
		}
		assert.Equal(mt, CollStats, inserts[1].Lookup("insert").StringValue())

		require.Len(mt, finds, len(allCollections))
		for _, find := range finds {
			assert.Equal(mt, int64(1), find.Lookup("sort", "position").AsInt64())
		}
	})

	mt.Run("existing collections are not reseeded", func(mt *mtest.T) {
		ns := func(coll string) string { return mt.DB.Name() + "." + coll }

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(CollExpenditures), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
			mtest.CreateCursorResponse(0, ns(CollExpenditures), mtest.FirstBatch,
				bson.D{{Key: "position", Value: 0}, {Key: "record", Value: bson.D{{Key: "id", Value: "EXP-009"}}}},
			),
		)
		for _, coll := range []string{CollProjects, CollActivities, CollDecisions, CollTimeline, CollBudget} {
			mt.AddMockResponses(emptyCollection(ns(coll))...)
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(CollStats), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
			mtest.CreateCursorResponse(0, ns(CollStats), mtest.FirstBatch),
		)

		c, err := NewRepo(mt.DB).Load(mt.Context(), seed)
		require.NoError(mt, err)
		require.Len(mt, c.Expenditures, 1)
		assert.Equal(mt, "EXP-009", c.Expenditures[0].ID)

		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "insert", evt.CommandName)
		}
	})

	mt.Run("count failure names the collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := NewRepo(mt.DB).Load(mt.Context(), seed)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "count expenditures")
	})
}

func TestRepoEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("one position index per collection", func(mt *mtest.T) {
		for range allCollections {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		require.NoError(mt, NewRepo(mt.DB).EnsureIndexes(mt.Context()))

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, len(allCollections))
		for i, evt := range events {
			assert.Equal(mt, "createIndexes", evt.CommandName)
			assert.Equal(mt, allCollections[i], evt.Command.Lookup("createIndexes").StringValue())
		}
	})
}
