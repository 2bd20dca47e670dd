package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := NewMongoRepo(mt.DB).Insert(mt.Context(), &Feedback{
			ID:        "f1",
			UserID:    "alice",
			Rating:    Positive,
			Comment:   "clear",
			CreatedAt: created,
		})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		assert.Equal(mt, "feedback", evt.Command.Lookup("insert").StringValue())
		docs, err := evt.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, "alice", docs[0].Document().Lookup("user_id").StringValue())
	})

	mt.Run("recent is newest first for one visitor", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".feedback", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "f2"}, {Key: "user_id", Value: "alice"}, {Key: "rating", Value: Negative}, {Key: "created_at", Value: created.Add(time.Hour)}},
			bson.D{{Key: "_id", Value: "f1"}, {Key: "user_id", Value: "alice"}, {Key: "rating", Value: Positive}, {Key: "created_at", Value: created}},
		))

		items, err := NewMongoRepo(mt.DB).Recent(mt.Context(), "alice", 5)
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "f2", items[0].ID)
		assert.True(mt, items[1].CreatedAt.Equal(created))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "alice", evt.Command.Lookup("filter", "user_id").StringValue())
		assert.Equal(mt, int64(-1), evt.Command.Lookup("sort", "created_at").AsInt64())
		assert.Equal(mt, int64(5), evt.Command.Lookup("limit").AsInt64())
	})

	mt.Run("find failure is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := NewMongoRepo(mt.DB).Recent(mt.Context(), "alice", 5)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find feedback")
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongoRepo(mt.DB).EnsureIndexes(mt.Context()))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "createIndexes", evt.CommandName)
	})
}
