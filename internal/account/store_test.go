package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get decodes the visitor's document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".settings", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "session-a"},
			{Key: "privacy", Value: bson.D{{Key: "data_sharing", Value: true}}},
			{Key: "preferences", Value: bson.D{{Key: "font_size", Value: 18}, {Key: "language", Value: "french"}}},
			{Key: "profile", Value: bson.D{{Key: "name", Value: "Alice"}}},
		}))

		st, err := NewMongoStore(mt.DB).Get(mt.Context(), "session-a")
		require.NoError(mt, err)
		assert.Equal(mt, "session-a", st.UserID)
		assert.True(mt, st.Privacy.DataSharing)
		assert.Equal(mt, 18, st.Preferences.FontSize)
		assert.Equal(mt, "Alice", st.Profile.Name)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "session-a", evt.Command.Lookup("filter", "_id").StringValue())
	})

	mt.Run("missing document is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".settings", mtest.FirstBatch))

		_, err := NewMongoStore(mt.DB).Get(mt.Context(), "session-b")
		assert.ErrorIs(mt, err, ErrSettingsNotFound)
	})

	mt.Run("put upserts by visitor", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "session-a"}}}},
		))

		st := Defaults("session-a")
		st.UpdatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(mt, NewMongoStore(mt.DB).Put(mt.Context(), st))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		updates, err := evt.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, updates, 1)
		u := updates[0].Document()
		assert.Equal(mt, "session-a", u.Lookup("q", "_id").StringValue())
		assert.True(mt, u.Lookup("upsert").Boolean())
	})

	mt.Run("put reports server errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key",
		}))

		err := NewMongoStore(mt.DB).Put(mt.Context(), Defaults("session-a"))
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "save settings session-a")
	})
}
