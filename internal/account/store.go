package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSettingsNotFound = errors.New("settings not found")

// Store persists per-user settings.
type Store interface {
	Get(ctx context.Context, userID string) (*Settings, error)
	Put(ctx context.Context, s *Settings) error
}

// MemoryStore keeps settings for the life of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Settings)}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[userID]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Put(_ context.Context, s *Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.UserID] = *s
	return nil
}

// MongoStore keeps settings in the "settings" collection, one document per user.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("settings")}
}

func (r *MongoStore) Get(ctx context.Context, userID string) (*Settings, error) {
	var s Settings
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find settings %s: %w", userID, err)
	}
	return &s, nil
}

func (r *MongoStore) Put(ctx context.Context, s *Settings) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.UserID}, s, opts); err != nil {
		return fmt.Errorf("save settings %s: %w", s.UserID, err)
	}
	return nil
}
