package pantry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/storage"
)

// Store persists each user's pantry as a flat, ordered record set.
// Load of an unknown key returns an empty set; Save replaces the whole set.
type Store interface {
	Load(ctx context.Context, key string) ([]models.PantryItem, error)
	Save(ctx context.Context, key string, items []models.PantryItem) error
}

// record is the value kept under a pantry key in BadgerDB
type record struct {
	Key         string              `json:"key"`
	Items       []models.PantryItem `json:"items"`
	LastUpdated time.Time           `json:"last_updated"`
}

// BadgerStore keeps pantries in the embedded key/value store
type BadgerStore struct {
	kv *storage.Store
}

// NewBadgerStore creates a pantry store on top of kv
func NewBadgerStore(kv *storage.Store) *BadgerStore {
	return &BadgerStore{kv: kv}
}

func badgerKey(key string) string {
	return fmt.Sprintf("pantry:%s", key)
}

// Load returns the stored pantry rows for key
func (s *BadgerStore) Load(_ context.Context, key string) ([]models.PantryItem, error) {
	var rec record
	if err := s.kv.Get(badgerKey(key), &rec); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.PantryItem{}, nil
		}
		return nil, fmt.Errorf("failed to load pantry %s: %w", key, err)
	}
	if rec.Items == nil {
		rec.Items = []models.PantryItem{}
	}
	return rec.Items, nil
}

// Save overwrites the pantry rows for key
func (s *BadgerStore) Save(_ context.Context, key string, items []models.PantryItem) error {
	rec := record{
		Key:         key,
		Items:       items,
		LastUpdated: time.Now(),
	}
	if err := s.kv.Set(badgerKey(key), rec); err != nil {
		return fmt.Errorf("failed to save pantry %s: %w", key, err)
	}
	return nil
}

// Keys lists the users that have a stored pantry
func (s *BadgerStore) Keys() ([]string, error) {
	keys, err := s.kv.List("pantry:")
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = k[len("pantry:"):]
	}
	return keys, nil
}
