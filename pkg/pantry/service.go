package pantry

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
)

var (
	// ErrNoUser is returned when a session has no usable username
	ErrNoUser = errors.New("username is required")
	// ErrEmptyProduct is returned when adding a product without a name
	ErrEmptyProduct = errors.New("product name is required")
)

// Service provides pantry management functionality
type Service struct {
	store  Store
	logger *logger.Logger
	now    func() time.Time
}

// New creates a new pantry service
func New(store Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
		now:    time.Now,
	}
}

func sessionKey(session models.Session) (string, error) {
	key := session.Key()
	if key == "" {
		return "", ErrNoUser
	}
	return key, nil
}

// Load retrieves the pantry rows of the session's user
func (s *Service) Load(ctx context.Context, session models.Session) ([]models.PantryItem, error) {
	key, err := sessionKey(session)
	if err != nil {
		return nil, err
	}
	return s.store.Load(ctx, key)
}

// List returns the pantry rows with days left computed for today
func (s *Service) List(ctx context.Context, session models.Session) ([]models.PantryView, error) {
	items, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	return Views(items, s.now()), nil
}

// Add appends a product to the user's pantry. Existing rows with the same
// name are kept; duplicates are not merged.
func (s *Service) Add(ctx context.Context, session models.Session, item models.PantryItem) (models.PantryItem, error) {
	key, err := sessionKey(session)
	if err != nil {
		return models.PantryItem{}, err
	}

	item.Name = models.NormalizeName(item.Name)
	if item.Name == "" {
		return models.PantryItem{}, ErrEmptyProduct
	}

	items, err := s.store.Load(ctx, key)
	if err != nil {
		return models.PantryItem{}, err
	}
	items = append(items, item)

	if err := s.store.Save(ctx, key, items); err != nil {
		return models.PantryItem{}, err
	}
	s.logger.With(key).Info("Added %s to pantry", item.Name)
	return item, nil
}

// AddMany appends several products at once, skipping ones without a name
func (s *Service) AddMany(ctx context.Context, session models.Session, add []models.PantryItem) (int, error) {
	key, err := sessionKey(session)
	if err != nil {
		return 0, err
	}

	items, err := s.store.Load(ctx, key)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, item := range add {
		item.Name = models.NormalizeName(item.Name)
		if item.Name == "" {
			continue
		}
		items = append(items, item)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := s.store.Save(ctx, key, items); err != nil {
		return 0, err
	}
	s.logger.With(key).Info("Added %d products to pantry", added)
	return added, nil
}

// Save replaces the user's pantry with items. Names are normalized and rows
// without a name are dropped.
func (s *Service) Save(ctx context.Context, session models.Session, items []models.PantryItem) ([]models.PantryItem, error) {
	key, err := sessionKey(session)
	if err != nil {
		return nil, err
	}

	clean := make([]models.PantryItem, 0, len(items))
	for _, item := range items {
		item.Name = models.NormalizeName(item.Name)
		if item.Name == "" {
			continue
		}
		clean = append(clean, item)
	}

	if err := s.store.Save(ctx, key, clean); err != nil {
		return nil, err
	}
	s.logger.With(key).Info("Saved pantry with %d products", len(clean))
	return clean, nil
}

// Export writes the user's pantry as a table with days left computed for today
func (s *Service) Export(ctx context.Context, session models.Session, w io.Writer) error {
	items, err := s.Load(ctx, session)
	if err != nil {
		return err
	}
	return WriteTable(w, items, s.now())
}

// Reset empties the user's pantry
func (s *Service) Reset(ctx context.Context, session models.Session) error {
	_, err := s.Save(ctx, session, nil)
	return err
}

// Fresh loads the pantry and drops items that expired before today.
// The stored pantry is left untouched.
func (s *Service) Fresh(ctx context.Context, session models.Session) ([]models.PantryItem, int, error) {
	items, err := s.Load(ctx, session)
	if err != nil {
		return nil, 0, err
	}
	kept, removed := RemoveExpired(items, s.now())
	if removed > 0 {
		s.logger.With(session.Key()).Info("Ignoring %d expired products", removed)
	}
	return kept, removed, nil
}

// RemoveExpired returns the items that have not expired before the day of now,
// and how many were dropped. Items without an expiry date are kept.
func RemoveExpired(items []models.PantryItem, now time.Time) ([]models.PantryItem, int) {
	kept := make([]models.PantryItem, 0, len(items))
	for _, item := range items {
		if item.Expired(now) {
			continue
		}
		kept = append(kept, item)
	}
	return kept, len(items) - len(kept)
}

// Views attaches days left to each item
func Views(items []models.PantryItem, now time.Time) []models.PantryView {
	views := make([]models.PantryView, 0, len(items))
	for _, item := range items {
		view := models.PantryView{PantryItem: item}
		if days, ok := item.DaysLeft(now); ok {
			view.DaysLeft = &days
		}
		views = append(views, view)
	}
	return views
}
