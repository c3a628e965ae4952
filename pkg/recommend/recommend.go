package recommend

import (
	"context"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/models"
)

// PantrySource provides the current pantry snapshot for a session, without
// expired items
type PantrySource interface {
	Fresh(ctx context.Context, session models.Session) ([]models.PantryItem, int, error)
}

// RecipeSource provides the recipe catalog
type RecipeSource interface {
	All() []models.Recipe
}

// Service matches a user's pantry against the recipe catalog
type Service struct {
	pantry  PantrySource
	recipes RecipeSource
	logger  *logger.Logger
}

// New creates a new recommendation service
func New(pantry PantrySource, recipes RecipeSource) *Service {
	return &Service{
		pantry:  pantry,
		recipes: recipes,
		logger:  logger.New("recommend"),
	}
}

// Recommend re-runs matching of every recipe against the session's pantry
func (s *Service) Recommend(ctx context.Context, session models.Session) (*matcher.Report, error) {
	items, removed, err := s.pantry.Fresh(ctx, session)
	if err != nil {
		return nil, err
	}

	report := matcher.MatchRecipes(session, s.recipes.All(), items)
	report.RemovedExpired = removed

	s.logger.With(session.Key()).Debug("Matched %d recipes against %d pantry items", len(report.Results), len(items))
	return &report, nil
}
