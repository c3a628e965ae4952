package pantry

import (
	"fmt"
	"io"

	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/storage"
)

// Open creates the pantry store selected by cfg. The returned closer releases
// the underlying database.
func Open(cfg *config.Config) (Store, io.Closer, error) {
	switch cfg.PantryBackend {
	case config.BackendPostgres:
		pg, err := NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg, nil
	case config.BackendBadger, "":
		kv, err := storage.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		kv.StartGCRoutine(cfg.GCInterval)
		return NewBadgerStore(kv), kv, nil
	default:
		return nil, nil, fmt.Errorf("unknown pantry backend %q", cfg.PantryBackend)
	}
}
