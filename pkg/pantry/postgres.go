package pantry

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/korjavin/smartpantry/pkg/models"
)

// PostgresStore implements Store on a PostgreSQL table, one row per pantry item.
type PostgresStore struct {
	db *sqlx.DB
}

const pantrySchema = `
CREATE TABLE IF NOT EXISTS pantry_items (
	username TEXT NOT NULL,
	position INTEGER NOT NULL,
	product TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	quantity DOUBLE PRECISION,
	unit TEXT NOT NULL DEFAULT '',
	expiry_date DATE,
	PRIMARY KEY (username, position)
);
`

// NewPostgresStore connects to the database and creates the pantry table if needed.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(pantrySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create pantry_items table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Load returns the user's rows in stored order
func (s *PostgresStore) Load(ctx context.Context, key string) ([]models.PantryItem, error) {
	items := []models.PantryItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT product, category, quantity, unit, expiry_date FROM pantry_items WHERE username = $1 ORDER BY position",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry %s: %w", key, err)
	}
	return items, nil
}

// Save replaces all of the user's rows in a single transaction
func (s *PostgresStore) Save(ctx context.Context, key string, items []models.PantryItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pantry_items WHERE username = $1", key); err != nil {
		return fmt.Errorf("failed to clear pantry %s: %w", key, err)
	}

	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO pantry_items (username, position, product, category, quantity, unit, expiry_date) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			key, i, item.Name, item.Category, item.Quantity, item.Unit, item.ExpiryDate,
		)
		if err != nil {
			return fmt.Errorf("failed to save pantry item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pantry %s: %w", key, err)
	}
	return nil
}
