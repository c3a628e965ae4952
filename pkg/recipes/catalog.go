package recipes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
)

// columnAliases maps normalized CSV headers to catalog fields
var columnAliases = map[string]string{
	"recipe":              "recipe",
	"title":               "recipe",
	"ingredients":         "ingredients",
	"cleaned_ingredients": "ingredients",
	"instructions":        "instructions",
	"instruction":         "instructions",
}

// Catalog is a read-only list of recipes
type Catalog struct {
	recipes []models.Recipe
}

// NewCatalog wraps an in-memory list of recipes
func NewCatalog(recipes []models.Recipe) *Catalog {
	return &Catalog{recipes: recipes}
}

// LoadFile reads a catalog from a CSV file. A missing file yields an empty
// catalog, not an error.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Global.Warn("No recipes file found at %s", path)
			return NewCatalog(nil), nil
		}
		return nil, fmt.Errorf("failed to open recipes file: %w", err)
	}
	defer f.Close()

	recipes, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Global.Info("Loaded %d recipes from %s", len(recipes), path)
	return NewCatalog(recipes), nil
}

// Read parses catalog CSV. Headers are trimmed and lower-cased, then title,
// cleaned_ingredients and instruction are accepted as aliases of Recipe,
// Ingredients and Instructions. Other columns are ignored.
func Read(r io.Reader) ([]models.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		field, ok := columnAliases[name]
		if !ok {
			continue
		}
		if _, seen := index[field]; !seen {
			index[field] = i
		}
	}

	get := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var recipes []models.Recipe
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		recipes = append(recipes, models.Recipe{
			Name:         strings.TrimSpace(get(row, "recipe")),
			Ingredients:  get(row, "ingredients"),
			Instructions: get(row, "instructions"),
		})
	}
	return recipes, nil
}

// All returns every recipe in catalog order
func (c *Catalog) All() []models.Recipe {
	out := make([]models.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Search returns the recipes whose title contains query, ignoring case.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []models.Recipe {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}
	var out []models.Recipe
	for _, r := range c.recipes {
		if strings.Contains(strings.ToLower(r.Name), query) {
			out = append(out, r)
		}
	}
	return out
}
