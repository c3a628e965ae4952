// Package cleaning prepares a raw recipe dataset for the catalog. It adds
// derived columns, flags vegetarian recipes with a fixed keyword blocklist
// and drops recipes whose title repeats.
package cleaning

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/korjavin/smartpantry/pkg/ingredients"
	"github.com/korjavin/smartpantry/pkg/models"
)

// DerivedColumns are appended to every cleaned row
var DerivedColumns = []string{"ingredient_count", "instruction_steps", "keywords", "vegetarian"}

var keywordStopWords = map[string]bool{
	"with": true, "and": true, "the": true, "for": true, "from": true, "or": true,
}

var nonVegetarian = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal",
	"fish", "salmon", "tuna", "shrimp", "prawn", "lobster", "crab",
	"anchovy", "anchovies", "bacon", "ham", "sausage", "chorizo",
	"meat", "steak", "ribs", "wings", "drumstick", "thigh",
	"cod", "halibut", "snapper", "sardine", "clam", "oyster",
	"mussels", "scallop", "octopus", "squid", "gelatin",
}

// Summary describes a cleaning run
type Summary struct {
	Rows           int
	Duplicates     int
	Vegetarian     int
	AvgIngredients float64
	AvgSteps       float64
}

// Keywords returns up to three lower-cased title words longer than three
// characters, skipping common joining words.
func Keywords(title string) []string {
	keywords := make([]string, 0, 3)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if keywordStopWords[w] || len([]rune(w)) <= 3 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 3 {
			break
		}
	}
	return keywords
}

// IsVegetarian reports whether none of the non-vegetarian keywords occurs
// anywhere in the ingredients. Substring matches count, so "hamburger bun"
// is not vegetarian.
func IsVegetarian(ingredientList []string) bool {
	text := strings.ToLower(strings.Join(ingredientList, " "))
	for _, kw := range nonVegetarian {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// InstructionSteps counts the non-blank sentences split on "."
func InstructionSteps(instructions string) int {
	n := 0
	for _, s := range strings.Split(instructions, ".") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// IngredientList splits an ingredients cell. Cells written as a bracketed,
// quoted list ("['1 cup flour', '2 eggs']") are split on the list items;
// anything else is split on commas.
func IngredientList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if !strings.HasPrefix(cell, "[") || !strings.HasSuffix(cell, "]") {
		return ingredients.Split(cell)
	}

	var (
		items []string
		cur   strings.Builder
		quote rune
	)
	for _, r := range cell[1 : len(cell)-1] {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
			if s := strings.TrimSpace(cur.String()); s != "" {
				items = append(items, s)
			}
			cur.Reset()
		case quote != 0:
			cur.WriteRune(r)
		}
	}
	return items
}

// formatList renders items as a bracketed, single-quoted list
func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + strings.ReplaceAll(it, "'", "\\'") + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// CleanRecipes reads a raw recipe CSV from r, writes the cleaned CSV to w and
// returns a summary. The input needs Title, Ingredients and Instructions
// columns; other columns are copied through.
func CleanRecipes(r io.Reader, w io.Writer) (Summary, error) {
	var sum Summary

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return sum, fmt.Errorf("recipe dataset is empty")
		}
		return sum, fmt.Errorf("failed to read header: %w", err)
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"title", "ingredients", "instructions"} {
		if _, ok := col[required]; !ok {
			return sum, fmt.Errorf("recipe dataset has no %s column", required)
		}
	}
	cell := func(row []string, name string) string {
		if i := col[name]; i < len(row) {
			return row[i]
		}
		return ""
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, header...), DerivedColumns...)); err != nil {
		return sum, fmt.Errorf("failed to write header: %w", err)
	}

	seen := map[string]bool{}
	var totalIngredients, totalSteps int
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("failed to read row: %w", err)
		}

		title := cell(row, "title")
		if seen[title] {
			sum.Duplicates++
			continue
		}
		seen[title] = true

		list := IngredientList(cell(row, "ingredients"))
		steps := InstructionSteps(cell(row, "instructions"))
		veg := IsVegetarian(list)

		sum.Rows++
		totalIngredients += len(list)
		totalSteps += steps
		if veg {
			sum.Vegetarian++
		}

		out := make([]string, len(header), len(header)+len(DerivedColumns))
		copy(out, row)
		out = append(out,
			strconv.Itoa(len(list)),
			strconv.Itoa(steps),
			formatList(Keywords(title)),
			formatBool(veg),
		)
		if err := cw.Write(out); err != nil {
			return sum, fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return sum, fmt.Errorf("failed to flush output: %w", err)
	}

	if sum.Rows > 0 {
		sum.AvgIngredients = float64(totalIngredients) / float64(sum.Rows)
		sum.AvgSteps = float64(totalSteps) / float64(sum.Rows)
	}
	return sum, nil
}

// ProductCount is the number of pantry rows sharing a product name
type ProductCount struct {
	Product string
	Count   int
}

// ProductCounts tallies pantry rows by product, most frequent first
func ProductCounts(items []models.PantryItem) []ProductCount {
	counts := map[string]int{}
	var order []string
	for _, it := range items {
		if counts[it.Name] == 0 {
			order = append(order, it.Name)
		}
		counts[it.Name]++
	}

	out := make([]ProductCount, 0, len(order))
	for _, name := range order {
		out = append(out, ProductCount{Product: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
