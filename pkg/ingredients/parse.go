// Package ingredients parses free-text recipe ingredient lists of the form
// "flour: 200 g, egg: 2 count". Parsing never fails: malformed entries
// degrade to an ingredient with quantity 0 and unit "count".
//
// Only the leading number of a quantity is read, with at most one decimal
// point: "1.5 kg" is 1.5 and "1.5.2" is 1.5. Digits after the first non-numeric
// character are never joined into the amount.
package ingredients

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/korjavin/smartpantry/pkg/models"
)

// Parse splits a comma-separated ingredient text into ordered entries
func Parse(text string) []models.RecipeIngredient {
	tokens := Split(text)
	parsed := make([]models.RecipeIngredient, 0, len(tokens))
	for _, token := range tokens {
		parsed = append(parsed, ParseEntry(token))
	}
	return parsed
}

// Split returns the trimmed, non-empty comma-separated tokens of text
func Split(text string) []string {
	var tokens []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// ParseEntry parses a single "name: qty unit" token
func ParseEntry(token string) models.RecipeIngredient {
	name, rest, found := strings.Cut(token, ":")
	if !found {
		return models.RecipeIngredient{
			Name: models.NormalizeName(token),
			Unit: models.DefaultUnit,
		}
	}

	qty, unit := splitAmount(strings.TrimSpace(rest))
	return models.RecipeIngredient{
		Name:     models.NormalizeName(name),
		Quantity: qty,
		Unit:     unit,
	}
}

// splitAmount reads the leading number of s as the quantity and the letters
// of whatever follows as the unit.
func splitAmount(s string) (float64, string) {
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !dot {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}

	var qty float64
	if end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			qty = v
		}
	}

	var unit strings.Builder
	for _, r := range s[end:] {
		if unicode.IsLetter(r) {
			unit.WriteRune(r)
		}
	}
	if unit.Len() == 0 {
		return qty, models.DefaultUnit
	}
	return qty, unit.String()
}
