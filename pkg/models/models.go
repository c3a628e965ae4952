package models

import (
	"math"
	"strings"
	"time"
)

// DefaultUnit is the unit assumed when none is given
const DefaultUnit = "count"

// Session identifies the user a request acts for
type Session struct {
	Username string `json:"username"`
}

// Key returns the sanitized storage key for the session's user.
// An empty key means there is no user.
func (s Session) Key() string {
	return SanitizeUsername(s.Username)
}

// SanitizeUsername trims a username, replaces spaces with underscores and lower-cases it
func SanitizeUsername(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// NormalizeName lowercases and trims a product or ingredient name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PantryItem is a single row of a user's pantry
type PantryItem struct {
	Name       string     `json:"name" db:"product"`
	Category   string     `json:"category,omitempty" db:"category"`
	Quantity   Quantity   `json:"quantity" db:"quantity"`
	Unit       string     `json:"unit" db:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
}

// DaysLeft returns the whole days between today and the expiry date.
// The expiry is a calendar date, so its day is read in its own location.
// ok is false when the item has no expiry date.
func (p PantryItem) DaysLeft(now time.Time) (days int, ok bool) {
	if p.ExpiryDate == nil {
		return 0, false
	}
	today := truncateDay(now)
	y, m, d := p.ExpiryDate.Date()
	expiry := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return int(math.Round(expiry.Sub(today).Hours() / 24)), true
}

// Expired reports whether the item expired before the day of now
func (p PantryItem) Expired(now time.Time) bool {
	days, ok := p.DaysLeft(now)
	return ok && days < 0
}

// UnitOrDefault returns the item's unit, or "count" when none is stored
func (p PantryItem) UnitOrDefault() string {
	if u := strings.TrimSpace(p.Unit); u != "" {
		return u
	}
	return DefaultUnit
}

// PantryView is a pantry row as shown to users
type PantryView struct {
	PantryItem
	DaysLeft *int `json:"days_left,omitempty"`
}

// RecipeIngredient is one parsed entry of a recipe's ingredient text
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe is a catalog entry
type Recipe struct {
	Name         string `json:"recipe"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// MatchResult is the availability of one recipe against a pantry
type MatchResult struct {
	RecipeName         string   `json:"recipe"`
	MatchPercentage    float64  `json:"match_percentage"`
	MissingIngredients []string `json:"missing_ingredients"`
	Instructions       string   `json:"instructions,omitempty"`
}

// MissingSummary joins the missing ingredients, or reports that all are available
func (m MatchResult) MissingSummary() string {
	if len(m.MissingIngredients) == 0 {
		return "All available"
	}
	return strings.Join(m.MissingIngredients, ", ")
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
