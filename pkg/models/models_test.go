package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "mary_ann", SanitizeUsername("  Mary Ann "))
	assert.Equal(t, "", Session{Username: "   "}.Key())
}

func TestDaysLeftAndExpired(t *testing.T) {
	now := time.Date(2025, 10, 19, 15, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	days, ok := PantryItem{ExpiryDate: &tomorrow}.DaysLeft(now)
	assert.True(t, ok)
	assert.Equal(t, 1, days)

	assert.False(t, PantryItem{ExpiryDate: &today}.Expired(now))
	assert.True(t, PantryItem{ExpiryDate: &yesterday}.Expired(now))

	_, ok = PantryItem{}.DaysLeft(now)
	assert.False(t, ok)
	assert.False(t, PantryItem{}.Expired(now))
}

func TestDaysLeftWestOfUTC(t *testing.T) {
	ny := time.FixedZone("EDT", -4*60*60)
	now := time.Date(2025, 10, 19, 12, 0, 0, 0, ny)
	today := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	days, ok := PantryItem{ExpiryDate: &today}.DaysLeft(now)
	assert.True(t, ok)
	assert.Equal(t, 0, days)
	assert.False(t, PantryItem{ExpiryDate: &today}.Expired(now))

	days, _ = PantryItem{ExpiryDate: &tomorrow}.DaysLeft(now)
	assert.Equal(t, 1, days)
}

func TestDaysLeftEastOfUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 10, 19, 8, 0, 0, 0, tokyo)
	yesterday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	days, _ := PantryItem{ExpiryDate: &yesterday}.DaysLeft(now)
	assert.Equal(t, -1, days)
	assert.True(t, PantryItem{ExpiryDate: &yesterday}.Expired(now))
}

func TestUnitOrDefault(t *testing.T) {
	assert.Equal(t, "count", PantryItem{}.UnitOrDefault())
	assert.Equal(t, "g", PantryItem{Unit: " g "}.UnitOrDefault())
}

func TestQuantityJSON(t *testing.T) {
	var item PantryItem
	require.NoError(t, json.Unmarshal([]byte(`{"name":"flour","quantity":"500","unit":"g"}`), &item))
	assert.Equal(t, Qty(500), item.Quantity)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"flour","quantity":"lots"}`), &item))
	assert.False(t, item.Quantity.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"flour","quantity":2.5}`), &item))
	assert.Equal(t, Qty(2.5), item.Quantity)

	out, err := json.Marshal(PantryItem{Name: "salt"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"quantity":null`)

	assert.Error(t, json.Unmarshal([]byte(`{"quantity":true}`), &item))
}

func TestQuantityScan(t *testing.T) {
	var q Quantity
	require.NoError(t, q.Scan([]byte("3")))
	assert.Equal(t, Qty(3), q)
	require.NoError(t, q.Scan(nil))
	assert.False(t, q.Valid)
	assert.Error(t, q.Scan(true))

	v, err := Qty(2).Value()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, Qty(1.5), ParseQuantity(" 1.5 "))
	assert.False(t, ParseQuantity("NaN").Valid)
	assert.False(t, ParseQuantity("").Valid)
	assert.Equal(t, "1.5", Qty(1.5).String())
	assert.Equal(t, "", Quantity{}.String())
}

func TestMissingSummary(t *testing.T) {
	assert.Equal(t, "All available", MatchResult{}.MissingSummary())
	assert.Equal(t, "egg, milk", MatchResult{MissingIngredients: []string{"egg", "milk"}}.MissingSummary())
}
