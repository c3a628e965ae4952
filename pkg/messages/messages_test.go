package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/models"
)

func intPtr(i int) *int { return &i }

func TestPantryContents(t *testing.T) {
	msg := PantryContents([]models.PantryView{
		{PantryItem: models.PantryItem{Name: "flour", Quantity: models.Qty(500), Unit: "g"}, DaysLeft: intPtr(3)},
		{PantryItem: models.PantryItem{Name: "egg", Quantity: models.Qty(2)}, DaysLeft: intPtr(1)},
		{PantryItem: models.PantryItem{Name: "milk"}, DaysLeft: intPtr(-2)},
	})
	assert.Contains(t, msg, "• flour (500 g) - 3 days left\n")
	assert.Contains(t, msg, "• egg (2 count) - 1 day left\n")
	assert.Contains(t, msg, "• milk ⏰ expired\n")
}

func TestRecommendations(t *testing.T) {
	report := &matcher.Report{
		RemovedExpired: 1,
		Results: []models.MatchResult{
			{RecipeName: "Omelette", MatchPercentage: 100},
			{RecipeName: "Pancakes", MatchPercentage: 66.7, MissingIngredients: []string{"milk"}},
			{RecipeName: "Toast", MatchPercentage: 0, MissingIngredients: []string{"bread"}},
		},
	}
	msg := Recommendations(report, 2)
	assert.Contains(t, msg, "Ignored 1 expired")
	assert.Contains(t, msg, "1. Omelette - 100.0% match\n")
	assert.Contains(t, msg, "2. Pancakes - 66.7% match\n   ❌ Missing: milk\n")
	assert.NotContains(t, msg, "Toast")

	assert.Equal(t, "No recipes available to suggest yet.", Recommendations(&matcher.Report{}, 3))
}

func TestAdded(t *testing.T) {
	msg := Added([]models.PantryItem{{Name: "egg"}, {Name: "milk"}})
	assert.Equal(t, "✅ Added 2 products to your pantry: egg, milk", msg)
}
