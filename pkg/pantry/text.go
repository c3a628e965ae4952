package pantry

import (
	"github.com/korjavin/smartpantry/pkg/ingredients"
	"github.com/korjavin/smartpantry/pkg/models"
)

// ItemsFromText turns "name: qty unit, ..." text into pantry rows. The parsed
// quantity is always stored, so an entry without a number is a zero amount.
func ItemsFromText(text string) []models.PantryItem {
	parsed := ingredients.Parse(text)
	items := make([]models.PantryItem, 0, len(parsed))
	for _, ing := range parsed {
		if ing.Name == "" {
			continue
		}
		items = append(items, models.PantryItem{
			Name:     ing.Name,
			Quantity: models.Qty(ing.Quantity),
			Unit:     ing.Unit,
		})
	}
	return items
}
