package matcher

import (
	"math"
	"sort"

	"github.com/korjavin/smartpantry/pkg/ingredients"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/units"
)

// Report holds the match results of every recipe for one session
type Report struct {
	Username       string               `json:"username"`
	Results        []models.MatchResult `json:"results"`
	RemovedExpired int                  `json:"removed_expired"`
}

// CheckAvailability reports which share of a recipe's ingredients the pantry
// already covers, and which ingredients are missing in parse order.
func CheckAvailability(recipeIngredients string, pantry []models.PantryItem) (float64, []string) {
	return CheckParsed(ingredients.Parse(recipeIngredients), pantry)
}

// CheckParsed is CheckAvailability over already parsed ingredients
func CheckParsed(needed []models.RecipeIngredient, pantry []models.PantryItem) (float64, []string) {
	missing := make([]string, 0)
	if len(needed) == 0 {
		return 0, missing
	}

	available := 0
	for _, ing := range needed {
		item, ok := lookup(pantry, ing.Name)
		if !ok || !satisfies(item, ing) {
			missing = append(missing, ing.Name)
			continue
		}
		available++
	}

	return 100 * float64(available) / float64(len(needed)), missing
}

// lookup returns the first pantry row with the given name
func lookup(pantry []models.PantryItem, name string) (models.PantryItem, bool) {
	for _, item := range pantry {
		if models.NormalizeName(item.Name) == name {
			return item, true
		}
	}
	return models.PantryItem{}, false
}

func satisfies(item models.PantryItem, ing models.RecipeIngredient) bool {
	if !item.Quantity.Valid || !finite(item.Quantity.Amount) {
		return false
	}
	need := units.Convert(ing.Quantity, ing.Unit, item.UnitOrDefault())
	if !finite(need) {
		return false
	}
	return item.Quantity.Amount >= need
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MatchRecipes matches every recipe against the session's pantry snapshot.
// Results are ordered by match percentage, highest first, keeping catalog
// order among equal percentages, and rounded to one decimal.
func MatchRecipes(session models.Session, recipes []models.Recipe, pantry []models.PantryItem) Report {
	results := make([]models.MatchResult, 0, len(recipes))
	for _, recipe := range recipes {
		pct, missing := CheckAvailability(recipe.Ingredients, pantry)
		name := recipe.Name
		if name == "" {
			name = "Unnamed Recipe"
		}
		results = append(results, models.MatchResult{
			RecipeName:         name,
			MatchPercentage:    math.Round(pct*10) / 10,
			MissingIngredients: missing,
			Instructions:       recipe.Instructions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	return Report{
		Username: session.Username,
		Results:  results,
	}
}
