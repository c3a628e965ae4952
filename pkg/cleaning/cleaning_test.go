package cleaning

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/smartpantry/pkg/models"
)

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"roast", "chicken", "lemon"}, Keywords("Roast Chicken with Lemon and Garlic Butter"))
	assert.Equal(t, []string{}, Keywords("Pie for the Cat"))
}

func TestIsVegetarian(t *testing.T) {
	assert.True(t, IsVegetarian([]string{"2 cups flour", "1 egg"}))
	assert.False(t, IsVegetarian([]string{"1 lb Beef mince"}))
	assert.False(t, IsVegetarian([]string{"graham crackers"}), "substring match on ham")
}

func TestInstructionSteps(t *testing.T) {
	assert.Equal(t, 3, InstructionSteps("Mix flour. Add eggs.  . Bake for 20 min."))
	assert.Equal(t, 0, InstructionSteps(""))
}

func TestIngredientList(t *testing.T) {
	assert.Equal(t, []string{"1 cup flour", "2 eggs, beaten", "salt"},
		IngredientList(`['1 cup flour', "2 eggs, beaten", 'salt']`))
	assert.Equal(t, []string{"flour: 200 g", "egg: 2"}, IngredientList("flour: 200 g, egg: 2"))
	assert.Empty(t, IngredientList("[]"))
}

func TestCleanRecipes(t *testing.T) {
	in := "Title,Ingredients,Instructions,Image_Name\n" +
		"Tomato Soup,\"['4 tomatoes', '1 onion']\",Chop. Boil. Blend.,a.jpg\n" +
		"Chicken Curry,\"['chicken thighs', 'curry paste', 'rice']\",Cook.,b.jpg\n" +
		"Tomato Soup,\"['tomato']\",Boil.,c.jpg\n"

	var out bytes.Buffer
	sum, err := CleanRecipes(strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 1, sum.Duplicates)
	assert.Equal(t, 1, sum.Vegetarian)
	assert.InDelta(t, 2.5, sum.AvgIngredients, 1e-9)
	assert.InDelta(t, 2.0, sum.AvgSteps, 1e-9)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Title", "Ingredients", "Instructions", "Image_Name",
		"ingredient_count", "instruction_steps", "keywords", "vegetarian"}, rows[0])
	assert.Equal(t, []string{"2", "3", "['tomato', 'soup']", "True"}, rows[1][4:])
	assert.Equal(t, []string{"3", "1", "['chicken', 'curry']", "False"}, rows[2][4:])
	assert.Equal(t, "a.jpg", rows[1][3])
}

func TestCleanRecipesMissingColumn(t *testing.T) {
	_, err := CleanRecipes(strings.NewReader("Title,Ingredients\nx,y\n"), &bytes.Buffer{})
	assert.Error(t, err)

	_, err = CleanRecipes(strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestProductCounts(t *testing.T) {
	items := []models.PantryItem{{Name: "milk"}, {Name: "egg"}, {Name: "egg"}, {Name: "rice"}}
	assert.Equal(t, []ProductCount{
		{Product: "egg", Count: 2},
		{Product: "milk", Count: 1},
		{Product: "rice", Count: 1},
	}, ProductCounts(items))
}
