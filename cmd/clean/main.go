package main

import (
	"flag"
	"os"

	"github.com/korjavin/smartpantry/pkg/cleaning"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/pantry"
)

func main() {
	input := flag.String("in", "data/raw_recipes.csv", "raw recipe dataset")
	output := flag.String("out", "data/recipes.csv", "cleaned recipe dataset")
	pantryPath := flag.String("pantry", "", "optional pantry table to summarize")
	top := flag.Int("top", 10, "number of most frequent products to report")
	flag.Parse()

	log := logger.New("clean")

	in, err := os.Open(*input)
	if err != nil {
		log.Error("Failed to open recipes: %v", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(*output)
	if err != nil {
		log.Error("Failed to create %s: %v", *output, err)
		os.Exit(1)
	}

	sum, err := cleaning.CleanRecipes(in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error("Failed to clean recipes: %v", err)
		os.Exit(1)
	}

	log.Info("Cleaned %d recipes (%d duplicates removed) into %s", sum.Rows, sum.Duplicates, *output)
	log.Info("Average ingredients per recipe: %.2f", sum.AvgIngredients)
	log.Info("Average instruction steps: %.2f", sum.AvgSteps)
	log.Info("Vegetarian recipes: %d", sum.Vegetarian)

	if *pantryPath == "" {
		return
	}

	f, err := os.Open(*pantryPath)
	if err != nil {
		log.Error("Failed to open pantry: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := pantry.ReadTable(f)
	if err != nil {
		log.Error("Failed to read pantry: %v", err)
		os.Exit(1)
	}

	counts := cleaning.ProductCounts(items)
	log.Info("Pantry has %d rows and %d distinct products", len(items), len(counts))
	for i, c := range counts {
		if i >= *top {
			break
		}
		log.Info("  %s: %d", c.Product, c.Count)
	}
}
