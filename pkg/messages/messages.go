package messages

import (
	"fmt"
	"strings"

	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/models"
)

// Welcome returns the greeting sent on /start
func Welcome() string {
	return "👋 Welcome to Smart Pantry! I keep track of what's in your pantry and tell you which recipes you can cook.\n\n" +
		"/pantry - show your pantry\n" +
		"/add flour: 500 g, egg: 6 - add products\n" +
		"/sync_pantry - start over and send your whole pantry\n" +
		"/recipes - see what you can cook"
}

// EmptyPantry is sent when the user's pantry has no products
func EmptyPantry() string {
	return "Your pantry is empty. Add products with /add or /sync_pantry."
}

// PantryContents lists pantry rows with quantities and days left
func PantryContents(views []models.PantryView) string {
	var b strings.Builder
	b.WriteString("🧺 Here's what's in your pantry:\n\n")
	for _, v := range views {
		b.WriteString("• " + v.Name)
		if q := v.Quantity.String(); q != "" {
			b.WriteString(fmt.Sprintf(" (%s %s)", q, v.UnitOrDefault()))
		}
		if v.DaysLeft != nil {
			switch d := *v.DaysLeft; {
			case d < 0:
				b.WriteString(" ⏰ expired")
			case d == 1:
				b.WriteString(" - 1 day left")
			default:
				b.WriteString(fmt.Sprintf(" - %d days left", d))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Added confirms products added to the pantry
func Added(items []models.PantryItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return fmt.Sprintf("✅ Added %d products to your pantry: %s", len(items), strings.Join(names, ", "))
}

// Recommendations summarizes the best limit matches of a report
func Recommendations(report *matcher.Report, limit int) string {
	if report == nil || len(report.Results) == 0 {
		return "No recipes available to suggest yet."
	}

	var b strings.Builder
	if report.RemovedExpired > 0 {
		b.WriteString(fmt.Sprintf("⏰ Ignored %d expired item(s) in your pantry.\n\n", report.RemovedExpired))
	}
	b.WriteString("🥘 Recipes you can cook:\n\n")
	for i, r := range report.Results {
		if limit > 0 && i >= limit {
			break
		}
		b.WriteString(fmt.Sprintf("%d. %s - %.1f%% match\n", i+1, r.RecipeName, r.MatchPercentage))
		if len(r.MissingIngredients) > 0 {
			b.WriteString("   ❌ Missing: " + r.MissingSummary() + "\n")
		}
	}
	return b.String()
}

// Error returns a generic failure message for the given action
func Error(action string) string {
	return fmt.Sprintf("😢 Sorry, I couldn't %s. Please try again later.", action)
}
