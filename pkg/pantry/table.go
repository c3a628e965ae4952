package pantry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/korjavin/smartpantry/pkg/models"
)

// Columns of the pantry table, in export order
var Columns = []string{"Product", "Category", "Quantity", "Unit", "Expiry Date", "Days Left"}

// DateLayout is the layout used for expiry dates in the table
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02.01.2006",
}

// ReadTable reads pantry rows from CSV with a header row. Columns are matched
// by name, case-insensitively; unknown columns and Days Left are ignored.
// A quantity that is not a number is kept as invalid, and an expiry date that
// cannot be parsed is treated as absent.
func ReadTable(r io.Reader) ([]models.PantryItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []models.PantryItem{}, nil
		}
		return nil, fmt.Errorf("failed to read pantry header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	if _, ok := index["product"]; !ok {
		return nil, fmt.Errorf("pantry table has no Product column")
	}

	field := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := []models.PantryItem{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read pantry row: %w", err)
		}

		name := models.NormalizeName(field(row, "product"))
		if name == "" {
			continue
		}
		items = append(items, models.PantryItem{
			Name:       name,
			Category:   field(row, "category"),
			Quantity:   models.ParseQuantity(field(row, "quantity")),
			Unit:       field(row, "unit"),
			ExpiryDate: parseDate(field(row, "expiry date")),
		})
	}
	return items, nil
}

// WriteTable writes items as CSV with all table columns, computing days left
// against now.
func WriteTable(w io.Writer, items []models.PantryItem, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write pantry header: %w", err)
	}

	for _, item := range items {
		var expiry, daysLeft string
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format(DateLayout)
		}
		if days, ok := item.DaysLeft(now); ok {
			daysLeft = strconv.Itoa(days)
		}
		row := []string{item.Name, item.Category, item.Quantity.String(), item.Unit, expiry, daysLeft}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write pantry row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
