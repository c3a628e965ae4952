package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is a stored pantry amount. Valid is false when the stored value
// was not a number; such a quantity never satisfies an ingredient.
type Quantity struct {
	Amount float64
	Valid  bool
}

// Qty returns a valid quantity
func Qty(v float64) Quantity {
	return Quantity{Amount: v, Valid: true}
}

// ParseQuantity parses a textual amount. Unparseable or non-finite text
// yields an invalid quantity rather than an error.
func ParseQuantity(s string) Quantity {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}
	}
	return Qty(v)
}

// String formats the quantity, empty when invalid
func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Amount, 'f', -1, 64)
}

// MarshalJSON encodes an invalid quantity as null
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.Amount)
}

// UnmarshalJSON accepts numbers, numeric strings and null. Other strings
// decode to an invalid quantity.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = Quantity{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = ParseQuantity(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Qty(v)
	return nil
}

// Value implements driver.Valuer
func (q Quantity) Value() (driver.Value, error) {
	if !q.Valid {
		return nil, nil
	}
	return q.Amount, nil
}

// Scan implements sql.Scanner
func (q *Quantity) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*q = Quantity{}
	case float64:
		*q = Qty(v)
	case int64:
		*q = Qty(float64(v))
	case []byte:
		*q = ParseQuantity(string(v))
	case string:
		*q = ParseQuantity(v)
	default:
		return fmt.Errorf("quantity: cannot scan %T", src)
	}
	return nil
}
