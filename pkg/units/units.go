package units

import "strings"

// unit is a member of a convertible family, scaled to the family's base unit
type unit struct {
	family string
	scale  float64
}

var table = map[string]unit{
	"g":  {family: "mass", scale: 1},
	"kg": {family: "mass", scale: 1000},
	"ml": {family: "volume", scale: 1},
	"l":  {family: "volume", scale: 1000},
}

func normalize(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// Convert converts amount from one unit to another. Identical units and
// pairs outside the g/kg and ml/l table return the amount unchanged.
func Convert(amount float64, from, to string) float64 {
	from, to = normalize(from), normalize(to)
	if from == to {
		return amount
	}
	src, ok1 := table[from]
	dst, ok2 := table[to]
	if !ok1 || !ok2 || src.family != dst.family {
		return amount
	}
	return amount * src.scale / dst.scale
}

// Supported reports whether a conversion between the two units exists
func Supported(from, to string) bool {
	from, to = normalize(from), normalize(to)
	if from == to {
		return true
	}
	src, ok1 := table[from]
	dst, ok2 := table[to]
	return ok1 && ok2 && src.family == dst.family
}
