package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound indicates the requested product is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Unit is the measurement unit a product is sold in.
type Unit string

const (
	// UnitEach covers discrete items counted per piece.
	UnitEach Unit = "each"
	// UnitKilo covers continuous items sold by weight.
	UnitKilo Unit = "kilo"
)

// ParseUnit converts a stored unit value into a Unit.
func ParseUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "each":
		return UnitEach, nil
	case "kilo":
		return UnitKilo, nil
	default:
		return "", fmt.Errorf("unknown product unit: %q", value)
	}
}

// Product identifies a catalog item by name and measurement unit. Products
// are value types: two Product values with the same name and unit are the
// same product, which makes them usable as map keys throughout discount
// resolution.
type Product struct {
	Name string `json:"name"`
	Unit Unit   `json:"unit"`
}
