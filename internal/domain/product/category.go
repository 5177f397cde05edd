package product

import (
	"fmt"
	"strings"

	"github.com/example/arka-distribution/internal/domain"
)

type Category string

const (
	CategoryPeripherals Category = "PERIPHERALS"
	CategoryStorage     Category = "STORAGE"
	CategoryComponents  Category = "COMPONENTS"
	CategoryMonitors    Category = "MONITORS"
	CategoryNetworking  Category = "NETWORKING"
	CategoryAccessories Category = "ACCESSORIES"
	CategoryOther       Category = "OTHER"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryPeripherals,
	CategoryStorage,
	CategoryComponents,
	CategoryMonitors,
	CategoryNetworking,
	CategoryAccessories,
	CategoryOther,
}

// spanishNames maps the Spanish catalog names used by existing clients.
var spanishNames = map[string]Category{
	"PERIFERICOS":    CategoryPeripherals,
	"ALMACENAMIENTO": CategoryStorage,
	"COMPONENTES":    CategoryComponents,
	"MONITORES":      CategoryMonitors,
	"REDES":          CategoryNetworking,
	"ACCESORIOS":     CategoryAccessories,
	"OTROS":          CategoryOther,
}

// ParseCategory resolves a category name, ignoring case and surrounding spaces.
// Spanish names are accepted as aliases.
func ParseCategory(name string) (Category, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := spanishNames[upper]; ok {
		return alias, nil
	}
	c := Category(upper)
	if c.Valid() {
		return c, nil
	}
	return "", domain.Invalid("category", fmt.Sprintf("unknown category %q", name))
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }
