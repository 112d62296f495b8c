package physics

import (
	"strconv"
	"strings"
)

// Category describes what kind of object a body is. It has no physical effect.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryStar
	CategoryPlanet
	CategoryMoon
	CategoryComet
	CategoryAsteroid
	CategoryBlackHole
)

// Categories lists the known categories in code order.
var Categories = []Category{
	CategoryStar,
	CategoryPlanet,
	CategoryMoon,
	CategoryComet,
	CategoryAsteroid,
	CategoryBlackHole,
}

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryStar:
		return "Star"
	case CategoryPlanet:
		return "Planet"
	case CategoryMoon:
		return "Moon"
	case CategoryComet:
		return "Comet"
	case CategoryAsteroid:
		return "Asteroid"
	case CategoryBlackHole:
		return "Black Hole"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= CategoryStar && c <= CategoryBlackHole
}

// ParseCategory accepts either a numeric code (1-6) or a display name,
// case-insensitively ("black hole", "blackhole" and "black_hole" all match).
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		c := Category(n)
		return c, c.Valid()
	}

	norm := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
	for _, c := range Categories {
		name := strings.ReplaceAll(strings.ToLower(c.String()), " ", "")
		if name == norm {
			return c, true
		}
	}
	return CategoryUnknown, false
}
