package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-gravity/internal/physics"
)

// ErrUnknownPreset is returned for preset names that are not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset names.
const (
	PresetSolar  = "solar"
	PresetBinary = "binary"
)

var presets = map[string]func() []*physics.Body{
	PresetSolar:  Solar,
	PresetBinary: Binary,
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named preset.
func Preset(name string) ([]*physics.Body, error) {
	build, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

type planet struct {
	name   string
	au     float64 // distance from the Sun along +x
	radius float64 // px
	color  string
	mass   float64 // kg
	vy     float64 // m/s
}

var planets = []planet{
	{"Mercury", 0.387, 3, ColorDarkGray, 3.3011e23, 47870},
	{"Venus", 0.723, 6, ColorGreen, 4.867e24, 35020},
	{"Earth", 1, 10, ColorBlue, 5.972e24, 29780},
	{"Mars", 1.524, 8, ColorRed, 6.39e23, 24070},
	{"Jupiter", 5.203, 20, ColorOrange, 1.898e27, 13070},
	{"Saturn", 9.582, 18, ColorLightGray, 5.683e26, 9680},
	{"Uranus", 19.191, 14, ColorLightBlue, 8.681e25, 6800},
	{"Neptune", 30.07, 14, ColorLightGreen, 1.024e26, 5430},
}

// Solar returns the Sun and the eight planets on the +x axis with
// tangential velocities along +y.
func Solar() []*physics.Body {
	sun := physics.NewBody("Sun", physics.CategoryStar, physics.Vec{}, physics.Vec{}, 1.989e30, 30)
	sun.Color = ColorYellow

	bodies := []*physics.Body{sun}
	for _, p := range planets {
		b := physics.NewBody(p.name, physics.CategoryPlanet,
			physics.Vec{X: AUToMeters(p.au)},
			physics.Vec{Y: p.vy},
			p.mass, p.radius)
		b.Color = p.color
		bodies = append(bodies, b)
	}
	return bodies
}

// Binary returns two equal masses already overlapping; they merge on the
// first step.
func Binary() []*physics.Body {
	a := physics.NewBodyWithRadius("Alpha", physics.CategoryPlanet, physics.Vec{}, physics.Vec{}, 1e24, 1e6)
	a.Color = ColorOrange
	b := physics.NewBodyWithRadius("Beta", physics.CategoryPlanet, physics.Vec{X: 1.5e6}, physics.Vec{}, 1e24, 1e6)
	b.Color = ColorLightBlue
	return []*physics.Body{a, b}
}
