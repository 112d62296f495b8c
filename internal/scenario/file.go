package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-gravity/internal/physics"
)

// ErrNoBodies is returned when a scenario defines no bodies.
var ErrNoBodies = errors.New("scenario has no bodies")

// File is the on-disk scenario format. Positions and radii are in display
// pixels; mass and velocity are SI.
type File struct {
	Name   string     `yaml:"name"`
	Bodies []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body as a user would enter it.
type BodySpec struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`   // category name or code 1-6
	X      float64 `yaml:"x"`      // px
	Y      float64 `yaml:"y"`      // px
	Radius float64 `yaml:"radius"` // px
	Mass   float64 `yaml:"mass"`   // kg
	VX     float64 `yaml:"vx"`     // m/s
	VY     float64 `yaml:"vy"`     // m/s
	Color  string  `yaml:"color,omitempty"`
}

// Body converts the spec into a physics body, validating it.
func (s BodySpec) Body() (*physics.Body, error) {
	category, ok := physics.ParseCategory(s.Type)
	if !ok {
		return nil, fmt.Errorf("body %q: unknown type %q", s.Name, s.Type)
	}
	b := physics.NewBody(s.Name, category,
		physics.Vec{X: PixelsToMeters(s.X), Y: PixelsToMeters(s.Y)},
		physics.Vec{X: s.VX, Y: s.VY},
		s.Mass, s.Radius)
	b.Color = s.Color
	if b.Color == "" {
		b.Color = ColorWhite
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// SpecFromBody converts a body back into display units.
func SpecFromBody(b *physics.Body) BodySpec {
	return BodySpec{
		Name:   b.Name,
		Type:   strconv.Itoa(int(b.Category)),
		X:      MetersToPixels(b.Pos.X),
		Y:      MetersToPixels(b.Pos.Y),
		Radius: b.RenderRadius,
		Mass:   b.Mass,
		VX:     b.Vel.X,
		VY:     b.Vel.Y,
		Color:  b.Color,
	}
}

// FromBodies builds a scenario file from bodies.
func FromBodies(name string, bodies []*physics.Body) File {
	f := File{Name: name, Bodies: make([]BodySpec, 0, len(bodies))}
	for _, b := range bodies {
		f.Bodies = append(f.Bodies, SpecFromBody(b))
	}
	return f
}

// ToBodies converts every spec, stopping at the first invalid one.
func (f File) ToBodies() ([]*physics.Body, error) {
	if len(f.Bodies) == 0 {
		return nil, ErrNoBodies
	}
	bodies := make([]*physics.Body, 0, len(f.Bodies))
	for i, spec := range f.Bodies {
		b, err := spec.Body()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i+1, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Decode reads a YAML scenario.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, ErrNoBodies
		}
		return File{}, fmt.Errorf("decode scenario: %w", err)
	}
	return f, nil
}

// Load reads and converts the scenario at path.
func Load(path string) (File, []*physics.Body, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("open scenario: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return File{}, nil, err
	}
	bodies, err := f.ToBodies()
	if err != nil {
		return File{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, bodies, nil
}

// Encode writes the scenario as YAML.
func (f File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return enc.Close()
}
