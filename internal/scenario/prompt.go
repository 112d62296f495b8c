package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/litescript/ls-gravity/internal/physics"
)

// ErrInputClosed is returned when input ends before setup is complete.
var ErrInputClosed = errors.New("input closed during setup")

// Prompter runs the interactive console setup.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	rng *rand.Rand
}

// NewPrompter reads answers from in and writes prompts to out. rng picks
// body colors; nil uses the global source.
func NewPrompter(in io.Reader, out io.Writer, rng *rand.Rand) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
		rng: rng,
	}
}

// Manual asks for a body count and then the details of every body.
// Unparsable or out-of-range answers are re-asked.
func (p *Prompter) Manual() ([]*physics.Body, error) {
	count, err := p.askInt("Enter number of planets: ", func(n int) string {
		if n <= 0 {
			return "Please enter a positive number of planets."
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	bodies := make([]*physics.Body, 0, count)
	for i := 0; i < count; i++ {
		fmt.Fprintf(p.out, "Enter details for Planet %d:\n", i+1)
		spec, err := p.askBody()
		if err != nil {
			return nil, err
		}
		b, err := spec.Body()
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func (p *Prompter) askBody() (BodySpec, error) {
	var spec BodySpec
	var err error

	if spec.Name, err = p.ask("Name: "); err != nil {
		return spec, err
	}

	category, err := p.askCategory()
	if err != nil {
		return spec, err
	}
	spec.Type = strconv.Itoa(int(category))

	if spec.X, err = p.askFloat("x-position (pixels): ", nil); err != nil {
		return spec, err
	}
	if spec.Y, err = p.askFloat("y-position (pixels): ", nil); err != nil {
		return spec, err
	}
	if spec.Radius, err = p.askFloat("Radius (pixels): ", positive("Radius")); err != nil {
		return spec, err
	}
	if spec.Mass, err = p.askFloat("Mass (kg): ", positive("Mass")); err != nil {
		return spec, err
	}
	if spec.VX, err = p.askFloat("x-velocity (m/s): ", nil); err != nil {
		return spec, err
	}
	if spec.VY, err = p.askFloat("y-velocity (m/s): ", nil); err != nil {
		return spec, err
	}

	spec.Color = RandomColor(p.rng)
	return spec, nil
}

func (p *Prompter) askCategory() (physics.Category, error) {
	var codes []string
	for _, c := range physics.Categories {
		codes = append(codes, fmt.Sprintf("%d: %s", int(c), c))
	}
	prompt := fmt.Sprintf("Type (%s): ", strings.Join(codes, ", "))

	for {
		line, err := p.ask(prompt)
		if err != nil {
			return physics.CategoryUnknown, err
		}
		if c, ok := physics.ParseCategory(line); ok {
			return c, nil
		}
		fmt.Fprintln(p.out, "Invalid type. Enter a number from 1 to 6.")
	}
}

func positive(field string) func(float64) string {
	return func(v float64) string {
		if v <= 0 {
			return field + " must be greater than zero."
		}
		return ""
	}
}

func (p *Prompter) askInt(prompt string, check func(int) string) (int, error) {
	for {
		line, err := p.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a valid integer.")
			continue
		}
		if msg := check(n); msg != "" {
			fmt.Fprintln(p.out, msg)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) askFloat(prompt string, check func(float64) string) (float64, error) {
	for {
		line, err := p.ask(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
			continue
		}
		if check != nil {
			if msg := check(v); msg != "" {
				fmt.Fprintln(p.out, msg)
				continue
			}
		}
		return v, nil
	}
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}
