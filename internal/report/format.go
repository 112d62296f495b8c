package report

import (
	"fmt"
	"math"

	"github.com/litescript/ls-gravity/internal/physics"
)

// FormatDistance returns a human-readable distance for a length in meters.
func FormatDistance(m float64) string {
	m = math.Abs(m)
	switch {
	case m < 1e3:
		return formatWithUnit(m, "m")
	case m < 1e6:
		return formatWithUnit(m/1e3, "km")
	case m < 1e9:
		return formatWithUnit(m/1e6, "M km")
	default:
		return formatWithUnit(m/physics.AU, "AU")
	}
}

// FormatSpeed returns a human-readable speed for a value in m/s.
func FormatSpeed(mps float64) string {
	if mps < 1e3 {
		return formatWithUnit(mps, "m/s")
	}
	return formatWithUnit(mps/1e3, "km/s")
}

// FormatMass returns a mass in scientific notation.
func FormatMass(kg float64) string {
	return fmt.Sprintf("%.3e kg", kg)
}

// FormatDays returns simulated seconds as days.
func FormatDays(seconds float64) string {
	return fmt.Sprintf("day %.1f", seconds/86400)
}

func formatWithUnit(value float64, unit string) string {
	switch {
	case value < 10:
		return fmt.Sprintf("%.2f %s", value, unit)
	case value < 100:
		return fmt.Sprintf("%.1f %s", value, unit)
	default:
		return fmt.Sprintf("%.0f %s", value, unit)
	}
}
