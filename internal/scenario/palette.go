package scenario

import "math/rand"

// Body colors, as lipgloss hex specs.
const (
	ColorBlack      = "#000000"
	ColorWhite      = "#FFFFFF"
	ColorYellow     = "#FFFF00"
	ColorBlue       = "#6495ED"
	ColorRed        = "#FF0000"
	ColorGreen      = "#00FF00"
	ColorOrange     = "#FFA500"
	ColorLightBlue  = "#ADD8E6"
	ColorLightGreen = "#90EE90"
	ColorLightGray  = "#A9A9A9"
	ColorDarkGray   = "#A9A9A9"
)

// Palette is the set of colors handed out to manually entered bodies.
var Palette = []string{
	ColorBlack, ColorWhite, ColorYellow, ColorBlue, ColorRed, ColorGreen,
	ColorOrange, ColorLightBlue, ColorLightGreen, ColorLightGray, ColorDarkGray,
}

// RandomColor picks a palette color. A nil rng uses the global source.
func RandomColor(rng *rand.Rand) string {
	if rng == nil {
		return Palette[rand.Intn(len(Palette))]
	}
	return Palette[rng.Intn(len(Palette))]
}
