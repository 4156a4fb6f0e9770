package registry

import (
	"strconv"
	"strings"
)

const (
	textDark  = "#000000"
	textLight = "#ffffff"

	// Backgrounds brighter than this get dark text.
	luminanceThreshold = 0.70
)

// ContrastColor returns the badge text color for a #RRGGBB background.
// Malformed input yields white.
func ContrastColor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return textLight
	}
	if Luminance(r, g, b) > luminanceThreshold {
		return textDark
	}
	return textLight
}

// Luminance computes the perceived brightness of a color in [0, 1].
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// ValidColor reports whether hex is a #RRGGBB color.
func ValidColor(hex string) bool {
	_, _, _, ok := parseHex(hex)
	return ok
}

func parseHex(hex string) (uint8, uint8, uint8, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(strings.ToLower(hex[1:]), 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
