// Package render projects aggregated data into SVG documents.
// Every function is pure: the same input always yields the same bytes.
package render

import (
	"math"
	"strconv"
	"strings"
)

// expandHex turns "rgb" into "rrggbb". Other lengths pass through unchanged.
func expandHex(digits string) string {
	if len(digits) != 3 {
		return digits
	}
	return string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
}

// Luminance returns the relative luminance of a "#rrggbb" or "#rgb" color in [0, 1].
// Unparseable colors are treated as black.
func Luminance(hex string) float64 {
	digits := expandHex(strings.TrimPrefix(hex, "#"))
	if len(digits) != 6 {
		return 0
	}
	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0
	}
	channel := func(shift uint) float64 {
		v := float64((rgb>>shift)&0xff) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(16) + 0.7152*channel(8) + 0.0722*channel(0)
}

// TextColor picks black or white text for legibility on background.
func TextColor(background string) string {
	if Luminance(background) > 0.5 {
		return "#000"
	}
	return "#fff"
}
