// Package format holds the pure formatting helpers shared by the metadata
// model and the storyboard compositor.
package format

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi", "Yi"}

// RoundUp rounds a float upward to the given number of decimal digits.
// The result is the smallest value greater than or equal to x that is
// representable at that precision, so RoundUp is idempotent.
func RoundUp(x float64, digits int) float64 {
	multiplier := math.Pow(10, float64(digits))
	return math.Ceil(x*multiplier) / multiplier
}

// HumanSize returns a compact 1024-based size string, e.g. "4.73KiB".
// Sizes below one unit print as plain bytes ("512B"). Within a unit the
// number of decimals shrinks as the magnitude grows: two below 10, one
// below 100, none at or above 100. All rounding is upward so the printed
// size never understates the actual size.
func HumanSize(size int64) string {
	const multiplier = 1024.0
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	}
	s := float64(size)
	unit := sizeUnits[len(sizeUnits)-1]
	for _, u := range sizeUnits {
		s /= multiplier
		if s < multiplier {
			unit = u
			break
		}
	}
	switch {
	case s < 10:
		return fmt.Sprintf("%.2f%sB", RoundUp(s, 2), unit)
	case s < 100:
		return fmt.Sprintf("%.1f%sB", RoundUp(s, 1), unit)
	default:
		return fmt.Sprintf("%.0f%sB", RoundUp(s, 0), unit)
	}
}
