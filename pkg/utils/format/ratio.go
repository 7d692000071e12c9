package format

import (
	"regexp"
	"strconv"
)

// Ratios arrive as "num:den" or "num/den". Both parts must be positive
// integers without leading zeros, which rules out the degenerate "0:1",
// "1:0" and "0:0" forms ffprobe emits for streams with no real ratio.
var ratioPattern = regexp.MustCompile(`^([1-9][0-9]*)[:/]([1-9][0-9]*)$`)

// EvaluateRatio parses a "num:den" or "num/den" ratio string into a float.
// The second return value is false when the string is not a valid ratio.
func EvaluateRatio(s string) (float64, bool) {
	m := ratioPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	return num / den, true
}
