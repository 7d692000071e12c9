package format

import (
	"fmt"
	"math"
)

// HumanTime formats a duration in seconds as "HH:MM:SS" with an optional
// fractional part controlled by ndigits (0 suppresses the decimal point).
// With oneHourDigit the hour field uses a single digit where possible, so
// nine hours prints as "9:00:00" rather than "09:00:00"; durations of ten
// hours or more always get the digits they need.
func HumanTime(seconds float64, ndigits int, oneHourDigit bool) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("format: negative duration %f", seconds)
	}

	whole := int64(seconds)
	hh := whole / 3600
	mm := (whole / 60) % 60
	ss := seconds - float64(whole/60)*60

	var hhStr string
	if oneHourDigit {
		hhStr = fmt.Sprintf("%01d", hh)
	} else {
		hhStr = fmt.Sprintf("%02d", hh)
	}

	var ssStr string
	if ndigits == 0 {
		ssStr = fmt.Sprintf("%02d", int64(math.Round(ss)))
	} else {
		ssStr = fmt.Sprintf("%0*.*f", ndigits+3, ndigits, ss)
	}
	return fmt.Sprintf("%s:%02d:%s", hhStr, mm, ssStr), nil
}
