// Package suggest proposes the closest known name for a misspelled one.
package suggest

import (
	"fmt"

	"github.com/hbollon/go-edlib"
)

// Closest returns the option with the smallest Levenshtein distance to input,
// provided the distance is small relative to the length of input. Ties go to
// the earlier option.
func Closest(input string, options []string) (string, bool) {
	if input == "" {
		return "", false
	}
	best, bestDistance := "", -1
	for _, opt := range options {
		d := edlib.LevenshteinDistance(input, opt)
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = opt, d
		}
	}
	if bestDistance < 0 || bestDistance > maxDistance(input) {
		return "", false
	}
	return best, true
}

// DidYouMean formats a `, did you mean "x"?` suffix, or "" when nothing is
// close enough.
func DidYouMean(input string, options []string) string {
	if s, ok := Closest(input, options); ok {
		return fmt.Sprintf(", did you mean %q?", s)
	}
	return ""
}

func maxDistance(input string) int {
	if n := len([]rune(input)) / 3; n > 2 {
		return n
	}
	return 2
}
