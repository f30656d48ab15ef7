// Package guess evaluates guesses against the secret word and scores them.
package guess

import (
	"math"
	"strings"
	"time"
)

const (
	// BasePoints is the floor a correct guess is worth once the clock runs out
	BasePoints = 80

	// PointsPerSecondLeft is added for every second left on the turn clock
	PointsPerSecondLeft = 2.5

	// DrawerBonus is awarded to the drawer once per correct guesser
	DrawerBonus = 15

	// maxCloseDistance bounds both the length difference and mismatch count
	maxCloseDistance = 2
)

// IsCorrect reports whether guess matches word, ignoring case and
// surrounding whitespace on the guess
func IsCorrect(guess, word string) bool {
	return strings.ToLower(strings.TrimSpace(guess)) == strings.ToLower(word)
}

// IsClose is a positional approximation of "almost right". It is not an
// edit distance: a and b are compared index by index up to the longer
// length, a missing rune counts as a mismatch, and the pair is close when
// at most two positions differ. Lengths differing by more than two are
// never close.
func IsClose(a, b string) bool {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if abs(len(ra)-len(rb)) > maxCloseDistance {
		return false
	}

	longest := max(len(ra), len(rb))
	mismatches := 0
	for i := 0; i < longest; i++ {
		if i >= len(ra) || i >= len(rb) || ra[i] != rb[i] {
			mismatches++
		}
	}
	return mismatches <= maxCloseDistance
}

// Points returns the guesser's award for a correct guess made elapsed into a
// turn of turnTimeSeconds
func Points(turnTimeSeconds int, elapsed time.Duration) int {
	left := math.Max(0, float64(turnTimeSeconds)-elapsed.Seconds())
	return int(math.Round(BasePoints + left*PointsPerSecondLeft))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
