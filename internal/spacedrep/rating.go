package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidRating is returned for a rating outside the closed set.
var ErrInvalidRating = errors.New("invalid difficulty rating")

// Rating is the learner's self-reported recall difficulty.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// AllRatings returns every rating from hardest to easiest.
func AllRatings() []Rating {
	return []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}
}

// Valid reports whether r is one of the four known ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	}
	return false
}

// ParseRating converts user input to a Rating.
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// initialInterval is the first interval in days for a never-reviewed item.
func (r Rating) initialInterval() int {
	switch r {
	case RatingAgain:
		return 1
	case RatingHard:
		return 2
	case RatingGood:
		return 4
	case RatingEasy:
		return 7
	}
	return 1
}
