package spacedrep

import (
	"math"
	"sort"
	"time"
)

const (
	// DefaultEaseFactor is the ease assigned on first review.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the SM-2 floor.
	MinEaseFactor = 1.3
)

// Schedule computes the next review state of an item. prev is nil for an
// item that has never been reviewed.
func Schedule(prev *ItemProgress, key ItemKey, rating Rating, now time.Time) (ItemProgress, error) {
	if !rating.Valid() {
		return ItemProgress{}, ErrInvalidRating
	}

	if prev == nil {
		interval := rating.initialInterval()
		return ItemProgress{
			Chapter:      key.Chapter,
			Verse:        key.Verse,
			Difficulty:   rating,
			LastReviewed: now,
			NextReview:   now.AddDate(0, 0, interval),
			ReviewCount:  1,
			Interval:     interval,
			EaseFactor:   DefaultEaseFactor,
		}, nil
	}

	next := *prev
	ease := next.EaseFactor
	if ease == 0 {
		ease = DefaultEaseFactor
	}
	interval := next.Interval
	if interval < 1 {
		interval = 1
	}

	switch rating {
	case RatingAgain:
		ease = math.Max(MinEaseFactor, ease-0.2)
		interval = 1
	case RatingHard:
		ease = math.Max(MinEaseFactor, ease-0.15)
		interval = roundDays(float64(interval) * 1.2)
	case RatingGood:
		interval = roundDays(float64(interval) * ease)
	case RatingEasy:
		ease += 0.15
		interval = roundDays(float64(interval) * ease * 1.3)
	}

	next.Difficulty = rating
	next.EaseFactor = ease
	next.Interval = interval
	next.LastReviewed = now
	next.NextReview = now.AddDate(0, 0, interval)
	next.ReviewCount++
	return next, nil
}

func roundDays(v float64) int {
	d := int(math.Round(v))
	if d < 1 {
		return 1
	}
	return d
}

// DueItems returns items due at now, most overdue first.
func DueItems(items []ItemProgress, now time.Time) []ItemProgress {
	var due []ItemProgress
	for _, it := range items {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		if due[i].Chapter != due[j].Chapter {
			return due[i].Chapter < due[j].Chapter
		}
		return due[i].Verse < due[j].Verse
	})
	return due
}
