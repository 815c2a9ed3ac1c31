package spacedrep

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ItemKey identifies a memorization item by chapter and verse.
type ItemKey struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%d.%d", k.Chapter, k.Verse)
}

// Chapters is the number of chapters in the Gita.
const Chapters = 18

// ParseItemKey parses "chapter.verse", e.g. "2.47".
func ParseItemKey(s string) (ItemKey, error) {
	ch, v, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return ItemKey{}, fmt.Errorf("verse %q: want chapter.verse", s)
	}
	chapter, err := strconv.Atoi(ch)
	if err != nil || chapter < 1 || chapter > Chapters {
		return ItemKey{}, fmt.Errorf("verse %q: chapter must be 1-%d", s, Chapters)
	}
	verse, err := strconv.Atoi(v)
	if err != nil || verse < 1 {
		return ItemKey{}, fmt.Errorf("verse %q: verse must be positive", s)
	}
	return ItemKey{Chapter: chapter, Verse: verse}, nil
}

// ItemProgress is the latest review state of one memorization item.
type ItemProgress struct {
	Chapter      int       `json:"chapter"`
	Verse        int       `json:"verse"`
	Difficulty   Rating    `json:"difficulty"`
	LastReviewed time.Time `json:"lastReviewed"`
	NextReview   time.Time `json:"nextReview"`
	ReviewCount  int       `json:"reviewCount"`
	Interval     int       `json:"interval"`
	EaseFactor   float64   `json:"easeFactor"`
}

// Key returns the item's composite key.
func (p ItemProgress) Key() ItemKey {
	return ItemKey{Chapter: p.Chapter, Verse: p.Verse}
}

// IsDue returns true if the item is due for review (at or past the review date).
func (p ItemProgress) IsDue(now time.Time) bool {
	return !now.Before(p.NextReview)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (p ItemProgress) OverdueDays(now time.Time) float64 {
	if now.Before(p.NextReview) {
		return 0
	}
	return now.Sub(p.NextReview).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (p ItemProgress) DaysUntilReview(now time.Time) int {
	if p.IsDue(now) {
		return 0
	}
	return int(p.NextReview.Sub(now).Hours()/24.0) + 1
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display. An item is overdue once it
// is past due by more than half its interval.
func (p ItemProgress) Status(now time.Time) ReviewStatus {
	if !p.IsDue(now) {
		return ReviewNotDue
	}
	grace := float64(p.Interval) * 0.5
	if p.OverdueDays(now) > grace {
		return ReviewOverdue
	}
	return ReviewDue
}
