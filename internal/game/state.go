// Package game holds the app-wide GameState and the pure rules that mutate
// it: heart regeneration, lesson rewards, achievements and shop purchases.
package game

import "time"

const (
	// MaxHearts caps the heart counter.
	MaxHearts = 5

	// HeartRefillInterval is the passive regeneration period for one heart.
	HeartRefillInterval = 30 * time.Minute
)

// GameState is the per-installation progress singleton.
type GameState struct {
	XP                  int       `json:"xp"`
	Gems                int       `json:"gems"`
	Hearts              int       `json:"hearts"`
	MaxHearts           int       `json:"maxHearts"`
	Streak              int       `json:"streak"`
	LastCompletedDate   time.Time `json:"lastCompletedDate,omitzero"`
	HeartsLastRefill    time.Time `json:"heartsLastRefill"`
	HeartRefillInterval int       `json:"heartRefillInterval"` // minutes
	LastHeartLoss       time.Time `json:"lastHeartLoss,omitzero"`

	LessonsCompleted int      `json:"lessonsCompleted"`
	Achievements     []string `json:"achievements,omitempty"`
	LastLessonID     string   `json:"lastLessonId,omitempty"`
}

// NewGameState returns a fresh state with full hearts.
func NewGameState(now time.Time) *GameState {
	return &GameState{
		Hearts:              MaxHearts,
		MaxHearts:           MaxHearts,
		HeartsLastRefill:    now,
		HeartRefillInterval: int(HeartRefillInterval / time.Minute),
	}
}

// normalize restores constants that an older or hand-edited document may lack.
func (s *GameState) normalize(now time.Time) {
	if s.MaxHearts <= 0 {
		s.MaxHearts = MaxHearts
	}
	if s.HeartRefillInterval <= 0 {
		s.HeartRefillInterval = int(HeartRefillInterval / time.Minute)
	}
	if s.HeartsLastRefill.IsZero() {
		s.HeartsLastRefill = now
	}
	s.Hearts = clamp(s.Hearts, 0, s.MaxHearts)
	if s.Gems < 0 {
		s.Gems = 0
	}
	if s.XP < 0 {
		s.XP = 0
	}
}

// HasAchievement reports whether id is already unlocked.
func (s *GameState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// AddXP adds a non-negative amount of XP.
func (s *GameState) AddXP(n int) {
	if n > 0 {
		s.XP += n
	}
}

// AddGems adds a non-negative amount of gems.
func (s *GameState) AddGems(n int) {
	if n > 0 {
		s.Gems += n
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
