package lesson

import (
	"time"

	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/streak"
)

// Fallback amounts credited when the pipeline fails.
const (
	FallbackXP   = 10
	FallbackGems = 10
)

// Result is the raw outcome of a finished lesson as reported by the UI.
type Result struct {
	LessonID        string
	Correct         int
	Total           int
	FirstTryPerfect bool
	Minutes         int
	CompletedUnit   bool
	At              time.Time
}

func (r Result) normalized() Result {
	if r.Total < 0 {
		r.Total = 0
	}
	r.Correct = min(max(r.Correct, 0), r.Total)
	if r.Minutes < 0 {
		r.Minutes = 0
	}
	if r.Correct != r.Total || r.Total == 0 {
		r.FirstTryPerfect = false
	}
	return r
}

// Summary is everything the completion screen shows.
type Summary struct {
	LessonID        string
	XPGained        int
	GemsEarned      int
	Accuracy        int
	Correct         int
	Total           int
	StreakDays      int
	StreakIncreased bool
	MasteryStars    int
	NewAchievements []game.Achievement
	Milestone       *streak.Milestone
	QuestsCompleted []quests.Quest
	QuestBonusXP    int
	League          league.Tier
	LeagueRank      int
	LeagueTotal     int
	Message         string
	NextUnlock      string

	// Duplicate is set when LessonID was already processed; nothing was credited.
	Duplicate bool
	// Fallback is set when the pipeline failed and floor rewards were used.
	Fallback bool
}

// staticMessage picks an encouragement by accuracy band.
func staticMessage(accuracy int, streakIncreased bool, streakDays int) string {
	switch {
	case accuracy == 100:
		return "Flawless! Your recitation is as steady as a lamp in a windless place."
	case accuracy >= 80:
		if streakIncreased && streakDays > 1 {
			return "Excellent work. Another day of steady practice."
		}
		return "Excellent work. Keep this rhythm going."
	case accuracy >= 60:
		return "Good effort. Practice, and the verses will settle in the mind."
	default:
		return "Every attempt is progress. Act without worrying about the result, and try again."
	}
}
