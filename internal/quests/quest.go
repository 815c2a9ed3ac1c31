// Package quests maintains rotating daily and weekly objective sets.
package quests

import (
	"fmt"
	"time"
)

// QuestType identifies what a quest counts.
type QuestType string

const (
	CompleteLessons QuestType = "complete_lessons"
	EarnXP          QuestType = "earn_xp"
	PerfectLessons  QuestType = "perfect_lessons"
	MaintainStreak  QuestType = "maintain_streak"
	StudyMinutes    QuestType = "study_minutes"
	EarlyBird       QuestType = "early_bird"
	CompleteUnit    QuestType = "complete_unit"
)

// AllQuestTypes returns every quest type.
func AllQuestTypes() []QuestType {
	return []QuestType{CompleteLessons, EarnXP, PerfectLessons, MaintainStreak, StudyMinutes, EarlyBird, CompleteUnit}
}

// Valid reports whether t is a known quest type.
func (t QuestType) Valid() bool {
	switch t {
	case CompleteLessons, EarnXP, PerfectLessons, MaintainStreak, StudyMinutes, EarlyBird, CompleteUnit:
		return true
	}
	return false
}

// ParseQuestType converts a string to a QuestType.
func ParseQuestType(s string) (QuestType, error) {
	t := QuestType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown quest type %q", s)
	}
	return t, nil
}

// Frequency is how often a quest set rotates.
type Frequency string

const (
	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
)

// Status of a single quest.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Quest is one objective with a progress counter.
type Quest struct {
	ID          string     `json:"id"`
	Type        QuestType  `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	Target      int        `json:"targetValue"`
	Progress    int        `json:"currentProgress"`
	XPReward    int        `json:"xpReward"`
	GemReward   int        `json:"gemReward"`
	Frequency   Frequency  `json:"frequency"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
}

// Completed reports whether the quest reached its target.
func (q *Quest) Completed() bool {
	return q.Status == StatusCompleted
}

// Claimable reports whether the quest's reward is waiting to be claimed.
func (q *Quest) Claimable() bool {
	return q.Completed() && q.ClaimedAt == nil
}

// Expired reports whether the quest window closed before now.
func (q *Quest) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}

// advance adds amount to the progress, clamped at Target. It returns true
// only on the transition to completed.
func (q *Quest) advance(amount int, now time.Time) bool {
	if q.Completed() || amount <= 0 {
		return false
	}
	q.Progress += amount
	if q.Progress > q.Target {
		q.Progress = q.Target
	}
	if q.Progress < q.Target {
		return false
	}
	q.Status = StatusCompleted
	at := now
	q.CompletedAt = &at
	return true
}

// Percent returns progress as 0-100.
func (q *Quest) Percent() int {
	if q.Target <= 0 {
		return 0
	}
	return q.Progress * 100 / q.Target
}
