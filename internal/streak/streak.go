// Package streak tracks consecutive study days with freeze and repair
// mechanics. Day boundaries are local calendar dates of the supplied time.
package streak

import (
	"time"

	"github.com/abhisek/gitalearn/internal/calendar"
)

const (
	FreezeCost     = 10
	RepairCost     = 350
	FreezeDuration = 24 * time.Hour

	DefaultWeeklyGoal  = 5
	DefaultMonthlyGoal = 20

	activeDaysKept = 60
)

// Data is the persisted streak document.
type Data struct {
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	PerfectStreak    int        `json:"perfectStreak"`
	LastLessonDate   time.Time  `json:"lastLessonDate,omitzero"`
	FreezeUsedToday  bool       `json:"streakFreezeUsedToday"`
	FreezeExpiry     *time.Time `json:"streakFreezeExpiry,omitempty"`
	Milestones       []int      `json:"milestones,omitempty"`
	TotalDaysLearned int        `json:"totalDaysLearned"`
	WeeklyGoal       int        `json:"weeklyGoal"`
	MonthlyGoal      int        `json:"monthlyGoal"`

	// LostStreak is the streak value at the last reset, offered to Repair.
	LostStreak int      `json:"lostStreak,omitempty"`
	ActiveDays []string `json:"activeDays,omitempty"`
}

// NewData returns an empty streak record.
func NewData() *Data {
	return &Data{WeeklyGoal: DefaultWeeklyGoal, MonthlyGoal: DefaultMonthlyGoal}
}

// FreezeActive reports whether an unexpired freeze is held at now.
func (d *Data) FreezeActive(now time.Time) bool {
	return d.FreezeExpiry != nil && now.Before(*d.FreezeExpiry)
}

// StudiedOn reports whether the last lesson fell on now's calendar day.
func (d *Data) StudiedOn(now time.Time) bool {
	return !d.LastLessonDate.IsZero() && calendar.SameDay(d.LastLessonDate, now)
}

// Validate applies day rollover at now and reports whether anything changed.
//
//	delta 0 or 1: unchanged
//	delta 2 with an unexpired freeze: freeze consumed, streak kept
//	delta >= 2 otherwise: current and perfect streak reset to 0
func (d *Data) Validate(now time.Time) bool {
	changed := false
	if !d.LastLessonDate.IsZero() {
		delta := calendar.DaysBetween(d.LastLessonDate, now)
		switch {
		case delta <= 1:
		case delta == 2 && d.FreezeActive(now):
			d.FreezeUsedToday = true
			d.FreezeExpiry = nil
			// The frozen day now counts as covered.
			d.LastLessonDate = d.LastLessonDate.AddDate(0, 0, 1)
			changed = true
		default:
			if d.CurrentStreak > 0 {
				d.LostStreak = d.CurrentStreak
				d.CurrentStreak = 0
				changed = true
			}
			if d.PerfectStreak != 0 || d.FreezeExpiry != nil || d.FreezeUsedToday {
				changed = true
			}
			d.PerfectStreak = 0
			d.FreezeExpiry = nil
			d.FreezeUsedToday = false
		}
	}
	if d.FreezeExpiry != nil && !now.Before(*d.FreezeExpiry) {
		d.FreezeExpiry = nil
		changed = true
	}
	return changed
}

// RecordResult is returned by RecordLesson.
type RecordResult struct {
	StreakIncreased bool
	NewStreak       int
	Milestone       *Milestone
}

// RecordLesson counts now as a study day. A second lesson on the same day is a no-op.
func (d *Data) RecordLesson(now time.Time) RecordResult {
	d.Validate(now)
	if d.StudiedOn(now) {
		return RecordResult{NewStreak: d.CurrentStreak}
	}

	d.CurrentStreak++
	d.TotalDaysLearned++
	d.LastLessonDate = now
	if !d.FreezeUsedToday {
		d.PerfectStreak++
	}
	d.FreezeUsedToday = false
	d.LostStreak = 0
	if d.CurrentStreak > d.LongestStreak {
		d.LongestStreak = d.CurrentStreak
	}
	d.markActive(now)

	res := RecordResult{StreakIncreased: true, NewStreak: d.CurrentStreak}
	if m, ok := d.newMilestone(); ok {
		d.Milestones = append(d.Milestones, m.Days)
		res.Milestone = &m
	}
	return res
}

func (d *Data) markActive(now time.Time) {
	key := calendar.DateKey(now)
	if n := len(d.ActiveDays); n > 0 && d.ActiveDays[n-1] == key {
		return
	}
	d.ActiveDays = append(d.ActiveDays, key)
	if over := len(d.ActiveDays) - activeDaysKept; over > 0 {
		d.ActiveDays = append([]string(nil), d.ActiveDays[over:]...)
	}
}

func (d *Data) hasMilestone(days int) bool {
	for _, m := range d.Milestones {
		if m == days {
			return true
		}
	}
	return false
}

func (d *Data) newMilestone() (Milestone, bool) {
	for _, m := range milestones {
		if d.CurrentStreak >= m.Days && !d.hasMilestone(m.Days) {
			return m, true
		}
	}
	return Milestone{}, false
}

// PurchaseResult is the structured outcome of a freeze or repair purchase.
// Cost is what the caller must deduct on success.
type PurchaseResult struct {
	Success bool
	Message string
	Cost    int
}

// PurchaseFreeze buys 24h of protection. Fails without mutation when gems
// are short or a freeze is already active.
func (d *Data) PurchaseFreeze(gems int, now time.Time) PurchaseResult {
	if gems < FreezeCost {
		return PurchaseResult{Message: "Not enough gems for a streak freeze"}
	}
	if d.FreezeActive(now) {
		return PurchaseResult{Message: "A streak freeze is already active"}
	}
	exp := now.Add(FreezeDuration)
	d.FreezeExpiry = &exp
	return PurchaseResult{Success: true, Message: "Streak freeze active for 24 hours", Cost: FreezeCost}
}

// Repair restores a lost streak to previousStreak. Only valid while the
// current streak is 0. Perfect streak always resets.
func (d *Data) Repair(gems, previousStreak int, now time.Time) PurchaseResult {
	if gems < RepairCost {
		return PurchaseResult{Message: "Not enough gems to repair the streak"}
	}
	if d.CurrentStreak != 0 {
		return PurchaseResult{Message: "Streak is not broken"}
	}
	if previousStreak <= 0 {
		return PurchaseResult{Message: "No streak to restore"}
	}
	d.CurrentStreak = previousStreak
	d.PerfectStreak = 0
	d.LastLessonDate = now
	d.LostStreak = 0
	if d.CurrentStreak > d.LongestStreak {
		d.LongestStreak = d.CurrentStreak
	}
	return PurchaseResult{Success: true, Message: "Streak restored", Cost: RepairCost}
}

// MaintainStatus describes whether today's streak is safe.
type MaintainStatus struct {
	CompletedToday bool
	HasFreeze      bool
	HoursLeft      int
}

// Safe is true when today is already covered.
func (m MaintainStatus) Safe() bool {
	return m.CompletedToday || m.HasFreeze
}

// CanMaintainToday reports what protects the streak for the rest of today.
func (d *Data) CanMaintainToday(now time.Time) MaintainStatus {
	return MaintainStatus{
		CompletedToday: d.StudiedOn(now),
		HasFreeze:      d.FreezeActive(now),
		HoursLeft:      calendar.HoursUntilMidnight(now),
	}
}
