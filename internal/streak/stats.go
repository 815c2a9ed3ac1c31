package streak

import (
	"time"

	"github.com/abhisek/gitalearn/internal/calendar"
)

// Stats is the display view of a streak.
type Stats struct {
	Current      int
	Longest      int
	Perfect      int
	TotalDays    int
	FreezeActive bool
	FreezeExpiry *time.Time
	LostStreak   int
	Milestones   []int
	Next         *Milestone
	DaysToNext   int
	WeekDays     int
	WeeklyGoal   int
	MonthDays    int
	MonthlyGoal  int
	Maintain     MaintainStatus
}

// Stats summarises d at now. Call Validate first for an up-to-date view.
func (d *Data) Stats(now time.Time) Stats {
	s := Stats{
		Current:      d.CurrentStreak,
		Longest:      d.LongestStreak,
		Perfect:      d.PerfectStreak,
		TotalDays:    d.TotalDaysLearned,
		FreezeActive: d.FreezeActive(now),
		FreezeExpiry: d.FreezeExpiry,
		LostStreak:   d.LostStreak,
		Milestones:   append([]int(nil), d.Milestones...),
		WeeklyGoal:   d.WeeklyGoal,
		MonthlyGoal:  d.MonthlyGoal,
		Maintain:     d.CanMaintainToday(now),
	}
	if m, ok := NextMilestone(d.CurrentStreak); ok {
		s.Next = &m
		s.DaysToNext = m.Days - d.CurrentStreak
	}

	weekStart := calendar.DateKey(calendar.WeekStart(now))
	today := calendar.DateKey(now)
	monthPrefix := now.Format("2006-01")
	for _, day := range d.ActiveDays {
		if day > today {
			continue
		}
		if day >= weekStart {
			s.WeekDays++
		}
		if len(day) >= 7 && day[:7] == monthPrefix {
			s.MonthDays++
		}
	}
	return s
}
