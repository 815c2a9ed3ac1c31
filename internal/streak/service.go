package streak

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/store"
)

// Service loads, validates and persists the streak document.
type Service struct {
	kv     store.KV
	logger *log.Logger
}

// NewService creates a streak service backed by kv.
func NewService(kv store.KV, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{kv: kv, logger: logger}
}

// Load reads the streak and applies day rollover at now. Rollover changes
// are persisted immediately.
func (s *Service) Load(ctx context.Context, now time.Time) *Data {
	d := NewData()
	found, err := s.kv.Get(ctx, store.KeyStreak, d)
	if err != nil {
		s.logger.Warn("streak data unreadable, starting fresh", "err", err)
		return NewData()
	}
	if !found {
		return d
	}
	if d.WeeklyGoal <= 0 {
		d.WeeklyGoal = DefaultWeeklyGoal
	}
	if d.MonthlyGoal <= 0 {
		d.MonthlyGoal = DefaultMonthlyGoal
	}

	prev := d.CurrentStreak
	if d.Validate(now) {
		if prev > 0 && d.CurrentStreak == 0 {
			s.logger.Info("streak lost", "was", prev)
		}
		if err := s.Save(ctx, d); err != nil {
			s.logger.Warn("persist streak rollover", "err", err)
		}
	}
	return d
}

// Save persists d.
func (s *Service) Save(ctx context.Context, d *Data) error {
	if err := s.kv.Put(ctx, store.KeyStreak, d); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// RecordLesson loads, records a study day at now and persists.
func (s *Service) RecordLesson(ctx context.Context, now time.Time) (RecordResult, error) {
	d := s.Load(ctx, now)
	res := d.RecordLesson(now)
	if !res.StreakIncreased {
		return res, nil
	}
	if res.Milestone != nil {
		s.logger.Info("streak milestone", "days", res.Milestone.Days, "title", res.Milestone.Title)
	}
	return res, s.Save(ctx, d)
}

// Stats returns the current display view.
func (s *Service) Stats(ctx context.Context, now time.Time) Stats {
	return s.Load(ctx, now).Stats(now)
}
