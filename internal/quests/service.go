package quests

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/store"
)

// Service loads, rotates and persists the quest board.
type Service struct {
	kv     store.KV
	gen    *Generator
	logger *log.Logger
}

// NewService creates a quest service. A nil generator draws from a
// clock-seeded source.
func NewService(kv store.KV, gen *Generator, logger *log.Logger) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{kv: kv, gen: gen, logger: logger}
}

func (s *Service) loadSet(ctx context.Context, key string) Set {
	var set Set
	if _, err := s.kv.Get(ctx, key, &set); err != nil {
		s.logger.Warn("quest set unreadable, regenerating", "key", key, "err", err)
		return Set{}
	}
	return set
}

// Load returns the board for now, regenerating stale sets. Regenerated sets
// are persisted immediately.
func (s *Service) Load(ctx context.Context, now time.Time) *Board {
	b := &Board{
		Daily:  s.loadSet(ctx, store.KeyDailyQuests),
		Weekly: s.loadSet(ctx, store.KeyWeeklyQuests),
	}
	daily, weekly := s.gen.Refresh(b, now)
	if daily || weekly {
		s.logger.Debug("quest sets rotated", "daily", daily, "weekly", weekly)
		if err := s.Save(ctx, b); err != nil {
			s.logger.Warn("persist rotated quests", "err", err)
		}
	}
	return b
}

// Save persists both sets.
func (s *Service) Save(ctx context.Context, b *Board) error {
	if err := s.kv.Put(ctx, store.KeyDailyQuests, b.Daily); err != nil {
		return fmt.Errorf("save daily quests: %w", err)
	}
	if err := s.kv.Put(ctx, store.KeyWeeklyQuests, b.Weekly); err != nil {
		return fmt.Errorf("save weekly quests: %w", err)
	}
	return nil
}

// UpdateProgress loads the board, applies the increment and persists.
func (s *Service) UpdateProgress(ctx context.Context, t QuestType, amount int, now time.Time) (Update, error) {
	b := s.Load(ctx, now)
	u := b.UpdateProgress(t, amount, now)
	for _, q := range u.Completed {
		s.logger.Info("quest completed", "quest", q.Title, "frequency", q.Frequency)
	}
	return u, s.Save(ctx, b)
}

// ClaimRewards claims everything claimable and persists the claim markers.
func (s *Service) ClaimRewards(ctx context.Context, now time.Time) (Reward, error) {
	b := s.Load(ctx, now)
	r := b.ClaimRewards(now)
	if r.Empty() {
		return r, nil
	}
	return r, s.Save(ctx, b)
}
