package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/store"
)

// Service loads and persists the GameState document.
type Service struct {
	kv     store.KV
	logger *log.Logger
}

// NewService creates a game state service backed by kv.
func NewService(kv store.KV, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{kv: kv, logger: logger}
}

// Load reads the state and applies any due heart refill. Missing or corrupt
// documents yield a fresh state.
func (s *Service) Load(ctx context.Context, now time.Time) *GameState {
	st := &GameState{}
	found, err := s.kv.Get(ctx, store.KeyGameState, st)
	if err != nil {
		s.logger.Warn("game state unreadable, starting fresh", "err", err)
		return NewGameState(now)
	}
	if !found {
		return NewGameState(now)
	}
	st.normalize(now)
	if n := st.RefillIfDue(now); n > 0 {
		s.logger.Debug("hearts refilled", "added", n, "hearts", st.Hearts)
	}
	return st
}

// Save persists st.
func (s *Service) Save(ctx context.Context, st *GameState) error {
	if err := s.kv.Put(ctx, store.KeyGameState, st); err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

// LoseHeart loads, removes one heart and persists.
func (s *Service) LoseHeart(ctx context.Context, now time.Time) (*GameState, error) {
	st := s.Load(ctx, now)
	st.LoseHeart(now)
	return st, s.Save(ctx, st)
}

// GainHearts loads, adds n hearts and persists.
func (s *Service) GainHearts(ctx context.Context, n int, now time.Time) (*GameState, error) {
	st := s.Load(ctx, now)
	st.GainHearts(n)
	return st, s.Save(ctx, st)
}

// PurchaseHearts buys n hearts. Only successful purchases are persisted.
func (s *Service) PurchaseHearts(ctx context.Context, n int, now time.Time) (PurchaseResult, *GameState, error) {
	st := s.Load(ctx, now)
	res := st.PurchaseHearts(n)
	if !res.Success {
		return res, st, nil
	}
	return res, st, s.Save(ctx, st)
}
