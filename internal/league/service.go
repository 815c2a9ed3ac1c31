package league

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/store"
)

// DefaultUserName labels the user on leaderboards.
const DefaultUserName = "You"

// Service loads and persists league_data and leaderboard_data.
type Service struct {
	kv       store.KV
	engine   *Engine
	userName string
	logger   *log.Logger
}

// NewService creates a league service.
func NewService(kv store.KV, engine *Engine, logger *log.Logger) *Service {
	if engine == nil {
		engine = NewEngine(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{kv: kv, engine: engine, userName: DefaultUserName, logger: logger}
}

// SetUserName changes the label shown for the user. Blank keeps the default.
func (s *Service) SetUserName(name string) {
	if name != "" {
		s.userName = name
	}
}

// Engine returns the rule engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Load returns league data for now, rolling an ended week over and
// persisting the result.
func (s *Service) Load(ctx context.Context, now time.Time) *Data {
	d := &Data{}
	found, err := s.kv.Get(ctx, store.KeyLeague, d)
	if err != nil {
		s.logger.Warn("league data unreadable, starting fresh", "err", err)
		return s.engine.NewData(now)
	}
	if !found {
		return s.engine.NewData(now)
	}
	s.engine.Normalize(d, now)
	if mv, rolled := s.engine.Rollover(d, now); rolled {
		s.logMovement(mv)
		if err := s.Save(ctx, d); err != nil {
			s.logger.Warn("persist league rollover", "err", err)
		}
	}
	return d
}

func (s *Service) logMovement(mv Movement) {
	switch {
	case mv.Promoted:
		s.logger.Info("promoted", "from", mv.From, "to", mv.To)
	case mv.Relegated:
		s.logger.Info("relegated", "from", mv.From, "to", mv.To)
	default:
		s.logger.Debug("new league week", "league", mv.To)
	}
}

// Save persists d.
func (s *Service) Save(ctx context.Context, d *Data) error {
	if err := s.kv.Put(ctx, store.KeyLeague, d); err != nil {
		return fmt.Errorf("save league: %w", err)
	}
	return nil
}

// AddWeeklyXP loads, adds amount and persists.
func (s *Service) AddWeeklyXP(ctx context.Context, amount int, now time.Time) (XPResult, error) {
	d := s.Load(ctx, now)
	res := s.engine.AddWeeklyXP(d, amount, now)
	return res, s.Save(ctx, d)
}

// Leaderboard computes the board for now and persists it.
func (s *Service) Leaderboard(ctx context.Context, now time.Time) ([]Entry, error) {
	d := s.Load(ctx, now)
	board := s.engine.Leaderboard(d, s.userName, now)
	if err := s.kv.Put(ctx, store.KeyLeaderboard, board); err != nil {
		return board, fmt.Errorf("save leaderboard: %w", err)
	}
	return board, nil
}

// CachedLeaderboard returns the last persisted board, if any.
func (s *Service) CachedLeaderboard(ctx context.Context) []Entry {
	var board []Entry
	if _, err := s.kv.Get(ctx, store.KeyLeaderboard, &board); err != nil {
		s.logger.Warn("leaderboard unreadable", "err", err)
		return nil
	}
	return board
}
