package app

import (
	"context"

	"github.com/abhisek/gitalearn/internal/report"
	"github.com/abhisek/gitalearn/internal/store"
)

// Snapshot gathers everything the progress report shows. historyLimit
// caps the number of lessons, 0 meaning all.
func (a *App) Snapshot(ctx context.Context, historyLimit int) (report.Snapshot, error) {
	now := a.Now()
	st := a.Streak.Stats(ctx, now)
	s := report.Snapshot{
		GeneratedAt: now,
		Game:        a.Game.Load(ctx, now),
		Streak:      &st,
		Board:       a.Quests.Load(ctx, now),
		League:      a.League.Load(ctx, now),
		Reviews:     a.Reviews.Load(ctx),
	}

	board, err := a.League.Leaderboard(ctx, now)
	if err != nil {
		a.Logger.Warn("leaderboard not cached", "err", err)
	}
	s.Leaderboard = board

	if a.History != nil {
		events, err := a.History.QueryLessons(ctx, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return s, err
		}
		s.History = events
	}
	return s, nil
}
