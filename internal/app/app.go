// Package app wires configuration, storage and the learning services into
// one handle the commands share.
package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/gitalearn/internal/coach"
	"github.com/abhisek/gitalearn/internal/config"
	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/lesson"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/reminder"
	"github.com/abhisek/gitalearn/internal/spacedrep"
	"github.com/abhisek/gitalearn/internal/store"
	"github.com/abhisek/gitalearn/internal/streak"
)

// App holds every service for one learner.
type App struct {
	Config  config.Config
	Loc     *time.Location
	Logger  *log.Logger
	KV      store.KV
	History store.HistoryRepo

	Game    *game.Service
	Streak  *streak.Service
	Quests  *quests.Service
	League  *league.Service
	Reviews *spacedrep.Scheduler
	Lessons *lesson.Orchestrator
	Coach   *coach.Coach

	clock  func() time.Time
	closer io.Closer
}

// Options are the inputs to New. KV is required.
type Options struct {
	Config  config.Config
	KV      store.KV
	History store.HistoryRepo
	Clock   func() time.Time
	// Rand drives quest selection. Nil seeds from the clock.
	Rand *rand.Rand
	// Coach overrides the provider named in Config.
	Coach  coach.Provider
	Logger *log.Logger
}

// New builds the services over an existing store.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.KV == nil {
		return nil, fmt.Errorf("app: nil KV")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	loc, err := opts.Config.Location()
	if err != nil {
		return nil, err
	}

	lg := opts.Logger
	a := &App{
		Config:  opts.Config,
		Loc:     loc,
		Logger:  lg,
		KV:      opts.KV,
		History: opts.History,
		Game:    game.NewService(opts.KV, lg.WithPrefix("game")),
		Streak:  streak.NewService(opts.KV, lg.WithPrefix("streak")),
		Quests:  quests.NewService(opts.KV, quests.NewGenerator(opts.Rand), lg.WithPrefix("quests")),
		League:  league.NewService(opts.KV, nil, lg.WithPrefix("league")),
		Reviews: spacedrep.NewScheduler(opts.KV, lg.WithPrefix("review")),
		clock:   opts.Clock,
	}
	a.League.SetUserName(opts.Config.UserName)

	if opts.Coach != nil {
		a.Coach = coach.NewWithProvider(opts.Coach, opts.Config.CoachSettings().Timeout, lg.WithPrefix("coach"))
	} else {
		c, err := coach.New(ctx, opts.Config.CoachSettings(), lg.WithPrefix("coach"))
		if err != nil {
			// The coach is optional; lessons fall back to static messages.
			lg.Warn("coach disabled", "err", err)
		}
		a.Coach = c
	}

	deps := lesson.Deps{
		Game:    a.Game,
		Streak:  a.Streak,
		Quests:  a.Quests,
		League:  a.League,
		History: a.History,
		Logger:  lg.WithPrefix("lesson"),
	}
	if a.Coach != nil {
		deps.Motivator = a.Coach
	}
	a.Lessons = lesson.NewOrchestrator(deps)
	return a, nil
}

// Open resolves the database path from cfg, opens SQLite and builds the app.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a, err := New(ctx, Options{Config: cfg, KV: st.KV(), History: st.History(), Logger: logger})
	if err != nil {
		st.Close()
		return nil, err
	}
	a.closer = st
	if logger != nil {
		logger.Debug("store opened", "path", path)
	}
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Now is the current time in the configured zone. Day boundaries follow it.
func (a *App) Now() time.Time {
	return a.clock().In(a.Loc)
}

// CompleteLesson stamps res with the current time when unset and runs the
// completion pipeline.
func (a *App) CompleteLesson(ctx context.Context, res lesson.Result) *lesson.Summary {
	if res.At.IsZero() {
		res.At = a.Now()
	}
	return a.Lessons.Complete(ctx, res)
}

// Reset deletes every saved document. Lesson history is kept.
func (a *App) Reset(ctx context.Context) (int, error) {
	keys, err := a.KV.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	for i, k := range keys {
		if err := a.KV.Delete(ctx, k); err != nil {
			return i, err
		}
	}
	a.Logger.Info("learner data reset", "documents", len(keys))
	return len(keys), nil
}

// Watcher builds a reminder watcher over this app's services.
func (a *App) Watcher(n reminder.Notifier) *reminder.Watcher {
	return reminder.NewWatcher(reminder.Sources{
		Game:    a.Game,
		Streak:  a.Streak,
		Quests:  a.Quests,
		Reviews: a.Reviews,
	}, n, reminder.Options{
		WarnHours: a.Config.Reminder.WarnHours,
		Interval:  a.Config.ReminderInterval(),
		Clock:     a.Now,
		Logger:    a.Logger.WithPrefix("reminder"),
	})
}
