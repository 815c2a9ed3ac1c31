// Package reminder periodically inspects learner state and emits nudges
// when a streak is at risk, hearts are gone, rewards wait or reviews are due.
package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron"

	"github.com/abhisek/gitalearn/internal/calendar"
	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/spacedrep"
	"github.com/abhisek/gitalearn/internal/streak"
)

// Kind identifies a notice category. One notice per kind is sent per day.
type Kind string

const (
	KindStreakAtRisk   Kind = "streak_at_risk"
	KindOutOfHearts    Kind = "out_of_hearts"
	KindRewardsReady   Kind = "rewards_ready"
	KindQuestsExpiring Kind = "quests_expiring"
	KindReviewsDue     Kind = "reviews_due"
)

// Notice is a single nudge.
type Notice struct {
	Kind    Kind
	Message string
	At      time.Time
}

// Notifier delivers notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Sources are the services a Watcher reads from. Nil sources are skipped.
type Sources struct {
	Game    *game.Service
	Streak  *streak.Service
	Quests  *quests.Service
	Reviews *spacedrep.Scheduler
}

// Watcher runs Check on a schedule and forwards new notices.
type Watcher struct {
	src      Sources
	notifier Notifier
	warn     int
	interval time.Duration
	clock    func() time.Time
	logger   *log.Logger

	mu    sync.Mutex
	sent  map[string]bool
	sched *gocron.Scheduler
}

// Options tunes a Watcher.
type Options struct {
	// WarnHours is how close to midnight a streak or quest counts as at risk.
	WarnHours int
	Interval  time.Duration
	Clock     func() time.Time
	Logger    *log.Logger
}

// NewWatcher creates a watcher that is not yet running.
func NewWatcher(src Sources, notifier Notifier, opts Options) *Watcher {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.WarnHours <= 0 {
		opts.WarnHours = 4
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Minute
	}
	return &Watcher{
		src:      src,
		notifier: notifier,
		warn:     opts.WarnHours,
		interval: opts.Interval,
		clock:    opts.Clock,
		logger:   opts.Logger,
		sent:     make(map[string]bool),
	}
}

// Check returns every notice that applies at now, ignoring what was sent.
func (w *Watcher) Check(ctx context.Context, now time.Time) []Notice {
	var out []Notice
	add := func(k Kind, format string, args ...any) {
		out = append(out, Notice{Kind: k, Message: fmt.Sprintf(format, args...), At: now})
	}

	if w.src.Streak != nil {
		d := w.src.Streak.Load(ctx, now)
		st := d.CanMaintainToday(now)
		if d.CurrentStreak > 0 && !st.Safe() && st.HoursLeft < w.warn {
			add(KindStreakAtRisk, "Your %d-day streak ends in %d hours. One lesson keeps it alive.", d.CurrentStreak, st.HoursLeft)
		}
	}

	if w.src.Game != nil {
		gs := w.src.Game.Load(ctx, now)
		if gs.Hearts == 0 {
			add(KindOutOfHearts, "Out of hearts. The next one refills in %d minutes.", gs.MinutesUntilNextHeart(now))
		}
	}

	if w.src.Quests != nil {
		b := w.src.Quests.Load(ctx, now)
		if r := b.Pending(); !r.Empty() {
			add(KindRewardsReady, "Quest rewards are waiting: %d XP and %d gems.", r.XP, r.Gems)
		}
		if n := w.expiring(b.Daily.Quests, now); n > 0 {
			add(KindQuestsExpiring, "%d daily quests expire in under %d hours.", n, w.warn)
		}
	}

	if w.src.Reviews != nil {
		if due := w.src.Reviews.Due(ctx, now); len(due) > 0 {
			add(KindReviewsDue, "%d verses are due for review.", len(due))
		}
	}
	return out
}

func (w *Watcher) expiring(qs []quests.Quest, now time.Time) int {
	n := 0
	limit := time.Duration(w.warn) * time.Hour
	for i := range qs {
		q := &qs[i]
		if q.Completed() || q.Expired(now) {
			continue
		}
		if q.ExpiresAt.Sub(now) < limit {
			n++
		}
	}
	return n
}

// Tick runs one check and delivers the notices not yet sent today.
// It returns what was delivered.
func (w *Watcher) Tick(ctx context.Context) []Notice {
	now := w.clock()
	var delivered []Notice
	for _, n := range w.Check(ctx, now) {
		key := string(n.Kind) + "|" + calendar.DateKey(now)

		w.mu.Lock()
		seen := w.sent[key]
		w.mu.Unlock()
		if seen {
			continue
		}

		if err := w.notifier.Notify(ctx, n); err != nil {
			w.logger.Warn("reminder delivery failed", "kind", n.Kind, "err", err)
			continue
		}
		w.mu.Lock()
		w.sent[key] = true
		w.mu.Unlock()
		delivered = append(delivered, n)
	}
	return delivered
}

// Start schedules Tick every interval, beginning immediately.
func (w *Watcher) Start(ctx context.Context, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	if _, err := s.Every(w.interval).Do(func() { w.Tick(ctx) }); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.StartAsync()

	w.mu.Lock()
	w.sched = s
	w.mu.Unlock()
	w.logger.Info("reminders started", "interval", w.interval)
	return nil
}

// Stop halts the schedule. It is safe to call before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sched != nil {
		w.sched.Stop()
		w.sched = nil
	}
}

// WriterNotifier prints notices as lines to W.
type WriterNotifier struct {
	W      io.Writer
	Format func(Notice) string
}

func (n WriterNotifier) Notify(_ context.Context, no Notice) error {
	line := no.Message
	if n.Format != nil {
		line = n.Format(no)
	}
	_, err := fmt.Fprintln(n.W, line)
	return err
}
