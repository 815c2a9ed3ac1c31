// Package lesson sequences streak, quest, league and reward updates when a
// lesson ends and produces the completion summary.
package lesson

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/gitalearn/internal/coach"
	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/store"
	"github.com/abhisek/gitalearn/internal/streak"
)

// Motivator produces the summary's motivational message.
type Motivator interface {
	Motivate(ctx context.Context, m coach.Moment) (string, error)
}

// Deps are the collaborators of an Orchestrator. History and Motivator are optional.
type Deps struct {
	Game      *game.Service
	Streak    *streak.Service
	Quests    *quests.Service
	League    *league.Service
	History   store.HistoryRepo
	Motivator Motivator
	Logger    *log.Logger
}

// Orchestrator runs the completion pipeline. Completions are serialised
// and a LessonID is credited at most once.
type Orchestrator struct {
	mu   sync.Mutex
	deps Deps
	seen map[string]bool
	log  *log.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(d Deps) *Orchestrator {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return &Orchestrator{deps: d, seen: make(map[string]bool), log: d.Logger}
}

// Complete records a finished lesson. It never fails: any error or panic
// inside the pipeline yields a fallback summary.
func (o *Orchestrator) Complete(ctx context.Context, res Result) (sum *Summary) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if res.At.IsZero() {
		res.At = time.Now()
	}
	if res.LessonID == "" {
		res.LessonID = uuid.NewString()
	}
	res = res.normalized()

	if o.seen[res.LessonID] {
		return duplicateSummary(res)
	}

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("lesson pipeline panicked", "lesson", res.LessonID, "panic", r)
			sum = o.fallback(ctx, res)
		}
	}()

	sum, err := o.run(ctx, res)
	if err != nil {
		o.log.Warn("lesson pipeline failed, using fallback", "lesson", res.LessonID, "err", err)
		return o.fallback(ctx, res)
	}
	o.seen[res.LessonID] = true
	return sum
}

func (o *Orchestrator) load(ctx context.Context, now time.Time) *state {
	return &state{
		game:   o.deps.Game.Load(ctx, now),
		streak: o.deps.Streak.Load(ctx, now),
		board:  o.deps.Quests.Load(ctx, now),
		league: o.deps.League.Load(ctx, now),
	}
}

func (o *Orchestrator) persist(ctx context.Context, st *state) error {
	if err := o.deps.Streak.Save(ctx, st.streak); err != nil {
		return err
	}
	if err := o.deps.Quests.Save(ctx, st.board); err != nil {
		return err
	}
	if err := o.deps.League.Save(ctx, st.league); err != nil {
		return err
	}
	return o.deps.Game.Save(ctx, st.game)
}

func (o *Orchestrator) run(ctx context.Context, res Result) (*Summary, error) {
	st := o.load(ctx, res.At)
	if st.game.LastLessonID == res.LessonID {
		o.seen[res.LessonID] = true
		return duplicateSummary(res), nil
	}

	in := newInput(res)
	s1 := recordStreak(in, st)
	s2 := updateQuests(s1, st)
	s3 := addLeagueXP(s2, st, o.deps.League.Engine())
	s4 := checkAchievements(s3, st)

	if err := o.persist(ctx, st); err != nil {
		return nil, fmt.Errorf("persist lesson %s: %w", res.LessonID, err)
	}

	sum := summarize(s4, st)
	sum.Message = o.message(ctx, sum)
	o.appendHistory(ctx, res, sum)

	o.log.Info("lesson completed",
		"lesson", res.LessonID, "xp", sum.XPGained, "gems", sum.GemsEarned,
		"streak", sum.StreakDays, "rank", sum.LeagueRank)
	return sum, nil
}

func (o *Orchestrator) message(ctx context.Context, sum *Summary) (msg string) {
	fallback := staticMessage(sum.Accuracy, sum.StreakIncreased, sum.StreakDays)
	if o.deps.Motivator == nil {
		return fallback
	}
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("motivator panicked", "panic", r)
			msg = fallback
		}
	}()

	m := coach.Moment{
		Correct:         sum.Correct,
		Total:           sum.Total,
		Accuracy:        sum.Accuracy,
		XP:              sum.XPGained,
		Streak:          sum.StreakDays,
		StreakIncreased: sum.StreakIncreased,
		League:          sum.League.Name(),
		Rank:            sum.LeagueRank,
	}
	if sum.Milestone != nil {
		m.Milestone = sum.Milestone.Title
	}
	for _, a := range sum.NewAchievements {
		m.Achievements = append(m.Achievements, a.Title)
	}

	msg, err := o.deps.Motivator.Motivate(ctx, m)
	if err != nil || msg == "" {
		o.log.Warn("coach unavailable, using static message", "err", err)
		return fallback
	}
	return msg
}

func (o *Orchestrator) appendHistory(ctx context.Context, res Result, sum *Summary) {
	if o.deps.History == nil {
		return
	}
	ev := store.LessonEvent{
		LessonID:        res.LessonID,
		Timestamp:       res.At,
		Correct:         res.Correct,
		Total:           res.Total,
		Accuracy:        sum.Accuracy,
		XP:              sum.XPGained,
		Gems:            sum.GemsEarned,
		Streak:          sum.StreakDays,
		Minutes:         res.Minutes,
		FirstTryPerfect: res.FirstTryPerfect,
		Fallback:        sum.Fallback,
	}
	if err := o.deps.History.AppendLesson(ctx, ev); err != nil {
		o.log.Warn("append lesson history", "err", err)
	}
}

// fallback credits the floor rewards on a best-effort basis and returns a
// minimal summary.
func (o *Orchestrator) fallback(ctx context.Context, res Result) *Summary {
	acc := game.Accuracy(res.Correct, res.Total)
	sum := &Summary{
		LessonID:     res.LessonID,
		XPGained:     FallbackXP,
		GemsEarned:   FallbackGems,
		Accuracy:     acc,
		Correct:      res.Correct,
		Total:        res.Total,
		MasteryStars: game.MasteryStars(acc),
		Message:      staticMessage(acc, false, 0),
		Fallback:     true,
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				o.log.Error("fallback credit panicked", "panic", r)
			}
		}()
		gs := o.deps.Game.Load(ctx, res.At)
		sum.StreakDays = gs.Streak
		gs.AddXP(FallbackXP)
		gs.AddGems(FallbackGems)
		gs.LastLessonID = res.LessonID
		if err := o.deps.Game.Save(ctx, gs); err != nil {
			o.log.Warn("fallback credit not saved", "err", err)
			return
		}
		o.seen[res.LessonID] = true
		o.appendHistory(ctx, res, sum)
	}()
	return sum
}

func duplicateSummary(res Result) *Summary {
	acc := game.Accuracy(res.Correct, res.Total)
	return &Summary{
		LessonID:     res.LessonID,
		Accuracy:     acc,
		Correct:      res.Correct,
		Total:        res.Total,
		MasteryStars: game.MasteryStars(acc),
		Message:      "This lesson was already recorded.",
		Duplicate:    true,
	}
}
