package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LessonEvent is one completed lesson in the append-only history.
type LessonEvent struct {
	Sequence        int64
	LessonID        string
	Timestamp       time.Time
	Correct         int
	Total           int
	Accuracy        int
	XP              int
	Gems            int
	Streak          int
	Minutes         int
	FirstTryPerfect bool
	Fallback        bool
}

// HistoryRepo provides append and query access to lesson history.
type HistoryRepo interface {
	// AppendLesson records a completed lesson.
	AppendLesson(ctx context.Context, ev LessonEvent) error

	// QueryLessons returns lessons newest first.
	QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)
}

type historyRepo struct {
	drv *entsql.Driver
}

func (r *historyRepo) AppendLesson(ctx context.Context, ev LessonEvent) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(lessonEventsTable.Name).
		Columns("lesson_id", "ts_unix", "correct", "total", "accuracy",
			"xp", "gems", "streak", "minutes", "first_try_perfect", "fallback").
		Values(ev.LessonID, ts.Unix(), ev.Correct, ev.Total, ev.Accuracy,
			ev.XP, ev.Gems, ev.Streak, ev.Minutes, ev.FirstTryPerfect, ev.Fallback).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *historyRepo) QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	t := entsql.Table(lessonEventsTable.Name)
	sel := entsql.Dialect(dialect.SQLite).
		Select(t.C("id"), t.C("lesson_id"), t.C("ts_unix"), t.C("correct"),
			t.C("total"), t.C("accuracy"), t.C("xp"), t.C("gems"),
			t.C("streak"), t.C("minutes"), t.C("first_try_perfect"), t.C("fallback")).
		From(t).
		OrderBy(entsql.Desc(t.C("id")))

	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("ts_unix"), opts.From.Unix()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("ts_unix"), opts.To.Unix()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var events []LessonEvent
	for rows.Next() {
		var (
			ev     LessonEvent
			tsUnix int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.LessonID, &tsUnix, &ev.Correct,
			&ev.Total, &ev.Accuracy, &ev.XP, &ev.Gems, &ev.Streak, &ev.Minutes,
			&ev.FirstTryPerfect, &ev.Fallback); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		ev.Timestamp = time.Unix(tsUnix, 0)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// MemoryHistory is an in-process HistoryRepo for tests and dry runs.
type MemoryHistory struct {
	Events []LessonEvent
}

func (m *MemoryHistory) AppendLesson(_ context.Context, ev LessonEvent) error {
	ev.Sequence = int64(len(m.Events) + 1)
	m.Events = append(m.Events, ev)
	return nil
}

func (m *MemoryHistory) QueryLessons(_ context.Context, opts QueryOpts) ([]LessonEvent, error) {
	var out []LessonEvent
	for i := len(m.Events) - 1; i >= 0; i-- {
		ev := m.Events[i]
		if !opts.From.IsZero() && ev.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && ev.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, ev)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
