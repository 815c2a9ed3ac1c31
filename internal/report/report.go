// Package report exports a learner's progress to an Excel workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/spacedrep"
	"github.com/abhisek/gitalearn/internal/store"
	"github.com/abhisek/gitalearn/internal/streak"
)

// Sheet names, in workbook order.
const (
	SheetProgress = "Progress"
	SheetQuests   = "Quests"
	SheetLeague   = "League"
	SheetHistory  = "History"
	SheetReviews  = "Reviews"
)

const stamp = "2006-01-02 15:04"

// Snapshot is everything a report shows. Nil parts produce header-only sheets.
type Snapshot struct {
	GeneratedAt time.Time
	Game        *game.GameState
	Streak      *streak.Stats
	Board       *quests.Board
	League      *league.Data
	Leaderboard []league.Entry
	History     []store.LessonEvent
	Reviews     []spacedrep.ItemProgress
}

// Build lays out the workbook. The caller closes the returned file.
func Build(s Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetProgress); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetQuests, SheetLeague, SheetHistory, SheetReviews} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F4D58D"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	w := &writer{f: f, header: header}
	w.progress(s)
	w.quests(s.Board)
	w.league(s.League, s.Leaderboard)
	w.history(s.History)
	w.reviews(s.Reviews, s.GeneratedAt)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// Write builds the workbook and streams it to out.
func Write(out io.Writer, s Snapshot) error {
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path string, s Snapshot) error {
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writer keeps the first error so sheet builders stay linear.
type writer struct {
	f      *excelize.File
	header int
	err    error
}

func (w *writer) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
}

func (w *writer) head(sheet string, values ...any) {
	w.row(sheet, 1, values...)
	if w.err != nil {
		return
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		w.err = err
		return
	}
	last, _ := excelize.ColumnNumberToName(len(values))
	if err := w.f.SetColWidth(sheet, "A", last, 16); err != nil {
		w.err = err
	}
}

func (w *writer) progress(s Snapshot) {
	w.head(SheetProgress, "Metric", "Value")
	rows := [][]any{{"Generated", s.GeneratedAt.Format(stamp)}}
	if g := s.Game; g != nil {
		rows = append(rows,
			[]any{"XP", g.XP},
			[]any{"Gems", g.Gems},
			[]any{"Hearts", fmt.Sprintf("%d/%d", g.Hearts, g.MaxHearts)},
			[]any{"Lessons completed", g.LessonsCompleted},
			[]any{"Achievements", len(g.Achievements)},
		)
	}
	if st := s.Streak; st != nil {
		rows = append(rows,
			[]any{"Current streak", st.Current},
			[]any{"Longest streak", st.Longest},
			[]any{"Perfect streak", st.Perfect},
			[]any{"Days learned", st.TotalDays},
			[]any{"This week", fmt.Sprintf("%d/%d", st.WeekDays, st.WeeklyGoal)},
			[]any{"This month", fmt.Sprintf("%d/%d", st.MonthDays, st.MonthlyGoal)},
		)
	}
	for i, r := range rows {
		w.row(SheetProgress, i+2, r...)
	}
}

func (w *writer) quests(b *quests.Board) {
	w.head(SheetQuests, "Frequency", "Title", "Progress", "Target", "XP", "Gems", "Status", "Expires")
	if b == nil {
		return
	}
	n := 2
	for _, set := range []quests.Set{b.Daily, b.Weekly} {
		for _, q := range set.Quests {
			w.row(SheetQuests, n, string(q.Frequency), q.Title, q.Progress, q.Target, q.XPReward, q.GemReward, string(q.Status), q.ExpiresAt.Format(stamp))
			n++
		}
	}
}

func (w *writer) league(d *league.Data, board []league.Entry) {
	w.head(SheetLeague, "Rank", "Name", "Weekly XP", "You")
	if d != nil {
		w.row(SheetLeague, 2, "League", d.League.Name(), d.WeeklyXP, fmt.Sprintf("%d/%d", d.Rank, d.TotalParticipants))
	}
	for i, e := range board {
		you := ""
		if e.IsUser {
			you = "*"
		}
		w.row(SheetLeague, i+3, e.Rank, e.Name, e.XP, you)
	}
}

func (w *writer) history(events []store.LessonEvent) {
	w.head(SheetHistory, "When", "Lesson", "Correct", "Total", "Accuracy", "XP", "Gems", "Streak", "Minutes")
	for i, e := range events {
		w.row(SheetHistory, i+2, e.Timestamp.Format(stamp), e.LessonID, e.Correct, e.Total, e.Accuracy, e.XP, e.Gems, e.Streak, e.Minutes)
	}
}

func (w *writer) reviews(items []spacedrep.ItemProgress, now time.Time) {
	w.head(SheetReviews, "Verse", "Difficulty", "Reviews", "Interval", "Ease", "Next review", "Status")
	for i, it := range items {
		w.row(SheetReviews, i+2, it.Key().String(), string(it.Difficulty), it.ReviewCount, it.Interval, it.EaseFactor, it.NextReview.Format(stamp), string(it.Status(now)))
	}
}
