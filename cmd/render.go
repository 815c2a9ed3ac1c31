package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/lesson"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/spacedrep"
	"github.com/abhisek/gitalearn/internal/streak"
	"github.com/abhisek/gitalearn/internal/ui/components"
	"github.com/abhisek/gitalearn/internal/ui/layout"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

const labelWidth = 18

func renderHeader(title string, gs *game.GameState, streakDays, width int) string {
	return layout.RenderHeader(layout.Status{
		Title:     title,
		Hearts:    gs.Hearts,
		MaxHearts: gs.MaxHearts,
		Gems:      gs.Gems,
		Streak:    streakDays,
		XP:        gs.XP,
	}, width)
}

func renderSummary(s *lesson.Summary, width int) string {
	if s.Duplicate {
		return theme.Hint.Render(fmt.Sprintf("Lesson %s was already recorded. Nothing new was credited.", s.LessonID))
	}

	lines := []string{
		components.Row("Score", fmt.Sprintf("%d/%d (%d%%)", s.Correct, s.Total, s.Accuracy), labelWidth),
		components.Row("Mastery", components.Stars(s.MasteryStars), labelWidth),
		components.Row("XP", theme.XP.Render(fmt.Sprintf("+%d", s.XPGained)), labelWidth),
		components.Row("Gems", theme.Gem.Render(fmt.Sprintf("+%d", s.GemsEarned)), labelWidth),
	}
	streakLine := fmt.Sprintf("%d days", s.StreakDays)
	if s.StreakIncreased {
		streakLine += theme.Good.Render("  +1")
	}
	lines = append(lines, components.Row("Streak", streakLine, labelWidth))
	if s.League != "" {
		lines = append(lines, components.Row("League", fmt.Sprintf("%s  #%d of %d", s.League.Name(), s.LeagueRank, s.LeagueTotal), labelWidth))
	}
	if s.Fallback {
		lines = append(lines, theme.Warn.Render("Progress could not be fully saved. Base rewards were kept."))
	}

	var extras []string
	if m := s.Milestone; m != nil {
		extras = append(extras, theme.Highlight.Render(fmt.Sprintf("Milestone: %s (%d days)  +%d XP  +%d gems", m.Title, m.Days, m.XP, m.Gems)))
	}
	for _, a := range s.NewAchievements {
		extras = append(extras, theme.Highlight.Render("Achievement unlocked: "+a.Title))
	}
	for _, q := range s.QuestsCompleted {
		extras = append(extras, theme.Good.Render(fmt.Sprintf("Quest complete: %s", q.Title)))
	}
	if s.QuestBonusXP > 0 {
		extras = append(extras, theme.Good.Render(fmt.Sprintf("All quests done: +%d bonus XP to claim", s.QuestBonusXP)))
	}
	if a, ok := game.AchievementByID(s.NextUnlock); ok {
		extras = append(extras, theme.Hint.Render("Next up: "+a.Title+" ("+a.Description+")"))
	}

	blocks := []string{components.Card("Lesson complete", lines, width)}
	if len(extras) > 0 {
		blocks = append(blocks, strings.Join(extras, "\n"))
	}
	if s.Message != "" {
		blocks = append(blocks, theme.Title.Render(s.Message))
	}
	return layout.Join(blocks...)
}

func renderStreak(st streak.Stats, width int) string {
	lines := []string{
		components.Row("Current", fmt.Sprintf("%d days", st.Current), labelWidth),
		components.Row("Longest", fmt.Sprintf("%d days", st.Longest), labelWidth),
		components.Row("Perfect", fmt.Sprintf("%d days", st.Perfect), labelWidth),
		components.Row("Days learned", fmt.Sprint(st.TotalDays), labelWidth),
		components.NewProgressBar("This week ", st.WeekDays, st.WeeklyGoal, 20).View(),
		components.NewProgressBar("This month", st.MonthDays, st.MonthlyGoal, 20).View(),
	}
	if st.Next != nil {
		lines = append(lines, components.Row("Next milestone", fmt.Sprintf("%s in %d days", st.Next.Title, st.DaysToNext), labelWidth))
	}

	var status string
	switch {
	case st.Maintain.CompletedToday:
		status = theme.Good.Render("Today is done.")
	case st.Maintain.HasFreeze:
		status = theme.Good.Render("A streak freeze protects today.")
	case st.Current > 0:
		status = theme.Warn.Render(fmt.Sprintf("%d hours left to keep your streak.", st.Maintain.HoursLeft))
	}
	if st.FreezeActive && st.FreezeExpiry != nil {
		lines = append(lines, components.Row("Freeze until", st.FreezeExpiry.Format("Mon 15:04"), labelWidth))
	}
	if st.Current == 0 && st.LostStreak > 0 {
		status = theme.Bad.Render(fmt.Sprintf("Lost a %d-day streak. Repair it for %d gems with `gitalearn streak repair`.", st.LostStreak, streak.RepairCost))
	}
	return layout.Join(components.Card("Streak", lines, width), status)
}

func renderQuestSet(title string, set quests.Set, now time.Time, width int) string {
	if len(set.Quests) == 0 {
		return ""
	}
	lines := make([]string, 0, len(set.Quests)+1)
	for _, q := range set.Quests {
		mark := " "
		switch {
		case q.ClaimedAt != nil:
			mark = theme.Label.Render("✓")
		case q.Completed():
			mark = theme.Good.Render("✓")
		case q.Expired(now):
			mark = theme.Bad.Render("✗")
		}
		lines = append(lines,
			fmt.Sprintf("%s %s %s", mark, q.Icon, theme.Value.Render(q.Title)),
			"    "+components.NewProgressBar("", q.Progress, q.Target, 16).View()+
				theme.Hint.Render(fmt.Sprintf("   %d XP  %d gems", q.XPReward, q.GemReward)),
		)
	}
	if set.AllCompleted {
		lines = append(lines, theme.Good.Render("Set complete"))
	}
	return components.Card(title, lines, width)
}

func renderQuests(b *quests.Board, now time.Time, width int) string {
	pending := b.Pending()
	footer := ""
	if !pending.Empty() {
		footer = theme.Highlight.Render(fmt.Sprintf("%d XP and %d gems ready. Run `gitalearn quests claim`.", pending.XP, pending.Gems))
	}
	return layout.Join(
		renderQuestSet("Daily quests", b.Daily, now, width),
		renderQuestSet("Weekly quests", b.Weekly, now, width),
		footer,
	)
}

func renderLeague(d *league.Data, now time.Time, width int) string {
	zone := d.Zone()
	var zoneLine string
	switch zone {
	case "promotion":
		zoneLine = theme.Good.Render("In the promotion zone")
	case "relegation":
		zoneLine = theme.Bad.Render("In the relegation zone")
	default:
		zoneLine = theme.Label.Render("Safe")
	}
	lines := []string{
		components.Row("League", d.League.Name(), labelWidth),
		components.Row("Rank", fmt.Sprintf("#%d of %d", d.Rank, d.TotalParticipants), labelWidth),
		components.Row("Weekly XP", fmt.Sprint(d.WeeklyXP), labelWidth),
		components.Row("Days left", fmt.Sprint(d.DaysLeft(now)), labelWidth),
		zoneLine,
	}
	if d.PreviousLeague != "" {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("Last week: %s, #%d with %d XP", d.PreviousLeague.Name(), d.PreviousRank, d.PreviousXP)))
	}
	return components.Card("League", lines, width)
}

func renderBoard(board []league.Entry, width int) string {
	lines := make([]string, 0, len(board))
	for _, e := range board {
		line := fmt.Sprintf("%3d  %-14s %6d XP", e.Rank, e.Name, e.XP)
		if e.IsUser {
			line = theme.Highlight.Render(line)
		}
		lines = append(lines, line)
	}
	return components.Card("Leaderboard", lines, width)
}

func renderHearts(gs *game.GameState, now time.Time) string {
	line := components.Hearts(gs.Hearts, gs.MaxHearts)
	if gs.Hearts < gs.MaxHearts {
		line += theme.Hint.Render(fmt.Sprintf("  next heart in %d min", gs.MinutesUntilNextHeart(now)))
	}
	return line
}

func renderReview(p spacedrep.ItemProgress, now time.Time) string {
	due := "due now"
	if !p.IsDue(now) {
		due = fmt.Sprintf("in %d days", p.DaysUntilReview(now))
	}
	return fmt.Sprintf("%-7s %-6s reviews %-3d interval %-4d ease %.2f  next %s (%s)",
		p.Key().String(), p.Difficulty, p.ReviewCount, p.Interval, p.EaseFactor,
		p.NextReview.Format("2006-01-02"), due)
}

func renderAchievements(gs *game.GameState, width int) string {
	lines := make([]string, 0, len(game.AllAchievements()))
	for _, a := range game.AllAchievements() {
		if gs.HasAchievement(a.ID) {
			lines = append(lines, theme.Good.Render("★ ")+theme.Value.Render(a.Title)+theme.Hint.Render("  "+a.Description))
		} else {
			lines = append(lines, theme.Label.Render("☆ "+a.Title+"  "+a.Description))
		}
	}
	return components.Card("Achievements", lines, width)
}
