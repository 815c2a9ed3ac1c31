package lesson

import (
	"time"

	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/streak"
)

// The completion pipeline runs in a fixed order. Each step takes the
// previous step's output type, so streak always precedes quests, which
// precede league XP, which precedes achievements:
//
//	lessonInput -> afterStreak -> afterQuests -> afterLeague -> afterAchievements

// state is every document the pipeline touches. It is loaded once and
// persisted once.
type state struct {
	game   *game.GameState
	streak *streak.Data
	board  *quests.Board
	league *league.Data
}

type lessonInput struct {
	res      Result
	now      time.Time
	accuracy int
	baseXP   int
}

type afterStreak struct {
	lessonInput
	record streak.RecordResult
	gems   int
}

type afterQuests struct {
	afterStreak
	completed []quests.Quest
	bonusXP   int
}

type afterLeague struct {
	afterQuests
	standing league.XPResult
	tier     league.Tier
}

type afterAchievements struct {
	afterLeague
	unlocked   []game.Achievement
	xpGained   int
	gemsEarned int
	nextUnlock string
}

func newInput(res Result) lessonInput {
	acc := game.Accuracy(res.Correct, res.Total)
	return lessonInput{res: res, now: res.At, accuracy: acc, baseXP: game.LessonXP(res.Correct)}
}

func recordStreak(in lessonInput, st *state) afterStreak {
	rec := st.streak.RecordLesson(in.now)
	return afterStreak{
		lessonInput: in,
		record:      rec,
		gems:        game.LessonGems(in.accuracy, in.res.FirstTryPerfect, st.streak.CurrentStreak),
	}
}

// earlyBirdHour is the local hour before which a lesson counts as early.
const earlyBirdHour = 9

type increment struct {
	t      quests.QuestType
	amount int
}

// questIncrements lists the counters a lesson advances.
func questIncrements(s afterStreak) []increment {
	incs := []increment{
		{quests.CompleteLessons, 1},
		{quests.EarnXP, s.baseXP},
	}
	if s.accuracy == 100 {
		incs = append(incs, increment{quests.PerfectLessons, 1})
	}
	if s.record.StreakIncreased {
		incs = append(incs, increment{quests.MaintainStreak, 1})
	}
	if s.res.Minutes > 0 {
		incs = append(incs, increment{quests.StudyMinutes, s.res.Minutes})
	}
	if s.now.Hour() < earlyBirdHour {
		incs = append(incs, increment{quests.EarlyBird, 1})
	}
	if s.res.CompletedUnit {
		incs = append(incs, increment{quests.CompleteUnit, 1})
	}
	return incs
}

func updateQuests(s afterStreak, st *state) afterQuests {
	out := afterQuests{afterStreak: s}
	for _, inc := range questIncrements(s) {
		u := st.board.UpdateProgress(inc.t, inc.amount, s.now)
		out.completed = append(out.completed, u.Completed...)
		out.bonusXP += u.BonusXP
	}
	return out
}

func addLeagueXP(q afterQuests, st *state, engine *league.Engine) afterLeague {
	res := engine.AddWeeklyXP(st.league, q.baseXP, q.now)
	return afterLeague{afterQuests: q, standing: res, tier: st.league.League}
}

func checkAchievements(l afterLeague, st *state) afterAchievements {
	gs := st.game
	xp := l.baseXP
	gems := l.gems
	if m := l.record.Milestone; m != nil {
		xp += m.XP
		gems += m.Gems
	}

	gs.AddXP(xp)
	gs.AddGems(gems)
	gs.Streak = st.streak.CurrentStreak
	gs.LessonsCompleted++
	gs.LastCompletedDate = l.now
	gs.LastLessonID = l.res.LessonID

	unlocked := gs.CheckAchievements(game.AchievementContext{
		LessonsCompleted: gs.LessonsCompleted,
		Accuracy:         l.accuracy,
		FirstTryPerfect:  l.res.FirstTryPerfect,
		Streak:           gs.Streak,
		TotalXP:          gs.XP,
	})

	out := afterAchievements{afterLeague: l, unlocked: unlocked, xpGained: xp, gemsEarned: gems}
	if next, ok := gs.NextLocked(); ok {
		out.nextUnlock = next.ID
	}
	return out
}

func summarize(a afterAchievements, st *state) *Summary {
	return &Summary{
		LessonID:        a.res.LessonID,
		XPGained:        a.xpGained,
		GemsEarned:      a.gemsEarned,
		Accuracy:        a.accuracy,
		Correct:         a.res.Correct,
		Total:           a.res.Total,
		StreakDays:      st.streak.CurrentStreak,
		StreakIncreased: a.record.StreakIncreased,
		MasteryStars:    game.MasteryStars(a.accuracy),
		NewAchievements: a.unlocked,
		Milestone:       a.record.Milestone,
		QuestsCompleted: a.completed,
		QuestBonusXP:    a.bonusXP,
		League:          a.tier,
		LeagueRank:      a.standing.Rank,
		LeagueTotal:     a.standing.Total,
		NextUnlock:      a.nextUnlock,
	}
}
