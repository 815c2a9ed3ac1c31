package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gitalearn/internal/coach"
	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/league"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/store"
	"github.com/abhisek/gitalearn/internal/streak"
)

// Wednesday mid-morning.
var at = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

type fixture struct {
	kv      store.KV
	history *store.MemoryHistory
	orch    *Orchestrator
}

func newFixture(kv store.KV, m Motivator) *fixture {
	hist := &store.MemoryHistory{}
	return &fixture{
		kv:      kv,
		history: hist,
		orch: NewOrchestrator(Deps{
			Game:      game.NewService(kv, nil),
			Streak:    streak.NewService(kv, nil),
			Quests:    quests.NewService(kv, quests.NewGenerator(rand.New(rand.NewPCG(1, 2))), nil),
			League:    league.NewService(kv, nil, nil),
			History:   hist,
			Motivator: m,
		}),
	}
}

func (f *fixture) gameState(t *testing.T) game.GameState {
	t.Helper()
	var gs game.GameState
	found, err := f.kv.Get(context.Background(), store.KeyGameState, &gs)
	require.NoError(t, err)
	require.True(t, found)
	return gs
}

func achievementIDs(as []game.Achievement) []string {
	ids := make([]string, 0, len(as))
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestComplete_FirstLesson(t *testing.T) {
	f := newFixture(store.NewMemoryKV(), nil)

	sum := f.orch.Complete(context.Background(), Result{
		LessonID: "l1", Correct: 10, Total: 10, FirstTryPerfect: true, Minutes: 12, At: at,
	})

	require.NotNil(t, sum)
	assert.False(t, sum.Fallback)
	assert.False(t, sum.Duplicate)
	assert.Equal(t, 100, sum.XPGained)
	assert.Equal(t, 35, sum.GemsEarned)
	assert.Equal(t, 100, sum.Accuracy)
	assert.Equal(t, 1, sum.StreakDays)
	assert.True(t, sum.StreakIncreased)
	assert.Equal(t, 5, sum.MasteryStars)
	assert.Equal(t, []string{game.AchFirstLesson, game.AchPerfectLesson, game.AchFirstTryPerfect}, achievementIDs(sum.NewAchievements))
	assert.Equal(t, game.AchStreak3, sum.NextUnlock)
	assert.Equal(t, league.Bronze, sum.League)
	assert.GreaterOrEqual(t, sum.LeagueRank, 1)
	assert.LessOrEqual(t, sum.LeagueRank, sum.LeagueTotal)
	assert.NotEmpty(t, sum.Message)

	gs := f.gameState(t)
	assert.Equal(t, 100, gs.XP)
	assert.Equal(t, 35, gs.Gems)
	assert.Equal(t, 1, gs.Streak)
	assert.Equal(t, 1, gs.LessonsCompleted)
	assert.Equal(t, "l1", gs.LastLessonID)

	var ld league.Data
	_, err := f.kv.Get(context.Background(), store.KeyLeague, &ld)
	require.NoError(t, err)
	assert.Equal(t, 100, ld.WeeklyXP)

	var daily quests.Set
	_, err = f.kv.Get(context.Background(), store.KeyDailyQuests, &daily)
	require.NoError(t, err)
	for _, q := range daily.Quests {
		switch q.Type {
		case quests.CompleteLessons, quests.PerfectLessons, quests.MaintainStreak:
			assert.Equal(t, 1, q.Progress, q.Title)
		case quests.EarnXP:
			assert.Equal(t, min(100, q.Target), q.Progress, q.Title)
		case quests.StudyMinutes:
			assert.Equal(t, min(12, q.Target), q.Progress, q.Title)
		case quests.EarlyBird, quests.CompleteUnit:
			assert.Zero(t, q.Progress, q.Title)
		}
	}

	require.Len(t, f.history.Events, 1)
	ev := f.history.Events[0]
	assert.Equal(t, "l1", ev.LessonID)
	assert.Equal(t, 100, ev.XP)
	assert.Equal(t, 35, ev.Gems)
	assert.Equal(t, 12, ev.Minutes)
	assert.False(t, ev.Fallback)
}

func TestComplete_StreakUpdatesBeforeGems(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	sd := streak.NewData()
	sd.CurrentStreak = 29
	sd.LongestStreak = 29
	sd.PerfectStreak = 29
	sd.LastLessonDate = at.AddDate(0, 0, -1)
	sd.Milestones = []int{7, 14}
	require.NoError(t, kv.Put(ctx, store.KeyStreak, sd))

	f := newFixture(kv, nil)
	sum := f.orch.Complete(ctx, Result{LessonID: "l30", Correct: 10, Total: 10, FirstTryPerfect: true, At: at})

	assert.Equal(t, 30, sum.StreakDays)
	require.NotNil(t, sum.Milestone)
	assert.Equal(t, 30, sum.Milestone.Days)
	// 10+15+10+5+10 lesson gems plus the milestone's 25.
	assert.Equal(t, 50+25, sum.GemsEarned)
	assert.Equal(t, 100+500, sum.XPGained)
	assert.Contains(t, achievementIDs(sum.NewAchievements), game.AchStreak30)

	var ld league.Data
	_, err := kv.Get(ctx, store.KeyLeague, &ld)
	require.NoError(t, err)
	assert.Equal(t, 100, ld.WeeklyXP, "league receives base XP only")
}

func TestComplete_SecondLessonSameDay(t *testing.T) {
	f := newFixture(store.NewMemoryKV(), nil)
	ctx := context.Background()

	f.orch.Complete(ctx, Result{LessonID: "a", Correct: 5, Total: 10, At: at})
	sum := f.orch.Complete(ctx, Result{LessonID: "b", Correct: 8, Total: 10, At: at.Add(time.Hour)})

	assert.False(t, sum.StreakIncreased)
	assert.Equal(t, 1, sum.StreakDays)
	assert.Equal(t, 80, sum.XPGained)
	assert.Equal(t, 10, sum.GemsEarned)
	assert.Equal(t, 50+80, f.gameState(t).XP)
	assert.Equal(t, 2, f.gameState(t).LessonsCompleted)
}

func TestComplete_DuplicateLessonID(t *testing.T) {
	kv := store.NewMemoryKV()
	f := newFixture(kv, nil)
	ctx := context.Background()

	first := f.orch.Complete(ctx, Result{LessonID: "dup", Correct: 7, Total: 10, At: at})
	require.False(t, first.Duplicate)

	again := f.orch.Complete(ctx, Result{LessonID: "dup", Correct: 7, Total: 10, At: at})
	assert.True(t, again.Duplicate)
	assert.Zero(t, again.XPGained)
	assert.Zero(t, again.GemsEarned)
	assert.Equal(t, 70, f.gameState(t).XP)

	// A fresh process recognises the last lesson from persisted state.
	other := newFixture(kv, nil)
	assert.True(t, other.orch.Complete(ctx, Result{LessonID: "dup", Correct: 7, Total: 10, At: at}).Duplicate)
	assert.Equal(t, 70, f.gameState(t).XP)
	assert.Len(t, f.history.Events, 1)
}

func TestComplete_ConcurrentCallsCreditOnce(t *testing.T) {
	f := newFixture(store.NewMemoryKV(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*Summary, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.orch.Complete(ctx, Result{LessonID: "same", Correct: 3, Total: 3, At: at})
		}(i)
	}
	wg.Wait()

	credited := 0
	for _, r := range results {
		if !r.Duplicate {
			credited++
		}
	}
	assert.Equal(t, 1, credited)
	assert.Equal(t, 30, f.gameState(t).XP)
}

type failingKV struct {
	*store.MemoryKV
}

func (failingKV) Put(context.Context, string, any) error {
	return errors.New("disk full")
}

func TestComplete_PersistFailureFallsBack(t *testing.T) {
	f := newFixture(failingKV{store.NewMemoryKV()}, nil)

	sum := f.orch.Complete(context.Background(), Result{LessonID: "x", Correct: 9, Total: 10, At: at})
	require.NotNil(t, sum)
	assert.True(t, sum.Fallback)
	assert.Equal(t, FallbackXP, sum.XPGained)
	assert.Equal(t, FallbackGems, sum.GemsEarned)
	assert.Equal(t, 90, sum.Accuracy)
	assert.NotEmpty(t, sum.Message)
}

type panickingKV struct {
	*store.MemoryKV
}

func (panickingKV) Get(context.Context, string, any) (bool, error) {
	panic("corrupted page")
}

func TestComplete_PanicFallsBack(t *testing.T) {
	f := newFixture(panickingKV{store.NewMemoryKV()}, nil)

	sum := f.orch.Complete(context.Background(), Result{LessonID: "p", Correct: 1, Total: 4, At: at})
	require.NotNil(t, sum)
	assert.True(t, sum.Fallback)
	assert.Equal(t, FallbackXP, sum.XPGained)
	assert.Equal(t, 25, sum.Accuracy)
}

func TestComplete_FallbackCreditsFloor(t *testing.T) {
	kv := store.NewMemoryKV()
	f := newFixture(kv, nil)
	// League saves fail; the game document still accepts the floor.
	f.orch.deps.League = league.NewService(failingKV{store.NewMemoryKV()}, nil, nil)

	sum := f.orch.Complete(context.Background(), Result{LessonID: "f", Correct: 2, Total: 2, At: at})
	assert.True(t, sum.Fallback)

	gs := f.gameState(t)
	assert.Equal(t, FallbackXP, gs.XP)
	assert.Equal(t, FallbackGems, gs.Gems)
	require.Len(t, f.history.Events, 1)
	assert.True(t, f.history.Events[0].Fallback)
}

func TestComplete_CoachMessage(t *testing.T) {
	mock := coach.NewMockProvider(coach.MockReply{Content: json.RawMessage(`{"message":"Abhyasa pays off."}`)})
	f := newFixture(store.NewMemoryKV(), coach.NewWithProvider(mock, time.Second, nil))

	sum := f.orch.Complete(context.Background(), Result{LessonID: "c", Correct: 4, Total: 5, At: at})
	assert.Equal(t, "Abhyasa pays off.", sum.Message)
	assert.Equal(t, 1, mock.Calls())
}

func TestComplete_CoachFailureUsesStaticMessage(t *testing.T) {
	f := newFixture(store.NewMemoryKV(), coach.NewWithProvider(coach.NewMockProvider(), time.Second, nil))

	sum := f.orch.Complete(context.Background(), Result{LessonID: "c", Correct: 5, Total: 5, At: at})
	assert.False(t, sum.Fallback)
	assert.Equal(t, staticMessage(100, true, 1), sum.Message)
}

type panickyMotivator struct{}

func (panickyMotivator) Motivate(context.Context, coach.Moment) (string, error) {
	panic("boom")
}

func TestComplete_MotivatorPanicKeepsSummary(t *testing.T) {
	f := newFixture(store.NewMemoryKV(), panickyMotivator{})

	sum := f.orch.Complete(context.Background(), Result{LessonID: "m", Correct: 3, Total: 5, At: at})
	assert.False(t, sum.Fallback)
	assert.Equal(t, 30, sum.XPGained)
	assert.Equal(t, staticMessage(60, true, 1), sum.Message)
}

func TestResultNormalized(t *testing.T) {
	r := Result{Correct: 12, Total: 10, FirstTryPerfect: true, Minutes: -3}.normalized()
	assert.Equal(t, 10, r.Correct)
	assert.Equal(t, 0, r.Minutes)
	assert.True(t, r.FirstTryPerfect)

	r = Result{Correct: 4, Total: 10, FirstTryPerfect: true}.normalized()
	assert.False(t, r.FirstTryPerfect)

	r = Result{Correct: -1, Total: -1}.normalized()
	assert.Zero(t, r.Correct)
	assert.Zero(t, r.Total)
}

func TestQuestIncrements(t *testing.T) {
	early := time.Date(2026, 3, 11, 7, 30, 0, 0, time.UTC)
	s := afterStreak{
		lessonInput: lessonInput{
			res:      Result{Minutes: 15, CompletedUnit: true},
			now:      early,
			accuracy: 100,
			baseXP:   80,
		},
		record: streak.RecordResult{StreakIncreased: true},
	}
	assert.Equal(t, []increment{
		{quests.CompleteLessons, 1},
		{quests.EarnXP, 80},
		{quests.PerfectLessons, 1},
		{quests.MaintainStreak, 1},
		{quests.StudyMinutes, 15},
		{quests.EarlyBird, 1},
		{quests.CompleteUnit, 1},
	}, questIncrements(s))

	s.now = at
	s.accuracy = 70
	s.record.StreakIncreased = false
	s.res = Result{}
	assert.Equal(t, []increment{
		{quests.CompleteLessons, 1},
		{quests.EarnXP, 80},
	}, questIncrements(s))
}

func TestStaticMessage(t *testing.T) {
	assert.Contains(t, staticMessage(100, false, 0), "Flawless")
	assert.NotEqual(t, staticMessage(85, true, 3), staticMessage(85, false, 0))
	assert.NotEqual(t, staticMessage(65, false, 0), staticMessage(20, false, 0))
}
