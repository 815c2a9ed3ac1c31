package quests

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gitalearn/internal/calendar"
	"github.com/abhisek/gitalearn/internal/store"
)

// 2026-03-11 is a Wednesday.
var now = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func testGenerator(seed uint64) *Generator {
	g := NewGenerator(rand.New(rand.NewPCG(seed, seed+1)))
	n := 0
	g.newID = func() string {
		n++
		return fmt.Sprintf("q-%d", n)
	}
	return g
}

func mkQuest(t QuestType, target, xp, gems int, freq Frequency) Quest {
	return Quest{
		ID:        string(t),
		Type:      t,
		Title:     string(t),
		Target:    target,
		XPReward:  xp,
		GemReward: gems,
		Frequency: freq,
		CreatedAt: now,
		ExpiresAt: calendar.EndOfDay(now),
		Status:    StatusActive,
	}
}

func TestQuestAdvance_ClampsAtTarget(t *testing.T) {
	q := mkQuest(CompleteLessons, 3, 10, 5, Daily)
	q.Progress = 2

	assert.True(t, q.advance(5, now))
	assert.Equal(t, 3, q.Progress)
	assert.Equal(t, StatusCompleted, q.Status)
	require.NotNil(t, q.CompletedAt)
	assert.Equal(t, now, *q.CompletedAt)

	assert.False(t, q.advance(5, now.Add(time.Minute)))
	assert.Equal(t, 3, q.Progress)
	assert.Equal(t, now, *q.CompletedAt)
}

func TestQuestAdvance_NeverExceedsTarget(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		q := mkQuest(EarnXP, 1+rng.IntN(200), 10, 5, Daily)
		completions := 0
		for j := 0; j < 40; j++ {
			if q.advance(rng.IntN(30), now) {
				completions++
			}
			require.LessOrEqual(t, q.Progress, q.Target)
		}
		if q.Completed() {
			assert.Equal(t, 1, completions)
			assert.Equal(t, q.Target, q.Progress)
		} else {
			assert.Zero(t, completions)
		}
	}
}

func TestParseQuestType(t *testing.T) {
	for _, qt := range AllQuestTypes() {
		got, err := ParseQuestType(string(qt))
		require.NoError(t, err)
		assert.Equal(t, qt, got)
	}
	_, err := ParseQuestType("win_lottery")
	assert.Error(t, err)
}

func TestNewDaily(t *testing.T) {
	set := testGenerator(9).NewDaily(now)

	assert.Equal(t, "2026-03-11", set.Date)
	require.Len(t, set.Quests, DailyQuestCount)
	titles := map[string]bool{}
	for _, q := range set.Quests {
		titles[q.Title] = true
		assert.Equal(t, Daily, q.Frequency)
		assert.Equal(t, StatusActive, q.Status)
		assert.Equal(t, calendar.EndOfDay(now), q.ExpiresAt)
		assert.Zero(t, q.Progress)
	}
	assert.Len(t, titles, DailyQuestCount, "drawn without replacement")
}

func TestNewDaily_Deterministic(t *testing.T) {
	a := testGenerator(42).NewDaily(now)
	b := testGenerator(42).NewDaily(now)
	assert.Equal(t, a, b)
}

func TestNewWeekly(t *testing.T) {
	set := testGenerator(4).NewWeekly(now)

	assert.Equal(t, "2026-03-09", set.WeekStart)
	require.Len(t, set.Quests, WeeklyQuestCount)
	assert.NotEqual(t, set.Quests[0].Title, set.Quests[1].Title)
	for _, q := range set.Quests {
		assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), q.ExpiresAt)
	}
}

func testBoard() *Board {
	return &Board{
		Daily: Set{Date: "2026-03-11", Quests: []Quest{
			mkQuest(CompleteLessons, 1, 10, 5, Daily),
			mkQuest(EarnXP, 50, 20, 5, Daily),
		}},
		Weekly: Set{WeekStart: "2026-03-09", Quests: []Quest{
			mkQuest(EarnXP, 200, 150, 30, Weekly),
		}},
	}
}

func TestBoardUpdateProgress_BothSets(t *testing.T) {
	b := testBoard()

	u := b.UpdateProgress(EarnXP, 60, now)
	require.Len(t, u.Completed, 1)
	assert.Equal(t, EarnXP, u.Completed[0].Type)
	assert.Equal(t, Daily, u.Completed[0].Frequency)
	assert.Equal(t, 50, b.Daily.Quests[1].Progress)
	assert.Equal(t, 60, b.Weekly.Quests[0].Progress)
	assert.Zero(t, u.BonusXP)
	assert.False(t, b.Daily.AllCompleted)
}

func TestBoardUpdateProgress_SetBonusOnce(t *testing.T) {
	b := testBoard()
	b.UpdateProgress(EarnXP, 50, now)

	u := b.UpdateProgress(CompleteLessons, 1, now)
	assert.Equal(t, DailyBonusXP, u.BonusXP)
	assert.True(t, b.Daily.AllCompleted)
	assert.Equal(t, DailyBonusXP, b.Daily.BonusXPEarned)

	u = b.UpdateProgress(CompleteLessons, 1, now)
	assert.Zero(t, u.BonusXP)
	assert.Empty(t, u.Completed)

	u = b.UpdateProgress(EarnXP, 500, now)
	assert.Equal(t, WeeklyBonusXP, u.BonusXP)
	assert.True(t, b.Weekly.AllCompleted)
}

func TestBoardUpdateProgress_SkipsExpired(t *testing.T) {
	b := testBoard()
	u := b.UpdateProgress(CompleteLessons, 1, calendar.EndOfDay(now).Add(time.Second))
	assert.Empty(t, u.Completed)
	assert.Zero(t, b.Daily.Quests[0].Progress)
}

func TestBoardClaimRewards(t *testing.T) {
	b := testBoard()
	b.UpdateProgress(CompleteLessons, 1, now)

	assert.Equal(t, Reward{XP: 10, Gems: 5, Quests: 1}, b.Pending())

	r := b.ClaimRewards(now)
	assert.Equal(t, Reward{XP: 10, Gems: 5, Quests: 1}, r)
	require.NotNil(t, b.Daily.Quests[0].ClaimedAt)

	assert.True(t, b.ClaimRewards(now).Empty(), "no double claim")

	b.UpdateProgress(EarnXP, 50, now)
	r = b.ClaimRewards(now)
	assert.Equal(t, Reward{XP: 20 + DailyBonusXP, Gems: 5, Quests: 1}, r)
	assert.Zero(t, b.Daily.BonusXPEarned)
	assert.True(t, b.Daily.AllCompleted)

	assert.True(t, b.ClaimRewards(now).Empty())
}

func TestRefresh(t *testing.T) {
	g := testGenerator(7)
	b := &Board{}

	daily, weekly := g.Refresh(b, now)
	assert.True(t, daily)
	assert.True(t, weekly)
	first := *b

	daily, weekly = g.Refresh(b, now.Add(3*time.Hour))
	assert.False(t, daily)
	assert.False(t, weekly)
	assert.Equal(t, first, *b)

	daily, weekly = g.Refresh(b, now.AddDate(0, 0, 1))
	assert.True(t, daily)
	assert.False(t, weekly)
	assert.Equal(t, "2026-03-12", b.Daily.Date)
	assert.Equal(t, first.Weekly, b.Weekly)

	daily, weekly = g.Refresh(b, time.Date(2026, 3, 16, 0, 30, 0, 0, time.UTC))
	assert.True(t, daily)
	assert.True(t, weekly)
	assert.Equal(t, "2026-03-16", b.Weekly.WeekStart)
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), testGenerator(1), nil)

	b := testBoard()
	b.UpdateProgress(CompleteLessons, 1, now)
	b.UpdateProgress(EarnXP, 80, now)
	b.ClaimRewards(now)
	require.NoError(t, svc.Save(ctx, b))

	got := svc.Load(ctx, now.Add(time.Hour))
	assert.Equal(t, b, got)
}

func TestService_UpdateAndClaim(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), testGenerator(5), nil)

	b := svc.Load(ctx, now)
	var target int
	var qt QuestType
	for _, q := range b.Daily.Quests {
		if q.Type != EarnXP {
			qt, target = q.Type, q.Target
			break
		}
	}
	require.NotEmpty(t, qt)

	u, err := svc.UpdateProgress(ctx, qt, target, now)
	require.NoError(t, err)
	assert.NotEmpty(t, u.Completed)

	r, err := svc.ClaimRewards(ctx, now)
	require.NoError(t, err)
	assert.Positive(t, r.XP)
	assert.Positive(t, r.Gems)

	r, err = svc.ClaimRewards(ctx, now)
	require.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestService_CorruptRegenerates(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.PutRaw(store.KeyDailyQuests, []byte("not json"))

	b := NewService(kv, testGenerator(3), nil).Load(context.Background(), now)
	assert.Equal(t, "2026-03-11", b.Daily.Date)
	assert.Len(t, b.Daily.Quests, DailyQuestCount)
}
