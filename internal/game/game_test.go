package game

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gitalearn/internal/store"
)

var t0 = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestRefillIfDue(t *testing.T) {
	tests := []struct {
		name         string
		hearts       int
		elapsed      time.Duration
		wantHearts   int
		wantAdded    int
		wantRefillAt time.Time
	}{
		{"full is no-op", 5, 3 * time.Hour, 5, 0, t0},
		{"partial interval", 2, 29 * time.Minute, 2, 0, t0},
		{"one interval", 2, 30 * time.Minute, 3, 1, t0.Add(30 * time.Minute)},
		{"carries remainder", 2, 95 * time.Minute, 5, 3, t0.Add(90 * time.Minute)},
		{"capped at max", 4, 95 * time.Minute, 5, 1, t0.Add(90 * time.Minute)},
		{"from empty long ago", 0, 48 * time.Hour, 5, 5, t0.Add(48 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewGameState(t0)
			st.Hearts = tt.hearts
			added := st.RefillIfDue(t0.Add(tt.elapsed))
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantHearts, st.Hearts)
			assert.Equal(t, tt.wantRefillAt, st.HeartsLastRefill)
		})
	}
}

func TestRefillIfDue_NoDoubleCount(t *testing.T) {
	st := NewGameState(t0)
	st.Hearts = 1

	st.RefillIfDue(t0.Add(45 * time.Minute))
	assert.Equal(t, 2, st.Hearts)

	// The 15 leftover minutes count toward the next heart.
	st.RefillIfDue(t0.Add(60 * time.Minute))
	assert.Equal(t, 3, st.Hearts)

	st.RefillIfDue(t0.Add(60 * time.Minute))
	assert.Equal(t, 3, st.Hearts)
}

func TestLoseHeart(t *testing.T) {
	st := NewGameState(t0)
	loss := t0.Add(2 * time.Hour)

	st.LoseHeart(loss)
	assert.Equal(t, 4, st.Hearts)
	assert.Equal(t, loss, st.HeartsLastRefill, "timer starts at first loss from full")
	assert.Equal(t, loss, st.LastHeartLoss)

	later := loss.Add(10 * time.Minute)
	st.LoseHeart(later)
	assert.Equal(t, 3, st.Hearts)
	assert.Equal(t, loss, st.HeartsLastRefill, "timer keeps running")
	assert.Equal(t, later, st.LastHeartLoss)
}

func TestLoseHeart_FloorAtZero(t *testing.T) {
	st := NewGameState(t0)
	for i := 0; i < 8; i++ {
		st.LoseHeart(t0)
	}
	assert.Equal(t, 0, st.Hearts)
}

func TestGainHearts(t *testing.T) {
	st := NewGameState(t0)
	st.Hearts = 1
	st.GainHearts(2)
	assert.Equal(t, 3, st.Hearts)
	st.GainHearts(10)
	assert.Equal(t, MaxHearts, st.Hearts)
	st.GainHearts(-3)
	assert.Equal(t, MaxHearts, st.Hearts)
}

func TestMinutesUntilNextHeart(t *testing.T) {
	st := NewGameState(t0)
	assert.Equal(t, 0, st.MinutesUntilNextHeart(t0.Add(time.Hour)))

	st.Hearts = 3
	assert.Equal(t, 30, st.MinutesUntilNextHeart(t0))
	assert.Equal(t, 20, st.MinutesUntilNextHeart(t0.Add(40*time.Minute)))
	assert.Equal(t, 1, st.MinutesUntilNextHeart(t0.Add(29*time.Minute)))
}

func TestHeartsStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	st := NewGameState(t0)
	now := t0

	for i := 0; i < 500; i++ {
		now = now.Add(time.Duration(rng.IntN(90)) * time.Minute)
		switch rng.IntN(3) {
		case 0:
			st.LoseHeart(now)
		case 1:
			st.GainHearts(rng.IntN(4))
		default:
			st.RefillIfDue(now)
		}
		require.GreaterOrEqual(t, st.Hearts, 0)
		require.LessOrEqual(t, st.Hearts, MaxHearts)
	}
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0, Accuracy(0, 0))
	assert.Equal(t, 0, Accuracy(0, 10))
	assert.Equal(t, 67, Accuracy(2, 3))
	assert.Equal(t, 100, Accuracy(10, 10))
	assert.Equal(t, 100, Accuracy(12, 10))
}

func TestLessonGems(t *testing.T) {
	tests := []struct {
		name     string
		accuracy int
		ftp      bool
		streak   int
		want     int
	}{
		{"base", 80, false, 0, 10},
		{"perfect", 100, false, 0, 25},
		{"perfect first try", 100, true, 1, 35},
		{"week streak", 70, false, 7, 15},
		{"everything", 100, true, 30, 50},
		{"streak just short", 90, false, 6, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LessonGems(tt.accuracy, tt.ftp, tt.streak))
		})
	}
}

func TestLessonXPAndStars(t *testing.T) {
	assert.Equal(t, 70, LessonXP(7))
	assert.Equal(t, 0, LessonXP(0))

	assert.Equal(t, 5, MasteryStars(100))
	assert.Equal(t, 4, MasteryStars(99))
	assert.Equal(t, 3, MasteryStars(60))
	assert.Equal(t, 1, MasteryStars(39))
	assert.Equal(t, 1, MasteryStars(0))
}

func TestCalculateReward(t *testing.T) {
	r := CalculateReward(LessonResult{Correct: 10, Total: 10, FirstTryPerfect: true}, 30)
	assert.Equal(t, LessonReward{XP: 100, Gems: 50, Accuracy: 100, Stars: 5}, r)
}

func TestCheckAchievements(t *testing.T) {
	st := NewGameState(t0)

	got := st.CheckAchievements(AchievementContext{LessonsCompleted: 1, Accuracy: 100, Streak: 3, TotalXP: 100})
	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{AchFirstLesson, AchPerfectLesson, AchStreak3}, ids)

	again := st.CheckAchievements(AchievementContext{LessonsCompleted: 2, Accuracy: 100, Streak: 3})
	assert.Empty(t, again, "unlocks happen once")

	next, ok := st.NextLocked()
	require.True(t, ok)
	assert.Equal(t, AchFirstTryPerfect, next.ID)
}

func TestPurchaseHearts(t *testing.T) {
	st := NewGameState(t0)
	st.Hearts = 2
	st.Gems = 25

	res := st.PurchaseHearts(3)
	assert.False(t, res.Success)
	assert.Equal(t, 2, st.Hearts)
	assert.Equal(t, 25, st.Gems)

	res = st.PurchaseHearts(2)
	assert.True(t, res.Success)
	assert.Equal(t, 4, st.Hearts)
	assert.Equal(t, 5, st.Gems)

	st.Gems = 100
	res = st.PurchaseHearts(4)
	assert.True(t, res.Success, "clamped to the missing heart")
	assert.Equal(t, MaxHearts, st.Hearts)
	assert.Equal(t, 90, st.Gems)

	res = st.PurchaseHearts(1)
	assert.False(t, res.Success)
	assert.Equal(t, 90, st.Gems)
}

func TestSpendGems(t *testing.T) {
	st := NewGameState(t0)
	st.Gems = 5
	assert.False(t, st.SpendGems(10).Success)
	assert.Equal(t, 5, st.Gems)
	assert.True(t, st.SpendGems(5).Success)
	assert.Equal(t, 0, st.Gems)
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil)

	st := NewGameState(t0)
	st.XP = 420
	st.Gems = 37
	st.Streak = 4
	st.LastCompletedDate = t0.Add(-time.Hour)
	st.LastHeartLoss = t0.Add(-2 * time.Hour)
	st.LessonsCompleted = 12
	st.Achievements = []string{AchFirstLesson}
	st.LastLessonID = "lesson-12"
	require.NoError(t, svc.Save(ctx, st))

	got := svc.Load(ctx, t0)
	assert.Equal(t, st, got)
}

func TestService_LoadAppliesRefill(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil)

	st := NewGameState(t0)
	st.Hearts = 1
	require.NoError(t, svc.Save(ctx, st))

	got := svc.Load(ctx, t0.Add(61*time.Minute))
	assert.Equal(t, 3, got.Hearts)
}

func TestService_CorruptFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.PutRaw(store.KeyGameState, []byte("{nope"))

	got := NewService(kv, nil).Load(ctx, t0)
	assert.Equal(t, NewGameState(t0), got)
}

func TestService_PurchaseHeartsFailureNotPersisted(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := NewService(kv, nil)

	res, _, err := svc.PurchaseHearts(ctx, 1, t0)
	require.NoError(t, err)
	assert.False(t, res.Success)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
