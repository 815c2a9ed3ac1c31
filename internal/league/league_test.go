package league

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gitalearn/internal/store"
)

// 2026-03-11 is a Wednesday; its week runs 03-09 to 03-15.
var now = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

type fixedRanker struct {
	s Standing
}

func (f fixedRanker) Standing(Tier, time.Time, int, time.Time) Standing { return f.s }

func (f fixedRanker) Board(Tier, time.Time, string, int, time.Time) []Entry { return nil }

func TestParseTier(t *testing.T) {
	for _, tier := range AllTiers() {
		got, err := ParseTier(string(tier))
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	_, err := ParseTier("diamond")
	assert.Error(t, err)
}

func TestTierUpDown(t *testing.T) {
	assert.Equal(t, Silver, Bronze.Up())
	assert.Equal(t, Bronze, Bronze.Down())
	assert.Equal(t, Obsidian, Obsidian.Up())
	assert.Equal(t, Emerald, Obsidian.Down())
}

func TestApplyWeekResult(t *testing.T) {
	tests := []struct {
		name  string
		tier  Tier
		rank  int
		total int
		want  Movement
	}{
		{"bronze rank 8 promotes", Bronze, 8, 25, Movement{From: Bronze, To: Silver, Promoted: true}},
		{"bronze last stays", Bronze, 25, 25, Movement{From: Bronze, To: Bronze}},
		{"obsidian first stays", Obsidian, 1, 25, Movement{From: Obsidian, To: Obsidian}},
		{"obsidian last relegates", Obsidian, 25, 25, Movement{From: Obsidian, To: Emerald, Relegated: true}},
		{"silver middle stays", Silver, 10, 25, Movement{From: Silver, To: Silver}},
		{"silver edge of relegation", Silver, 21, 25, Movement{From: Silver, To: Bronze, Relegated: true}},
		{"silver just safe", Silver, 20, 25, Movement{From: Silver, To: Silver}},
		{"gold last promotion slot", Gold, 6, 20, Movement{From: Gold, To: Sapphire, Promoted: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyWeekResult(tt.tier, tt.rank, tt.total))
		})
	}
}

func TestApplyWeekResult_LadderBounds(t *testing.T) {
	for _, tier := range AllTiers() {
		for total := 1; total <= 30; total++ {
			for rank := 1; rank <= total; rank++ {
				m := ApplyWeekResult(tier, rank, total)
				require.True(t, m.To.Valid())
				diff := m.To.Index() - tier.Index()
				require.LessOrEqual(t, diff, 1)
				require.GreaterOrEqual(t, diff, -1)
				require.False(t, m.Promoted && m.Relegated)
				if tier == Bronze {
					require.False(t, m.Relegated)
				}
				if tier == Obsidian {
					require.False(t, m.Promoted)
				}
			}
		}
	}
}

func TestStartNewWeek_PromotesOnFinalRank(t *testing.T) {
	e := NewEngine(fixedRanker{Standing{Rank: 8, Total: 25}})
	d := e.NewData(now)
	e.AddWeeklyXP(d, 120, now)

	next := now.AddDate(0, 0, 7)
	mv, rolled := e.Rollover(d, next)
	require.True(t, rolled)
	assert.True(t, mv.Promoted)
	assert.Equal(t, Silver, d.League)
	assert.True(t, d.IsPromoted)
	assert.False(t, d.IsRelegated)
	assert.Equal(t, Bronze, d.PreviousLeague)
	assert.Equal(t, 8, d.PreviousRank)
	assert.Equal(t, 120, d.PreviousXP)
	assert.Zero(t, d.WeeklyXP)
	assert.False(t, d.HasCompetedThisWeek)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), d.WeekStart)
}

func TestStartNewWeek_IdleWeekKeepsTier(t *testing.T) {
	e := NewEngine(fixedRanker{Standing{Rank: 25, Total: 25}})
	d := e.NewData(now)
	d.League = Gold

	e.StartNewWeek(d, now.AddDate(0, 0, 7))
	assert.Equal(t, Gold, d.League)
	assert.False(t, d.IsRelegated)
}

func TestAddWeeklyXP_RollsOverFirst(t *testing.T) {
	e := NewEngine(fixedRanker{Standing{Rank: 3, Total: 20}})
	d := e.NewData(now)
	e.AddWeeklyXP(d, 200, now)

	later := now.AddDate(0, 0, 8)
	res := e.AddWeeklyXP(d, 30, later)
	assert.True(t, res.Rolled)
	assert.Equal(t, 30, d.WeeklyXP, "XP lands in the fresh week")
	assert.Equal(t, Silver, d.League)
	assert.True(t, d.HasCompetedThisWeek)
	assert.True(t, later.After(d.WeekStart))
	assert.True(t, later.Before(d.WeekEnd))
}

func TestAddWeeklyXP_Accumulates(t *testing.T) {
	e := NewEngine(nil)
	d := e.NewData(now)
	e.AddWeeklyXP(d, 40, now)
	res := e.AddWeeklyXP(d, 60, now.Add(time.Hour))
	assert.False(t, res.Rolled)
	assert.Equal(t, 100, d.WeeklyXP)
	assert.GreaterOrEqual(t, d.Rank, 1)
	assert.LessOrEqual(t, d.Rank, d.TotalParticipants)
}

func TestRerank_ClampsRank(t *testing.T) {
	e := NewEngine(fixedRanker{Standing{Rank: 40, Total: 25}})
	d := e.NewData(now)
	assert.Equal(t, 25, d.Rank)

	e = NewEngine(fixedRanker{Standing{Rank: 0, Total: 25}})
	d = e.NewData(now)
	assert.Equal(t, 1, d.Rank)
}

func TestCohortRanker(t *testing.T) {
	r := CohortRanker{}
	ws := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	a := r.Standing(Gold, ws, 150, now)
	b := r.Standing(Gold, ws, 150, now)
	assert.Equal(t, a, b, "deterministic per week and tier")
	assert.GreaterOrEqual(t, a.Total, ConfigFor(Gold).MinParticipants)
	assert.LessOrEqual(t, a.Total, ConfigFor(Gold).MaxParticipants)

	// Everyone starts the week at zero and ties favour the user.
	assert.Equal(t, 1, r.Standing(Gold, ws, 0, ws).Rank)

	prev := a.Total
	for xp := 0; xp <= 3000; xp += 50 {
		s := r.Standing(Gold, ws, xp, now)
		require.GreaterOrEqual(t, s.Rank, 1)
		require.LessOrEqual(t, s.Rank, s.Total)
		require.LessOrEqual(t, s.Rank, prev, "more XP never ranks lower")
		prev = s.Rank
	}
	assert.Equal(t, 1, prev)
}

func TestCohortRanker_BoardMatchesStanding(t *testing.T) {
	r := CohortRanker{}
	ws := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	for _, xp := range []int{0, 35, 120, 400} {
		s := r.Standing(Ruby, ws, xp, now)
		board := r.Board(Ruby, ws, "You", xp, now)
		require.Len(t, board, s.Total)
		for i, e := range board {
			assert.Equal(t, i+1, e.Rank)
			if i > 0 {
				assert.GreaterOrEqual(t, board[i-1].XP, e.XP)
			}
			if e.IsUser {
				assert.Equal(t, s.Rank, e.Rank, "xp %d", xp)
			}
		}
	}
}

func TestZone(t *testing.T) {
	d := &Data{League: Silver, Rank: 3, TotalParticipants: 25}
	assert.Equal(t, "promotion", d.Zone())
	d.Rank = 15
	assert.Equal(t, "safe", d.Zone())
	d.Rank = 22
	assert.Equal(t, "relegation", d.Zone())
	d.League = Bronze
	assert.Equal(t, "safe", d.Zone())
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), NewEngine(fixedRanker{Standing{Rank: 4, Total: 22}}), nil)

	d := svc.Engine().NewData(now)
	d.League = Ruby
	d.WeeklyXP = 310
	d.HasCompetedThisWeek = true
	d.IsRelegated = true
	d.PreviousLeague = Emerald
	d.PreviousRank = 21
	d.PreviousXP = 12
	require.NoError(t, svc.Save(ctx, d))

	got := svc.Load(ctx, now.Add(time.Hour))
	assert.Equal(t, d, got)
}

func TestService_CorruptAndInvalid(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := NewService(kv, nil, nil)

	kv.PutRaw(store.KeyLeague, []byte("{"))
	d := svc.Load(ctx, now)
	assert.Equal(t, Bronze, d.League)

	kv.PutRaw(store.KeyLeague, []byte(`{"currentLeague":"diamond","rank":99,"totalParticipants":20,"weekStartDate":"2026-03-09T00:00:00Z","weekEndDate":"2026-03-15T23:59:59.999Z"}`))
	d = svc.Load(ctx, now)
	assert.Equal(t, Bronze, d.League)
	assert.Equal(t, 20, d.Rank)
}

func TestService_LeaderboardPersists(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil, nil)

	_, err := svc.AddWeeklyXP(ctx, 90, now)
	require.NoError(t, err)

	board, err := svc.Leaderboard(ctx, now)
	require.NoError(t, err)
	require.NotEmpty(t, board)
	assert.Equal(t, board, svc.CachedLeaderboard(ctx))

	users := 0
	for _, e := range board {
		if e.IsUser {
			users++
			assert.Equal(t, 90, e.XP)
		}
	}
	assert.Equal(t, 1, users)
}

func TestService_UserName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil, nil)
	svc.SetUserName("")
	svc.SetUserName("Partha")

	board, err := svc.Leaderboard(ctx, now)
	require.NoError(t, err)
	for _, e := range board {
		if e.IsUser {
			assert.Equal(t, "Partha", e.Name)
		}
	}
}
