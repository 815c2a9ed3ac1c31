package league

import (
	"time"

	"github.com/abhisek/gitalearn/internal/calendar"
)

// Data is the persisted league document. IsPromoted and IsRelegated
// describe the previous week.
type Data struct {
	League              Tier      `json:"currentLeague"`
	WeeklyXP            int       `json:"weeklyXP"`
	Rank                int       `json:"rank"`
	TotalParticipants   int       `json:"totalParticipants"`
	IsPromoted          bool      `json:"isPromoted"`
	IsRelegated         bool      `json:"isRelegated"`
	WeekStart           time.Time `json:"weekStartDate"`
	WeekEnd             time.Time `json:"weekEndDate"`
	HasCompetedThisWeek bool      `json:"hasCompetedThisWeek"`

	PreviousLeague Tier `json:"previousLeague,omitempty"`
	PreviousRank   int  `json:"previousRank,omitempty"`
	PreviousXP     int  `json:"previousWeeklyXP,omitempty"`
}

// Engine applies ladder rules with a pluggable Ranker.
type Engine struct {
	ranker Ranker
}

// NewEngine creates an engine. A nil ranker uses CohortRanker.
func NewEngine(r Ranker) *Engine {
	if r == nil {
		r = CohortRanker{}
	}
	return &Engine{ranker: r}
}

// NewData places a newcomer in Bronze for the week containing now.
func (e *Engine) NewData(now time.Time) *Data {
	d := &Data{League: Bronze}
	e.resetWeek(d, now)
	return d
}

func (e *Engine) resetWeek(d *Data, now time.Time) {
	d.WeekStart = calendar.WeekStart(now)
	d.WeekEnd = calendar.WeekEnd(now)
	d.WeeklyXP = 0
	d.HasCompetedThisWeek = false
	e.rerank(d, now)
}

func (e *Engine) rerank(d *Data, at time.Time) {
	s := e.ranker.Standing(d.League, d.WeekStart, d.WeeklyXP, at)
	if s.Total < 1 {
		s.Total = 1
	}
	d.TotalParticipants = s.Total
	d.Rank = min(max(s.Rank, 1), s.Total)
}

// Normalize repairs an invalid tier or out-of-range rank.
func (e *Engine) Normalize(d *Data, now time.Time) {
	if !d.League.Valid() {
		d.League = Bronze
	}
	if d.WeekStart.IsZero() || d.WeekEnd.IsZero() {
		e.resetWeek(d, now)
		return
	}
	if d.TotalParticipants < 1 {
		d.TotalParticipants = 1
	}
	d.Rank = min(max(d.Rank, 1), d.TotalParticipants)
}

// StartNewWeek closes the stored week using its final rank, moves the
// user up or down the ladder and opens the week containing now. Weeks in
// which the user never competed leave the tier unchanged.
func (e *Engine) StartNewWeek(d *Data, now time.Time) Movement {
	m := Movement{From: d.League, To: d.League}
	if d.HasCompetedThisWeek {
		e.rerank(d, d.WeekEnd)
		m = ApplyWeekResult(d.League, d.Rank, d.TotalParticipants)
	}

	d.PreviousLeague = d.League
	d.PreviousRank = d.Rank
	d.PreviousXP = d.WeeklyXP
	d.League = m.To
	d.IsPromoted = m.Promoted
	d.IsRelegated = m.Relegated
	e.resetWeek(d, now)
	return m
}

// Rollover starts a new week if the stored one has ended.
func (e *Engine) Rollover(d *Data, now time.Time) (Movement, bool) {
	if !now.After(d.WeekEnd) {
		return Movement{From: d.League, To: d.League}, false
	}
	return e.StartNewWeek(d, now), true
}

// XPResult is the outcome of AddWeeklyXP.
type XPResult struct {
	PreviousRank int
	Rank         int
	Total        int
	Rolled       bool
	Movement     Movement
}

// AddWeeklyXP accumulates XP into the current week, rolling the week over
// first when it has ended.
func (e *Engine) AddWeeklyXP(d *Data, amount int, now time.Time) XPResult {
	mv, rolled := e.Rollover(d, now)
	res := XPResult{PreviousRank: d.Rank, Rolled: rolled, Movement: mv}
	if amount > 0 {
		d.WeeklyXP += amount
		d.HasCompetedThisWeek = true
	}
	e.rerank(d, now)
	res.Rank = d.Rank
	res.Total = d.TotalParticipants
	return res
}

// Leaderboard returns the cohort board at now.
func (e *Engine) Leaderboard(d *Data, userName string, now time.Time) []Entry {
	return e.ranker.Board(d.League, d.WeekStart, userName, d.WeeklyXP, now)
}

// DaysLeft returns whole days remaining in the stored week.
func (d *Data) DaysLeft(now time.Time) int {
	if now.After(d.WeekEnd) {
		return 0
	}
	return int(d.WeekEnd.Sub(now) / (24 * time.Hour))
}

// Zone reports where the current rank sits against the tier's slots.
func (d *Data) Zone() string {
	cfg := ConfigFor(d.League)
	switch {
	case d.Rank <= cfg.PromotionSlots && d.League.Up() != d.League:
		return "promotion"
	case cfg.RelegationSlots > 0 && d.Rank >= d.TotalParticipants-cfg.RelegationSlots+1 && d.League.Down() != d.League:
		return "relegation"
	}
	return "safe"
}
