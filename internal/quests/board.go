package quests

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gitalearn/internal/calendar"
)

// Set is one persisted daily or weekly quest set. Date is set for daily
// sets and WeekStart for weekly ones; both are calendar date keys.
type Set struct {
	Date          string  `json:"date,omitempty"`
	WeekStart     string  `json:"weekStart,omitempty"`
	Quests        []Quest `json:"quests"`
	AllCompleted  bool    `json:"allCompleted"`
	BonusXPEarned int     `json:"bonusXpEarned"`
}

// Board holds both active quest sets.
type Board struct {
	Daily  Set
	Weekly Set
}

// Reward is the claimable payout.
type Reward struct {
	XP     int
	Gems   int
	Quests int
}

func (r Reward) Empty() bool {
	return r.XP == 0 && r.Gems == 0
}

// Update is the outcome of UpdateProgress.
type Update struct {
	Completed []Quest
	BonusXP   int
}

func (s *Set) update(t QuestType, amount, bonus int, now time.Time) Update {
	var u Update
	for i := range s.Quests {
		q := &s.Quests[i]
		if q.Type != t || q.Expired(now) {
			continue
		}
		if q.advance(amount, now) {
			u.Completed = append(u.Completed, *q)
		}
	}
	if !s.AllCompleted && len(s.Quests) > 0 && s.allDone() {
		s.AllCompleted = true
		s.BonusXPEarned = bonus
		u.BonusXP = bonus
	}
	return u
}

func (s *Set) allDone() bool {
	for i := range s.Quests {
		if !s.Quests[i].Completed() {
			return false
		}
	}
	return true
}

func (s *Set) claim(now time.Time) Reward {
	var r Reward
	for i := range s.Quests {
		q := &s.Quests[i]
		if !q.Claimable() {
			continue
		}
		at := now
		q.ClaimedAt = &at
		r.XP += q.XPReward
		r.Gems += q.GemReward
		r.Quests++
	}
	r.XP += s.BonusXPEarned
	s.BonusXPEarned = 0
	return r
}

func (s *Set) pending() Reward {
	var r Reward
	for i := range s.Quests {
		if s.Quests[i].Claimable() {
			r.XP += s.Quests[i].XPReward
			r.Gems += s.Quests[i].GemReward
			r.Quests++
		}
	}
	r.XP += s.BonusXPEarned
	return r
}

// UpdateProgress adds amount to every active quest of type t in both sets.
func (b *Board) UpdateProgress(t QuestType, amount int, now time.Time) Update {
	d := b.Daily.update(t, amount, DailyBonusXP, now)
	w := b.Weekly.update(t, amount, WeeklyBonusXP, now)
	return Update{
		Completed: append(d.Completed, w.Completed...),
		BonusXP:   d.BonusXP + w.BonusXP,
	}
}

// ClaimRewards collects every unclaimed completed quest and set bonus.
// A second call without new completions returns an empty reward.
func (b *Board) ClaimRewards(now time.Time) Reward {
	d := b.Daily.claim(now)
	w := b.Weekly.claim(now)
	return Reward{XP: d.XP + w.XP, Gems: d.Gems + w.Gems, Quests: d.Quests + w.Quests}
}

// Pending returns what ClaimRewards would pay out without claiming.
func (b *Board) Pending() Reward {
	d := b.Daily.pending()
	w := b.Weekly.pending()
	return Reward{XP: d.XP + w.XP, Gems: d.Gems + w.Gems, Quests: d.Quests + w.Quests}
}

// Generator draws new quest sets from the template pools.
type Generator struct {
	rng   *rand.Rand
	newID func() string
}

// NewGenerator returns a generator drawing from rng. A nil rng is seeded
// from the clock.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17))
	}
	return &Generator{rng: rng, newID: uuid.NewString}
}

func (g *Generator) draw(pool []template, n int, freq Frequency, now, expires time.Time) []Quest {
	if n > len(pool) {
		n = len(pool)
	}
	perm := g.rng.Perm(len(pool))[:n]
	out := make([]Quest, 0, n)
	for _, idx := range perm {
		tpl := pool[idx]
		out = append(out, Quest{
			ID:          g.newID(),
			Type:        tpl.Type,
			Title:       tpl.Title,
			Description: tpl.Description,
			Icon:        tpl.Icon,
			Color:       tpl.Color,
			Target:      tpl.Target,
			XPReward:    tpl.XP,
			GemReward:   tpl.Gems,
			Frequency:   freq,
			CreatedAt:   now,
			ExpiresAt:   expires,
			Status:      StatusActive,
		})
	}
	return out
}

// NewDaily generates the daily set for now's calendar day.
func (g *Generator) NewDaily(now time.Time) Set {
	return Set{
		Date:   calendar.DateKey(now),
		Quests: g.draw(dailyPool, DailyQuestCount, Daily, now, calendar.EndOfDay(now)),
	}
}

// NewWeekly generates the weekly set for the week containing now.
func (g *Generator) NewWeekly(now time.Time) Set {
	start := calendar.WeekStart(now)
	return Set{
		WeekStart: calendar.DateKey(start),
		Quests:    g.draw(weeklyPool, WeeklyQuestCount, Weekly, now, start.AddDate(0, 0, 7)),
	}
}

// Refresh replaces any set whose date or week key is not current. It
// reports which sets were regenerated.
func (g *Generator) Refresh(b *Board, now time.Time) (daily, weekly bool) {
	if b.Daily.Date != calendar.DateKey(now) {
		b.Daily = g.NewDaily(now)
		daily = true
	}
	if b.Weekly.WeekStart != calendar.DateKey(calendar.WeekStart(now)) {
		b.Weekly = g.NewWeekly(now)
		weekly = true
	}
	return daily, weekly
}
