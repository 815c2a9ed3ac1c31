package league

import (
	"math/rand/v2"
	"sort"
	"time"
)

// Standing is a rank within a cohort.
type Standing struct {
	Rank  int
	Total int
}

// Entry is one leaderboard row.
type Entry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	IsUser bool   `json:"isCurrentUser"`
}

// Ranker places the user within their league's cohort for a week.
// Implementations backed by real participants rank by descending weekly XP.
type Ranker interface {
	Standing(tier Tier, weekStart time.Time, userXP int, at time.Time) Standing
	Board(tier Tier, weekStart time.Time, userName string, userXP int, at time.Time) []Entry
}

const week = 7 * 24 * time.Hour

var cohortNames = []string{
	"Arjuna", "Bhima", "Nakula", "Sahadeva", "Yudhishthira", "Draupadi",
	"Kunti", "Vidura", "Sanjaya", "Uddhava", "Sudama", "Radha",
	"Mira", "Prahlada", "Dhruva", "Narada", "Shuka", "Vyasa",
	"Savitri", "Gargi", "Maitreyi", "Janaka", "Ambarisha", "Bhishma",
	"Kripa", "Ekalavya", "Satyaki", "Abhimanyu", "Subhadra", "Uttara",
}

type bot struct {
	name    string
	finalXP int
}

// CohortRanker simulates opponents. The cohort for a (week, tier) pair is
// deterministic, and each bot earns its weekly total linearly over the week.
type CohortRanker struct{}

func (CohortRanker) cohort(tier Tier, weekStart time.Time) []bot {
	idx := tier.Index()
	if idx < 0 {
		idx = 0
	}
	rng := rand.New(rand.NewPCG(uint64(weekStart.Unix()), uint64(idx)+1))
	cfg := ConfigFor(tier)

	total := cfg.MinParticipants
	if span := cfg.MaxParticipants - cfg.MinParticipants; span > 0 {
		total += rng.IntN(span + 1)
	}
	if total > len(cohortNames)+1 {
		total = len(cohortNames) + 1
	}

	names := append([]string(nil), cohortNames...)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	// Higher tiers field stronger opponents.
	ceiling := 300 + idx*250
	bots := make([]bot, total-1)
	for i := range bots {
		bots[i] = bot{name: names[i], finalXP: 20 + rng.IntN(ceiling)}
	}
	return bots
}

func weekFraction(weekStart, at time.Time) float64 {
	f := float64(at.Sub(weekStart)) / float64(week)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (b bot) xpAt(frac float64) int {
	return int(float64(b.finalXP) * frac)
}

// Standing ranks userXP among the cohort at time at. Ties favour the user.
func (r CohortRanker) Standing(tier Tier, weekStart time.Time, userXP int, at time.Time) Standing {
	bots := r.cohort(tier, weekStart)
	frac := weekFraction(weekStart, at)
	rank := 1
	for _, b := range bots {
		if b.xpAt(frac) > userXP {
			rank++
		}
	}
	return Standing{Rank: rank, Total: len(bots) + 1}
}

// Board returns the full cohort sorted by descending XP.
func (r CohortRanker) Board(tier Tier, weekStart time.Time, userName string, userXP int, at time.Time) []Entry {
	bots := r.cohort(tier, weekStart)
	frac := weekFraction(weekStart, at)

	entries := make([]Entry, 0, len(bots)+1)
	entries = append(entries, Entry{Name: userName, XP: userXP, IsUser: true})
	for _, b := range bots {
		entries = append(entries, Entry{Name: b.name, XP: b.xpAt(frac)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].XP > entries[j].XP
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
