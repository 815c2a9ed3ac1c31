// Package league runs the weekly seven-tier promotion/relegation ladder.
package league

import "fmt"

// Tier is one rung of the ladder.
type Tier string

const (
	Bronze   Tier = "bronze"
	Silver   Tier = "silver"
	Gold     Tier = "gold"
	Sapphire Tier = "sapphire"
	Ruby     Tier = "ruby"
	Emerald  Tier = "emerald"
	Obsidian Tier = "obsidian"
)

var ladder = []Tier{Bronze, Silver, Gold, Sapphire, Ruby, Emerald, Obsidian}

// AllTiers returns the ladder bottom to top.
func AllTiers() []Tier {
	return append([]Tier(nil), ladder...)
}

// Index returns the position on the ladder, or -1 for an unknown tier.
func (t Tier) Index() int {
	for i, l := range ladder {
		if l == t {
			return i
		}
	}
	return -1
}

func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// Up returns the next tier up, or t itself at the top.
func (t Tier) Up() Tier {
	i := t.Index()
	if i < 0 || i == len(ladder)-1 {
		return t
	}
	return ladder[i+1]
}

// Down returns the next tier down, or t itself at the bottom.
func (t Tier) Down() Tier {
	i := t.Index()
	if i <= 0 {
		return t
	}
	return ladder[i-1]
}

// Name is the display name.
func (t Tier) Name() string {
	if c, ok := configs[t]; ok {
		return c.Name
	}
	return string(t)
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown league %q", s)
	}
	return t, nil
}

// Config is the per-tier slot and size configuration.
type Config struct {
	Name            string
	PromotionSlots  int
	RelegationSlots int
	MinParticipants int
	MaxParticipants int
}

var configs = map[Tier]Config{
	Bronze:   {Name: "Bronze", PromotionSlots: 10, RelegationSlots: 0, MinParticipants: 20, MaxParticipants: 30},
	Silver:   {Name: "Silver", PromotionSlots: 7, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
	Gold:     {Name: "Gold", PromotionSlots: 6, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
	Sapphire: {Name: "Sapphire", PromotionSlots: 5, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
	Ruby:     {Name: "Ruby", PromotionSlots: 5, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
	Emerald:  {Name: "Emerald", PromotionSlots: 4, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
	Obsidian: {Name: "Obsidian", PromotionSlots: 0, RelegationSlots: 5, MinParticipants: 20, MaxParticipants: 30},
}

// ConfigFor returns the configuration of t. Unknown tiers get Bronze's.
func ConfigFor(t Tier) Config {
	if c, ok := configs[t]; ok {
		return c
	}
	return configs[Bronze]
}

// Movement is the tier change at the end of a week.
type Movement struct {
	From      Tier
	To        Tier
	Promoted  bool
	Relegated bool
}

// ApplyWeekResult decides promotion or relegation from a final rank.
// The top tier never promotes and the bottom tier never relegates.
func ApplyWeekResult(t Tier, rank, total int) Movement {
	cfg := ConfigFor(t)
	m := Movement{From: t, To: t}
	switch {
	case rank <= cfg.PromotionSlots && t.Up() != t:
		m.To = t.Up()
		m.Promoted = true
	case cfg.RelegationSlots > 0 && rank >= total-cfg.RelegationSlots+1 && t.Down() != t:
		m.To = t.Down()
		m.Relegated = true
	}
	return m
}
