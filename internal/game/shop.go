package game

import "fmt"

// HeartCost is the gem price of one heart.
const HeartCost = 10

// PurchaseResult reports an expected shop outcome. Failures never mutate state.
type PurchaseResult struct {
	Success bool
	Message string
}

// SpendGems deducts amount when affordable.
func (s *GameState) SpendGems(amount int) PurchaseResult {
	if amount < 0 {
		return PurchaseResult{Message: "Invalid amount"}
	}
	if s.Gems < amount {
		return PurchaseResult{Message: fmt.Sprintf("Not enough gems: need %d, have %d", amount, s.Gems)}
	}
	s.Gems -= amount
	return PurchaseResult{Success: true, Message: fmt.Sprintf("Spent %d gems", amount)}
}

// PurchaseHearts buys n hearts at HeartCost each, never beyond MaxHearts.
func (s *GameState) PurchaseHearts(n int) PurchaseResult {
	if n <= 0 {
		return PurchaseResult{Message: "Choose at least one heart"}
	}
	missing := s.MaxHearts - s.Hearts
	if missing <= 0 {
		return PurchaseResult{Message: "Hearts are already full"}
	}
	if n > missing {
		n = missing
	}
	res := s.SpendGems(n * HeartCost)
	if !res.Success {
		return res
	}
	s.GainHearts(n)
	return PurchaseResult{Success: true, Message: fmt.Sprintf("Bought %d heart(s) for %d gems", n, n*HeartCost)}
}
