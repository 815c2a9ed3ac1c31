package game

import "time"

func (s *GameState) refillInterval() time.Duration {
	if s.HeartRefillInterval <= 0 {
		return HeartRefillInterval
	}
	return time.Duration(s.HeartRefillInterval) * time.Minute
}

// RefillIfDue adds one heart per whole refill interval elapsed since
// HeartsLastRefill, capped at MaxHearts. The refill timestamp advances by
// exactly the intervals consumed so partial intervals carry over.
// Returns the number of hearts added.
func (s *GameState) RefillIfDue(now time.Time) int {
	if s.Hearts >= s.MaxHearts {
		return 0
	}
	interval := s.refillInterval()
	elapsed := now.Sub(s.HeartsLastRefill)
	if elapsed < interval {
		return 0
	}

	periods := int(elapsed / interval)
	before := s.Hearts
	s.Hearts = clamp(s.Hearts+periods, 0, s.MaxHearts)
	s.HeartsLastRefill = s.HeartsLastRefill.Add(time.Duration(periods) * interval)
	return s.Hearts - before
}

// LoseHeart removes one heart, never going below zero. Losing the first
// heart from full starts the refill timer.
func (s *GameState) LoseHeart(now time.Time) {
	if s.Hearts >= s.MaxHearts {
		s.HeartsLastRefill = now
	}
	if s.Hearts > 0 {
		s.Hearts--
	}
	s.LastHeartLoss = now
}

// GainHearts adds n hearts capped at MaxHearts.
func (s *GameState) GainHearts(n int) {
	if n <= 0 {
		return
	}
	s.Hearts = clamp(s.Hearts+n, 0, s.MaxHearts)
}

// MinutesUntilNextHeart returns 0 when full, otherwise the minutes left in
// the current refill interval.
func (s *GameState) MinutesUntilNextHeart(now time.Time) int {
	if s.Hearts >= s.MaxHearts {
		return 0
	}
	intervalMin := int(s.refillInterval() / time.Minute)
	elapsedMin := int(now.Sub(s.HeartsLastRefill) / time.Minute)
	if elapsedMin < 0 {
		elapsedMin = 0
	}
	return intervalMin - elapsedMin%intervalMin
}
