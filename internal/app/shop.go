package app

import (
	"context"
	"fmt"

	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/quests"
	"github.com/abhisek/gitalearn/internal/streak"
)

// BuyFreeze spends FreezeCost gems on 24 hours of streak protection.
func (a *App) BuyFreeze(ctx context.Context) (streak.PurchaseResult, error) {
	now := a.Now()
	gs := a.Game.Load(ctx, now)
	d := a.Streak.Load(ctx, now)
	return a.settle(ctx, gs, d, d.PurchaseFreeze(gs.Gems, now))
}

// RepairStreak spends RepairCost gems to restore the most recently lost streak.
func (a *App) RepairStreak(ctx context.Context) (streak.PurchaseResult, error) {
	now := a.Now()
	gs := a.Game.Load(ctx, now)
	d := a.Streak.Load(ctx, now)
	return a.settle(ctx, gs, d, d.Repair(gs.Gems, d.LostStreak, now))
}

// settle charges a successful streak purchase and persists both documents.
func (a *App) settle(ctx context.Context, gs *game.GameState, d *streak.Data, res streak.PurchaseResult) (streak.PurchaseResult, error) {
	if !res.Success {
		return res, nil
	}
	if spent := gs.SpendGems(res.Cost); !spent.Success {
		return streak.PurchaseResult{Message: spent.Message}, nil
	}
	if err := a.Streak.Save(ctx, d); err != nil {
		return res, err
	}
	if err := a.Game.Save(ctx, gs); err != nil {
		return res, err
	}
	a.Logger.Info("streak purchase", "cost", res.Cost, "gems", gs.Gems, "message", res.Message)
	return res, nil
}

// BuyHearts spends gems on up to n hearts.
func (a *App) BuyHearts(ctx context.Context, n int) (game.PurchaseResult, *game.GameState, error) {
	return a.Game.PurchaseHearts(ctx, n, a.Now())
}

// ClaimQuests collects finished quest rewards and credits them to the
// game state.
func (a *App) ClaimQuests(ctx context.Context) (quests.Reward, *game.GameState, error) {
	now := a.Now()
	r, err := a.Quests.ClaimRewards(ctx, now)
	if err != nil {
		return r, nil, err
	}
	gs := a.Game.Load(ctx, now)
	if r.Empty() {
		return r, gs, nil
	}
	gs.AddXP(r.XP)
	gs.AddGems(r.Gems)
	if err := a.Game.Save(ctx, gs); err != nil {
		return r, gs, fmt.Errorf("credit quest rewards: %w", err)
	}
	return r, gs, nil
}
