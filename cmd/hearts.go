package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/game"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newHeartsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hearts",
		Short: "Show hearts and refill time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				show(out, renderHearts(a.Game.Load(ctx, now), now))
				return nil
			})
		},
	}

	lose := &cobra.Command{
		Use:   "lose",
		Short: "Record a wrong answer that costs a heart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				gs, err := a.Game.LoseHeart(ctx, now)
				if err != nil {
					return err
				}
				show(out, renderHearts(gs, now))
				if gs.Hearts == 0 {
					show(out, theme.Warn.Render(fmt.Sprintf("Out of hearts. Wait for a refill or buy one for %d gems.", game.HeartCost)))
				}
				return nil
			})
		},
	}

	buy := &cobra.Command{
		Use:   "buy [n]",
		Short: fmt.Sprintf("Buy hearts for %d gems each", game.HeartCost),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("heart count %q: %w", args[0], err)
				}
				n = v
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				res, gs, err := a.BuyHearts(ctx, n)
				if err != nil {
					return err
				}
				if !res.Success {
					show(out, theme.Bad.Render(res.Message))
					return nil
				}
				show(out, theme.Good.Render(res.Message))
				show(out, renderHearts(gs, a.Now()))
				return nil
			})
		},
	}

	cmd.AddCommand(lose, buy)
	return cmd
}
