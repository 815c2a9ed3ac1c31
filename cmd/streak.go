package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/streak"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newStreakCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the daily streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				show(out, renderStreak(a.Streak.Stats(ctx, a.Now()), o.cardWidth()))
				return nil
			})
		},
	}

	freeze := &cobra.Command{
		Use:   "freeze",
		Short: "Spend gems on 24 hours of streak protection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				res, err := a.BuyFreeze(ctx)
				if err != nil {
					return err
				}
				showPurchase(out, res)
				return nil
			})
		},
	}

	repair := &cobra.Command{
		Use:   "repair",
		Short: "Spend gems to restore a lost streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				res, err := a.RepairStreak(ctx)
				if err != nil {
					return err
				}
				showPurchase(out, res)
				return nil
			})
		},
	}

	cmd.AddCommand(freeze, repair)
	return cmd
}

func showPurchase(out io.Writer, res streak.PurchaseResult) {
	if res.Success {
		show(out, theme.Good.Render(res.Message)+theme.Hint.Render(fmt.Sprintf(" (-%d gems)", res.Cost)))
		return
	}
	show(out, theme.Bad.Render(res.Message))
}
