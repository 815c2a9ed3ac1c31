package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
)

func newLeagueCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "league",
		Short: "Show this week's league standing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				show(out, renderLeague(a.League.Load(ctx, now), now, o.cardWidth()))
				return nil
			})
		},
	}

	board := &cobra.Command{
		Use:   "board",
		Short: "Show the weekly leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				entries, err := a.League.Leaderboard(ctx, a.Now())
				if err != nil {
					return err
				}
				show(out, renderBoard(entries, o.cardWidth()))
				return nil
			})
		},
	}

	cmd.AddCommand(board)
	return cmd
}
