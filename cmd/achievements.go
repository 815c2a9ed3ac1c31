package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
)

func newAchievementsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				show(out, renderAchievements(a.Game.Load(ctx, a.Now()), o.cardWidth()))
				return nil
			})
		},
	}
}
