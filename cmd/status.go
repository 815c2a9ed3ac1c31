package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/ui/layout"
)

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"stats"},
		Short:   "Show hearts, gems, streak, quests and league at a glance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, runStatus(o))
		},
	}
}

func runStatus(o *rootOptions) func(ctx context.Context, a *app.App, out io.Writer) error {
	return func(ctx context.Context, a *app.App, out io.Writer) error {
		now := a.Now()
		w := o.cardWidth()
		gs := a.Game.Load(ctx, now)
		st := a.Streak.Stats(ctx, now)

		show(out, layout.Join(
			renderHeader("", gs, st.Current, w),
			renderHearts(gs, now),
			renderStreak(st, w),
			renderQuests(a.Quests.Load(ctx, now), now, w),
			renderLeague(a.League.Load(ctx, now), now, w),
		))
		return nil
	}
}
