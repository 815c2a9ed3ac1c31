package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newQuestsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show daily and weekly quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				show(out, renderQuests(a.Quests.Load(ctx, now), now, o.cardWidth()))
				return nil
			})
		},
	}

	claim := &cobra.Command{
		Use:   "claim",
		Short: "Collect rewards for completed quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				r, gs, err := a.ClaimQuests(ctx)
				if err != nil {
					return err
				}
				if r.Empty() {
					show(out, theme.Hint.Render("No quest rewards to claim yet."))
					return nil
				}
				show(out, theme.Good.Render(fmt.Sprintf("Claimed %d quest(s): +%d XP, +%d gems.", r.Quests, r.XP, r.Gems))+
					theme.Hint.Render(fmt.Sprintf(" Now %d XP, %d gems.", gs.XP, gs.Gems)))
				return nil
			})
		},
	}

	cmd.AddCommand(claim)
	return cmd
}
