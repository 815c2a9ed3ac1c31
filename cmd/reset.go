package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newResetCmd(o *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset learner data (lesson history is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes hearts, gems, streak, quests, league and review progress; pass --yes to confirm")
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				n, err := a.Reset(ctx)
				if err != nil {
					return err
				}
				show(out, theme.Good.Render(fmt.Sprintf("Reset %d saved documents.", n)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
