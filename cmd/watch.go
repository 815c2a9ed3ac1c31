package cmd

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/reminder"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print reminders for at-risk streaks, empty hearts, quests and due reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				notifier := reminder.WriterNotifier{W: out, Format: formatNotice}
				w := a.Watcher(notifier)
				if once {
					for _, n := range w.Check(ctx, a.Now()) {
						if err := notifier.Notify(ctx, n); err != nil {
							return err
						}
					}
					return nil
				}

				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				if err := w.Start(ctx, a.Loc); err != nil {
					return err
				}
				defer w.Stop()
				show(out, theme.Hint.Render("Watching. Press Ctrl+C to stop."))
				<-ctx.Done()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	return cmd
}

func formatNotice(n reminder.Notice) string {
	stamp := theme.Label.Render(n.At.Format("15:04") + " ")
	switch n.Kind {
	case reminder.KindStreakAtRisk, reminder.KindOutOfHearts:
		return stamp + theme.Warn.Render(n.Message)
	case reminder.KindRewardsReady:
		return stamp + theme.Good.Render(n.Message)
	}
	return stamp + theme.Value.Render(n.Message)
}
