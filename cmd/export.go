package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/report"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Export progress, quests, league and history to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "gitalearn-progress.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				snap, err := a.Snapshot(ctx, limit)
				if err != nil {
					return fmt.Errorf("gather progress: %w", err)
				}
				if err := report.WriteFile(path, snap); err != nil {
					return err
				}
				show(out, theme.Good.Render("Wrote "+path))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "history", 500, "Maximum lessons to include (0 for all)")
	return cmd
}
