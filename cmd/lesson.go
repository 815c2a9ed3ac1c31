package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/lesson"
)

func newLessonCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Record lessons",
	}

	var res lesson.Result
	complete := &cobra.Command{
		Use:   "complete",
		Short: "Record a finished lesson and show the rewards",
		Example: `  gitalearn lesson complete --correct 9 --total 10
  gitalearn lesson complete --id ch2-l3 --correct 10 --total 10 --first-try --minutes 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if res.Total <= 0 {
				return fmt.Errorf("--total must be positive")
			}
			if res.Correct < 0 || res.Correct > res.Total {
				return fmt.Errorf("--correct must be between 0 and --total")
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				sum := a.CompleteLesson(ctx, res)
				show(out, renderSummary(sum, o.cardWidth()))
				return nil
			})
		},
	}
	f := complete.Flags()
	f.StringVar(&res.LessonID, "id", "", "Lesson ID; repeated IDs are credited once (default: random)")
	f.IntVar(&res.Correct, "correct", 0, "Correct answers")
	f.IntVar(&res.Total, "total", 0, "Total questions")
	f.BoolVar(&res.FirstTryPerfect, "first-try", false, "Every answer was right on the first try")
	f.IntVar(&res.Minutes, "minutes", 0, "Minutes studied")
	f.BoolVar(&res.CompletedUnit, "unit", false, "This lesson finished a unit")
	_ = complete.MarkFlagRequired("total")

	cmd.AddCommand(complete)
	return cmd
}
