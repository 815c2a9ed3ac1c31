package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/spacedrep"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

func newReviewCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Spaced repetition of memorized verses",
	}

	ratings := make([]string, 0, 4)
	for _, r := range spacedrep.AllRatings() {
		ratings = append(ratings, string(r))
	}

	rate := &cobra.Command{
		Use:     "rate <chapter.verse> <" + strings.Join(ratings, "|") + ">",
		Short:   "Record how well you recalled a verse",
		Example: "  gitalearn review rate 2.47 good",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := spacedrep.ParseItemKey(args[0])
			if err != nil {
				return err
			}
			rating, err := spacedrep.ParseRating(args[1])
			if err != nil {
				return err
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				p, err := a.Reviews.Review(ctx, key, rating, now)
				if err != nil {
					return err
				}
				show(out, renderReview(p, now))
				return nil
			})
		},
	}

	due := &cobra.Command{
		Use:   "due",
		Short: "List verses due for review, most overdue first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				items := a.Reviews.Due(ctx, now)
				if len(items) == 0 {
					show(out, theme.Good.Render("Nothing due. Well done."))
					return nil
				}
				for _, p := range items {
					show(out, renderReview(p, now))
				}
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [chapter.verse]",
		Short: "Show review progress for one verse or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				now := a.Now()
				if len(args) == 1 {
					key, err := spacedrep.ParseItemKey(args[0])
					if err != nil {
						return err
					}
					p := a.Reviews.Get(ctx, key)
					if p == nil {
						return fmt.Errorf("verse %s has never been reviewed", key)
					}
					show(out, renderReview(*p, now))
					return nil
				}
				for _, p := range a.Reviews.Load(ctx) {
					show(out, renderReview(p, now))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(rate, due, showCmd)
	return cmd
}
