package cmd

import (
	"context"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/gitalearn/internal/app"
	"github.com/abhisek/gitalearn/internal/config"
	"github.com/abhisek/gitalearn/internal/ui/layout"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	timezone   string
	width      int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "gitalearn",
		Short:         "Learn the Bhagavad Gita one verse at a time",
		Long:          "Gitalearn tracks verse reviews, streaks, quests, hearts and weekly leagues for Bhagavad Gita study.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, runStatus(o))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Path to config.toml (default $XDG_CONFIG_HOME/gitalearn/config.toml)")
	pf.StringVar(&o.dbPath, "db", "", "Path to SQLite database file (overrides GITALEARN_DB)")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&o.timezone, "tz", "", "IANA time zone used for day boundaries")
	pf.IntVar(&o.width, "width", layout.DefaultWidth, "Card width in columns")

	root.AddCommand(
		newStatusCmd(o),
		newLessonCmd(o),
		newReviewCmd(o),
		newStreakCmd(o),
		newQuestsCmd(o),
		newLeagueCmd(o),
		newHeartsCmd(o),
		newAchievementsCmd(o),
		newExportCmd(o),
		newWatchCmd(o),
		newResetCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// config loads the file and environment, then applies flag overrides.
func (o *rootOptions) config() (config.Config, error) {
	cfg, err := config.Load(config.Options{Path: o.configPath})
	if err != nil {
		return cfg, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.timezone != "" {
		cfg.Timezone = o.timezone
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "gitalearn",
	})
}

// withApp opens the app for the duration of fn.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	cfg, err := o.config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.Open(ctx, cfg, newLogger(cmd.ErrOrStderr(), cfg.Level()))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a, cmd.OutOrStdout())
}

func (o *rootOptions) cardWidth() int {
	if o.width <= 0 {
		return layout.DefaultWidth
	}
	return max(o.width, layout.MinWidth)
}

// show writes s, downsampling colors to what out supports.
func show(out io.Writer, s string) {
	lipgloss.Fprintln(out, s)
}
