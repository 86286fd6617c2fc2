package cli

import (
	"log/slog"

	"github.com/MrJohz/timesheettool/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands, plus
// the process-level knobs the commands adjust.
type App struct {
	Tracker  service.TrackerService
	Reports  service.ReportService
	Settings service.SettingsService

	// IsInteractive reports whether stdin/stdout are attached to a terminal;
	// the edit form only opens interactively.
	IsInteractive func() bool

	// LogLevel is the level of the process slog handler; the global
	// --verbose/--quiet flags adjust it before any command runs.
	LogLevel *slog.LevelVar
	Logger   *slog.Logger
}

// logger returns the app logger, defaulting to slog's process logger so
// commands never nil-check.
func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tst" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose int
	var quiet bool

	root := &cobra.Command{
		Use:           "tst",
		Short:         "Track time spent on projects and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.LogLevel == nil {
				return
			}
			switch {
			case quiet:
				app.LogLevel.Set(logLevelSilent)
			case verbose == 1:
				app.LogLevel.Set(slog.LevelInfo)
			case verbose >= 2:
				app.LogLevel.Set(slog.LevelDebug)
			default:
				app.LogLevel.Set(slog.LevelWarn)
			}
		},
	}

	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log output (-v info, -vv debug)")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "Silence all log output")

	root.AddCommand(
		newGoCmd(app),
		newStopCmd(app),
		newEditCmd(app),
		newLsCmd(app),
		newOvertimeCmd(app),
		newConfigCmd(app),
		newDashboardCmd(app),
	)

	return root
}

// logLevelSilent sits above every level slog defines, so --quiet drops even
// errors.
const logLevelSilent = slog.Level(127)
