package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/cli/formatter"
	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show durable preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatSettings(settings))
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set {rounding|workday} VALUE",
		Short: "Change a preference, e.g. `config set rounding 30m`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := time.ParseDuration(args[1])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[1], err)
			}

			ctx := context.Background()
			var settings *domain.Settings
			switch args[0] {
			case "rounding":
				settings, err = app.Settings.SetRounding(ctx, value)
			case "workday":
				settings, err = app.Settings.SetWorkday(ctx, value)
			default:
				return fmt.Errorf("unknown setting %q (want rounding or workday)", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatSettings(settings))
			return nil
		},
	}
}

func formatSettings(s *domain.Settings) string {
	return formatter.RenderTable(
		[]string{"Setting", "Value"},
		[][]string{
			{"rounding", s.Rounding().String()},
			{"workday", s.Workday().String()},
		},
	)
}
