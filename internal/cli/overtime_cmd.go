package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/cli/formatter"
	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/spf13/cobra"
)

func newOvertimeCmd(app *App) *cobra.Command {
	var sinceStr string
	var hours float64

	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Show the running overtime balance per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			since, err := timeparse.ResolveSince(sinceStr, now)
			if err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			until, err := timeparse.ResolveSince("now", now)
			if err != nil {
				return err
			}

			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			expected := settings.Workday()
			if cmd.Flags().Changed("hours") {
				expected = time.Duration(hours * float64(time.Hour))
			}

			days, err := app.Reports.Overtime(ctx, since, until, expected, settings.Rounding(), now)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOvertime(days))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sinceStr, "since", "s", "1 week", `Range start ("2 weeks", "3d", "now")`)
	cmd.Flags().Float64Var(&hours, "hours", 8, "Expected hours of work per day")

	return cmd
}
