package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/MrJohz/timesheettool/internal/cli/formatter"
	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/spf13/cobra"
)

func newLsCmd(app *App) *cobra.Command {
	var sinceStr, untilStr, roundingStr string
	granularity := aggregate.GranularityAuto

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "list-records"},
		Short:   "List records in a time range",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			since, err := timeparse.ResolveSince(sinceStr, now)
			if err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			until, err := timeparse.ResolveSince(untilStr, now)
			if err != nil {
				return fmt.Errorf("--until: %w", err)
			}

			rounding, err := resolveRounding(ctx, app, roundingStr)
			if err != nil {
				return err
			}

			report, err := app.Reports.List(ctx, since, until, granularity, rounding, now)
			if err != nil {
				return err
			}

			if report.Granularity == aggregate.GranularityAll {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecords(report.Records, now))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report.Buckets, report.Granularity))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sinceStr, "since", "s", "1 week", `Range start ("2 weeks", "3d", "now")`)
	cmd.Flags().StringVarP(&untilStr, "until", "u", "now", "Range end, same grammar as --since")
	cmd.Flags().VarP(newGranularityFlag(&granularity), "granularity", "g", "Grouping: all, daily, weekly, monthly or auto")
	cmd.Flags().StringVarP(&roundingStr, "rounding", "r", "", `Rounding unit, e.g. "15m" (default from config)`)

	return cmd
}

// resolveRounding picks the rounding unit: the per-invocation flag when
// given, otherwise the configured default.
func resolveRounding(ctx context.Context, app *App, flag string) (time.Duration, error) {
	if flag != "" {
		rounding, err := time.ParseDuration(flag)
		if err != nil {
			return 0, fmt.Errorf("--rounding: %w", err)
		}
		return rounding, nil
	}
	settings, err := app.Settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	return settings.Rounding(), nil
}
