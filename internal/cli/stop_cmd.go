package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/spf13/cobra"
)

func newStopCmd(app *App) *cobra.Command {
	var endStr string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			end := now
			if endStr != "" {
				var err error
				end, err = timeparse.Resolve(endStr, now)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}

			stopped, err := app.Tracker.Stop(context.Background(), end)
			if err != nil {
				return err
			}

			app.logger().Info("stopped record",
				"task", stopped.Task, "project", stopped.ProjectName, "ended_at", end)
			return nil
		},
	}

	cmd.Flags().StringVarP(&endStr, "end", "e", "", "End time (hh:mm or yyyy-mm-dd hh:mm), default now")

	return cmd
}
