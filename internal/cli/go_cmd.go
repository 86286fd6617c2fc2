package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/service"
	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/spf13/cobra"
)

func newGoCmd(app *App) *cobra.Command {
	var startStr string
	var endStr string
	var allowOverlap bool

	cmd := &cobra.Command{
		Use:     "go PROJECT TASK",
		Aliases: []string{"start", "record"},
		Short:   "Start tracking a new record",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			start := now
			if startStr != "" {
				var err error
				start, err = timeparse.Resolve(startStr, now)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}

			var end *time.Time
			if endStr != "" {
				resolved, err := timeparse.Resolve(endStr, now)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
				end = &resolved
			}

			result, err := app.Tracker.Start(context.Background(), service.StartRequest{
				Project:      args[0],
				Task:         args[1],
				Start:        start,
				End:          end,
				AllowOverlap: allowOverlap,
			})
			if err != nil {
				return err
			}

			log := app.logger()
			if result.Truncated != nil {
				if result.Continuation != nil {
					log.Info("updated previous record to end and resume around the new one",
						"task", result.Truncated.Task,
						"ends_at", start,
						"resumes_at", result.Continuation.StartedAt)
				} else {
					log.Info("updated previous record to end at the new start",
						"task", result.Truncated.Task,
						"ends_at", start)
				}
			}
			if end == nil {
				log.Info("added record", "task", args[1], "started_at", start)
			} else {
				log.Info("added record", "task", args[1], "started_at", start, "ended_at", *end)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&startStr, "start", "s", "", "Start time (hh:mm or yyyy-mm-dd hh:mm), default now")
	cmd.Flags().StringVarP(&endStr, "end", "e", "", "End time; leave unset to keep the record running")
	cmd.Flags().BoolVar(&allowOverlap, "allow-overlap", false, "Do not complete overlapping records")

	return cmd
}
