package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/service"
	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var startStr, endStr, task, project string
	var reopen bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a record by id or short prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			fieldFlags := []string{"start", "end", "task", "project", "reopen"}
			anyFlag := false
			for _, name := range fieldFlags {
				if cmd.Flags().Changed(name) {
					anyFlag = true
					break
				}
			}

			var patch service.EditPatch
			if !anyFlag {
				if !app.interactive() {
					return fmt.Errorf("no fields given; pass --start/--end/--task/--project or run interactively")
				}
				current, err := app.Reports.Get(ctx, args[0])
				if err != nil {
					return err
				}
				patch, err = editForm(current, now)
				if err != nil {
					return err
				}
			} else {
				if startStr != "" {
					start, err := timeparse.Resolve(startStr, now)
					if err != nil {
						return fmt.Errorf("--start: %w", err)
					}
					patch.Start = &start
				}
				switch {
				case reopen:
					patch.ClearEnd = true
				case endStr != "":
					end, err := timeparse.Resolve(endStr, now)
					if err != nil {
						return fmt.Errorf("--end: %w", err)
					}
					patch.End = &end
				}
				if cmd.Flags().Changed("task") {
					patch.Task = &task
				}
				if cmd.Flags().Changed("project") {
					patch.Project = &project
				}
			}

			edited, err := app.Tracker.Edit(ctx, args[0], patch)
			if err != nil {
				return err
			}

			app.logger().Info("record updated",
				"record", edited.ShortID(), "project", edited.ProjectName, "task", edited.Task)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "New start time")
	cmd.Flags().StringVar(&endStr, "end", "", "New end time")
	cmd.Flags().StringVar(&task, "task", "", "New task description")
	cmd.Flags().StringVar(&project, "project", "", "New project (created if unknown)")
	cmd.Flags().BoolVar(&reopen, "reopen", false, "Clear the end time, making the record run again")

	return cmd
}

// editForm opens a pre-filled interactive form for the record and turns the
// submitted values into a patch. An emptied end field reopens the record.
func editForm(current *domain.RecordWithProject, now time.Time) (service.EditPatch, error) {
	const layout = "2006-01-02 15:04:05"

	start := current.StartedAt.Local().Format(layout)
	end := ""
	if current.EndedAt != nil {
		end = current.EndedAt.Local().Format(layout)
	}
	project := current.ProjectName
	task := current.Task

	form := newEditFormModel(&start, &end, &project, &task, now)
	if err := form.Run(); err != nil {
		return service.EditPatch{}, fmt.Errorf("edit form: %w", err)
	}

	var patch service.EditPatch
	startVal, err := timeparse.Resolve(start, now)
	if err != nil {
		return service.EditPatch{}, fmt.Errorf("start: %w", err)
	}
	patch.Start = &startVal

	if end == "" {
		patch.ClearEnd = true
	} else {
		endVal, err := timeparse.Resolve(end, now)
		if err != nil {
			return service.EditPatch{}, fmt.Errorf("end: %w", err)
		}
		patch.End = &endVal
	}

	patch.Project = &project
	patch.Task = &task
	return patch, nil
}
