package cli

import (
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/cli/formatter"
	"github.com/MrJohz/timesheettool/internal/timeparse"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// newEditFormModel builds the interactive edit form, pre-filled with the
// record's current values. Time fields validate through the same parser the
// flags use; the end field may be emptied to reopen the record.
func newEditFormModel(start, end, project, task *string, now time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			timeInput("Start", start, now, false),
			timeInput("End (blank to leave running)", end, now, true),
			huh.NewInput().
				Title("Project").
				Value(project).
				Validate(validateNonEmpty("project")),
			huh.NewInput().
				Title("Task").
				Value(task).
				Validate(validateNonEmpty("task")),
		),
	).WithTheme(tstHuhTheme()).WithShowHelp(false)
}

func timeInput(title string, value *string, now time.Time, optional bool) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("hh:mm or yyyy-mm-dd hh:mm").
		Value(value).
		Validate(func(s string) error {
			if s == "" {
				if optional {
					return nil
				}
				return fmt.Errorf("%s is required", title)
			}
			_, err := timeparse.Resolve(s, now)
			return err
		})
}

func validateNonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// tstHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func tstHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
