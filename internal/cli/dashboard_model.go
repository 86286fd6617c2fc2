package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/MrJohz/timesheettool/internal/cli/formatter"
	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLoadedMsg carries a fresh snapshot of the running record and
// today's totals.
type dashboardLoadedMsg struct {
	running *domain.RecordWithProject
	today   []aggregate.Bucket
	err     error
}

// dashboardTickMsg advances the elapsed-time display once a second.
type dashboardTickMsg time.Time

type dashboardKeys struct {
	Refresh key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// dashboardModel is the live view: the running record with a ticking elapsed
// time, and today's rounded per-project totals.
type dashboardModel struct {
	app     *App
	keys    dashboardKeys
	now     time.Time
	loading bool

	running *domain.RecordWithProject
	today   []aggregate.Bucket
	err     error
}

func newDashboardModel(app *App) *dashboardModel {
	return &dashboardModel{
		app:     app,
		keys:    newDashboardKeys(),
		now:     time.Now(),
		loading: true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), dashboardTick())
}

func dashboardTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (m *dashboardModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()

		running, err := app.Reports.Running(ctx)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return dashboardLoadedMsg{err: err}
		}

		settings, err := app.Settings.Get(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		now := time.Now()
		today := startOfToday(now)
		report, err := app.Reports.List(ctx, today, today.AddDate(0, 0, 1),
			aggregate.GranularityDaily, settings.Rounding(), now)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{running: running, today: report.Buckets}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}

	case dashboardTickMsg:
		m.now = time.Time(msg)
		return m, tea.Batch(dashboardTick(), m.load())

	case dashboardLoadedMsg:
		m.loading = false
		m.running = msg.running
		m.today = msg.today
		m.err = msg.err
	}

	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("timesheet"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(formatter.Dim("loading..."))
		b.WriteString("\n")
	case m.running == nil:
		b.WriteString(formatter.Dim("no record running"))
		b.WriteString("\n")
	default:
		elapsed := formatter.FormatDuration(m.running.Duration(m.now))
		b.WriteString(formatter.StyleGreen.Render("● "))
		b.WriteString(formatter.Bold(m.running.ProjectName))
		b.WriteString("  " + m.running.Task)
		b.WriteString("  " + formatter.StyleYellow.Render(elapsed))
		b.WriteString("  " + formatter.ShortID(m.running.ID))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.FormatReport(m.today, aggregate.GranularityDaily))

	b.WriteString("\n")
	b.WriteString(formatter.Dim("r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}

func startOfToday(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
