package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/rvalverdem/takt/internal/engine"
	"github.com/rvalverdem/takt/internal/service"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <order>",
		Short: "Live terminal dashboard for a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal")
			}

			wo, err := app.Orders.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}

			m := newWatchModel(app, wo.ID, interval)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "How often to reload the scan log")
	return cmd
}

// ── messages ─────────────────────────────────────────────────────────────────

// watchTickMsg drives the once-a-second elapsed-time repaint.
type watchTickMsg time.Time

// watchLoadedMsg signals that the summary has been rebuilt from the log.
type watchLoadedMsg struct {
	res *service.SummaryResult
	err error
}

// ── model ────────────────────────────────────────────────────────────────────

type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

var watchKeys = watchKeyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type watchModel struct {
	app         *App
	workOrderID string
	interval    time.Duration

	res      *service.SummaryResult
	err      error
	now      time.Time
	lastLoad time.Time
	loading  bool
}

func newWatchModel(app *App, workOrderID string, interval time.Duration) *watchModel {
	// Ticks arrive once a second; a shorter reload interval cannot be
	// honored and a zero one must not be divided by.
	if interval < time.Second {
		interval = time.Second
	}
	now := time.Now().UTC()
	return &watchModel{
		app:         app,
		workOrderID: workOrderID,
		interval:    interval,
		now:         now,
		lastLoad:    now,
		loading:     true,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), watchTick())
}

func (m *watchModel) load() tea.Cmd {
	app, id := m.app, m.workOrderID
	return func() tea.Msg {
		res, err := app.Scans.BuildSummary(context.Background(), id)
		return watchLoadedMsg{res: res, err: err}
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, watchKeys.Refresh):
			m.loading = true
			m.lastLoad = m.now
			return m, m.load()
		}

	case watchTickMsg:
		m.now = time.Time(msg).UTC()
		// Reload the log once per interval; elapsed counters repaint
		// every tick regardless.
		if m.now.Sub(m.lastLoad) >= m.interval {
			m.lastLoad = m.now
			return m, tea.Batch(m.load(), watchTick())
		}
		return m, watchTick()

	case watchLoadedMsg:
		m.loading = false
		m.res, m.err = msg.res, msg.err
	}

	return m, nil
}

func (m *watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n\npress q to quit\n"
	}
	if m.res == nil {
		return formatter.StyleDim.Render("loading...") + "\n"
	}

	var b strings.Builder
	wo := m.res.WorkOrder

	b.WriteString(fmt.Sprintf("%s  %s\n",
		formatter.StyleBold.Render(wo.OrderNo),
		formatter.StatusIndicator(wo.Status)))
	b.WriteString(fmt.Sprintf("Completed %d/%d   In progress %d   Workers %d",
		m.res.Summary.CompletedUnits, wo.QtyPlanned,
		m.res.Summary.InProgressUnits, m.res.Summary.ActiveWorkers))
	if m.res.Summary.AvgCycleSeconds > 0 {
		b.WriteString(fmt.Sprintf("   Avg cycle %s", formatter.Seconds(m.res.Summary.AvgCycleSeconds)))
	}
	b.WriteString("\n\n")

	var rows [][]string
	for i := range m.res.Sessions {
		s := &m.res.Sessions[i]
		if !s.Open() {
			continue
		}
		rows = append(rows, []string{
			s.Serial,
			s.EmployeeID,
			s.InAt.Local().Format("15:04:05"),
			formatter.Seconds(engine.LiveElapsed(*s, m.res.Timing, m.now)),
		})
	}
	if len(rows) == 0 {
		b.WriteString(formatter.StyleDim.Render("no open sessions") + "\n")
	} else {
		b.WriteString(formatter.RenderTable(
			[]string{"SERIAL", "EMPLOYEE", "IN", "ELAPSED"}, rows))
	}

	if n := len(m.res.Anomalies); n > 0 {
		b.WriteString(formatter.StyleYellow.Render(fmt.Sprintf("\n%d anomalous scan(s)\n", n)))
	}

	status := "r refresh · q quit"
	if m.loading {
		status = "reloading · " + status
	}
	b.WriteString("\n" + formatter.StyleDim.Render(status) + "\n")

	return b.String()
}
