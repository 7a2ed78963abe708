// Package ui renders live progress for long prime searches.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bignum/internal/primesearch"
)

type searchModel struct {
	title   string
	events  <-chan primesearch.Event
	spinner spinner.Model
	prog    progress.Model
	jobs    []jobRow
	width   int
	done    bool
}

type jobRow struct {
	status   primesearch.Status
	attempts int
	elapsed  time.Duration
	prime    string
	err      string
}

type eventMsg primesearch.Event
type doneMsg struct{}

// NewSearchModel returns a Bubble Tea model that follows jobs search jobs
// through events and quits when the channel is closed.
func NewSearchModel(title string, jobs int, events <-chan primesearch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	rows := make([]jobRow, jobs)
	for i := range rows {
		rows[i].status = primesearch.StatusQueued
	}
	return &searchModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		jobs:    rows,
		width:   80,
	}
}

func (m *searchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(primesearch.Event(msg)), m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *searchModel) View() string {
	if len(m.jobs) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.jobs))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	detailWidth := max(m.width-36, 20)
	for i, row := range m.jobs {
		status := styleStatus(row.status).Render(fmt.Sprintf("%10s", row.status))
		detail := row.prime
		if row.err != "" {
			detail = row.err
		}
		fmt.Fprintf(&b, "  job %-3d %s %8d tries %7s  %s\n",
			i, status, row.attempts, row.elapsed.Round(time.Millisecond), truncate(detail, detailWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *searchModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *searchModel) apply(ev primesearch.Event) tea.Cmd {
	if ev.Job < 0 || ev.Job >= len(m.jobs) {
		return nil
	}
	row := &m.jobs[ev.Job]
	row.status = ev.Status
	if ev.Attempts > row.attempts {
		row.attempts = ev.Attempts
	}
	row.elapsed = ev.Elapsed
	switch ev.Status {
	case primesearch.StatusDone:
		row.prime = ev.Prime.Hex()
	case primesearch.StatusError:
		if ev.Err != nil {
			row.err = ev.Err.Error()
		}
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.jobs)))
}

func (m *searchModel) finished() int {
	n := 0
	for _, row := range m.jobs {
		if row.status == primesearch.StatusDone || row.status == primesearch.StatusError {
			n++
		}
	}
	return n
}

func styleStatus(status primesearch.Status) lipgloss.Style {
	switch status {
	case primesearch.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case primesearch.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case primesearch.StatusSearching:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// truncate shortens value to width terminal cells, keeping the prefix.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
