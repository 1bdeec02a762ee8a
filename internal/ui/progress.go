// Package ui renders live progress for batch checks.
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

	"ic10lsp/internal/driver"
)

// fileState is what a row shows for one file.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateChecking
	stateDone
	stateCached
	stateFailed
)

var stateLabels = [...]string{
	stateQueued:   "queued",
	stateLoading:  "loading",
	stateChecking: "checking",
	stateDone:     "done",
	stateCached:   "cached",
	stateFailed:   "error",
}

func (s fileState) String() string { return stateLabels[s] }

func (s fileState) finished() bool { return s >= stateDone }

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleBusy    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleElapsed = lipgloss.NewStyle().Faint(true)
)

func (s fileState) style() lipgloss.Style {
	switch s {
	case stateDone, stateCached:
		return styleOK
	case stateFailed:
		return styleFailed
	case stateLoading, stateChecking:
		return styleBusy
	}
	return styleIdle
}

type fileRow struct {
	path    string
	state   fileState
	elapsed time.Duration
	err     error
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event

type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events. The model
// quits once the channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleBusy

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = m.width - 4
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one event, or reports the end of the stream.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.state = stateOf(ev.Stage, ev.Status)
	row.elapsed = ev.Elapsed
	row.err = ev.Err
	if len(m.rows) == 0 {
		return nil
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction weighs a file in flight as half done.
func (m *progressModel) fraction() float64 {
	sum := 0.0
	for _, r := range m.rows {
		switch {
		case r.state.finished():
			sum++
		case r.state == stateChecking:
			sum += 0.5
		}
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) finished() int {
	n := 0
	for _, r := range m.rows {
		if r.state.finished() {
			n++
		}
	}
	return n
}

func stateOf(stage driver.Stage, status driver.Status) fileState {
	switch status {
	case driver.StatusDone:
		return stateDone
	case driver.StatusCached:
		return stateCached
	case driver.StatusError:
		return stateFailed
	case driver.StatusWorking:
		if stage == driver.StageLoad {
			return stateLoading
		}
		return stateChecking
	}
	return stateQueued
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.rows))
	if m.done {
		b.WriteString(styleTitle.Render("done: " + header))
	} else {
		b.WriteString(m.spinner.View() + " " + styleTitle.Render(header))
	}
	b.WriteString("\n\n")

	const labelWidth = 8
	pathWidth := max(m.width-labelWidth-16, 20)
	var tally [len(stateLabels)]int
	for _, r := range m.rows {
		tally[r.state]++
		label := r.state.style().Render(fmt.Sprintf("%-*s", labelWidth, r.state))
		fmt.Fprintf(&b, "  %s %s", label, truncate(r.path, pathWidth))
		if r.state.finished() && r.elapsed > 0 {
			b.WriteString(styleElapsed.Render(" " + r.elapsed.Round(time.Millisecond).String()))
		}
		if r.err != nil {
			b.WriteString(styleFailed.Render(": " + truncate(r.err.Error(), pathWidth)))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%d checked, %d cached, %d failed\n", tally[stateDone], tally[stateCached], tally[stateFailed])
	return b.String()
}

// truncate shortens s to width terminal cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
