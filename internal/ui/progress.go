package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cfmt/internal/corpus"
)

// maxRows bounds the case list; finished rows scroll off first.
const maxRows = 20

type progressModel struct {
	title   string
	events  <-chan corpus.Event
	spinner spinner.Model
	prog    progress.Model
	items   []caseItem
	index   map[string]int
	settled int
	failed  int
	width   int
	done    bool
}

type caseItem struct {
	name   string
	status corpus.Status
}

type eventMsg corpus.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows a corpus run.
// The model quits when events is closed.
func NewProgressModel(title string, cases []string, events <-chan corpus.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]caseItem, 0, len(cases))
	index := make(map[string]int, len(cases))
	for i, name := range cases {
		items = append(items, caseItem{name: name})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(corpus.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyle = map[corpus.Status]lipgloss.Style{
		corpus.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		corpus.StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		corpus.StatusPass:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		corpus.StatusFail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// View draws "title (settled/total[, N failed])", the visible rows and the
// progress bar.
func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	counts := fmt.Sprintf("%d/%d", m.settled, len(m.items))
	if m.failed > 0 {
		counts += fmt.Sprintf(", %d failed", m.failed)
	}
	lead := m.spinner.View()
	if m.done {
		lead = "done:"
	}

	rows := make([]string, 0, maxRows+4)
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%s %s (%s)", lead, m.title, counts)), "")
	nameWidth := max(m.width-12, 20)
	for _, item := range m.visible() {
		label := statusStyle[item.status].Render(fmt.Sprintf("%8s", item.status))
		rows = append(rows, "  "+label+" "+truncate(item.name, nameWidth))
	}
	bar := m.prog.View()
	if m.done {
		bar = m.prog.ViewAs(1.0)
	}
	rows = append(rows, "", bar)
	return strings.Join(rows, "\n") + "\n"
}

// visible keeps failures and running cases in view ahead of passes.
func (m *progressModel) visible() []caseItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	rows := make([]caseItem, 0, maxRows)
	for _, want := range []corpus.Status{corpus.StatusFail, corpus.StatusRunning, corpus.StatusQueued, corpus.StatusPass} {
		for _, item := range m.items {
			if len(rows) == maxRows {
				return rows
			}
			if item.status == want {
				rows = append(rows, item)
			}
		}
	}
	return rows
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev corpus.Event) tea.Cmd {
	idx, ok := m.index[ev.Case]
	if !ok {
		return nil
	}
	prev := m.items[idx].status
	m.items[idx].status = ev.Status
	if settled(ev.Status) && !settled(prev) {
		m.settled++
		if ev.Status == corpus.StatusFail {
			m.failed++
		}
	}
	return m.prog.SetPercent(float64(m.settled) / float64(len(m.items)))
}

func settled(s corpus.Status) bool {
	return s == corpus.StatusPass || s == corpus.StatusFail
}

// truncate cuts value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
