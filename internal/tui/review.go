// Package tui implements the interactive mission document review and
// the prompt helpers used by the CLI commands.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/missionmap/internal/planfile"
)

// ViewType selects which pane the review shows
type ViewType int

const (
	// ViewTasks lists every task with its assignment
	ViewTasks ViewType = iota
	// ViewOrder shows the execution order
	ViewOrder
	// ViewUtilization shows per-profile load and conflicts
	ViewUtilization
)

// String returns the view name shown in the header
func (v ViewType) String() string {
	switch v {
	case ViewTasks:
		return "tasks"
	case ViewOrder:
		return "order"
	case ViewUtilization:
		return "utilization"
	default:
		return "unknown"
	}
}

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Back   key.Binding
	Cycle  key.Binding
	Quit   key.Binding
}

var reviewKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "h"),
		key.WithHelp("esc", "back"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("tab", "v"),
		key.WithHelp("tab", "switch view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2).
			MarginTop(1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			MarginLeft(2)
)

// documentChangedMsg signals an on-disk change of the reviewed file
type documentChangedMsg struct{}

// documentReloadedMsg carries a freshly loaded document
type documentReloadedMsg struct {
	doc *planfile.Document
}

// reloadFailedMsg carries a failed reload
type reloadFailedMsg struct {
	err error
}

// reviewModel is the BubbleTea model for mission review
type reviewModel struct {
	doc     *planfile.Document
	path    string
	watcher *DocumentWatcher

	view       ViewType
	cursor     int
	showDetail bool
	notice     string

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
}

func newReviewModel(doc *planfile.Document, path string, watcher *DocumentWatcher) reviewModel {
	return reviewModel{
		doc:     doc,
		path:    path,
		watcher: watcher,
		view:    ViewTasks,
	}
}

// Init starts listening for on-disk changes when a watcher is attached
func (m reviewModel) Init() tea.Cmd {
	return waitForChange(m.watcher)
}

func waitForChange(w *DocumentWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return documentChangedMsg{}
	}
}

func reloadDocument(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := planfile.Load(path)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		return documentReloadedMsg{doc: doc}
	}
}

// Update handles messages and updates the model
func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		bodyHeight := msg.Height - 7
		if bodyHeight < 3 {
			bodyHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.syncViewport()
		return m, nil

	case documentChangedMsg:
		return m, reloadDocument(m.path)

	case documentReloadedMsg:
		m.doc = msg.doc
		m.notice = "document reloaded from disk"
		if max := m.taskCount() - 1; m.cursor > max {
			m.cursor = 0
			m.showDetail = false
		}
		m.syncViewport()
		return m, waitForChange(m.watcher)

	case reloadFailedMsg:
		m.notice = "reload failed: " + msg.err.Error()
		return m, waitForChange(m.watcher)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m reviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, reviewKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, reviewKeys.Up):
		if m.view == ViewTasks && !m.showDetail && m.cursor > 0 {
			m.cursor--
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, reviewKeys.Down):
		if m.view == ViewTasks && !m.showDetail && m.cursor < m.taskCount()-1 {
			m.cursor++
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, reviewKeys.Detail):
		if m.view == ViewTasks && !m.showDetail && m.taskCount() > 0 {
			m.showDetail = true
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, reviewKeys.Back):
		if m.showDetail {
			m.showDetail = false
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, reviewKeys.Cycle):
		m.view = (m.view + 1) % 3
		m.cursor = 0
		m.showDetail = false
		m.notice = ""
		m.syncViewport()
		return m, nil
	}

	return m, nil
}

// View renders the current state
func (m reviewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🗺  Mission Review"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(m.headerLine()))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderBody())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m reviewModel) headerLine() string {
	id := m.doc.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("Document %s | %d tasks | total effort %s | view: %s",
		id, m.taskCount(), m.totalEffort(), m.view)
}

func (m reviewModel) helpLine() string {
	if m.showDetail {
		return "h/esc: back to list | tab: switch view | q: quit"
	}
	if m.view == ViewTasks {
		return "↑/↓: navigate | enter: view details | tab: switch view | q: quit"
	}
	return "tab: switch view | q: quit"
}

// syncViewport refreshes the scrollable body and keeps the cursor line
// visible
func (m *reviewModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())

	if m.view != ViewTasks || m.showDetail {
		m.viewport.GotoTop()
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m reviewModel) renderBody() string {
	switch {
	case m.view == ViewTasks && m.showDetail:
		return m.renderTaskDetail()
	case m.view == ViewTasks:
		return m.renderTaskList()
	case m.view == ViewOrder:
		return m.renderExecutionOrder()
	default:
		return m.renderUtilization()
	}
}

func (m reviewModel) renderTaskList() string {
	if m.taskCount() == 0 {
		return itemStyle.Render("(no tasks)")
	}

	var b strings.Builder
	for i, task := range m.doc.Mission.Tasks {
		style := itemStyle
		cursor := "  "
		if i == m.cursor {
			style = selectedItemStyle
			cursor = "→ "
		}

		profile := "unassigned"
		priority := "-"
		if a, ok := m.doc.Mission.AssignmentFor(task.ID); ok {
			profile = a.Profile
			priority = fmt.Sprintf("P%d", a.Priority)
		}

		line := fmt.Sprintf("%s[%d] %s | %s | %s | %s",
			cursor, i+1, task.ID, profile, priority, task.PhaseType)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m reviewModel) renderTaskDetail() string {
	task := m.doc.Mission.Tasks[m.cursor]

	var b strings.Builder
	b.WriteString(headerStyle.Render(
		fmt.Sprintf("Task %d of %d", m.cursor+1, m.taskCount())))
	b.WriteString("\n\n")

	profile := "unassigned"
	priority := "-"
	group := "-"
	if a, ok := m.doc.Mission.AssignmentFor(task.ID); ok {
		profile = a.Profile
		priority = fmt.Sprintf("%d", a.Priority)
		if a.ParallelGroup != "" {
			group = a.ParallelGroup
		}
	}

	details := []struct {
		key   string
		value string
	}{
		{"ID", string(task.ID)},
		{"Name", task.Name},
		{"Phase", string(task.Phase)},
		{"Phase Type", task.PhaseType},
		{"Complexity", fmt.Sprintf("%d", task.Complexity)},
		{"Effort", string(task.Effort)},
		{"Profile", profile},
		{"Priority", priority},
		{"Group", group},
	}

	for _, detail := range details {
		b.WriteString("  ")
		b.WriteString(detailKeyStyle.Render(fmt.Sprintf("%-12s:", detail.key)))
		b.WriteString(" ")
		b.WriteString(detailValueStyle.Render(detail.value))
		b.WriteString("\n")
	}

	if len(task.DependsOn) > 0 {
		b.WriteString("\n  ")
		b.WriteString(detailKeyStyle.Render("Depends On:"))
		b.WriteString("\n")
		for _, dep := range task.DependsOn {
			b.WriteString(fmt.Sprintf("    • %s\n", dep))
		}
	}

	if len(task.Criteria) > 0 {
		b.WriteString("\n  ")
		b.WriteString(detailKeyStyle.Render("Criteria:"))
		b.WriteString("\n")
		for _, c := range task.Criteria {
			b.WriteString(fmt.Sprintf("    • %s\n", c))
		}
	}
	return b.String()
}

func (m reviewModel) renderExecutionOrder() string {
	order := m.doc.Mission.ExecutionOrder
	if len(order) == 0 {
		return itemStyle.Render("(no execution order)")
	}

	var b strings.Builder
	for i, id := range order {
		group := ""
		if a, ok := m.doc.Mission.AssignmentFor(id); ok && a.ParallelGroup != "" {
			group = " | " + a.ParallelGroup
		}

		line := fmt.Sprintf("%3d. %s%s", i+1, id, group)
		if id.IsVerification() {
			b.WriteString(itemStyle.Render(detailKeyStyle.Render(line)))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m reviewModel) renderUtilization() string {
	util := m.doc.Mission.Utilization
	if len(util) == 0 {
		return itemStyle.Render("(no utilization data)")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-18s %6s %8s %9s %6s %-14s %s",
		"profile", "tasks", "effort", "peak/cap", "load", "efficiency", "verification")
	b.WriteString(itemStyle.Render(detailKeyStyle.Render(header)))
	b.WriteString("\n")

	for _, u := range util {
		line := fmt.Sprintf("%-18s %6d %7.1fd %5d/%-3d %5.0f%% %-14s %.0f%%",
			u.Profile, u.TaskCount, u.EffortDays, u.PeakLoad, u.Capacity,
			u.Percent, u.Efficiency, u.Compliance*100)
		b.WriteString(itemStyle.Render(line))
		b.WriteString("\n")
	}

	if len(m.doc.Mission.Conflicts) > 0 {
		b.WriteString("\n")
		b.WriteString(itemStyle.Render(warnStyle.Render("Capacity conflicts:")))
		b.WriteString("\n")
		for _, c := range m.doc.Mission.Conflicts {
			line := fmt.Sprintf("%s in %s: %d assigned, capacity %d",
				c.Profile, c.Group, c.Assigned, c.Capacity)
			b.WriteString(itemStyle.Render(warnStyle.Render(line)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m reviewModel) taskCount() int {
	if m.doc == nil || m.doc.Mission == nil {
		return 0
	}
	return len(m.doc.Mission.Tasks)
}

func (m reviewModel) totalEffort() string {
	if m.doc == nil || m.doc.Mission == nil || m.doc.Mission.TotalEffort.IsZero() {
		return "n/a"
	}
	return string(m.doc.Mission.TotalEffort)
}

// RunReview launches the interactive review of a mission document. The
// view reloads live while the file changes on disk; review is
// read-only, edits happen in the editor.
func RunReview(doc *planfile.Document, path string) error {
	var watcher *DocumentWatcher
	if w, err := NewDocumentWatcher(path); err == nil {
		w.Start()
		watcher = w
		defer func() { _ = w.Stop() }()
	}

	model := newReviewModel(doc, path, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running mission review UI: %w", err)
	}
	return nil
}
