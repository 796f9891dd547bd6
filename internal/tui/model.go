// Package tui provides the Bubble Tea study interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studypick/internal/classes"
	"github.com/verte-zerg/studypick/internal/clock"
	"github.com/verte-zerg/studypick/internal/model"
	"github.com/verte-zerg/studypick/internal/session"
	"github.com/verte-zerg/studypick/internal/streaks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

const (
	fieldName = iota
	fieldDate
	fieldConfidence
)

const (
	invalidInputMessage = "Fill all fields correctly! Confidence: 1-10"
	noClassesMessage    = "Add at least one class to start!"
	emptyListMessage    = "No classes added yet."
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	timerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Width(12)
	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// Model implements the Bubble Tea study UI.
type Model struct {
	cfg     model.Config
	classes *classes.Store
	streaks *streaks.Store
	ctrl    *session.Controller
	sched   *scheduler

	mode     mode
	list     []*model.ClassRecord
	table    table.Model
	inputs   []textinput.Model
	focus    int
	progress progress.Model
	help     help.Model

	status    string
	statusErr bool
	pending   []tea.Cmd

	width  int
	height int
}

// NewModel constructs the study UI. The session countdown runs on the Bubble Tea
// loop and is paced by wall-clock time; clk only decides which classes are due.
func NewModel(cfg model.Config, cs *classes.Store, ss *streaks.Store, clk clock.Clock) (*Model, error) {
	m := &Model{
		cfg:      cfg,
		classes:  cs,
		streaks:  ss,
		sched:    newScheduler(clock.System{}),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	ctrl, err := session.New(session.Deps{
		Classes:   cs,
		Streaks:   ss,
		Clock:     clk,
		Scheduler: m.sched,
		Notifier:  session.NotifierFunc(m.notify),
	})
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.initInputs()
	m.initTable()
	m.refreshClasses()
	return m, nil
}

func (m *Model) initInputs() {
	name := textinput.New()
	name.Placeholder = "Linear Algebra"
	name.CharLimit = 80

	date := textinput.New()
	date.Placeholder = model.DateLayout
	date.CharLimit = len(model.DateLayout)

	confidence := textinput.New()
	confidence.Placeholder = "1-10"
	confidence.CharLimit = 2

	m.inputs = []textinput.Model{name, date, confidence}
}

func (m *Model) initTable() {
	m.table = table.New(
		table.WithColumns(tableColumns(40)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
}

func tableColumns(nameWidth int) []table.Column {
	return []table.Column{
		{Title: "Class", Width: nameWidth},
		{Title: "Exam", Width: 10},
		{Title: "Confidence", Width: 10},
		{Title: "Streak", Width: 6},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tickMsg:
		cmd = m.sched.handle(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	return m, m.flush(cmd)
}

func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append([]tea.Cmd{cmd, m.sched.drain()}, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) resize() {
	nameWidth := m.width - 40
	if nameWidth < 12 {
		nameWidth = 12
	}
	if nameWidth > 48 {
		nameWidth = 48
	}
	m.table.SetColumns(tableColumns(nameWidth))
	height := m.height - 12
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
	barWidth := m.width / 2
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.ctrl.Reset()
		return tea.Quit
	}
	phase := m.ctrl.Phase()
	if phase.Active() {
		return m.handleSessionKey(msg)
	}
	if phase == model.Completed {
		return m.handleCompletedKey(msg)
	}
	if m.mode == modeAdd {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleSessionKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Pause):
		m.ctrl.TogglePause()
	case key.Matches(msg, keys.Quit):
		m.ctrl.Reset()
		return tea.Quit
	}
	return nil
}

func (m *Model) handleCompletedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Done):
		m.ctrl.Reset()
		m.clearStatus()
		m.refreshClasses()
	case key.Matches(msg, keys.Quit):
		m.ctrl.Reset()
		return tea.Quit
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		m.clearStatus()
		return m.focusInput(fieldName)
	case key.Matches(msg, keys.Remove):
		m.removeSelected()
		return nil
	case key.Matches(msg, keys.Start):
		m.startSession()
		return nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeForm()
		return nil
	case key.Matches(msg, keys.Submit):
		m.submitForm()
		return nil
	case key.Matches(msg, keys.Next):
		return m.focusInput((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, keys.Prev):
		return m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) focusInput(idx int) tea.Cmd {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			continue
		}
		m.inputs[i].Blur()
	}
	return m.inputs[idx].Focus()
}

func (m *Model) closeForm() {
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].SetValue("")
	}
	m.focus = fieldName
	m.mode = modeList
}

func (m *Model) submitForm() {
	ctx := context.Background()
	rec, err := m.classes.Add(ctx, classes.Input{
		Name:       m.inputs[fieldName].Value(),
		NextTest:   m.inputs[fieldDate].Value(),
		Confidence: m.inputs[fieldConfidence].Value(),
	})
	if err != nil {
		var verr *classes.ValidationError
		if errors.As(err, &verr) {
			m.notifyErr(fmt.Sprintf("%s (%v)", invalidInputMessage, verr))
			return
		}
		log.Printf("failed to add class: %v", err)
		m.notifyErr(err.Error())
		return
	}
	m.closeForm()
	m.notify(fmt.Sprintf("Added %s", rec.Name))
	m.refreshClasses()
}

func (m *Model) removeSelected() {
	if len(m.list) == 0 {
		return
	}
	idx := m.table.Cursor()
	if err := m.classes.Remove(context.Background(), idx); err != nil {
		log.Printf("failed to remove class %d: %v", idx, err)
		m.notifyErr(err.Error())
		return
	}
	m.clearStatus()
	m.refreshClasses()
}

func (m *Model) startSession() {
	err := m.ctrl.Start(context.Background())
	switch {
	case err == nil:
		m.clearStatus()
	case errors.Is(err, session.ErrNoClasses):
		m.notifyErr(noClassesMessage)
		m.refreshClasses()
	default:
		log.Printf("failed to start session: %v", err)
		m.notifyErr(err.Error())
	}
}

func (m *Model) refreshClasses() {
	ctx := context.Background()
	list, err := m.classes.List(ctx)
	if err != nil {
		log.Printf("failed to list classes: %v", err)
		m.notifyErr(err.Error())
		return
	}
	m.list = list

	counts := map[string]int{}
	entries, err := m.streaks.All(ctx)
	if err != nil {
		log.Printf("failed to load streaks: %v", err)
	}
	for _, e := range entries {
		counts[e.Name] = e.Count
	}

	rows := make([]table.Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, table.Row{
			c.Name,
			c.NextTest.Format(model.DateLayout),
			strconv.Itoa(c.Confidence),
			strconv.Itoa(counts[c.Name]),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) notify(message string) {
	m.status = message
	m.statusErr = false
	if message == session.CompleteMessage && m.cfg.Bell {
		m.pending = append(m.pending, ringBell)
	}
}

func (m *Model) notifyErr(message string) {
	m.status = message
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func ringBell() tea.Msg {
	if _, err := fmt.Fprint(os.Stderr, "\a"); err != nil {
		log.Printf("failed to ring bell: %v", err)
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	var bindings []key.Binding
	switch m.ctrl.Phase() {
	case model.Running, model.Paused:
		body = m.viewSession()
		bindings = keys.sessionHelp(m.ctrl.Phase())
	case model.Completed:
		body = m.viewCompleted()
		bindings = keys.completedHelp()
	default:
		body = m.viewSetup()
		bindings = keys.listHelp()
		if m.mode == modeAdd {
			bindings = keys.formHelp()
		}
	}
	footer := m.renderFooter(bindings)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	footerLines := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
	return content + "\n" + footerLines
}

func (m *Model) viewSetup() string {
	parts := []string{accentStyle.Render("studypick"), ""}
	if len(m.list) == 0 {
		parts = append(parts, mutedStyle.Render(emptyListMessage))
	} else {
		parts = append(parts, m.table.View())
	}
	if m.mode == modeAdd {
		labels := []string{"Class", "Exam date", "Confidence"}
		rows := make([]string, len(m.inputs))
		for i := range m.inputs {
			rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(labels[i]), m.inputs[i].View())
		}
		parts = append(parts, "", formBoxStyle.Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) viewSession() string {
	snap := m.ctrl.Snapshot()
	if snap.Class == nil {
		return ""
	}
	elapsed := float64(model.SessionSeconds-snap.Remaining) / float64(model.SessionSeconds)
	parts := []string{
		titleStyle.Render(snap.Class.Name),
		mutedStyle.Render("Exam Date: " + snap.Class.NextTest.Format(model.DateLayout)),
		mutedStyle.Render(fmt.Sprintf("Streak: %d", snap.Streak)),
		timerStyle.Render(formatCountdown(snap.Remaining)),
		m.progress.ViewAs(elapsed),
	}
	if snap.Phase == model.Paused {
		parts = append(parts, "", accentStyle.Render("Paused"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) viewCompleted() string {
	snap := m.ctrl.Snapshot()
	parts := []string{accentStyle.Render(session.CompleteMessage)}
	if snap.Class != nil {
		parts = append(parts,
			"",
			titleStyle.Render(snap.Class.Name),
			mutedStyle.Render(fmt.Sprintf("Streak: %d", snap.Streak)),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderFooter(bindings []key.Binding) string {
	lines := make([]string, 0, 2)
	if m.status != "" {
		if m.statusErr {
			lines = append(lines, errorStyle.Render(m.status))
		} else {
			lines = append(lines, footerStyle.Render(m.status))
		}
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.help.ShortHelpView(bindings))
	return strings.Join(lines, "\n")
}

// formatCountdown renders seconds as MM:SS; a full session shows 60:00.
func formatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
