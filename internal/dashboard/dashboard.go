package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathakanu/phtReminder/internal/bot"
	"github.com/pathakanu/phtReminder/internal/model"
)

// Controller is the part of the bot the dashboard drives.
type Controller interface {
	Snapshot() bot.State
	UpdateSettings(ctx context.Context, s model.Settings) error
	UnlockAudio()
	TestAlarm(ctx context.Context) bool
	ClearHistory(ctx context.Context, confirmed bool) error
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)

	alarmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Padding(0, 1)

	onStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	offStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	action    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	bullet    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

type statusMsg struct {
	message string
	color   string
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx  context.Context
	ctrl Controller

	state        bot.State
	history      table.Model
	columns      []table.Column
	confirming   bool
	statusMsg    string
	statusColor  string
	statusExpiry time.Time
	width        int
}

// New builds the dashboard model.
func New(ctx context.Context, ctrl Controller) Model {
	columns := []table.Column{
		{Title: "Time", Width: 9},
		{Title: "Type", Width: 6},
		{Title: "Message", Width: 60},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := Model{ctx: ctx, ctrl: ctrl, history: t, columns: columns, statusColor: "86"}
	m.refresh()
	return m
}

// Run starts the full-screen dashboard and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func showStatus(msg, color string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: msg, color: color}
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case statusMsg:
		m.statusMsg = msg.message
		m.statusColor = msg.color
		m.statusExpiry = time.Now().Add(3 * time.Second)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 30 {
			cols := append([]table.Column{}, m.columns...)
			cols[2].Width = msg.Width - 24
			m.columns = cols
			m.history.SetColumns(cols)
		}
		if msg.Height > 16 {
			m.history.SetHeight(msg.Height - 14)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirmKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "a":
		s := m.state.Settings
		s.EnableAI = !s.EnableAI
		return m.applySettings(s, "AI messages "+onOff(s.EnableAI))
	case "s":
		s := m.state.Settings
		s.EnableTTS = !s.EnableTTS
		return m.applySettings(s, "Speech "+onOff(s.EnableTTS))
	case "f":
		s := m.state.Settings
		s.Frequency = model.NextFrequency(s.Frequency)
		return m.applySettings(s, fmt.Sprintf("Reminding every %d minutes", s.Frequency))
	case "u":
		m.ctrl.UnlockAudio()
		m.refresh()
		return m, showStatus("Audio unlocked", "82")
	case "t":
		if !m.ctrl.TestAlarm(m.ctx) {
			return m, showStatus("Audio is muted, press u to unlock", "226")
		}
		m.refresh()
		return m, showStatus("Playing test alarm", "82")
	case "c":
		if len(m.state.History) == 0 {
			return m, showStatus("History is already empty", "240")
		}
		m.confirming = true
		return m, nil
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirming = false
	switch msg.String() {
	case "y", "Y":
		if err := m.ctrl.ClearHistory(m.ctx, true); err != nil {
			return m, showStatus("Could not clear history: "+err.Error(), "196")
		}
		m.refresh()
		return m, showStatus("History cleared", "82")
	default:
		return m, showStatus("Clear cancelled", "240")
	}
}

func (m Model) applySettings(s model.Settings, okMsg string) (tea.Model, tea.Cmd) {
	if err := m.ctrl.UpdateSettings(m.ctx, s); err != nil {
		return m, showStatus("Settings rejected: "+err.Error(), "196")
	}
	m.refresh()
	return m, showStatus(okMsg, "82")
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	rows := make([]table.Row, 0, len(m.state.History))
	// table cells are measured rune by rune, so they stay unstyled
	for _, r := range m.state.History {
		rows = append(rows, table.Row{r.Time, string(r.Type), r.Message})
	}
	m.history.SetRows(rows)
}

func (m Model) View() string {
	st := m.state

	header := headerStyle.Render("PHT Reminder - Philippine Standard Time")
	clockLine := clockStyle.Render(st.Clock) + "  next reminder in " + warnStyle.Render(st.Countdown)
	if st.AlarmActive {
		clockLine += "  " + alarmStyle.Render("REMINDER!")
	}

	settingsLine := fmt.Sprintf("AI %s  Speech %s  Every %s min",
		flag(st.Settings.EnableAI),
		flag(st.Settings.EnableTTS),
		onStyle.Render(fmt.Sprint(st.Settings.Frequency)),
	)

	audioLine := "Audio " + onStyle.Render(st.Audio)
	if st.Audio != "ready" {
		audioLine = "Audio " + warnStyle.Render(st.Audio)
	}
	names := make([]string, 0, len(st.Notifications))
	for name := range st.Notifications {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		audioLine += fmt.Sprintf("  %s %s", name, string(st.Notifications[name]))
	}

	var body string
	if len(st.History) == 0 {
		body = offStyle.Render("No reminders yet.")
	} else {
		body = m.history.View()
	}

	commands := []string{
		keyStyle.Render("a") + ": " + action.Render("toggle AI"),
		keyStyle.Render("s") + ": " + action.Render("toggle speech"),
		keyStyle.Render("f") + ": " + action.Render("frequency"),
		keyStyle.Render("u") + ": " + action.Render("unlock audio"),
		keyStyle.Render("t") + ": " + action.Render("test alarm"),
		keyStyle.Render("c") + ": " + action.Render("clear history"),
		keyStyle.Render("q") + ": " + action.Render("quit"),
	}
	commandRow := strings.Join(commands, bullet.Render(" • "))

	if m.confirming {
		commandRow += "\n> " + warnStyle.Render(fmt.Sprintf("Clear %d reminders? (y/n)", len(st.History)))
	} else if m.statusMsg != "" && time.Now().Before(m.statusExpiry) {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor))
		commandRow += "\n> " + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		"",
		clockLine,
		settingsLine,
		audioLine,
		"",
		body,
		"",
		commandRow,
	)
}

func flag(on bool) string {
	if on {
		return onStyle.Render("on")
	}
	return offStyle.Render("off")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
