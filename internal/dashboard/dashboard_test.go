package dashboard

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathakanu/phtReminder/internal/bot"
	"github.com/pathakanu/phtReminder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	state    bot.State
	unlocked bool
	alarms   int
	cleared  int
}

func newFakeController() *fakeController {
	return &fakeController{state: bot.State{
		Clock:     "8:30:01 AM",
		Countdown: "9:30",
		Settings:  model.DefaultSettings(),
		History: []model.Reminder{
			{ID: "1", Time: "8:30 AM", Message: "Stretch!", Type: model.ReminderTypeAI},
		},
		Audio: "muted",
	}}
}

func (f *fakeController) Snapshot() bot.State { return f.state }

func (f *fakeController) UpdateSettings(_ context.Context, s model.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	f.state.Settings = s
	return nil
}

func (f *fakeController) UnlockAudio() {
	f.unlocked = true
	f.state.Audio = "ready"
}

func (f *fakeController) TestAlarm(context.Context) bool {
	if !f.unlocked {
		return false
	}
	f.alarms++
	return true
}

func (f *fakeController) ClearHistory(_ context.Context, confirmed bool) error {
	if !confirmed {
		return bot.ErrConfirmationRequired
	}
	f.cleared++
	f.state.History = nil
	return nil
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestTogglesAndFrequency(t *testing.T) {
	ctrl := newFakeController()
	m := New(context.Background(), ctrl)

	m = press(t, m, "a")
	assert.False(t, ctrl.state.Settings.EnableAI)
	m = press(t, m, "s")
	assert.False(t, ctrl.state.Settings.EnableTTS)
	m = press(t, m, "f")
	assert.Equal(t, 15, ctrl.state.Settings.Frequency)
	m = press(t, m, "f")
	m = press(t, m, "f")
	assert.Equal(t, 10, ctrl.state.Settings.Frequency)
	assert.Equal(t, 10, m.state.Settings.Frequency)
}

func TestClearNeedsConfirmation(t *testing.T) {
	ctrl := newFakeController()
	m := New(context.Background(), ctrl)

	m = press(t, m, "c")
	assert.True(t, m.confirming)
	assert.Contains(t, m.View(), "Clear 1 reminders?")
	m = press(t, m, "n")
	assert.False(t, m.confirming)
	assert.Zero(t, ctrl.cleared)

	m = press(t, m, "c")
	m = press(t, m, "y")
	assert.Equal(t, 1, ctrl.cleared)
	assert.Empty(t, m.state.History)
	assert.Contains(t, m.View(), "No reminders yet.")
}

func TestUnlockAndTestAlarm(t *testing.T) {
	ctrl := newFakeController()
	m := New(context.Background(), ctrl)

	m = press(t, m, "t")
	assert.Zero(t, ctrl.alarms)

	m = press(t, m, "u")
	assert.Equal(t, "ready", m.state.Audio)
	press(t, m, "t")
	assert.Equal(t, 1, ctrl.alarms)
}

func TestViewShowsClockAndHistory(t *testing.T) {
	ctrl := newFakeController()
	ctrl.state.AlarmActive = true
	m := New(context.Background(), ctrl)

	view := m.View()
	assert.Contains(t, view, "8:30:01 AM")
	assert.Contains(t, view, "9:30")
	assert.Contains(t, view, "Stretch!")
	assert.Contains(t, view, "REMINDER!")
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), newFakeController())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHistoryRowsArePlainText(t *testing.T) {
	m := New(context.Background(), newFakeController())

	rows := m.history.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, table.Row{"8:30 AM", "ai", "Stretch!"}, rows[0])
}
