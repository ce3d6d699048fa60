package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/hidralife/internal/advice"
	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data   map[string]string
	saves  int
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) SetMany(entries map[string]string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.saves++
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)

func newTestApp(t *testing.T, store *memStore) App {
	t.Helper()
	st, err := state.Load(store)
	require.NoError(t, err)
	st.Settings.DailyGoal = 2000

	coach := advice.NewCoach(advice.GeneratorFunc(func(context.Context, string) (string, error) {
		return "Sip sip! 💧", nil
	}), "English", nil)

	a, err := NewApp(Deps{Store: store, Coach: coach, Now: func() time.Time { return testNow }}, st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestApp_ContainerKeysAddAndSave(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)

	a, _ = press(t, a, "1")
	a, _ = press(t, a, "4")

	assert.Equal(t, model.SizeSmall.ML()+model.SizeBottle.ML(), a.Tracker().Intake())
	assert.Equal(t, 2, store.saves)

	reloaded, err := state.Load(store)
	require.NoError(t, err)
	require.Len(t, reloaded.Logs, 2)
	require.Len(t, reloaded.Stats, 1)
	assert.Equal(t, 950, reloaded.Stats[0].Total)
	assert.Contains(t, a.flash, "Bottle")
}

func TestApp_UndoKey(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)

	a, _ = press(t, a, "2")
	assert.Contains(t, a.View(), "[u] undo last drink")

	a, _ = press(t, a, "u")
	assert.Equal(t, 0, a.Tracker().Intake())
	assert.NotContains(t, a.View(), "[u] undo last drink")

	a, _ = press(t, a, "u")
	assert.Equal(t, "Nothing to undo today", a.flash)
}

func TestApp_SaveErrorIsFlashed(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)
	store.setErr = errors.New("disk full")

	a, _ = press(t, a, "3")
	assert.True(t, a.flashErr)
	assert.Contains(t, a.flash, "disk full")
}

func TestApp_AdviceLifecycle(t *testing.T) {
	a := newTestApp(t, newMemStore())
	assert.True(t, a.adviceLoading)
	assert.Contains(t, a.View(), LoadingText)

	msg := fetchAdviceCmd(a.deps.Coach, 0, 2000)()
	m, _ := a.Update(msg)
	a = m.(App)
	assert.False(t, a.adviceLoading)
	assert.Contains(t, a.View(), "Sip sip!")

	a, cmd := press(t, a, "r")
	assert.True(t, a.adviceLoading)
	assert.NotNil(t, cmd)

	// A second refresh while loading is ignored.
	_, cmd = press(t, a, "r")
	assert.Nil(t, cmd)
}

func TestApp_HelpAndQuit(t *testing.T) {
	a := newTestApp(t, newMemStore())

	a, _ = press(t, a, "?")
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a, _ = press(t, a, "x")
	assert.False(t, a.showHelp)

	_, cmd := press(t, a, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ReloadReplacesState(t *testing.T) {
	a := newTestApp(t, newMemStore())

	other := state.New()
	other.Settings.DailyGoal = 3000
	other.Logs = []model.WaterLog{{ID: "x", Amount: 1200, Timestamp: testNow.Add(-time.Hour).UnixMilli()}}

	m, _ := a.Update(reloadMsg{st: other})
	a = m.(App)
	assert.Equal(t, 1200, a.Tracker().Intake())
	assert.Equal(t, 3000, a.Tracker().Goal())

	m, _ = a.Update(reloadMsg{err: state.ErrCorrupt})
	a = m.(App)
	assert.True(t, a.flashErr)
	assert.Equal(t, 1200, a.Tracker().Intake(), "failed reload keeps current state")
}

func TestApp_SettingsKeyOpensForm(t *testing.T) {
	a := newTestApp(t, newMemStore())

	a, _ = press(t, a, "s")
	require.NotNil(t, a.settingsForm)
	assert.Contains(t, a.View(), "Daily goal")

	a.settingsForm.State = huh.StateAborted
	m, _ := a.updateSettingsForm(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	a = m.(App)
	assert.Nil(t, a.settingsForm)
}

func TestSettingsValues_Apply(t *testing.T) {
	a := newTestApp(t, newMemStore())
	tr := a.Tracker()

	v := NewSettingsValues(tr.Settings())
	assert.Equal(t, 2000, v.Goal)
	assert.Equal(t, "60", v.Interval)

	v.Goal = 3000
	v.Interval = " 45 "
	v.Notifications = true
	enabled, err := v.Apply(tr)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, model.UserSettings{DailyGoal: 3000, ReminderInterval: 45, NotificationsEnabled: true}, tr.Settings())

	enabled, err = v.Apply(tr)
	require.NoError(t, err)
	assert.False(t, enabled, "already on")

	v.Interval = "soon"
	_, err = v.Apply(tr)
	assert.Error(t, err)
}

func TestNotifyCmd(t *testing.T) {
	var got reminder.Notification
	n := reminder.NotifierFunc(func(_ context.Context, note reminder.Notification) error {
		got = note
		return nil
	})

	msg := notifyCmd(n, reminder.Enabled(testNow))()
	assert.Equal(t, notifiedMsg{}, msg)
	assert.Equal(t, reminder.EnabledBody, got.Body)
}

func TestView_TooNarrow(t *testing.T) {
	a := newTestApp(t, newMemStore())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.True(t, strings.Contains(m.(App).View(), "too narrow"))
}

func TestApp_ReloadDispatchedBeforeSaveIsDropped(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)

	a, _ = press(t, a, "1")
	stale := reloadCmd(store, a.saves)()
	a, _ = press(t, a, "2")

	m, _ := a.Update(stale)
	a = m.(App)
	assert.Equal(t, model.SizeSmall.ML()+model.SizeMedium.ML(), a.Tracker().Intake())

	a, _ = press(t, a, "u")

	persisted, err := state.Load(store)
	require.NoError(t, err)
	require.Len(t, persisted.Logs, 1)
	assert.Equal(t, model.SizeSmall.ML(), persisted.Logs[0].Amount)
	assert.Equal(t, model.SizeSmall.ML(), a.Tracker().Intake())
}

func TestApp_ReloadAfterLatestSaveApplies(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)

	a, _ = press(t, a, "3")
	fresh := reloadCmd(store, a.saves)()

	m, _ := a.Update(fresh)
	a = m.(App)
	assert.Equal(t, model.SizeLarge.ML(), a.Tracker().Intake())
}
