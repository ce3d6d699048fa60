// Package tui provides the interactive Bubble Tea dashboard for hidralife.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/hidralife/internal/advice"
	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/config"
	"github.com/theirongolddev/hidralife/internal/hydration"
	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/state"
	"github.com/theirongolddev/hidralife/internal/tui/components"
	"github.com/theirongolddev/hidralife/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadingText is shown in the advice card while a tip is being fetched.
const LoadingText = "Thinking of a refreshing tip..."

const (
	minTerminalWidth = 60
	maxContentWidth  = 110
	minContentHeight = 5
	clockInterval    = 30 * time.Second
)

// Deps are the collaborators the dashboard needs.
type Deps struct {
	Store state.Store
	Coach *advice.Coach
	// Notifier sends the confirmation when notifications are switched on.
	Notifier reminder.Notifier
	// WatchDir is watched for store writes by other processes. Empty disables.
	WatchDir    string
	HistoryDays int
	Logger      *zap.Logger
	Now         func() time.Time
}

// adviceMsg carries a fetched tip.
type adviceMsg struct{ text string }

// storeChangedMsg reports a write to the store file by any process.
type storeChangedMsg struct{}

// reloadMsg carries freshly loaded state. saves is the App save count when
// the reload was dispatched.
type reloadMsg struct {
	st    *state.State
	err   error
	saves int
}

// notifiedMsg reports the outcome of the confirmation notification.
type notifiedMsg struct{ err error }

type clockMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	deps    Deps
	tracker *hydration.Tracker
	watcher *fsnotify.Watcher

	// UI state
	width    int
	height   int
	showHelp bool

	// Advice card
	advice        string
	adviceLoading bool
	spinner       spinner.Model

	// Settings form (huh), nil when closed
	settingsForm *huh.Form
	settingsVals *SettingsValues

	// One-line feedback in the status bar
	flash    string
	flashErr bool

	// saves counts successful saves; reloads dispatched before the latest
	// save are discarded.
	saves int
}

// NewApp creates the dashboard over st. When deps.WatchDir is set it starts
// watching it; call Close when the program exits.
func NewApp(deps Deps, st *state.State) (App, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.HistoryDays <= 0 {
		deps.HistoryDays = 7
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		deps:          deps,
		tracker:       hydration.New(st, hydration.WithClock(deps.Now)),
		spinner:       sp,
		adviceLoading: true,
	}

	if deps.WatchDir != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return a, fmt.Errorf("creating watcher: %w", err)
		}
		if err := w.Add(deps.WatchDir); err != nil {
			_ = w.Close()
			return a, fmt.Errorf("watching %s: %w", deps.WatchDir, err)
		}
		a.watcher = w
	}
	return a, nil
}

// Close stops the file watcher.
func (a App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}

// Tracker exposes the tracker for callers that inspect the final state.
func (a App) Tracker() *hydration.Tracker {
	return a.tracker
}

// Init implements tea.Model. It fetches the first tip; the model starts
// in the loading state.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		fetchAdviceCmd(a.deps.Coach, a.tracker.Intake(), a.tracker.Goal()),
		clockCmd(),
		waitForChange(a.watcher),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.settingsForm != nil {
			a.settingsForm = a.settingsForm.WithWidth(min(msg.Width, maxContentWidth) - 6)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.settingsForm != nil {
			return a.updateSettingsForm(msg)
		}
		return a.handleKey(msg.String())

	case adviceMsg:
		a.advice = msg.text
		a.adviceLoading = false
		return a, nil

	case spinner.TickMsg:
		if !a.adviceLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case clockMsg:
		return a, clockCmd()

	case storeChangedMsg:
		return a, tea.Batch(reloadCmd(a.deps.Store, a.saves), waitForChange(a.watcher))

	case reloadMsg:
		if msg.saves < a.saves {
			a.deps.Logger.Debug("dropping stale reload", zap.Int("dispatched", msg.saves), zap.Int("saves", a.saves))
			return a, nil
		}
		if msg.err != nil {
			a.deps.Logger.Warn("reloading state failed", zap.Error(msg.err))
			a.setFlash("Reload failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.tracker = hydration.New(msg.st, hydration.WithClock(a.deps.Now))
		return a, nil

	case notifiedMsg:
		if msg.err != nil {
			a.deps.Logger.Warn("confirmation notification failed", zap.Error(msg.err))
			a.setFlash("Notifications on, but desktop delivery failed", true)
		}
		return a, nil
	}

	// Forward unhandled messages to the settings form (cursor blinks, etc.)
	if a.settingsForm != nil {
		return a.updateSettingsForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "1", "2", "3", "4":
		return a.addWater(model.Containers[int(key[0]-'1')])
	case "u":
		return a.undo()
	case "r":
		if a.adviceLoading {
			return a, nil
		}
		a.adviceLoading = true
		return a, tea.Batch(a.spinner.Tick, fetchAdviceCmd(a.deps.Coach, a.tracker.Intake(), a.tracker.Goal()))
	case "s":
		a.settingsVals = NewSettingsValues(a.tracker.Settings())
		a.settingsForm = SettingsForm(a.settingsVals)
		if a.width > 0 {
			a.settingsForm = a.settingsForm.WithWidth(min(a.width, maxContentWidth) - 6)
		}
		return a, a.settingsForm.Init()
	}
	return a, nil
}

func (a App) addWater(size model.ContainerSize) (tea.Model, tea.Cmd) {
	log, err := a.tracker.AddWater(size.ML())
	if err != nil {
		a.setFlash(err.Error(), true)
		return a, nil
	}
	if !a.save() {
		return a, nil
	}
	a.setFlash(fmt.Sprintf("+%d ml (%s)", log.Amount, size.Label()), false)
	return a, nil
}

func (a App) undo() (tea.Model, tea.Cmd) {
	removed, ok := a.tracker.UndoLastLog()
	if !ok {
		a.setFlash("Nothing to undo today", false)
		return a, nil
	}
	if !a.save() {
		return a, nil
	}
	a.setFlash(fmt.Sprintf("Removed %d ml", removed.Amount), false)
	return a, nil
}

// save persists the tracker state and flashes any error. It reports success.
func (a *App) save() bool {
	if err := state.Save(a.deps.Store, a.tracker.State()); err != nil {
		a.deps.Logger.Error("saving state failed", zap.Error(err))
		a.setFlash("Save failed: "+err.Error(), true)
		return false
	}
	a.saves++
	return true
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash = msg
	a.flashErr = isErr
}

func (a App) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.settingsForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.settingsForm = f
	}

	switch a.settingsForm.State {
	case huh.StateCompleted:
		a.settingsForm = nil
		enabled, err := a.settingsVals.Apply(a.tracker)
		if err != nil {
			a.setFlash(err.Error(), true)
			return a, nil
		}
		if !a.save() {
			return a, nil
		}
		a.setFlash("Settings saved", false)
		if enabled && a.deps.Notifier != nil {
			return a, notifyCmd(a.deps.Notifier, reminder.Enabled(a.deps.Now()))
		}
		return a, nil
	case huh.StateAborted:
		a.settingsForm = nil
		return a, nil
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.settingsForm != nil {
		return a.viewSettings()
	}
	return a.viewMain()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  hidralife needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	h := max(a.height, 5)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("💧 Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"1 2 3 4", "Log a small cup, medium cup, large glass or bottle"},
		{"u", "Undo the last drink logged today"},
		{"r", "Get a new hydration tip"},
		{"s", "Settings: goal, reminders, notifications"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewSettings() string {
	t := theme.Active
	card := components.FocusedCard("Settings", a.settingsForm.View(), a.contentWidth()-2)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	now := a.deps.Now()

	header := a.renderHeader(cw, now)
	statusBar := a.renderStatusBar(w)

	// Ring and advice side by side
	widths := components.LayoutRow(cw, 2)
	ringBody := components.Ring(a.tracker.Intake(), a.tracker.Goal(),
		a.tracker.Percent(), a.tracker.Progress(),
		components.CardInnerWidth(widths[0]))
	if a.tracker.Intake() > 0 {
		ringBody += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("[u] undo last drink")
	}
	top := components.CardRow([]string{
		components.ContentCard("Today", ringBody, widths[0]),
		components.ContentCard("Hydration tip", a.renderAdvice(components.CardInnerWidth(widths[1])), widths[1]),
	})

	metrics := components.MetricCardRow(a.metrics(now), cw)

	days := a.tracker.Window(a.deps.HistoryDays)
	chart := components.ContentCard(
		fmt.Sprintf("Last %d days", len(days)),
		components.HistoryChart(days, components.CardInnerWidth(cw), 8),
		cw,
	)

	content := lipgloss.JoinVertical(lipgloss.Left, top, metrics, chart, a.renderContainers(cw))

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(w, lipgloss.Center, header, lipgloss.WithWhitespaceBackground(t.Background)),
		content,
		statusBar,
	)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderHeader(width int, now time.Time) string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true).Render("💧 hidralife")
	date := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).
		Render(now.Format("Mon 2 Jan 2006"))
	gap := max(width-lipgloss.Width(logo)-lipgloss.Width(date)-2, 1)
	return " " + logo + lipgloss.NewStyle().Background(t.Background).Render(strings.Repeat(" ", gap)) + date + " "
}

func (a App) renderAdvice(width int) string {
	t := theme.Active
	if a.adviceLoading {
		return a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(" "+LoadingText)
	}
	text := a.advice
	if text == "" {
		text = advice.FallbackEmpty
	}
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width).Render(text)
	return body + "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("[r] new tip")
}

func (a App) metrics(now time.Time) []components.Metric {
	intake, goal := a.tracker.Intake(), a.tracker.Goal()
	remaining := max(goal-intake, 0)

	last := "never"
	if l := a.tracker.LastLog(); l != nil {
		last = cli.FormatAgo(l.Time(), now)
	}

	s := a.tracker.Settings()
	reminders := "off"
	if s.NotificationsEnabled {
		reminders = fmt.Sprintf("every %d min", s.ReminderInterval)
	}

	return []components.Metric{
		{Label: "Remaining", Value: cli.FormatML(remaining), Hint: cli.FormatLiters(goal) + " goal"},
		{Label: "Drinks today", Value: fmt.Sprintf("%d", len(a.tracker.TodayLogs()))},
		{Label: "Last sip", Value: last},
		{Label: "Reminders", Value: reminders},
	}
}

func (a App) renderContainers(width int) string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)

	parts := make([]string, len(model.Containers))
	for i, c := range model.Containers {
		parts[i] = keyStyle.Render(fmt.Sprintf("[%d]", i+1)) +
			labelStyle.Render(fmt.Sprintf(" %s %dml", c.Label(), c.ML()))
	}
	line := strings.Join(parts, labelStyle.Render("   "))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line, lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderStatusBar(width int) string {
	hints := []components.KeyHint{
		{Key: "1-4", Desc: "drink"},
		{Key: "s", Desc: "ettings"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "uit"},
	}
	info := a.flash
	if info != "" && a.flashErr {
		info = "! " + info
	}
	return components.RenderStatusBar(width, hints, info)
}

// ─── Commands ───────────────────────────────────────────────────

func fetchAdviceCmd(coach *advice.Coach, current, goal int) tea.Cmd {
	return func() tea.Msg {
		if coach == nil {
			return adviceMsg{text: advice.StaticTip(hydration.Percent(current, goal))}
		}
		return adviceMsg{text: coach.Advice(context.Background(), current, goal)}
	}
}

func notifyCmd(n reminder.Notifier, note reminder.Notification) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return notifiedMsg{err: n.Notify(ctx, note)}
	}
}

func reloadCmd(s state.Store, saves int) tea.Cmd {
	return func() tea.Msg {
		st, err := state.Load(s)
		return reloadMsg{st: st, err: err, saves: saves}
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(time.Time) tea.Msg {
		return clockMsg{}
	})
}

// watchDebounce coalesces the burst of writes one sqlite commit produces.
const watchDebounce = 250 * time.Millisecond

// waitForChange blocks until the store files in the watched dir have been
// written and then stayed quiet for watchDebounce.
func waitForChange(w *fsnotify.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		var quiet <-chan time.Time
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 && config.IsStoreFile(ev.Name) {
					quiet = time.After(watchDebounce)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
			case <-quiet:
				return storeChangedMsg{}
			}
		}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
