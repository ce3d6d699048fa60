// Package daemon provides the long-running background reminder service and
// its loopback status API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/hidralife/internal/hydration"
	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/state"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Event types.
const (
	EventSnapshot = "snapshot"
	EventReminder = "reminder"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Tick         time.Duration
	Addr         string
	EventsBuffer int
	// Watch reloads the snapshot when files in DataDir change.
	Watch bool
}

// Snapshot is the compact hydration state for status/event payloads.
type Snapshot struct {
	At                   time.Time  `json:"at"`
	Date                 string     `json:"date"`
	IntakeML             int        `json:"intake_ml"`
	GoalML               int        `json:"goal_ml"`
	Percent              int        `json:"percent"`
	LogsToday            int        `json:"logs_today"`
	LastLogAt            *time.Time `json:"last_log_at,omitempty"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	ReminderIntervalMin  int        `json:"reminder_interval_min"`
}

func (s Snapshot) sameAs(o Snapshot) bool {
	sameLast := (s.LastLogAt == nil) == (o.LastLogAt == nil) &&
		(s.LastLogAt == nil || s.LastLogAt.Equal(*o.LastLogAt))
	return sameLast &&
		s.Date == o.Date &&
		s.IntakeML == o.IntakeML &&
		s.GoalML == o.GoalML &&
		s.LogsToday == o.LogsToday &&
		s.NotificationsEnabled == o.NotificationsEnabled &&
		s.ReminderIntervalMin == o.ReminderIntervalMin
}

// Event is emitted when the snapshot changes or a reminder fires.
type Event struct {
	ID           int64                  `json:"id"`
	Type         string                 `json:"type"`
	Timestamp    time.Time              `json:"timestamp"`
	Snapshot     Snapshot               `json:"snapshot"`
	Notification *reminder.Notification `json:"notification,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastTickAt      time.Time `json:"last_tick_at"`
	TickIntervalSec int       `json:"tick_interval_sec"`
	TickCount       int64     `json:"tick_count"`
	ReminderCount   int64     `json:"reminder_count"`
	LastReminderAt  time.Time `json:"last_reminder_at"`
	DataDir         string    `json:"data_dir"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service runs the reminder loop and serves the HTTP API.
type Service struct {
	cfg      Config
	load     reminder.LoadFunc
	notifier reminder.Notifier
	vis      reminder.Visibility
	now      func() time.Time
	logger   *zap.Logger

	mu             sync.RWMutex
	startedAt      time.Time
	lastTickAt     time.Time
	tickCount      int64
	reminderCount  int64
	lastReminderAt time.Time
	lastError      string
	hasSnapshot    bool
	snapshot       Snapshot
	nextEventID    int64
	events         []Event

	nextSubID int
	subs      map[int]chan Event
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the user-facing notifier. Reminders are always published
// as events as well.
func WithNotifier(n reminder.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithVisibility sets the visibility probe handed to the reminder loop.
func WithVisibility(v reminder.Visibility) Option {
	return func(s *Service) { s.vis = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a daemon service reading state through load.
func New(cfg Config, load reminder.LoadFunc, opts ...Option) *Service {
	if cfg.Tick <= 0 {
		cfg.Tick = reminder.DefaultTick
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}

	s := &Service{
		cfg:    cfg,
		load:   load,
		vis:    reminder.AlwaysHidden{},
		now:    time.Now,
		logger: zap.NewNop(),
		subs:   make(map[int]chan Event),
	}
	for _, o := range opts {
		o(s)
	}
	s.startedAt = s.now()
	return s
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Loop builds the reminder loop wired to this service.
func (s *Service) Loop() *reminder.Loop {
	return reminder.NewLoop(s.load, reminder.MultiNotifier{s.notifier, s},
		reminder.WithTick(s.cfg.Tick),
		reminder.WithVisibility(s.vis),
		reminder.WithClock(s.now),
		reminder.WithLogger(s.logger),
		reminder.WithObserver(s.observe),
	)
}

// Run serves HTTP, runs the reminder loop and the optional file watcher
// until ctx is canceled or one of them fails.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Seed initial snapshot so status is useful immediately.
	s.refresh()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return s.Loop().Run(gctx)
	})
	if s.cfg.Watch && s.cfg.DataDir != "" {
		g.Go(func() error {
			return s.watch(gctx)
		})
	}

	return g.Wait()
}

// Notify implements reminder.Notifier by publishing a reminder event.
func (s *Service) Notify(_ context.Context, n reminder.Notification) error {
	s.mu.Lock()
	s.reminderCount++
	s.lastReminderAt = n.At
	s.nextEventID++
	ev := Event{
		ID:           s.nextEventID,
		Type:         EventReminder,
		Timestamp:    n.At,
		Snapshot:     s.snapshot,
		Notification: &n,
	}
	s.mu.Unlock()

	s.publishEvent(ev)
	return nil
}

func (s *Service) observe(res reminder.Result) {
	s.mu.Lock()
	s.lastTickAt = res.At
	s.tickCount++
	if res.Err != nil {
		s.lastError = res.Err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if res.State != nil {
		s.update(res.State, res.At)
	}
}

// refresh reloads state outside the tick schedule.
func (s *Service) refresh() {
	st, err := s.load()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.logger.Warn("daemon: loading state failed", zap.Error(err))
		return
	}
	s.update(st, s.now())
}

func (s *Service) update(st *state.State, now time.Time) {
	snap := snapshotFromState(st, now)

	s.mu.Lock()
	changed := !s.hasSnapshot || !s.snapshot.sameAs(snap)
	s.hasSnapshot = true
	s.snapshot = snap

	var ev Event
	if changed {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
	}
	s.mu.Unlock()

	if changed {
		s.publishEvent(ev)
	}
}

func snapshotFromState(st *state.State, now time.Time) Snapshot {
	tr := hydration.New(st, hydration.WithClock(func() time.Time { return now }))

	snap := Snapshot{
		At:                   now,
		Date:                 hydration.DayKey(now, time.Local),
		IntakeML:             tr.Intake(),
		GoalML:               tr.Goal(),
		Percent:              hydration.Percent(tr.Intake(), tr.Goal()),
		LogsToday:            len(tr.TodayLogs()),
		NotificationsEnabled: st.Settings.NotificationsEnabled,
		ReminderIntervalMin:  st.Settings.ReminderInterval,
	}
	if last := st.LastLog(); last != nil {
		at := last.Time()
		snap.LastLogAt = &at
	}
	return snap
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastTickAt:      s.lastTickAt,
		TickIntervalSec: int(s.cfg.Tick.Seconds()),
		TickCount:       s.tickCount,
		ReminderCount:   s.reminderCount,
		LastReminderAt:  s.lastReminderAt,
		DataDir:         s.cfg.DataDir,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
