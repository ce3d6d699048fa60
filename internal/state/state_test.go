package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store.
type memStore struct {
	m      map[string]string
	setErr error
}

func newMemStore() *memStore { return &memStore{m: map[string]string{}} }

func (s *memStore) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) SetMany(entries map[string]string) error {
	if s.setErr != nil {
		return s.setErr
	}
	for k, v := range entries {
		s.m[k] = v
	}
	return nil
}

func TestLoad_EmptyStoreUsesDefaults(t *testing.T) {
	st, err := Load(newMemStore())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSettings(), st.Settings)
	assert.Empty(t, st.Logs)
	assert.Empty(t, st.Stats)
}

func TestSave_WritesArraysNotNull(t *testing.T) {
	ms := newMemStore()
	require.NoError(t, Save(ms, New()))

	assert.Equal(t, "[]", ms.m[KeyLogs])
	assert.Equal(t, "[]", ms.m[KeyStats])
	assert.JSONEq(t, `{"dailyGoal":2500,"reminderInterval":60,"notificationsEnabled":false}`, ms.m[KeySettings])
}

func TestSaveLoad_RoundTripThroughSQLite(t *testing.T) {
	kv, err := store.Open(filepath.Join(t.TempDir(), "hidralife.db"))
	require.NoError(t, err)
	defer kv.Close()

	want := &State{
		Settings: model.UserSettings{DailyGoal: 3000, ReminderInterval: 45, NotificationsEnabled: true},
		Logs: []model.WaterLog{
			{ID: "a", Amount: 200, Timestamp: 1_700_000_000_000},
			{ID: "b", Amount: 750, Timestamp: 1_700_000_100_000},
		},
		Stats: []model.DailyStats{{Date: "2023-11-14", Total: 950, Goal: 3000}},
	}
	require.NoError(t, Save(kv, want))

	got, err := Load(kv)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CorruptBlob(t *testing.T) {
	ms := newMemStore()
	ms.m[KeyLogs] = `[{"id":`

	_, err := Load(ms)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
	assert.Contains(t, err.Error(), KeyLogs)
}

func TestSave_PropagatesStoreError(t *testing.T) {
	ms := newMemStore()
	ms.setErr = errors.New("disk full")

	err := Save(ms, New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
