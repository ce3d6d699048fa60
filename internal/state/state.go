// Package state holds the persisted hidralife state and its load/save boundary.
package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theirongolddev/hidralife/internal/model"
)

// Storage keys. Each holds one JSON blob.
const (
	KeySettings = "hidralife-settings"
	KeyLogs     = "hidralife-logs"
	KeyStats    = "hidralife-stats"
)

// ErrCorrupt indicates a stored blob could not be decoded.
var ErrCorrupt = errors.New("state: corrupt stored value")

// Store is the key/value surface state needs. *store.KV satisfies it.
type Store interface {
	Get(key string) (string, bool, error)
	SetMany(entries map[string]string) error
}

// State is everything hidralife persists.
type State struct {
	Settings model.UserSettings `json:"settings" yaml:"settings"`
	Logs     []model.WaterLog   `json:"logs" yaml:"logs"`
	Stats    []model.DailyStats `json:"stats" yaml:"stats"`
}

// New returns an empty state with default settings.
func New() *State {
	return &State{Settings: model.DefaultSettings()}
}

// LastLog returns a copy of the most recent log, or nil when there are none.
func (st *State) LastLog() *model.WaterLog {
	if len(st.Logs) == 0 {
		return nil
	}
	l := st.Logs[len(st.Logs)-1]
	return &l
}

// Load reads all three blobs. Missing keys keep their defaults.
func Load(s Store) (*State, error) {
	st := New()

	if err := loadKey(s, KeySettings, &st.Settings); err != nil {
		return nil, err
	}
	if err := loadKey(s, KeyLogs, &st.Logs); err != nil {
		return nil, err
	}
	if err := loadKey(s, KeyStats, &st.Stats); err != nil {
		return nil, err
	}

	return st, nil
}

func loadKey(s Store, key string, dst any) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Save writes all three blobs in one transaction.
func Save(s Store, st *State) error {
	entries := make(map[string]string, 3)

	blobs := []struct {
		key string
		v   any
	}{
		{KeySettings, st.Settings},
		{KeyLogs, nonNilLogs(st.Logs)},
		{KeyStats, nonNilStats(st.Stats)},
	}
	for _, b := range blobs {
		data, err := json.Marshal(b.v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", b.key, err)
		}
		entries[b.key] = string(data)
	}

	if err := s.SetMany(entries); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// nil slices would encode as null; the blobs are always arrays.
func nonNilLogs(l []model.WaterLog) []model.WaterLog {
	if l == nil {
		return []model.WaterLog{}
	}
	return l
}

func nonNilStats(s []model.DailyStats) []model.DailyStats {
	if s == nil {
		return []model.DailyStats{}
	}
	return s
}
