// Package prefs persists the last-used display settings across restarts:
// unit, language, map range mode, and the custom range bounds. They are read
// at boot before any URL overlay is applied and written (atomically) on each
// change.
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"

	"github.com/couchcryptid/ice-report-service/internal/query"
)

// Prefs is the on-disk shape. Empty fields mean "use the default".
type Prefs struct {
	Unit     string `json:"unit,omitempty"`
	Language string `json:"lang,omitempty"`
	Range    string `json:"range,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

// FromState extracts the persisted subset of a query state.
func FromState(s query.State) Prefs {
	return Prefs{
		Unit:     string(s.Unit),
		Language: s.Language,
		Range:    string(s.Range),
		From:     s.From,
		To:       s.To,
	}
}

// Apply overlays the stored preferences onto a state. Unrecognized stored
// values are ignored field by field, so a stale file can never poison the
// defaults.
func (p Prefs) Apply(s query.State) query.State {
	s = s.WithUnit(query.Unit(p.Unit))
	s = s.WithLanguage(p.Language)
	s = s.WithRange(query.RangeMode(p.Range))
	if s.Range == query.RangeCustom {
		s = s.WithCustomRange(p.From, p.To)
	}
	return s
}

// Store reads and writes the preferences file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store at the given path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the stored preferences. A missing or corrupt file yields zero
// preferences and is never fatal; corruption is logged once here.
func (s *Store) Load() Prefs {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("preferences file unreadable, using defaults", "path", s.path, "error", err)
		}
		return Prefs{}
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("preferences file corrupt, using defaults", "path", s.path, "error", err)
		return Prefs{}
	}
	return p
}

// Save writes the preferences atomically so a crash mid-write can never
// leave a torn file behind.
func (s *Store) Save(p Prefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
