package prefs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ice-report-service/internal/query"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := NewStore(path, testLogger())

	saved := Prefs{Unit: "cm", Language: "es", Range: "custom", From: "12-01-2025", To: "12-31-2025"}
	require.NoError(t, store.Save(saved))

	assert.Equal(t, saved, store.Load())
}

func TestStore_LoadMissingFileYieldsZero(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	assert.Equal(t, Prefs{}, store.Load())
}

func TestStore_LoadCorruptFileYieldsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, testLogger())
	assert.Equal(t, Prefs{}, store.Load())
}

func TestFromStateApply_RoundTripsStickyFields(t *testing.T) {
	s := query.Default().
		WithUnit(query.UnitCentimeters).
		WithLanguage("so").
		WithCustomRange("12/01/2025", "12/31/2025")

	restored := FromState(s).Apply(query.Default())
	assert.Equal(t, query.UnitCentimeters, restored.Unit)
	assert.Equal(t, "so", restored.Language)
	assert.Equal(t, query.RangeCustom, restored.Range)
	assert.Equal(t, "12-01-2025", restored.From)
	assert.Equal(t, "12-31-2025", restored.To)
}

func TestApply_IgnoresUnrecognizedValuesFieldByField(t *testing.T) {
	p := Prefs{Unit: "furlongs", Language: "es", Range: "fortnight"}

	s := p.Apply(query.Default())
	assert.Equal(t, query.UnitInches, s.Unit, "bad unit keeps the default")
	assert.Equal(t, "es", s.Language, "good fields still apply")
	assert.Equal(t, query.RangeAll, s.Range)
}

func TestApply_ZeroPrefsLeaveStateUntouched(t *testing.T) {
	s := Prefs{}.Apply(query.Default())
	assert.Equal(t, query.Default(), s)
}
