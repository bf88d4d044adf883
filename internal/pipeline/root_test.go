package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ice-report-service/internal/domain"
	"github.com/couchcryptid/ice-report-service/internal/observability"
	"github.com/couchcryptid/ice-report-service/internal/prefs"
	"github.com/couchcryptid/ice-report-service/internal/query"
)

type fakeSource struct {
	mu    sync.Mutex
	rows  []domain.RawRow
	err   error
	calls int
	gate  chan struct{} // when set, Fetch blocks until the channel closes
}

func (f *fakeSource) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	f.mu.Lock()
	f.calls++
	rows, err, gate := f.rows, f.err, f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return rows, err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeExporter struct {
	mu        sync.Mutex
	published [][]domain.Observation
	err       error
}

func (f *fakeExporter) PublishObservations(ctx context.Context, observations []domain.Observation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, observations)
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRoot(source Source, exporter Exporter, store *prefs.Store) *Root {
	return New(source, exporter, store, testLogger(), observability.NewMetricsForTesting())
}

func TestReload_SwapsWorkingSetOnSuccess(t *testing.T) {
	source := &fakeSource{rows: []domain.RawRow{
		{"Date": "12/30/2025", "Lake": "Harriet", "Thickness (inches)": "8.5"},
		{"Date": "", "Lake": "", "Coordinates": "", "Thickness (inches)": "", "Info": ""},
		{"Date": "not a date", "Lake": "Nokomis", "Coordinates": "gibberish"},
	}}
	root := newTestRoot(source, nil, nil)

	require.Error(t, root.CheckReadiness(context.Background()), "not ready before any load")
	require.NoError(t, root.Reload(context.Background()))

	obs := root.Snapshot()
	require.Len(t, obs, 2, "the fully blank row is discarded")

	date := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	thickness := 8.5
	expected := domain.Observation{
		DateRaw:     "12/30/2025",
		Date:        &date,
		DateKey:     "12-30-2025",
		Lake:        "Harriet",
		ThicknessIn: &thickness,
	}
	if diff := cmp.Diff(expected, obs[0]); diff != "" {
		t.Fatalf("normalized observation mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Nokomis", obs[1].Lake)
	assert.Nil(t, obs[1].Date, "unparseable fields degrade without dropping the row")
	assert.NoError(t, root.CheckReadiness(context.Background()))
}

func TestReload_FailurePreservesPreviousSet(t *testing.T) {
	source := &fakeSource{rows: []domain.RawRow{{"Lake": "Harriet"}}}
	root := newTestRoot(source, nil, nil)
	require.NoError(t, root.Reload(context.Background()))

	source.mu.Lock()
	source.err = errors.New("sheet unreachable")
	source.mu.Unlock()

	err := root.Reload(context.Background())
	require.Error(t, err)
	assert.Len(t, root.Snapshot(), 1, "stale set stays visible after a failed reload")
	assert.NoError(t, root.CheckReadiness(context.Background()), "readiness survives later failures")
}

func TestReload_ConcurrentCallIsDropped(t *testing.T) {
	gate := make(chan struct{})
	source := &fakeSource{rows: []domain.RawRow{{"Lake": "Harriet"}}, gate: gate}
	root := newTestRoot(source, nil, nil)

	done := make(chan error, 1)
	go func() { done <- root.Reload(context.Background()) }()

	// Wait for the first reload to enter Fetch, then race a second call at it.
	require.Eventually(t, func() bool { return root.Loading() }, time.Second, time.Millisecond)
	assert.NoError(t, root.Reload(context.Background()), "gated call returns immediately with no error")

	close(gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, source.callCount(), "only the first reload reached the source")
}

func TestReload_PublishesToExporter(t *testing.T) {
	source := &fakeSource{rows: []domain.RawRow{{"Lake": "Harriet", "Date": "12/30/2025"}}}
	exporter := &fakeExporter{}
	root := newTestRoot(source, exporter, nil)

	require.NoError(t, root.Reload(context.Background()))
	require.Len(t, exporter.published, 1)
	assert.Equal(t, "Harriet", exporter.published[0][0].Lake)
}

func TestReload_ExportFailureIsNotFatal(t *testing.T) {
	source := &fakeSource{rows: []domain.RawRow{{"Lake": "Harriet"}}}
	exporter := &fakeExporter{err: errors.New("broker down")}
	root := newTestRoot(source, exporter, nil)

	assert.NoError(t, root.Reload(context.Background()), "a failed export does not fail the load")
	assert.Len(t, root.Snapshot(), 1)
}

func TestNew_AppliesStoredPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := prefs.NewStore(path, testLogger())
	require.NoError(t, store.Save(prefs.Prefs{Unit: "cm", Language: "es", Range: "season"}))

	root := newTestRoot(&fakeSource{}, nil, store)

	base := root.BaseState()
	assert.Equal(t, query.UnitCentimeters, base.Unit)
	assert.Equal(t, "es", base.Language)
	assert.Equal(t, query.RangeSeason, base.Range)
}

func TestRememberState_AdoptsStickyFieldsOnly(t *testing.T) {
	root := newTestRoot(&fakeSource{}, nil, nil)

	s := query.Default().
		WithSearch("clear ice").
		WithLake("Harriet").
		WithUnit(query.UnitCentimeters).
		WithLanguage("so").
		WithRange(query.RangeLast7)
	root.RememberState(s)

	base := root.BaseState()
	assert.Equal(t, query.UnitCentimeters, base.Unit)
	assert.Equal(t, "so", base.Language)
	assert.Equal(t, query.RangeLast7, base.Range)
	assert.Empty(t, base.Search, "search is per-link, never sticky")
	assert.Empty(t, base.Lake, "lake filter is per-link, never sticky")
}

func TestClose_FlushesPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := prefs.NewStore(path, testLogger())
	root := newTestRoot(&fakeSource{}, nil, store)

	root.RememberState(query.Default().WithUnit(query.UnitCentimeters))
	root.Close()

	assert.Equal(t, "cm", store.Load().Unit, "close writes without waiting out the debounce")
}
