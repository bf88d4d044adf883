// Package pipeline owns the observation working set and the load cycle that
// replaces it: fetch → decode → normalize → swap. The set is replaced
// atomically by reference only after a load fully succeeds; a failed load
// leaves the previous set intact and visible.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/ice-report-service/internal/domain"
	"github.com/couchcryptid/ice-report-service/internal/observability"
	"github.com/couchcryptid/ice-report-service/internal/prefs"
	"github.com/couchcryptid/ice-report-service/internal/query"
)

// prefsSaveDelay coalesces bursts of state changes into one disk write.
const prefsSaveDelay = 300 * time.Millisecond

// Source fetches and decodes the spreadsheet export into raw rows.
type Source interface {
	Fetch(ctx context.Context) ([]domain.RawRow, error)
}

// Exporter publishes a freshly normalized observation set downstream.
type Exporter interface {
	PublishObservations(ctx context.Context, observations []domain.Observation) error
}

// Root is the pipeline root object: it owns the observation set, the
// sticky preference-backed base state, and the reload gate.
type Root struct {
	source   Source
	exporter Exporter // nil when export is disabled
	store    *prefs.Store
	logger   *slog.Logger
	metrics  *observability.Metrics

	observations atomic.Pointer[[]domain.Observation]
	loading      atomic.Bool
	ready        atomic.Bool

	mu   sync.Mutex
	base query.State

	saveDebounce *query.Debouncer
}

// New creates a pipeline root. The exporter may be nil. Stored preferences
// are applied to the base state here, before any URL overlay.
func New(source Source, exporter Exporter, store *prefs.Store, logger *slog.Logger, metrics *observability.Metrics) *Root {
	base := query.Default()
	if store != nil {
		base = store.Load().Apply(base)
	}
	return &Root{
		source:       source,
		exporter:     exporter,
		store:        store,
		logger:       logger,
		metrics:      metrics,
		base:         base,
		saveDebounce: query.NewDebouncer(nil, prefsSaveDelay),
	}
}

// Snapshot returns the current working set. The slice is shared and must be
// treated as read-only; a reload swaps the whole set, it never mutates.
func (r *Root) Snapshot() []domain.Observation {
	if p := r.observations.Load(); p != nil {
		return *p
	}
	return nil
}

// Loading reports whether a reload is in flight.
func (r *Root) Loading() bool {
	return r.loading.Load()
}

// CheckReadiness returns nil once at least one load has succeeded.
func (r *Root) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no sheet load has succeeded yet")
	}
	return nil
}

// BaseState returns the defaults-plus-preferences state that URL parameters
// overlay onto.
func (r *Root) BaseState() query.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.base
}

// RememberState adopts the sticky display fields of a decoded state (unit,
// language, range, custom bounds) as the new base and schedules a debounced
// preference write. Filters like search text and lake stay per-link.
func (r *Root) RememberState(s query.State) {
	r.mu.Lock()
	r.base.Unit = s.Unit
	r.base.Language = s.Language
	r.base.Range = s.Range
	r.base.From = s.From
	r.base.To = s.To
	snapshot := r.base
	r.mu.Unlock()

	if r.store == nil {
		return
	}
	r.saveDebounce.Trigger(func() {
		if err := r.store.Save(prefs.FromState(snapshot)); err != nil {
			r.logger.Warn("preference save failed", "error", err)
		}
	})
}

// Reload runs one full load cycle. A reload already in flight causes the
// call to be dropped silently; the refresh action is gated, not queued.
// On failure the previous working set stays visible and the error is
// returned for the caller's status line.
func (r *Root) Reload(ctx context.Context) error {
	if !r.loading.CompareAndSwap(false, true) {
		return nil
	}
	defer r.loading.Store(false)

	start := time.Now()
	r.metrics.LoadsAttempted.Inc()

	rows, err := r.source.Fetch(ctx)
	if err != nil {
		r.metrics.LoadsFailed.Inc()
		r.logger.Error("sheet load failed", "error", err)
		return err
	}
	r.metrics.RowsDecoded.Add(float64(len(rows)))

	observations := make([]domain.Observation, 0, len(rows))
	for _, row := range rows {
		obs := domain.Normalize(row)
		if obs.Blank() {
			r.metrics.RowsDiscarded.Inc()
			continue
		}
		if obs.DateRaw != "" && obs.Date == nil {
			r.metrics.ParseFailures.WithLabelValues("date").Inc()
		}
		if obs.CoordsRaw != "" && obs.Coords == nil {
			r.metrics.ParseFailures.WithLabelValues("coords").Inc()
		}
		observations = append(observations, obs)
	}

	r.observations.Store(&observations)
	r.ready.Store(true)
	r.metrics.LoadsSucceeded.Inc()
	r.metrics.ObservationsLoaded.Set(float64(len(observations)))
	r.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("sheet loaded", "rows", len(rows), "observations", len(observations))

	r.export(ctx, observations)
	return nil
}

// export publishes the new set if an exporter is wired. Export failures are
// logged, never propagated, since the load already succeeded.
func (r *Root) export(ctx context.Context, observations []domain.Observation) {
	if r.exporter == nil {
		return
	}
	if err := r.exporter.PublishObservations(ctx, observations); err != nil {
		r.metrics.ExportErrors.Inc()
		r.logger.Warn("observation export failed", "error", err)
		return
	}
	r.metrics.ObservationsExported.Add(float64(len(observations)))
}

// RunPeriodicRefresh reloads on the given interval until the context is
// cancelled. An interval of zero disables background refresh.
func (r *Root) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Reload logs its own failures; stale data stays visible.
			_ = r.Reload(ctx)
		}
	}
}

// Close flushes any pending preference write.
func (r *Root) Close() {
	r.saveDebounce.Stop()
	if r.store != nil {
		r.mu.Lock()
		snapshot := r.base
		r.mu.Unlock()
		if err := r.store.Save(prefs.FromState(snapshot)); err != nil {
			r.logger.Warn("final preference save failed", "error", err)
		}
	}
}
