// Package metrics counts editor activity with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pagecells/internal/cell"
	"pagecells/internal/layout"
)

// Recorder holds the editor's collectors on its own registry.
type Recorder struct {
	Registry *prometheus.Registry

	actions    *prometheus.CounterVec
	lifecycle  *prometheus.CounterVec
	renderTime prometheus.Histogram
}

// NewRecorder creates the collectors and registers them.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagecells_actions_total",
				Help: "Actions applied to the document, by type",
			},
			[]string{"action"},
		),
		lifecycle: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagecells_lifecycle_events_total",
				Help: "Cell focus, blur and scroll transitions, by plugin and whether a hook handled them",
			},
			[]string{"event", "plugin", "handled"},
		),
		renderTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pagecells_render_duration_seconds",
				Help:    "Duration of full render passes",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
	}
	r.Registry.MustRegister(r.actions, r.lifecycle, r.renderTime)
	return r
}

// ObserveAction counts an applied action. Use it as a cell.Store
// subscriber.
func (r *Recorder) ObserveAction(a cell.Action) {
	r.actions.WithLabelValues(a.ActionType()).Inc()
}

// ObserveEvent counts a lifecycle event. Use it as layout.Renderer.OnEvent.
func (r *Recorder) ObserveEvent(e layout.Event) {
	handled := "false"
	if e.Handled {
		handled = "true"
	}
	r.lifecycle.WithLabelValues(string(e.Kind), e.Plugin, handled).Inc()
}

// ObserveRender records how long a render pass took.
func (r *Recorder) ObserveRender(d time.Duration) {
	r.renderTime.Observe(d.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics: serving", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
