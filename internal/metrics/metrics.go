package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maxgear/internal/domain"
	"maxgear/internal/eventbus"
)

// Search outcome label values
const (
	OutcomeStarted   = "started"
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// Recorder owns a private registry with the storefront's search metrics
type Recorder struct {
	registry *prometheus.Registry
	searches *prometheus.CounterVec
	latency  prometheus.Histogram
	results  prometheus.Histogram
	breaker  *prometheus.GaugeVec
}

// New creates a recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maxgear_searches_total",
				Help: "Catalog searches by outcome",
			},
			[]string{"outcome"},
		),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maxgear_search_duration_seconds",
			Help:    "Time from dispatch to settled result for non-stale searches",
			Buckets: prometheus.DefBuckets,
		}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maxgear_search_results",
			Help:    "Number of products returned by successful searches",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		breaker: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "maxgear_circuit_breaker_state",
				Help: "Current state of the catalog circuit breaker (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}

	r.registry.MustRegister(
		r.searches,
		r.latency,
		r.results,
		r.breaker,
		collectors.NewGoCollector(),
	)
	return r
}

// Observe updates metrics for a single domain event
func (r *Recorder) Observe(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case domain.SearchStartedEvent:
		r.searches.WithLabelValues(OutcomeStarted).Inc()
	case domain.SearchSucceededEvent:
		r.searches.WithLabelValues(OutcomeSucceeded).Inc()
		r.latency.Observe(ev.Elapsed.Seconds())
		r.results.Observe(float64(ev.Count))
	case domain.SearchFailedEvent:
		r.searches.WithLabelValues(OutcomeFailed).Inc()
		r.latency.Observe(ev.Elapsed.Seconds())
	case domain.SearchDiscardedEvent:
		r.searches.WithLabelValues(OutcomeDiscarded).Inc()
	}
}

// Subscribe feeds search events from bus into the recorder
func (r *Recorder) Subscribe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchStarted, r.Observe),
		bus.Subscribe(eventbus.EventSearchSucceeded, r.Observe),
		bus.Subscribe(eventbus.EventSearchFailed, r.Observe),
		bus.Subscribe(eventbus.EventSearchDiscarded, r.Observe),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// SetBreakerState records a circuit breaker transition
func (r *Recorder) SetBreakerState(name string, state float64) {
	r.breaker.WithLabelValues(name).Set(state)
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve runs a metrics listener on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener started", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
