package metrics

import (
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_updates_total",
		Help: "Inbound Telegram updates by kind",
	}, []string{"kind"})

	AdapterCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_adapter_calls_total",
		Help: "Calls to external services by adapter and outcome",
	}, []string{"adapter", "status"})

	AdapterLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_adapter_latency_seconds",
		Help:    "Latency of calls to external services",
		Buckets: prometheus.DefBuckets,
	}, []string{"adapter"})
)

// Observe records one adapter call that started at start.
func Observe(adapter string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AdapterCallsTotal.WithLabelValues(adapter, status).Inc()
	AdapterLatency.WithLabelValues(adapter).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
