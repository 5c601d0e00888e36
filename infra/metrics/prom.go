package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/depotops/crewboard/core/conflict"
	coremetrics "github.com/depotops/crewboard/core/metrics"
	"github.com/depotops/crewboard/core/engine"
)

// PromSink records schedule activity in Prometheus metrics.
type PromSink struct {
	mutations *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	archives  *prometheus.CounterVec
	skips     *prometheus.CounterVec
	board     prometheus.Gauge
}

// NewPromSink registers board metrics on the default Prometheus
// registerer. The Prometheus server is started separately via
// StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewboard_mutations_total",
		Help: "Total number of applied board mutations",
	}, []string{"op"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewboard_conflicts_total",
		Help: "Total number of advisory conflict results",
	}, []string{"kind", "reason"})
	archives := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewboard_archives_total",
		Help: "Total number of crew archive outcomes",
	}, []string{"outcome"})
	skips := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewboard_policy_skips_total",
		Help: "Total number of items excluded by the past-date policy",
	}, []string{"reason"})
	board := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crewboard_board_items",
		Help: "Number of live schedule items on the board",
	})

	for _, c := range []prometheus.Collector{mutations, conflicts, archives, skips, board} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{mutations: mutations, conflicts: conflicts, archives: archives, skips: skips, board: board}, nil
}

// RecordMutations increments the mutation counter for the operation.
func (s *PromSink) RecordMutations(op string, count int) error {
	s.mutations.WithLabelValues(op).Add(float64(count))
	return nil
}

// RecordConflict counts one advisory conflict result.
func (s *PromSink) RecordConflict(kind conflict.ResourceKind, reason conflict.Reason) error {
	s.conflicts.WithLabelValues(string(kind), string(reason)).Inc()
	return nil
}

// RecordArchive counts one archive outcome.
func (s *PromSink) RecordArchive(outcome string) error {
	s.archives.WithLabelValues(outcome).Inc()
	return nil
}

// RecordSkips counts policy-skipped items.
func (s *PromSink) RecordSkips(reason engine.SkipReason, count int) error {
	s.skips.WithLabelValues(string(reason)).Add(float64(count))
	return nil
}

// RecordBoardSize sets the live item gauge.
func (s *PromSink) RecordBoardSize(items int) error {
	s.board.Set(float64(items))
	return nil
}

var _ coremetrics.Sink = (*PromSink)(nil)

// StartPromServer starts an HTTP server exposing Prometheus metrics on
// the given address until the context is canceled.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
