package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "negotiation_tracker"

// Outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeBusy        = "busy"
	OutcomeError       = "error"
)

// Metrics owns the Prometheus registry and every collector of the service.
type Metrics struct {
	Registry *prometheus.Registry

	repoCalls    *prometheus.CounterVec
	repoLatency  *prometheus.HistogramVec
	storeLoads   *prometheus.CounterVec
	storeRecords prometheus.Gauge
	storeVersion prometheus.Gauge
	assistCalls  *prometheus.CounterVec
	openForms    prometheus.Gauge
}

// New creates a registry with the Go and process collectors plus the service collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		repoCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "calls_total",
			Help:      "Remote store calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		repoLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "call_duration_seconds",
			Help:      "Remote store call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		storeLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "loads_total",
			Help:      "Store loads by outcome. Superseded responses are counted as stale.",
		}, []string{"outcome"}),
		storeRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records",
			Help:      "Records held by the in-memory collection.",
		}),
		storeVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "collection_version",
			Help:      "Version of the current collection snapshot.",
		}),
		assistCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "assist_calls_total",
			Help:      "AI helper calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		openForms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "open_sessions",
			Help:      "Form sessions currently held by the registry.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.repoCalls,
		m.repoLatency,
		m.storeLoads,
		m.storeRecords,
		m.storeVersion,
		m.assistCalls,
		m.openForms,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Outcome classifies an error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, apperrors.ErrRemoteUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, apperrors.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, apperrors.ErrAssistBusy):
		return OutcomeBusy
	default:
		return OutcomeError
	}
}

// ObserveRepositoryCall records one remote store call.
func (m *Metrics) ObserveRepositoryCall(op string, started time.Time, err error) {
	m.repoLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
	m.repoCalls.WithLabelValues(op, Outcome(err)).Inc()
}

// ObserveLoad records the outcome of a store load.
func (m *Metrics) ObserveLoad(outcome string) {
	m.storeLoads.WithLabelValues(outcome).Inc()
}

// SetCollection publishes the size and version of the current snapshot.
func (m *Metrics) SetCollection(count int, version uint64) {
	m.storeRecords.Set(float64(count))
	m.storeVersion.Set(float64(version))
}

// ObserveAssist records one AI helper call.
func (m *Metrics) ObserveAssist(op string, err error) {
	m.assistCalls.WithLabelValues(op, Outcome(err)).Inc()
}

// SetOpenForms publishes the number of live form sessions.
func (m *Metrics) SetOpenForms(n int) {
	m.openForms.Set(float64(n))
}
