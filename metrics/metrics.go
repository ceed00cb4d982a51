package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/btcq-org/ctoken/confidential"
)

type MetricName string

const (
	MetricNameOperations      MetricName = "operations_total"
	MetricNameOperationErrors MetricName = "operation_errors_total"
	MetricNameProofs          MetricName = "proofs_generated_total"
	MetricNameContextsOpened  MetricName = "proof_contexts_opened_total"
	MetricNameContextsClosed  MetricName = "proof_contexts_closed_total"
	MetricNameSettleDuration  MetricName = "operation_duration_seconds"
)

func (m MetricName) String() string {
	return string(m)
}

const (
	NamespaceCToken        = "ctoken"
	SubsystemConfidential  = "confidential"
	SubsystemProofContexts = "proof_contexts"
)

// Metrics collects confidential operation metrics in its own registry.
type Metrics struct {
	registry *prometheus.Registry
	counters map[MetricName]*prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ confidential.Observer = (*Metrics)(nil)

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		counters: map[MetricName]*prometheus.CounterVec{
			MetricNameOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: NamespaceCToken,
				Subsystem: SubsystemConfidential,
				Name:      MetricNameOperations.String(),
				Help:      "Number of settled operations",
			}, []string{"op"}),
			MetricNameOperationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: NamespaceCToken,
				Subsystem: SubsystemConfidential,
				Name:      MetricNameOperationErrors.String(),
				Help:      "Number of failed operations",
			}, []string{"op", "state"}),
			MetricNameProofs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: NamespaceCToken,
				Subsystem: SubsystemConfidential,
				Name:      MetricNameProofs.String(),
				Help:      "Number of generated proofs",
			}, []string{"kind"}),
			MetricNameContextsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: NamespaceCToken,
				Subsystem: SubsystemProofContexts,
				Name:      MetricNameContextsOpened.String(),
				Help:      "Number of proof contexts opened",
			}, []string{"kind"}),
			MetricNameContextsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: NamespaceCToken,
				Subsystem: SubsystemProofContexts,
				Name:      MetricNameContextsClosed.String(),
				Help:      "Number of proof contexts closed",
			}, []string{"kind"}),
		},
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NamespaceCToken,
			Subsystem: SubsystemConfidential,
			Name:      MetricNameSettleDuration.String(),
			Help:      "Time from operation start to settlement",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"op"}),
	}
	for _, counter := range m.counters {
		m.registry.MustRegister(counter)
	}
	m.registry.MustRegister(m.duration)
	return m
}

// Counter returns the counter of name for the given label values.
func (m *Metrics) Counter(name MetricName, labels ...string) prometheus.Counter {
	vec, ok := m.counters[name]
	if !ok {
		return nil
	}
	return vec.WithLabelValues(labels...)
}

func (m *Metrics) IncrCounter(name MetricName, labels ...string) {
	if counter := m.Counter(name, labels...); counter != nil {
		counter.Inc()
	}
}

// Observe implements confidential.Observer.
func (m *Metrics) Observe(e confidential.Event) {
	switch e.Kind {
	case confidential.EventProofGenerated:
		m.IncrCounter(MetricNameProofs, e.ProofKind.String())
	case confidential.EventContextOpened:
		m.IncrCounter(MetricNameContextsOpened, e.ProofKind.String())
	case confidential.EventContextClosed:
		m.IncrCounter(MetricNameContextsClosed, e.ProofKind.String())
	case confidential.EventSettled:
		m.IncrCounter(MetricNameOperations, e.Op.String())
		m.duration.WithLabelValues(e.Op.String()).Observe(e.Elapsed.Seconds())
	case confidential.EventFailed:
		m.IncrCounter(MetricNameOperationErrors, e.Op.String(), e.State.String())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RegisterHandlers(router *mux.Router) {
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
}
