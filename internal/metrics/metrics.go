package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lifecycle"

// Saga outcomes
const (
	OutcomeSuccess          = "success"
	OutcomeRejected         = "rejected"
	OutcomeLedgerFailed     = "ledger_failed"
	OutcomeIndexFailed      = "index_failed"
	OutcomeCompensated      = "compensated"
	OutcomeCompensationLost = "compensation_failed"
)

// Metrics records saga, ledger and sweeper activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	sagaOutcomes   *prometheus.CounterVec
	ledgerDuration *prometheus.HistogramVec
	ledgerErrors   *prometheus.CounterVec
	orphans        *prometheus.CounterVec
	sweeps         *prometheus.CounterVec
}

// New registers the lifecycle metrics on the provided registerer
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	sagaOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_outcomes_total",
		Help:      "Lifecycle operations by stage, action and outcome.",
	}, []string{"stage", "action", "outcome"})
	ledgerDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_call_duration_seconds",
		Help:      "Duration of ledger calls and transactions in seconds.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"contract", "method", "kind"})
	ledgerErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_errors_total",
		Help:      "Failed ledger calls by error kind.",
	}, []string{"contract", "method", "kind"})
	orphans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_orphans_total",
		Help:      "Ledger entities left without index row after a failed compensation.",
	}, []string{"stage"})
	sweeps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweeper_items_total",
		Help:      "Items processed by the sweeper by result.",
	}, []string{"sweeper", "result"})

	reg.MustRegister(sagaOutcomes, ledgerDuration, ledgerErrors, orphans, sweeps)

	return &Metrics{
		sagaOutcomes:   sagaOutcomes,
		ledgerDuration: ledgerDuration,
		ledgerErrors:   ledgerErrors,
		orphans:        orphans,
		sweeps:         sweeps,
	}
}

// IncSaga counts one finished lifecycle operation
func (m *Metrics) IncSaga(stage, action, outcome string) {
	if m == nil || m.sagaOutcomes == nil {
		return
	}
	m.sagaOutcomes.WithLabelValues(normalizeLabel(stage), normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// ObserveLedger records the duration of a ledger call ("call") or transaction ("transact")
func (m *Metrics) ObserveLedger(contract, method, kind string, duration time.Duration) {
	if m == nil || m.ledgerDuration == nil {
		return
	}
	m.ledgerDuration.WithLabelValues(normalizeLabel(contract), normalizeLabel(method), normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncLedgerError counts a failed ledger call by error kind
func (m *Metrics) IncLedgerError(contract, method, kind string) {
	if m == nil || m.ledgerErrors == nil {
		return
	}
	m.ledgerErrors.WithLabelValues(normalizeLabel(contract), normalizeLabel(method), normalizeLabel(kind)).Inc()
}

// IncOrphan counts a persisted ledger orphan
func (m *Metrics) IncOrphan(stage string) {
	if m == nil || m.orphans == nil {
		return
	}
	m.orphans.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncSweep counts an item handled by a sweeper
func (m *Metrics) IncSweep(sweeper, result string) {
	if m == nil || m.sweeps == nil {
		return
	}
	m.sweeps.WithLabelValues(normalizeLabel(sweeper), normalizeLabel(result)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
