// Package rmetrics registers the Prometheus counters and gauges for one
// section. Action sets the elder and member gauges when the elder set
// changes and counts churn when a merge or split completes; nothing in the
// module calls IncRelocations.
package rmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	errFailedElderMetric    = errors.New("failed to register elders metric")
	errFailedMemberMetric   = errors.New("failed to register members metric")
	errFailedRelocateMetric = errors.New("failed to register relocations metric")
	errFailedChurnMetric    = errors.New("failed to register churn metric")
)

// Metrics is the set of counters/gauges one running section updates. Action
// holds it in its Metrics field; every method is nil-safe, so a scenario
// script can run without a registry by passing nil.
type Metrics struct {
	Elders      prometheus.Gauge
	Members     prometheus.Gauge
	Relocations prometheus.Counter
	ChurnEvents *prometheus.CounterVec
}

// New registers every metric against reg. Pass a fresh
// prometheus.NewRegistry() per section in tests to avoid collisions.
func New(reg prometheus.Registerer) (*Metrics, error) {
	elders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "membership_elders",
		Help: "Number of current elders in the section.",
	})
	if err := reg.Register(elders); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedElderMetric, err)
	}

	members := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "membership_members",
		Help: "Number of current members (elders and adults) in the section.",
	})
	if err := reg.Register(members); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedMemberMetric, err)
	}

	relocations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "membership_relocations_total",
		Help: "Number of candidates relocated away from the section.",
	})
	if err := reg.Register(relocations); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedRelocateMetric, err)
	}

	churn := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_churn_events_total",
		Help: "Number of split/merge churn decisions, labelled by kind.",
	}, []string{"kind"})
	if err := reg.Register(churn); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedChurnMetric, err)
	}

	return &Metrics{
		Elders:      elders,
		Members:     members,
		Relocations: relocations,
		ChurnEvents: churn,
	}, nil
}

func (m *Metrics) SetElders(n int) {
	if m != nil {
		m.Elders.Set(float64(n))
	}
}

func (m *Metrics) SetMembers(n int) {
	if m != nil {
		m.Members.Set(float64(n))
	}
}

func (m *Metrics) IncRelocations() {
	if m != nil {
		m.Relocations.Inc()
	}
}

func (m *Metrics) IncChurn(kind string) {
	if m != nil {
		m.ChurnEvents.WithLabelValues(kind).Inc()
	}
}
