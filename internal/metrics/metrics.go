package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine outcomes. A nil *Metrics records nothing.
type Metrics struct {
	billsCreated  prometheus.Counter
	billsClaimed  prometheus.Counter
	pointsAwarded prometheus.Counter
	redemptions   prometheus.Counter
	failures      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		billsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mosspay",
			Name:      "bills_created_total",
			Help:      "Bills committed by the ledger engine.",
		}),
		billsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mosspay",
			Name:      "bills_claimed_total",
			Help:      "Bills moved from pending to logged.",
		}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mosspay",
			Name:      "points_awarded_total",
			Help:      "Points credited to customer accounts by claims.",
		}),
		redemptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mosspay",
			Name:      "reward_redemptions_total",
			Help:      "Rewards redeemed against point balances.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mosspay",
			Name:      "operation_failures_total",
			Help:      "Failed operations by operation and error kind.",
		}, []string{"op", "kind"}),
	}
	reg.MustRegister(m.billsCreated, m.billsClaimed, m.pointsAwarded, m.redemptions, m.failures)
	return m
}

func (m *Metrics) BillCreated() {
	if m == nil {
		return
	}
	m.billsCreated.Inc()
}

func (m *Metrics) BillClaimed(points int64) {
	if m == nil {
		return
	}
	m.billsClaimed.Inc()
	m.pointsAwarded.Add(float64(points))
}

func (m *Metrics) Redeemed() {
	if m == nil {
		return
	}
	m.redemptions.Inc()
}

func (m *Metrics) Failure(op, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op, kind).Inc()
}
