package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckIns counts successful check-ins by derived status.
	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "check_ins_total",
		Help:      "Successful check-ins by status.",
	}, []string{"status"})

	CheckOuts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "check_outs_total",
		Help:      "Successful check-outs.",
	})

	// RejectedTransitions counts check-in/check-out attempts refused by the lifecycle rules.
	RejectedTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "rejected_transitions_total",
		Help:      "Check-in/check-out attempts rejected by the lifecycle rules.",
	}, []string{"operation", "reason"})

	WorkedHours = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance",
		Name:      "worked_hours",
		Help:      "Hours between check-in and check-out.",
		Buckets:   []float64{1, 2, 4, 6, 8, 9, 10, 12},
	})
)
