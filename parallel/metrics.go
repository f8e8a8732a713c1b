package parallel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "parallel_batches_total",
		Help: "The total number of evaluation batches started",
	}, []string{"batch_name"})

	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "parallel_evaluations_total",
		Help: "The total number of computations evaluated",
	}, []string{"batch_name"})

	evaluationFailures = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "parallel_evaluation_failures_total",
		Help: "The total number of evaluations that resolved to a failure",
	}, []string{"batch_name"})

	panicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "parallel_panics_recovered_total",
		Help: "The total number of panics recovered at the worker boundary",
	}, []string{"batch_name"})

	evaluationsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "parallel_evaluations_in_flight",
		Help: "The number of evaluations currently running",
	}, []string{"batch_name"})
)
