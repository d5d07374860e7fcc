package txengine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailed  = "failed"
)

var (
	executions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_txengine_executions_total",
		Help: "Transaction unit outcomes by type, outcome and error kind",
	}, []string{"type", "outcome", "kind"})

	retries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_txengine_retries_total",
		Help: "Explicit retry requests by transaction type",
	}, []string{"type"})
)
