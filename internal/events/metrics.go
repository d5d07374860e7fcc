package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_events_published_total",
			Help: "Events handed to a publisher by backend, type and outcome",
		},
		[]string{"backend", "type", "outcome"},
	)

	brokerConnected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "settlement_events_broker_connected",
			Help: "Broker connection status (1 connected, 0 disconnected)",
		},
		[]string{"backend"},
	)
)
