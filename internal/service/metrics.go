package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_checkout_transitions_total",
			Help: "Checkout sessions entering each status",
		},
		[]string{"status"},
	)

	unlockAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_unlock_attempts_total",
			Help: "Content unlock attempts by outcome",
		},
		[]string{"outcome"},
	)

	purchasesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settlement_purchases_created_total",
			Help: "Content purchases recorded",
		},
	)
)
