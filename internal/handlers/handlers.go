// Package handlers implements HTTP handlers for the settlement API.
package handlers

import (
	"log/slog"

	"github.com/myfans/settlement/internal/service"
)

// Handler serves every endpoint described by the embedded OpenAPI document
type Handler struct {
	checkouts     service.Checkouts
	access        service.Access
	fees          service.Fees
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	checkouts service.Checkouts,
	access service.Access,
	fees service.Fees,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		checkouts:     checkouts,
		access:        access,
		fees:          fees,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
