package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/api"
	"github.com/myfans/settlement/internal/config"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/ledger"
	"github.com/myfans/settlement/internal/middleware"
	"github.com/myfans/settlement/internal/ratelimit"
	"github.com/myfans/settlement/internal/repository"
	"github.com/myfans/settlement/internal/service"
	"github.com/myfans/settlement/internal/txengine"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the external collaborators the services are built on.
type Dependencies struct {
	Ledger    *ledger.Client
	Network   txengine.Connectivity
	Publisher events.Publisher
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	deps Dependencies,
	logger *slog.Logger,
) (http.Handler, error) {
	checkoutService := service.NewCheckoutService(database, cfg.Checkout, cfg.Engine, service.CheckoutDeps{
		Balances:  deps.Ledger,
		Submitter: deps.Ledger,
		Network:   deps.Network,
		Publisher: deps.Publisher,
		Limiter:   deps.Limiter,
		Clock:     deps.Clock,
		Logger:    logger,
	})
	accessService := service.NewAccessService(database, deps.Publisher, deps.Clock, logger)
	feeService := service.NewFeeService(cfg.Withdrawal)

	handler := NewHandler(checkoutService, accessService, feeService, database, logger)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	handler.Register(mux)

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load API document: %w", err)
	}
	validation, err := middleware.RequestValidation(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	finalHandler := middleware.Metrics(mux)
	finalHandler = validation(finalHandler)
	finalHandler = middleware.FailureInjection(&cfg.App, logger)(finalHandler)

	idempotencyRepo := repository.NewIdempotencyRepository(database)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)

	// Replays are served from the idempotency cache, so authentication has
	// to run before it.
	finalHandler = middleware.Auth(&cfg.Auth, logger)(finalHandler)

	return finalHandler, nil
}

// Register mounts every API endpoint on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.GetHealth)

	mux.HandleFunc("POST /api/v1/checkouts", h.CreateCheckout)
	mux.HandleFunc("GET /api/v1/checkouts/{checkoutId}", h.GetCheckout)
	mux.HandleFunc("GET /api/v1/checkouts/{checkoutId}/plan", h.GetCheckoutPlan)
	mux.HandleFunc("GET /api/v1/checkouts/{checkoutId}/price", h.GetCheckoutPrice)
	mux.HandleFunc("GET /api/v1/checkouts/{checkoutId}/wallet", h.GetCheckoutWallet)
	mux.HandleFunc("GET /api/v1/checkouts/{checkoutId}/preview", h.GetCheckoutPreview)
	mux.HandleFunc("POST /api/v1/checkouts/{checkoutId}/validate", h.ValidateCheckoutBalance)
	mux.HandleFunc("POST /api/v1/checkouts/{checkoutId}/submit", h.SubmitCheckout)
	mux.HandleFunc("POST /api/v1/checkouts/{checkoutId}/confirm", h.ConfirmCheckout)
	mux.HandleFunc("POST /api/v1/checkouts/{checkoutId}/fail", h.FailCheckout)

	mux.HandleFunc("POST /api/v1/purchases", h.CreatePurchase)
	mux.HandleFunc("POST /api/v1/purchases/{purchaseId}/unlock", h.UnlockContent)
	mux.HandleFunc("GET /api/v1/access", h.CheckAccess)

	mux.HandleFunc("GET /api/v1/fees", h.GetFees)
	mux.HandleFunc("POST /api/v1/withdrawals/quote", h.QuoteWithdrawal)
}
