// Package middleware provides HTTP middleware components for the settlement API.
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myfans/settlement/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

// Mutating routes whose first successful response is replayed for a repeated
// key. "*" matches exactly one path segment. Unlock is not listed because
// every unlock emits its own event.
var idempotentRoutes = [][]string{
	splitPath("/api/v1/checkouts"),
	splitPath("/api/v1/checkouts/*/submit"),
	splitPath("/api/v1/checkouts/*/confirm"),
	splitPath("/api/v1/checkouts/*/fail"),
	splitPath("/api/v1/purchases"),
}

var idempotentRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "settlement_idempotent_requests_total",
		Help: "Keyed POST requests by cache outcome",
	},
	[]string{"outcome"},
)

// IdempotencyRepository stores responses by key and normalised path.
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// bodyRecorder tees the downstream response so a 2xx can be stored once the
// handler returns.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bodyRecorder) WriteHeader(code int) {
	b.status = code
	b.ResponseWriter.WriteHeader(code)
}

func (b *bodyRecorder) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

func (b *bodyRecorder) succeeded() bool {
	return b.status >= 200 && b.status < 300
}

// Idempotency replays the stored response when a keyed POST repeats. Storage
// failures never fail the request; the handler just runs again.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" || !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			path := strings.TrimSuffix(r.URL.Path, "/")
			log := logger.With("idempotency_key", key, "path", path)

			cached, err := repo.Get(r.Context(), key, path)
			switch {
			case err != nil:
				idempotentRequests.WithLabelValues("lookup_failed").Inc()
				log.Error("idempotency lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			case cached != nil:
				idempotentRequests.WithLabelValues("replayed").Inc()
				log.Debug("replaying stored response", "status", cached.ResponseStatus)
				replay(w, cached)
				return
			}

			rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if !rec.succeeded() {
				idempotentRequests.WithLabelValues("not_stored").Inc()
				return
			}

			err = repo.Store(r.Context(), &models.IdempotencyKey{
				Key:            key,
				RequestPath:    path,
				ResponseStatus: rec.status,
				ResponseBody:   rec.body.String(),
				CreatedAt:      time.Now().UTC(),
			})
			if err != nil {
				idempotentRequests.WithLabelValues("store_failed").Inc()
				log.Error("failed to store idempotent response", "error", err)
				return
			}
			idempotentRequests.WithLabelValues("stored").Inc()
		})
	}
}

func replay(w http.ResponseWriter, cached *models.IdempotencyKey) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(cached.ResponseStatus)
	_, _ = w.Write([]byte(cached.ResponseBody)) //nolint:errcheck // client went away
}

func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	segments := splitPath(r.URL.Path)
	for _, route := range idempotentRoutes {
		if segmentsMatch(route, segments) {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func segmentsMatch(route, path []string) bool {
	if len(route) != len(path) {
		return false
	}
	for i, seg := range route {
		if seg != "*" && seg != path[i] {
			return false
		}
	}
	return true
}
