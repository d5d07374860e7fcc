package middleware

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/config"
)

var excludedPaths = []string{
	"/health",
	"/docs",
	"/metrics",
}

// injectedFaults are the failures a wallet client is expected to retry.
var injectedFaults = []apperror.Kind{
	apperror.KindServiceUnavailable,
	apperror.KindNetworkTimeout,
	apperror.KindRateLimited,
}

// chaos draws latency and faults from a single random source.
type chaos struct {
	cfg    *config.AppConfig
	mu     sync.Mutex
	rng    *rand.Rand
	sleep  func(r *http.Request, d time.Duration)
	logger *slog.Logger
}

// FailureInjection creates middleware that injects latency and random failures
// so wallet clients can exercise their retry paths against a live server.
func FailureInjection(cfg *config.AppConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	seed := uint64(time.Now().UnixNano())
	c := &chaos{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)), //nolint:gosec // not security sensitive
		sleep:  sleepRequest,
		logger: logger,
	}
	return c.middleware
}

func (c *chaos) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isExcludedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if d := c.latency(); d > 0 {
			c.sleep(r, d)
		}

		if kind, ok := c.fault(); ok {
			c.logger.Debug("injecting random failure",
				"path", r.URL.Path,
				"method", r.Method,
				"kind", kind,
			)
			writeFailureResponse(w, kind)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isExcludedPath(path string) bool {
	for _, excluded := range excludedPaths {
		if strings.HasPrefix(path, excluded) {
			return true
		}
	}
	return false
}

// latency picks a delay in [MinLatencyMS, MaxLatencyMS].
func (c *chaos) latency() time.Duration {
	minMS, maxMS := c.cfg.MinLatencyMS, c.cfg.MaxLatencyMS
	if minMS <= 0 && maxMS <= 0 {
		return 0
	}
	if maxMS <= minMS {
		return time.Duration(minMS) * time.Millisecond
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(minMS+c.rng.IntN(maxMS-minMS+1)) * time.Millisecond
}

// fault reports whether this request fails and with which kind.
func (c *chaos) fault() (apperror.Kind, bool) {
	rate := c.cfg.FailureRate
	if rate <= 0 {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if rate < 1 && c.rng.Float64() >= rate {
		return "", false
	}
	return injectedFaults[c.rng.IntN(len(injectedFaults))], true
}

// sleepRequest waits d or until the client goes away.
func sleepRequest(r *http.Request, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-r.Context().Done():
	}
}

func writeFailureResponse(w http.ResponseWriter, kind apperror.Kind) {
	ctx := map[string]any{"injected": true}
	if kind == apperror.KindRateLimited {
		ctx["retryAfter"] = 1
	}
	apperror.WriteJSON(w, apperror.Classify(kind, apperror.Overrides{
		Description: "Random failure injection",
		Context:     ctx,
	}))
}
