//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/myfans/settlement/internal/config"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/handlers"
	"github.com/myfans/settlement/internal/ledger"
	"github.com/myfans/settlement/internal/ratelimit"
	"github.com/stretchr/testify/require"
)

const (
	testFan     = "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5"
	testCreator = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	testOther   = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"
	testTxHash  = "3389e9f0f1a65f19736cacf544c2e825313e8447f569233bb8db39aa607c8889"
	testPlanID  = 1
	jwtSecret   = "integration-secret"
)

// Envelopes understood by the fake Horizon server.
const (
	envelopeOK          = "AAAAAgAAAAok"
	envelopeUnderfunded = "AAAAAgAAAAunderfunded"
)

// TestServer wraps the HTTP test server, a fake Horizon and the database for
// integration tests.
type TestServer struct {
	Server   *httptest.Server
	Horizon  *httptest.Server
	Database *db.DB
	t        *testing.T
}

type alwaysOnline struct{}

func (alwaysOnline) Online() bool { return true }

// SetupTest creates a new test server with a clean database state. It skips
// when no database is reachable.
func SetupTest(t *testing.T) *TestServer {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err, "failed to load config")

	// Disable chaos for integration tests
	cfg.App.FailureRate = 0
	cfg.App.MinLatencyMS = 0
	cfg.App.MaxLatencyMS = 0
	cfg.Auth.JWTSecret = jwtSecret
	cfg.Engine.RetryDelay = time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	connectCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	database, err := db.Connect(connectCtx, &cfg.Database, logger)
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	require.NoError(t, database.Migrate(context.Background()), "failed to migrate")

	resetTestData(t, database)

	horizon := httptest.NewServer(fakeHorizon())

	router, err := handlers.NewRouter(database, cfg, handlers.Dependencies{
		Ledger:    ledger.NewClient(horizon.URL, 5*time.Second, logger),
		Network:   alwaysOnline{},
		Publisher: events.NewLogPublisher(logger),
		Limiter:   ratelimit.Noop{},
	}, logger)
	require.NoError(t, err)

	return &TestServer{
		Server:   httptest.NewServer(router),
		Horizon:  horizon,
		Database: database,
		t:        t,
	}
}

// Close shuts down the test servers and database connection.
func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Horizon.Close()
	_ = ts.Database.Close()
}

// URL returns the full URL for a given path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

func resetTestData(t *testing.T, database *db.DB) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, database.Reset(ctx), "failed to reset test data")

	_, err := database.ExecContext(ctx, `
		INSERT INTO plans (creator_address, creator_name, name, description, asset_code, amount, interval_days)
		VALUES ($1, 'Ada', 'Gold', 'Everything, monthly', 'XLM', 9.99, 30)`, testCreator)
	require.NoError(t, err, "failed to seed plan")
}

// fakeHorizon answers the Horizon endpoints the ledger client uses. The fan
// holds 100 XLM; every other account is unknown.
func fakeHorizon() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /accounts/{address}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("address") != testFan {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balances":[{"balance":"100.0000000","asset_type":"native"}]}`))
	})
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.FormValue("tx") {
		case envelopeOK:
			w.Write([]byte(`{"hash":"` + testTxHash + `","successful":true}`))
		case envelopeUnderfunded:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title":"Transaction Failed","status":400,"extras":{"result_codes":{"transaction":"tx_failed","operations":["op_underfunded"]}}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title":"Transaction Malformed","status":400,"extras":{"result_codes":{"transaction":"tx_malformed"}}}`))
		}
	})
	return mux
}

// token signs a bearer token for subject.
func token(t *testing.T, subject string) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

// Request sends method to path with an optional JSON body and headers given
// as name/value pairs.
func (ts *TestServer) Request(t *testing.T, method, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

// CreateCheckout sends a POST request to open a checkout for the test plan.
func (ts *TestServer) CreateCheckout(t *testing.T, idempotencyKey string) *http.Response {
	t.Helper()

	return ts.Request(t, http.MethodPost, "/api/v1/checkouts", map[string]any{
		"planId":         testPlanID,
		"fanAddress":     testFan,
		"creatorAddress": testCreator,
	}, "Idempotency-Key", idempotencyKey)
}

// Purchase sends an authenticated POST request to buy content for the fan.
func (ts *TestServer) Purchase(t *testing.T, contentID int64, duration time.Duration) *http.Response {
	t.Helper()

	return ts.Request(t, http.MethodPost, "/api/v1/purchases", map[string]any{
		"contentId":       contentID,
		"durationSeconds": int64(duration / time.Second),
	}, "Authorization", "Bearer "+token(t, testFan))
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func checkoutPath(id string, suffix ...string) string {
	return "/api/v1/checkouts/" + id + strings.Join(suffix, "")
}
