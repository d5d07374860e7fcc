package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myfans/settlement/internal/service/mocks"
	"github.com/stretchr/testify/require"
)

const (
	testFan     = "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5"
	testCreator = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	testOther   = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testDeps struct {
	checkouts *mocks.MockCheckouts
	access    *mocks.MockAccess
	fees      *mocks.MockFees
	health    *mocks.MockHealthChecker
	mux       *http.ServeMux
}

func newTestMux(t *testing.T) *testDeps {
	t.Helper()

	d := &testDeps{
		checkouts: mocks.NewMockCheckouts(t),
		access:    mocks.NewMockAccess(t),
		fees:      mocks.NewMockFees(t),
		health:    mocks.NewMockHealthChecker(t),
		mux:       http.NewServeMux(),
	}
	NewHandler(d.checkouts, d.access, d.fees, d.health, testLogger()).Register(d.mux)
	return d
}

func (d *testDeps) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	d.mux.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
