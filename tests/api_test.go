//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCheckout(t *testing.T, ts *TestServer, key string) string {
	t.Helper()

	resp := ts.CreateCheckout(t, key)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode(t, resp)["id"].(string)
}

func TestCheckout_CreateAndRead(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp := ts.CreateCheckout(t, "create-read-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "9.99", body["amount"])
	assert.Equal(t, "10.48951", body["total"])
	id := body["id"].(string)

	plan := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id, "/plan"), nil))
	assert.Equal(t, "Gold", plan["name"])
	assert.Equal(t, "month", plan["interval"])

	price := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id, "/price"), nil))
	assert.Equal(t, "10.48951", price["total"])

	wallet := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id, "/wallet"), nil))
	assert.Equal(t, true, wallet["isConnected"])

	validation := decode(t, ts.Request(t, http.MethodPost, checkoutPath(id, "/validate"), nil))
	assert.Equal(t, true, validation["valid"])

	preview := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id, "/preview"), nil))
	assert.Equal(t, testFan, preview["from"])
	assert.Equal(t, testCreator, preview["to"])
	assert.True(t, strings.HasPrefix(preview["memo"].(string), "myfans:"))
}

func TestCheckout_UnknownPlan(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp := ts.Request(t, http.MethodPost, "/api/v1/checkouts", map[string]any{
		"planId":         999,
		"fanAddress":     testFan,
		"creatorAddress": testCreator,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decode(t, resp)["error"])
}

func TestCheckout_NotFound(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp := ts.Request(t, http.MethodGet, checkoutPath(uuid.NewString()), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckout_ConfirmOnce(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	id := createCheckout(t, ts, "confirm-once-1")

	resp := ts.Request(t, http.MethodPost, checkoutPath(id, "/confirm"), map[string]any{"txHash": strings.ToUpper(testTxHash)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, testTxHash, result["txHash"])
	assert.Equal(t, "https://stellar.expert/explorer/testnet/tx/"+testTxHash, result["explorerUrl"])

	session := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id), nil))
	assert.Equal(t, "confirmed", session["status"])

	again := ts.Request(t, http.MethodPost, checkoutPath(id, "/fail"), map[string]any{"reason": "late"})
	assert.Equal(t, http.StatusForbidden, again.StatusCode)
	again.Body.Close()
}

func TestCheckout_FailByUser(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	id := createCheckout(t, ts, "fail-user-1")

	resp := ts.Request(t, http.MethodPost, checkoutPath(id, "/fail"), map[string]any{"rejectedByUser": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "failed", result["status"])
	assert.Equal(t, "Payment was cancelled", result["message"])
}

func TestCheckout_SubmitSettles(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	id := createCheckout(t, ts, "submit-ok-1")

	resp := ts.Request(t, http.MethodPost, checkoutPath(id, "/submit"), map[string]any{"envelope": envelopeOK})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, testTxHash, result["txHash"])
}

func TestCheckout_SubmitUnderfunded(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	id := createCheckout(t, ts, "submit-underfunded-1")

	resp := ts.Request(t, http.MethodPost, checkoutPath(id, "/submit"), map[string]any{"envelope": envelopeUnderfunded})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "failed", result["status"])
	assert.Equal(t, "insufficient_balance", result["error"].(map[string]any)["error"])

	session := decode(t, ts.Request(t, http.MethodGet, checkoutPath(id), nil))
	assert.Equal(t, "failed", session["status"])
}

func TestCheckout_ConcurrentConfirmations_OnlyOneSucceeds(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	id := createCheckout(t, ts, "concurrent-1")

	const attempts = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hash := fmt.Sprintf("%064x", i+1)
			resp := ts.Request(t, http.MethodPost, checkoutPath(id, "/confirm"), map[string]any{"txHash": hash})
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestIdempotency_ReplaysCheckoutCreate(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	first := ts.CreateCheckout(t, "replay-key-1")
	require.Equal(t, http.StatusCreated, first.StatusCode)
	firstBody := decode(t, first)

	second := ts.CreateCheckout(t, "replay-key-1")
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get("X-Idempotent-Replayed"))
	assert.Equal(t, firstBody["id"], decode(t, second)["id"])

	third := ts.CreateCheckout(t, "replay-key-2")
	require.Equal(t, http.StatusCreated, third.StatusCode)
	assert.NotEqual(t, firstBody["id"], decode(t, third)["id"])
}

func TestPurchaseAndUnlock(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp := ts.Purchase(t, 42, time.Hour)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	purchase := decode(t, resp)
	assert.Equal(t, testFan, purchase["buyer"])
	purchaseID := purchase["id"].(string)

	fanAuth := []string{"Authorization", "Bearer " + token(t, testFan)}

	unlock := ts.Request(t, http.MethodPost, "/api/v1/purchases/"+purchaseID+"/unlock", map[string]any{"contentId": 42}, fanAuth...)
	require.Equal(t, http.StatusOK, unlock.StatusCode)
	assert.Equal(t, purchaseID, decode(t, unlock)["purchaseId"])

	wrongContent := ts.Request(t, http.MethodPost, "/api/v1/purchases/"+purchaseID+"/unlock", map[string]any{"contentId": 7}, fanAuth...)
	assert.Equal(t, http.StatusForbidden, wrongContent.StatusCode)
	assert.Equal(t, "invalid_content_id", decode(t, wrongContent)["error"])

	otherAuth := []string{"Authorization", "Bearer " + token(t, testOther)}
	notBuyer := ts.Request(t, http.MethodPost, "/api/v1/purchases/"+purchaseID+"/unlock", map[string]any{"contentId": 42}, otherAuth...)
	assert.Equal(t, http.StatusForbidden, notBuyer.StatusCode)
	assert.Equal(t, "not_buyer", decode(t, notBuyer)["error"])

	unknown := ts.Request(t, http.MethodPost, "/api/v1/purchases/"+uuid.NewString()+"/unlock", map[string]any{"contentId": 42}, fanAuth...)
	assert.Equal(t, http.StatusNotFound, unknown.StatusCode)
	assert.Equal(t, "purchase_not_found", decode(t, unknown)["error"])

	access := decode(t, ts.Request(t, http.MethodGet, "/api/v1/access?contentId=42&contentId=43", nil, fanAuth...))
	assert.Equal(t, testFan, access["buyer"])
	assert.Equal(t, []any{
		map[string]any{"contentId": float64(42), "hasAccess": true},
		map[string]any{"contentId": float64(43), "hasAccess": false},
	}, access["access"])
}

func TestPurchase_RequiresToken(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp := ts.Request(t, http.MethodPost, "/api/v1/purchases", map[string]any{
		"buyer":           testFan,
		"contentId":       42,
		"durationSeconds": 60,
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", decode(t, resp)["error"])
}

func TestFees(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	fees := decode(t, ts.Request(t, http.MethodGet, "/api/v1/fees", nil))
	assert.Equal(t, float64(500), fees["protocolFeeBps"])

	quote := decode(t, ts.Request(t, http.MethodPost, "/api/v1/withdrawals/quote", map[string]any{"earnings": "100"}))
	assert.Equal(t, "92.1", quote["finalAmount"])
}

func TestHealth(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	health := decode(t, ts.Request(t, http.MethodGet, "/health", nil))
	assert.Equal(t, "healthy", health["status"])
}
