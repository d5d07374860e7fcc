package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without underlying cause",
			err:      New(KindNotFound, "checkout not found"),
			expected: "not_found: checkout not found",
		},
		{
			name:     "error with underlying cause",
			err:      Wrap(KindInternal, errors.New("connection reset"), "failed to load checkout"),
			expected: "internal_error: failed to load checkout: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(KindInternal, cause, "wrapped")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(fmt.Errorf("outer: %w", err), New(KindInternal)))
	assert.False(t, errors.Is(err, New(KindNotFound)))
}

func TestClassify_EveryKindIsPopulated(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			e := Classify(kind, Overrides{})

			assert.Equal(t, kind, e.Kind)
			assert.NotEmpty(t, e.Message)
			assert.NotEmpty(t, e.Severity)
			assert.NotEmpty(t, e.Category)
			assert.NotEmpty(t, e.Actions, "every kind needs at least one action")
			assert.False(t, e.Timestamp.IsZero())
		})
	}
}

func TestClassify_UnknownKindFallsBack(t *testing.T) {
	e := Classify(Kind("made_up"), Overrides{Message: "custom"})

	assert.Equal(t, KindUnknown, e.Kind)
	assert.Equal(t, CategoryUnknown, e.Category)
	assert.Equal(t, "custom", e.Message)
}

func TestClassify_OverridesCannotChangeBehaviour(t *testing.T) {
	cause := errors.New("boom")
	e := Classify(KindInsufficientBalance, Overrides{
		Message:     "Need 3 more XLM",
		Description: "Top up your wallet",
		Context:     map[string]any{"shortfall": "3"},
		Cause:       cause,
	})

	assert.Equal(t, "Need 3 more XLM", e.Message)
	assert.Equal(t, "Top up your wallet", e.Description)
	assert.Equal(t, "3", e.Context["shortfall"])
	assert.Equal(t, cause, e.Err)
	assert.Equal(t, SeverityError, e.Severity)
	assert.Equal(t, CategoryTransaction, e.Category)
	assert.False(t, e.Recoverable)
}

func TestClassify_ActionsAreCopied(t *testing.T) {
	a := Classify(KindNetworkError, Overrides{})
	a.Actions[0].Label = "mutated"

	b := Classify(KindNetworkError, Overrides{})
	assert.Equal(t, "Try again", b.Actions[0].Label)
}

func TestRecoverability(t *testing.T) {
	recoverable := []Kind{KindOffline, KindNetworkError, KindNetworkTimeout, KindRateLimited, KindTransactionRejected}
	for _, kind := range recoverable {
		e := New(kind)
		assert.True(t, e.Recoverable, kind)
		assert.True(t, e.HasRetry(), kind)
	}

	fatal := []Kind{KindInsufficientBalance, KindWalletNotFound, KindForbidden, KindNotFound}
	for _, kind := range fatal {
		e := New(kind)
		assert.False(t, e.Recoverable, kind)
		assert.False(t, e.HasRetry(), "%s must route to a corrective action", kind)
	}

	assert.Equal(t, "/settings#wallet", New(KindInsufficientBalance).Actions[0].Href)
	assert.Equal(t, "https://freighter.app", New(KindWalletNotFound).Actions[0].Href)
}

func TestFromUnknown(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Kind
	}{
		{"insufficient funds", errors.New("op_underfunded: insufficient balance"), KindInsufficientBalance},
		{"user rejected", errors.New("User rejected the request"), KindTransactionRejected},
		{"access denied", errors.New("permission denied"), KindTransactionRejected},
		{"timeout", errors.New("horizon: request timeout"), KindNetworkTimeout},
		{"deadline", context.DeadlineExceeded, KindNetworkTimeout},
		{"wrapped deadline", fmt.Errorf("get balances: %w", context.DeadlineExceeded), KindNetworkTimeout},
		{"network", errors.New("network unreachable"), KindNetworkError},
		{"fetch", errors.New("failed to fetch"), KindNetworkError},
		{"string value", "Network down", KindNetworkError},
		{"unrelated", errors.New("something odd"), KindUnknown},
		{"non-error value", 42, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromUnknown(tt.input)
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Kind)
			assert.NotNil(t, e.Err)
		})
	}
}

func TestFromUnknown_KeepsOriginalMessageForUnknown(t *testing.T) {
	e := FromUnknown(errors.New("something odd"))
	assert.Equal(t, "something odd", e.Message)
}

func TestFromUnknown_PassesClassifiedThrough(t *testing.T) {
	original := New(KindWalletNotConnected)
	wrapped := fmt.Errorf("connect: %w", original)

	assert.Same(t, original, FromUnknown(wrapped))
	assert.Nil(t, FromUnknown(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRateLimited, KindOf(fmt.Errorf("x: %w", New(KindRateLimited))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.True(t, IsKind(New(KindForbidden), KindForbidden))
	assert.False(t, IsKind(errors.New("plain"), KindForbidden))
}

func TestError_WithContext(t *testing.T) {
	orig := Classify(KindNetworkError, Overrides{Context: map[string]any{"status": 502}})

	got := orig.WithContext(map[string]any{"txHash": "abc", "status": 504})

	assert.NotSame(t, orig, got)
	assert.Equal(t, map[string]any{"status": 502}, orig.Context)
	assert.Equal(t, map[string]any{"status": 504, "txHash": "abc"}, got.Context)
	assert.Equal(t, orig.Kind, got.Kind)
	assert.Equal(t, orig.Actions, got.Actions)

	got.Actions[0].Label = "changed"
	assert.NotEqual(t, "changed", orig.Actions[0].Label)
}
