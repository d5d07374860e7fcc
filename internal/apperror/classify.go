package apperror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FromUnknown maps an arbitrary failure onto the closest Kind.
//
// The mapping is a best-effort heuristic on the failure's message text and is
// not authoritative: callers that know the kind should use Classify instead.
// Only the heuristic kinds keep their taxonomy message; an unmatched failure
// becomes KindUnknown carrying the original text.
func FromUnknown(v any) *Error {
	if v == nil {
		return nil
	}

	var err error
	switch t := v.(type) {
	case error:
		err = t
	case string:
		err = errors.New(t)
	default:
		err = fmt.Errorf("%v", t)
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Classify(KindNetworkTimeout, Overrides{Cause: err})
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient") || strings.Contains(msg, "not enough"):
		return Classify(KindInsufficientBalance, Overrides{Cause: err})
	case strings.Contains(msg, "rejected") || strings.Contains(msg, "denied") ||
		strings.Contains(msg, "cancelled") || strings.Contains(msg, "canceled by user"):
		return Classify(KindTransactionRejected, Overrides{Cause: err})
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return Classify(KindNetworkTimeout, Overrides{Cause: err})
	case strings.Contains(msg, "network") || strings.Contains(msg, "fetch") ||
		strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		return Classify(KindNetworkError, Overrides{Cause: err})
	}

	return Classify(KindUnknown, Overrides{Message: err.Error(), Cause: err})
}
