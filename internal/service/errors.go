package service

import (
	"errors"
	"fmt"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/models"
)

// AccessError is an unlock denial. Denials are final answers about a
// purchase, not failures, so they stay outside the apperror taxonomy.
type AccessError struct {
	Code    string
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped denials compare equal to the sentinels.
func (e *AccessError) Is(target error) bool {
	var t *AccessError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Unlock denial codes
const (
	ErrCodePurchaseNotFound = "purchase_not_found"
	ErrCodeInvalidContentID = "invalid_content_id"
	ErrCodeNotBuyer         = "not_buyer"
	ErrCodePurchaseExpired  = "purchase_expired"
)

// Unlock denials, in the order they are checked
var (
	ErrPurchaseNotFound = &AccessError{Code: ErrCodePurchaseNotFound, Message: "purchase not found"}
	ErrInvalidContentID = &AccessError{Code: ErrCodeInvalidContentID, Message: "purchase is for a different content item"}
	ErrNotBuyer         = &AccessError{Code: ErrCodeNotBuyer, Message: "caller is not the buyer of this purchase"}
	ErrPurchaseExpired  = &AccessError{Code: ErrCodePurchaseExpired, Message: "purchase has expired"}
)

// repositoryError converts a repository failure into the taxonomy. Missing
// rows become not_found; lost state races and reused transaction hashes
// become forbidden. Anything else is an internal error carrying the cause.
func repositoryError(err error, resource string) *apperror.Error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return apperror.Classify(apperror.KindNotFound, apperror.Overrides{
			Message: fmt.Sprintf("%s not found", resource),
			Cause:   err,
		})
	case errors.Is(err, models.ErrDuplicate):
		return apperror.Classify(apperror.KindForbidden, apperror.Overrides{
			Message: "transaction hash already used",
			Cause:   err,
		})
	case errors.Is(err, models.ErrConflict):
		return apperror.Classify(apperror.KindForbidden, apperror.Overrides{
			Message: fmt.Sprintf("%s is no longer pending", resource),
			Cause:   err,
		})
	default:
		return apperror.Wrap(apperror.KindInternal, err, "")
	}
}

func validationError(message string, context map[string]any) *apperror.Error {
	return apperror.Classify(apperror.KindValidation, apperror.Overrides{
		Message: message,
		Context: context,
	})
}

func internalError(err error, op string) *apperror.Error {
	return apperror.Classify(apperror.KindInternal, apperror.Overrides{
		Cause:   fmt.Errorf("%s: %w", op, err),
		Context: map[string]any{"op": op},
	})
}
