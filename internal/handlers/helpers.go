package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/service"
	"github.com/oapi-codegen/runtime"
)

// accessDenied is the body of an unlock denial
type accessDenied struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its HTTP response. Unlock denials keep
// their own shape; everything else is rendered as an apperror record.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var denial *service.AccessError
	if errors.As(err, &denial) {
		writeJSON(w, accessDenialStatus(denial.Code), accessDenied{Error: denial.Code, Message: denial.Message})
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindInternal {
			h.logger.Error("request failed", "error", appErr.Err)
		}
		apperror.WriteJSON(w, appErr)
		return
	}

	h.logger.Error("unexpected error", "error", err)
	apperror.WriteJSON(w, apperror.Wrap(apperror.KindInternal, err, ""))
}

func accessDenialStatus(code string) int {
	switch code {
	case service.ErrCodePurchaseNotFound:
		return http.StatusNotFound
	case service.ErrCodePurchaseExpired:
		return http.StatusGone
	default:
		return http.StatusForbidden
	}
}

// pathUUID binds a uuid path parameter the way generated servers do.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, r.PathValue(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.Nil, apperror.Classify(apperror.KindValidation, apperror.Overrides{
			Message:     "Invalid " + name,
			Description: err.Error(),
			Context:     map[string]any{"field": name},
		})
	}
	return id, nil
}

// decodeBody reads a JSON request body into dst. An empty body is accepted
// when optional is set.
func decodeBody(r *http.Request, dst any, optional bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return nil
		}
		return apperror.Classify(apperror.KindValidation, apperror.Overrides{Message: "Request body is required"})
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return nil
	}
	return apperror.Classify(apperror.KindValidation, apperror.Overrides{
		Message:     "Malformed request body",
		Description: err.Error(),
	})
}
