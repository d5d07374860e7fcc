package handlers

import (
	"net/http"
	"time"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/middleware"
	"github.com/oapi-codegen/runtime"
)

type purchaseRequest struct {
	Buyer           string `json:"buyer"`
	ContentID       uint64 `json:"contentId"`
	DurationSeconds int64  `json:"durationSeconds"`
}

type unlockRequest struct {
	Caller    string `json:"caller"`
	ContentID uint64 `json:"contentId"`
}

type contentAccess struct {
	ContentID uint64 `json:"contentId"`
	HasAccess bool   `json:"hasAccess"`
}

type accessCheck struct {
	Buyer  string          `json:"buyer"`
	Access []contentAccess `json:"access"`
}

// identity prefers the authenticated subject over a caller-supplied account
func identity(r *http.Request, fallback string) string {
	if caller, ok := middleware.CallerFrom(r.Context()); ok {
		return caller
	}
	return fallback
}

// CreatePurchase handles POST /api/v1/purchases
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	duration := time.Duration(req.DurationSeconds) * time.Second
	purchase, err := h.access.Purchase(r.Context(), identity(r, req.Buyer), req.ContentID, duration)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, purchase)
}

// UnlockContent handles POST /api/v1/purchases/{purchaseId}/unlock
func (h *Handler) UnlockContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "purchaseId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req unlockRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	unlocked, err := h.access.Unlock(r.Context(), id, req.ContentID, identity(r, req.Caller))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlocked)
}

// CheckAccess handles GET /api/v1/access
func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := runtime.BindQueryParameter("form", true, true, "contentId", r.URL.Query(), &ids); err != nil {
		h.writeError(w, apperror.Classify(apperror.KindValidation, apperror.Overrides{
			Message:     "Invalid contentId",
			Description: err.Error(),
			Context:     map[string]any{"field": "contentId"},
		}))
		return
	}

	contentIDs := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id < 1 {
			h.writeError(w, apperror.Classify(apperror.KindValidation, apperror.Overrides{
				Message: "content IDs must be positive",
				Context: map[string]any{"field": "contentId"},
			}))
			return
		}
		contentIDs = append(contentIDs, uint64(id))
	}

	buyer := identity(r, r.URL.Query().Get("buyer"))
	granted, err := h.access.HasAccessBatch(r.Context(), buyer, contentIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := accessCheck{Buyer: buyer, Access: make([]contentAccess, 0, len(granted))}
	seen := make(map[uint64]bool, len(granted))
	for _, id := range contentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		resp.Access = append(resp.Access, contentAccess{ContentID: id, HasAccess: granted[id]})
	}

	writeJSON(w, http.StatusOK, resp)
}
