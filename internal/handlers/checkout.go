package handlers

import (
	"net/http"

	"github.com/myfans/settlement/internal/service"
)

type submitRequest struct {
	Envelope string `json:"envelope"`
}

type confirmRequest struct {
	TxHash string `json:"txHash"`
}

type failRequest struct {
	Reason         string `json:"reason"`
	RejectedByUser bool   `json:"rejectedByUser"`
}

// CreateCheckout handles POST /api/v1/checkouts
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCheckoutRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.checkouts.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// GetCheckout handles GET /api/v1/checkouts/{checkoutId}
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.checkouts.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// GetCheckoutPlan handles GET /api/v1/checkouts/{checkoutId}/plan
func (h *Handler) GetCheckoutPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	plan, err := h.checkouts.GetPlanSummary(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// GetCheckoutPrice handles GET /api/v1/checkouts/{checkoutId}/price
func (h *Handler) GetCheckoutPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	breakdown, err := h.checkouts.GetBreakdown(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// GetCheckoutWallet handles GET /api/v1/checkouts/{checkoutId}/wallet
func (h *Handler) GetCheckoutWallet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	status, err := h.checkouts.GetWalletStatus(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// ValidateCheckoutBalance handles POST /api/v1/checkouts/{checkoutId}/validate
func (h *Handler) ValidateCheckoutBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	validation, err := h.checkouts.CheckBalance(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validation)
}

// GetCheckoutPreview handles GET /api/v1/checkouts/{checkoutId}/preview
func (h *Handler) GetCheckoutPreview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	preview, err := h.checkouts.GetPreview(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// SubmitCheckout handles POST /api/v1/checkouts/{checkoutId}/submit. A
// definitive ledger failure is still a 200: the result carries the error and
// the checkout is already marked failed.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req submitRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.checkouts.Submit(r.Context(), id, req.Envelope)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ConfirmCheckout handles POST /api/v1/checkouts/{checkoutId}/confirm
func (h *Handler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req confirmRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.checkouts.Confirm(r.Context(), id, req.TxHash)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// FailCheckout handles POST /api/v1/checkouts/{checkoutId}/fail
func (h *Handler) FailCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "checkoutId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req failRequest
	if err := decodeBody(r, &req, true); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.checkouts.Fail(r.Context(), id, req.Reason, req.RejectedByUser)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
