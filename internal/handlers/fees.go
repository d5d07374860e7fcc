package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type quoteRequest struct {
	Earnings decimal.Decimal `json:"earnings"`
}

// GetFees handles GET /api/v1/fees
func (h *Handler) GetFees(w http.ResponseWriter, r *http.Request) {
	transparency, err := h.fees.Transparency()
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transparency)
}

// QuoteWithdrawal handles POST /api/v1/withdrawals/quote
func (h *Handler) QuoteWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.fees.Quote(req.Earnings)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
