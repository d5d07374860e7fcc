package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/myfans/settlement/internal/apperror"
)

// Problem is a Horizon error body (RFC 7807 with Stellar result codes).
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
	Status int `json:"status"`
}

func (c *Client) problemError(op string, status int, body []byte) error {
	var p Problem
	if err := json.Unmarshal(body, &p); err != nil {
		c.logger.Warn("non-2xx horizon response (unparsable body)", "op", op, "status", status)
		p = Problem{Status: status}
	}
	if p.Status == 0 {
		p.Status = status
	}

	kind := p.Kind()
	c.logger.Warn("horizon request failed",
		"op", op,
		"status", status,
		"title", p.Title,
		"tx_code", p.Extras.ResultCodes.Transaction,
		"op_codes", p.Extras.ResultCodes.Operations,
		"kind", kind,
	)

	ctx := map[string]any{"status": status}
	if code := p.Extras.ResultCodes.Transaction; code != "" {
		ctx["resultCode"] = code
	}
	if len(p.Extras.ResultCodes.Operations) > 0 {
		ctx["operationCodes"] = p.Extras.ResultCodes.Operations
	}
	return apperror.Classify(kind, apperror.Overrides{Context: ctx, Description: p.Detail})
}

// Kind maps the HTTP status and Stellar result codes to a taxonomy kind.
func (p *Problem) Kind() apperror.Kind {
	for _, code := range p.Extras.ResultCodes.Operations {
		switch code {
		case "op_underfunded", "op_low_reserve", "op_line_full":
			return apperror.KindInsufficientBalance
		case "op_no_trust", "op_src_no_trust", "op_no_destination":
			return apperror.KindValidation
		}
	}

	switch p.Extras.ResultCodes.Transaction {
	case "tx_bad_auth", "tx_bad_auth_extra":
		return apperror.KindWalletSignatureFailed
	case "tx_insufficient_balance", "tx_insufficient_fee":
		return apperror.KindInsufficientBalance
	case "tx_too_late":
		return apperror.KindTransactionTimeout
	case "tx_no_source_account":
		return apperror.KindWalletNotFound
	case "tx_malformed":
		return apperror.KindValidation
	case "":
	default:
		return apperror.KindTransactionFailed
	}

	switch {
	case p.Status == http.StatusTooManyRequests:
		return apperror.KindRateLimited
	case p.Status == http.StatusGatewayTimeout:
		// Horizon stopped waiting; the transaction may still be applied.
		return apperror.KindNetworkTimeout
	case p.Status == http.StatusBadRequest:
		return apperror.KindTransactionFailed
	case p.Status >= 500:
		return apperror.KindServiceUnavailable
	default:
		return apperror.KindUnknown
	}
}
