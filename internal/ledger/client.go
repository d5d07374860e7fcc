// Package ledger talks to a Stellar Horizon server: account balances,
// submission of signed transaction envelopes and a reachability probe.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceReader lists the balances held by an account.
type BalanceReader interface {
	GetBalances(ctx context.Context, address string) ([]models.AssetBalance, error)
}

// Submitter submits a signed, base64 XDR transaction envelope and returns its hash.
type Submitter interface {
	Submit(ctx context.Context, envelope string) (string, error)
}

// Client is a Horizon REST client implementing BalanceReader and Submitter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Horizon client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type accountResponse struct {
	Balances []struct {
		Balance     string `json:"balance"`
		Limit       string `json:"limit"`
		AssetType   string `json:"asset_type"`
		AssetCode   string `json:"asset_code"`
		AssetIssuer string `json:"asset_issuer"`
	} `json:"balances"`
}

type submitResponse struct {
	Hash       string `json:"hash"`
	Successful bool   `json:"successful"`
}

// GetBalances returns every balance of address. An account that does not
// exist on the network yields wallet_not_found.
func (c *Client) GetBalances(ctx context.Context, address string) ([]models.AssetBalance, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create account request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, apperror.Classify(apperror.KindWalletNotFound, apperror.Overrides{
			Message: "Account not found on the network",
			Context: map[string]any{"address": address},
		})
	}
	if status < 200 || status >= 300 {
		return nil, c.problemError("account", status, body)
	}

	var account accountResponse
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "Unreadable account response")
	}

	balances := make([]models.AssetBalance, 0, len(account.Balances))
	for _, b := range account.Balances {
		amount, err := decimal.NewFromString(b.Balance)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, err, "Unreadable account balance")
		}

		ab := models.AssetBalance{Balance: amount}
		if b.AssetType == "native" {
			ab.Asset = models.Asset{Code: models.NativeAssetCode}
		} else {
			issuer := b.AssetIssuer
			ab.Asset = models.Asset{Code: b.AssetCode, Issuer: &issuer}
		}
		if b.Limit != "" {
			if limit, err := decimal.NewFromString(b.Limit); err == nil {
				ab.Limit = &limit
			}
		}
		balances = append(balances, ab)
	}

	return balances, nil
}

// Submit posts a signed envelope to Horizon and waits for the ledger result.
func (c *Client) Submit(ctx context.Context, envelope string) (string, error) {
	form := url.Values{"tx": {envelope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", c.problemError("submit", status, body)
	}

	var resp submitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err, "Unreadable submission response")
	}
	if !resp.Successful || resp.Hash == "" {
		return "", apperror.New(apperror.KindTransactionFailed)
	}

	c.logger.Info("transaction submitted", "tx_hash", resp.Hash)
	return resp.Hash, nil
}

// Ping checks that the Horizon root answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	_, status, err := c.do(req)
	if err != nil {
		return err
	}
	if status >= 500 {
		return apperror.New(apperror.KindServiceUnavailable)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, transportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, transportError(err)
	}
	return body, resp.StatusCode, nil
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.Wrap(apperror.KindNetworkTimeout, err, "")
	}
	return apperror.Wrap(apperror.KindNetworkError, err, "")
}
