package api

import (
	"context"
	"net/http"

	"github.com/coinomad/payroll-dashboard/internal/schedule"
)

// Transactions fetches the full transaction history. Blockchain-backed reads
// can be slow, so this call uses the extended timeout.
func (c *Client) Transactions(ctx context.Context, token Token) ([]Transaction, error) {
	var out struct {
		envelope
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/wallet/transactions", token, nil, &out, true); err != nil {
		return nil, err
	}
	if out.Transactions == nil {
		return []Transaction{}, nil
	}
	return out.Transactions, nil
}

// Balance fetches per-network, per-asset balances on the extended timeout.
func (c *Client) Balance(ctx context.Context, token Token) (Balances, error) {
	var out struct {
		envelope
		Balances Balances `json:"balances"`
	}
	if err := c.do(ctx, http.MethodGet, "/wallet/balance", token, nil, &out, true); err != nil {
		return nil, err
	}
	if out.Balances == nil {
		return Balances{}, nil
	}
	return out.Balances, nil
}

// ScheduleTransaction submits a composed one-off or recurring payment
// schedule. The backend scheduler interprets and executes it; the client
// keeps only a display copy.
func (c *Client) ScheduleTransaction(ctx context.Context, token Token, payload schedule.Payload) error {
	return c.do(ctx, http.MethodPost, "/wallet/schedule-transaction/", token, payload, nil, true)
}
