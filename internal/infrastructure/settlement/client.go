// Package settlement talks to the fiscal gateway that confirms card
// payments and collects SGR deposit reporting. The gateway is a LAN
// appliance: requests are small, latency is low, and the cart store
// bounds how long it will wait for a confirmation.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

// Client implements the settlement side-channel over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a settlement client for the gateway at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type submitResponse struct {
	BonNo       int    `json:"bon_no"`
	ProcessedAt string `json:"processed_at"`
}

// Submit posts the payment intent and returns the confirmation handle.
func (c *Client) Submit(ctx context.Context, intent service.PaymentIntent) (*cart.PendingPayment, error) {
	body, err := json.Marshal(intent)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("settlement submit: unexpected status %d", resp.StatusCode)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &cart.PendingPayment{
		BonNo:       out.BonNo,
		ProcessedAt: out.ProcessedAt,
	}, nil
}

type statusResponse struct {
	State string `json:"state"`
}

// Status polls the terminal state of a submitted payment.
func (c *Client) Status(ctx context.Context, bonNo int) (service.SettlementState, error) {
	url := fmt.Sprintf("%s/payments/%d", c.baseURL, bonNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return service.SettlementPending, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return service.SettlementPending, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.SettlementPending, fmt.Errorf("settlement status: unexpected status %d", resp.StatusCode)
	}

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return service.SettlementPending, err
	}
	switch out.State {
	case "done", "confirmed":
		return service.SettlementDone, nil
	case "rejected", "failed":
		return service.SettlementRejected, nil
	default:
		return service.SettlementPending, nil
	}
}

// ReportSGR pushes the per-category deposit quantities of the open cart.
func (c *Client) ReportSGR(ctx context.Context, quantities map[enum.SGRCategory]float64) error {
	body, err := json.Marshal(quantities)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sgr", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sgr report: unexpected status %d", resp.StatusCode)
	}
	return nil
}
