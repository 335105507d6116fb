// Package payment talks to the external payment collaborator. Checkout treats
// it as fire-and-forget: a failed intent leaves the order pending and the
// caller surfaces a retry, nothing already committed is unwound.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Intent struct {
	IntentID    string `json:"intent_id"`
	RedirectURL string `json:"redirect_url"`
}

type Client interface {
	CreateIntent(ctx context.Context, orderID uuid.UUID, amountCents int64) (*Intent, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *HTTPClient) CreateIntent(ctx context.Context, orderID uuid.UUID, amountCents int64) (*Intent, error) {
	payload := map[string]any{
		"order_id":     orderID.String(),
		"amount_cents": amountCents,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/intents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create intent failed with status: %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &intent, nil
}

// StaticClient is a canned collaborator for tests and local runs without a
// payment backend.
type StaticClient struct {
	Err error
}

func (s *StaticClient) CreateIntent(_ context.Context, orderID uuid.UUID, _ int64) (*Intent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &Intent{
		IntentID:    "intent-" + orderID.String(),
		RedirectURL: "https://pay.example.com/" + orderID.String(),
	}, nil
}
