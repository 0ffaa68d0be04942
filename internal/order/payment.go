package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway is the thin payment client: create a session, poll its status.
// Gateway-side semantics (webhooks, signatures) stay on the gateway.
type Gateway struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewGateway(baseURL, apiKey string) *Gateway {
	return &Gateway{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

type paymentSession struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
}

type sessionResponse struct {
	PayURL string `json:"pay_url"`
	Status string `json:"status"`
}

// CreateSession registers the order with the gateway and returns the URL the
// customer is redirected to.
func (g *Gateway) CreateSession(ctx context.Context, orderID, amount string) (string, error) {
	body, _ := json.Marshal(paymentSession{OrderID: orderID, Amount: amount})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment session error: %s", res.Status)
	}
	var sr sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return "", err
	}
	return sr.PayURL, nil
}

// Status returns the gateway-side status for an order's session.
func (g *Gateway) Status(ctx context.Context, orderID string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/sessions/%s", g.BaseURL, orderID), nil)
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("payment session not found")
	default:
		return "", fmt.Errorf("payment status error: %s", res.Status)
	}
	var sr sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return "", err
	}
	return sr.Status, nil
}
