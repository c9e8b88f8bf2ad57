package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paymentserrors "skybook/internal/payments/errors"
	"skybook/pkg/client"
)

// OrderRequest is the body of the gateway's create-order call. Amount is in
// the currency's minor unit (paise for INR).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type Gateway interface {
	// CreateOrder returns the gateway's order descriptor untouched.
	CreateOrder(ctx context.Context, req OrderRequest) (json.RawMessage, error)
}

type gatewayErrorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type RazorpayGateway struct {
	client *client.HttpClient
}

func NewRazorpayGateway(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	return &RazorpayGateway{
		client: client.NewHttpClient(baseURL, timeout).WithBasicAuth(keyID, keySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (json.RawMessage, error) {
	resp, err := g.client.POST(ctx, "/orders", req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if !resp.IsSuccess() {
		var body gatewayErrorBody
		_ = resp.DecodeJSON(&body)
		return nil, fmt.Errorf("%w: status %d: %s %s",
			paymentserrors.ErrGatewayRejected, resp.StatusCode, body.Error.Code, body.Error.Description)
	}

	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("create order: gateway returned invalid JSON")
	}
	return json.RawMessage(resp.Body), nil
}
