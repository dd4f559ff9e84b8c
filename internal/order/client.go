// Package order submits composed orders to the external order API.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// ErrCreateFailed is the single error the checkout workflow sees for any
// non-success outcome. Specific status codes are not interpreted.
var ErrCreateFailed = errors.New("order creation failed")

// Client is the order-creation boundary.
type Client interface {
	Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

func NewHTTPClient(baseURL string, httpClient *http.Client, log *zap.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
	c.breaker = gobreaker.NewCircuitBreaker[*domain.Order](gobreaker.Settings{
		Name: "order-api",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("order API circuit breaker state change",
				zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return c
}

// HTTPClient posts the order payload to the order API. Calls run through a
// circuit breaker so a flapping order API fails fast instead of piling up.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*domain.Order]
	log        *zap.Logger
}

func (c *HTTPClient) Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	created, err := c.breaker.Execute(func() (*domain.Order, error) {
		return c.create(ctx, req)
	})
	if err != nil {
		c.log.Error("order creation failed", zap.Error(err))
		return nil, ErrCreateFailed
	}
	return created, nil
}

func (c *HTTPClient) create(ctx context.Context, orderReq domain.OrderRequest) (*domain.Order, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/order/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var created domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &created, nil
}
