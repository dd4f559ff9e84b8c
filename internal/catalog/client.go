// Package catalog reads products from the external catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// Client is the read-only product catalog boundary.
type Client interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func (c *HTTPClient) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, c.baseURL+"/products/", &products); err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	return products, nil
}

func (c *HTTPClient) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	url := fmt.Sprintf("%s/products/%d/", c.baseURL, id)
	if err := c.getJSON(ctx, url, &product); err != nil {
		return nil, fmt.Errorf("get product %d failed: %w", id, err)
	}
	return &product, nil
}

func (c *HTTPClient) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	var products []domain.Product
	url := fmt.Sprintf("%s/products/category/%s/", c.baseURL, category)
	if err := c.getJSON(ctx, url, &products); err != nil {
		return nil, fmt.Errorf("list products by category %s failed: %w", category, err)
	}
	return products, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
