package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// DefaultBaseURL is the public Vietnamese administrative-units API.
const DefaultBaseURL = "https://provinces.open-api.vn/api"

type provinceDTO struct {
	Code      int           `json:"code"`
	Name      string        `json:"name"`
	Districts []districtDTO `json:"districts"`
}

type districtDTO struct {
	Code  int       `json:"code"`
	Name  string    `json:"name"`
	Wards []wardDTO `json:"wards"`
}

type wardDTO struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// HTTPClient speaks the provinces API's JSON shapes. Child levels come from
// the parent resource fetched at depth 2.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func (c *HTTPClient) Provinces(ctx context.Context) ([]domain.AddressOption, error) {
	var provinces []provinceDTO
	if err := c.getJSON(ctx, c.baseURL+"/p/", &provinces); err != nil {
		return nil, fmt.Errorf("fetch provinces failed: %w", err)
	}

	options := make([]domain.AddressOption, 0, len(provinces))
	for _, p := range provinces {
		options = append(options, domain.AddressOption{
			Value: strconv.Itoa(p.Code),
			Label: p.Name,
		})
	}
	return options, nil
}

func (c *HTTPClient) Districts(ctx context.Context, provinceCode string) ([]domain.AddressOption, error) {
	var province provinceDTO
	url := fmt.Sprintf("%s/p/%s?depth=2", c.baseURL, provinceCode)
	if err := c.getJSON(ctx, url, &province); err != nil {
		return nil, fmt.Errorf("fetch districts for province %s failed: %w", provinceCode, err)
	}

	options := make([]domain.AddressOption, 0, len(province.Districts))
	for _, d := range province.Districts {
		options = append(options, domain.AddressOption{
			Value: strconv.Itoa(d.Code),
			Label: d.Name,
		})
	}
	return options, nil
}

func (c *HTTPClient) Wards(ctx context.Context, districtCode string) ([]domain.AddressOption, error) {
	var district districtDTO
	url := fmt.Sprintf("%s/d/%s?depth=2", c.baseURL, districtCode)
	if err := c.getJSON(ctx, url, &district); err != nil {
		return nil, fmt.Errorf("fetch wards for district %s failed: %w", districtCode, err)
	}

	options := make([]domain.AddressOption, 0, len(district.Wards))
	for _, w := range district.Wards {
		options = append(options, domain.AddressOption{
			Value: strconv.Itoa(w.Code),
			Label: w.Name,
		})
	}
	return options, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

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
