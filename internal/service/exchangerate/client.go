// Package exchangerate fetches the latest conversion table for a quote currency.
package exchangerate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	"FinVault/internal/service/provider"
	pkghttp "FinVault/pkg/http"
)

const source = "exchangerate"

// Client implements repository.RateSource.
type Client struct {
	baseURL string
	apiKey  string
	http    *pkghttp.Client
}

var _ repository.RateSource = (*Client)(nil)

// New creates a client for baseURL, e.g. https://v6.exchangerate-api.com/v6.
func New(baseURL, apiKey string, hc *pkghttp.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, http: hc}
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchExchangeRates returns currency -> units per one base.
func (c *Client) FetchExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	op := "latest " + base

	if c.apiKey == "" {
		return nil, models.NetworkError(source, op, fmt.Errorf("api key not configured"))
	}

	var resp latestResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s/latest/%s", c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(base)),
	}, &resp)
	if err != nil {
		return nil, provider.Classify(source, op, err)
	}

	if resp.Result == "error" {
		return nil, models.NetworkError(source, op, fmt.Errorf("provider refused: %s", resp.ErrorType))
	}
	if len(resp.ConversionRates) == 0 {
		return nil, models.SchemaError(source, op, "field %q missing or empty", "conversion_rates")
	}
	return resp.ConversionRates, nil
}
