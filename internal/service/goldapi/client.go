// Package goldapi fetches undated spot prices for metals and crypto assets.
package goldapi

import (
	"context"
	"math"
	"net/url"
	"strings"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	"FinVault/internal/service/provider"
	pkghttp "FinVault/pkg/http"
	"FinVault/pkg/util"
)

const source = "goldapi"

// Client implements repository.SpotSource.
type Client struct {
	baseURL string
	http    *pkghttp.Client
}

var _ repository.SpotSource = (*Client)(nil)

// New creates a client for baseURL, e.g. https://api.gold-api.com.
func New(baseURL string, hc *pkghttp.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type priceResponse struct {
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
	Price  *float64 `json:"price"`
}

// FetchSpotPrice returns the current price of symbol rounded to cents.
func (c *Client) FetchSpotPrice(ctx context.Context, symbol string) (float64, error) {
	op := "spot " + symbol

	var resp priceResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.baseURL + "/price/" + url.PathEscape(symbol),
	}, &resp)
	if err != nil {
		return 0, provider.Classify(source, op, err)
	}

	if resp.Price == nil {
		return 0, models.SchemaError(source, op, "field %q missing", "price")
	}
	p := *resp.Price
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, models.SchemaError(source, op, "price %v out of range", p)
	}
	return util.Round(p, 2), nil
}
