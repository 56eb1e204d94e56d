// Package alphavantage fetches dated daily closes of exchange-traded funds.
package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	"FinVault/internal/service/provider"
	"FinVault/internal/service/ratelimit"
	pkghttp "FinVault/pkg/http"
	"FinVault/pkg/util"
)

const (
	// Source is the provider name used in errors and rate limiter keys.
	Source     = "alphavantage"
	seriesKey  = "Time Series (Daily)"
	closeField = "4. close"
)

// Client implements repository.DailyCloseSource.
type Client struct {
	baseURL string
	apiKey  string
	http    *pkghttp.Client
	limiter *ratelimit.Limiter
}

var _ repository.DailyCloseSource = (*Client)(nil)

// New creates a client. limiter may be nil.
func New(baseURL, apiKey string, hc *pkghttp.Client, limiter *ratelimit.Limiter) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
		limiter: limiter,
	}
}

// dailyResponse covers both the series payload and the 200-status
// refusals the provider sends instead of an HTTP error.
type dailyResponse struct {
	Series       map[string]map[string]string `json:"Time Series (Daily)"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	ErrorMessage string                       `json:"Error Message"`
}

// FetchDailyClose returns the most recent trading day in the series and
// round(close*multiplier + offset, 2).
func (c *Client) FetchDailyClose(ctx context.Context, symbol string, multiplier, offset float64) (time.Time, float64, error) {
	op := "daily_close " + symbol

	if c.apiKey == "" {
		return time.Time{}, 0, models.NetworkError(Source, op, errors.New("api key not configured"))
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, Source); err != nil {
			return time.Time{}, 0, models.NetworkError(Source, op, fmt.Errorf("rate limit: %w", err))
		}
	}

	var resp dailyResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function": {"TIME_SERIES_DAILY"},
			"symbol":   {symbol},
			"apikey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return time.Time{}, 0, provider.Classify(Source, op, err)
	}

	switch {
	case resp.Note != "":
		return time.Time{}, 0, models.NetworkError(Source, op, fmt.Errorf("throttled: %s", resp.Note))
	case resp.Information != "":
		return time.Time{}, 0, models.NetworkError(Source, op, fmt.Errorf("refused: %s", resp.Information))
	case resp.ErrorMessage != "":
		return time.Time{}, 0, models.SchemaError(Source, op, "provider error: %s", resp.ErrorMessage)
	case len(resp.Series) == 0:
		return time.Time{}, 0, models.SchemaError(Source, op, "field %q missing or empty", seriesKey)
	}

	latest := latestDate(resp.Series)
	day, err := util.ParseDate(latest)
	if err != nil {
		return time.Time{}, 0, models.SchemaError(Source, op, "series date %q: %v", latest, err)
	}

	raw, ok := resp.Series[latest][closeField]
	if !ok {
		return time.Time{}, 0, models.SchemaError(Source, op, "field %q missing on %s", closeField, latest)
	}
	closePrice, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, 0, models.SchemaError(Source, op, "close %q: %v", raw, err)
	}
	if math.IsNaN(closePrice) || math.IsInf(closePrice, 0) || closePrice < 0 {
		return time.Time{}, 0, models.SchemaError(Source, op, "close %q out of range", raw)
	}

	return day, util.Affine(closePrice, multiplier, offset, 2), nil
}

// latestDate picks the greatest YYYY-MM-DD key.
func latestDate(series map[string]map[string]string) string {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates[0]
}
