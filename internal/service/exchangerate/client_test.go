package exchangerate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"FinVault/internal/domain/models"
	pkghttp "FinVault/pkg/http"
)

func TestFetchExchangeRates(t *testing.T) {
	t.Parallel()

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v6/secret/latest/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.9,"CNY":7.2}}`))
	}))
	defer srv.Close()
	c := New(srv.URL+"/v6", "secret", pkghttp.NewClient())

	// Act
	rates, err := c.FetchExchangeRates(context.Background(), "USD")

	// Assert
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"USD": 1, "EUR": 0.9, "CNY": 7.2}, rates)
}

func TestFetchExchangeRatesErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		status int
		body   string
		want   error
	}{
		"unavailable":   {http.StatusServiceUnavailable, ``, models.ErrNetwork},
		"invalid key":   {http.StatusOK, `{"result":"error","error-type":"invalid-key"}`, models.ErrNetwork},
		"missing rates": {http.StatusOK, `{"result":"success","base_code":"USD"}`, models.ErrSchema},
		"garbage":       {http.StatusOK, `{"conversion_rates":`, models.ErrSchema},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "secret", pkghttp.NewClient()).FetchExchangeRates(context.Background(), "USD")
			require.ErrorIs(t, err, tc.want)
		})
	}
}
