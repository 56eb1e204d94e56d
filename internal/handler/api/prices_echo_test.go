package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"FinVault/internal/domain/models"
	"FinVault/internal/repository"
	"FinVault/internal/usecase"
	xhttp "FinVault/pkg/http"
	xlogger "FinVault/pkg/logger"
	pkgsqlite "FinVault/pkg/sqlite"
)

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	c, err := pkgsqlite.NewClient(pkgsqlite.WithPath(filepath.Join(t.TempDir(), "prices.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	store := repository.NewSQLitePriceStore(c.DB())
	cat, err := models.NewCatalog(models.DefaultInstruments())
	require.NoError(t, err)

	today := time.Now().UTC()
	for i, p := range []float64{2000, 2010, 2100} {
		d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, i-3)
		_, err := store.Upsert(context.Background(), models.PriceRecord{InstrumentKey: "Rare_Materials_Gold", Date: d, Price: p})
		require.NoError(t, err)
	}

	e := echo.New()
	NewPricesEchoHandler(xlogger.Nop(), usecase.NewHistoryUseCase(cat, store)).RegisterRoutes(e)
	return e
}

func get(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestPricesRoute(t *testing.T) {
	e := newTestServer(t)

	rec, env := get(t, e, "/api/prices/Rare_Materials_Gold?period=1m")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.PricesResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	require.Equal(t, "Gold", body.DisplayName)
	require.Equal(t, 3, body.Count)
	require.Equal(t, 2100.0, body.Prices[2].Price)
}

func TestPricesRouteErrors(t *testing.T) {
	e := newTestServer(t)

	rec, env := get(t, e, "/api/prices/Unobtainium")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var errs []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Len(t, errs, 1)
	require.Equal(t, xhttp.CodeUnknownInstrument, errs[0].Code)
	require.Equal(t, "key", errs[0].Field)

	rec, _ = get(t, e, "/api/prices/Rare_Materials_Gold?period=2d")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, e, "/api/prices/Rare_Materials_Gold?from=yesterday")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = get(t, e, "/api/prices/Crypto_Bitcoin")
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.PricesResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	require.Empty(t, body.Prices)
}

func TestSummaryRoute(t *testing.T) {
	e := newTestServer(t)

	rec, env := get(t, e, "/api/prices/Rare_Materials_Gold/summary?period=1w")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	require.Equal(t, 2100.0, body.Latest.Price)
	require.Equal(t, 100.0, body.Change)
	require.NotNil(t, body.ChangePct)
	require.Equal(t, 5.0, *body.ChangePct)
}

func TestCompareAndInstrumentsRoutes(t *testing.T) {
	e := newTestServer(t)

	rec, _ := get(t, e, "/api/compare?keys=Rare_Materials_Gold,Crypto_Bitcoin&period=1m")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = get(t, e, "/api/compare")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := get(t, e, "/api/instruments")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, string(env.Data), "ETF_CSI_300")
	require.NotContains(t, string(env.Data), "ASHR")

	rec, _ = get(t, e, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCompareUnknownInstrument(t *testing.T) {
	e := newTestServer(t)

	rec, env := get(t, e, "/api/compare?keys=Rare_Materials_Gold,Unobtainium&period=1m")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var errs []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Equal(t, xhttp.CodeUnknownInstrument, errs[0].Code)
	require.Equal(t, []interface{}{"Unobtainium"}, errs[0].Params["keys"])
}
