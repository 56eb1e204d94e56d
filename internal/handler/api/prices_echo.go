package api

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"FinVault/internal/domain/models"
	"FinVault/internal/usecase"
	xhttp "FinVault/pkg/http"
	xlogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

// PricesEchoHandler serves the stored price history.
type PricesEchoHandler struct {
	logger  *xlogger.Logger
	history *usecase.HistoryUseCase
}

func NewPricesEchoHandler(logger *xlogger.Logger, history *usecase.HistoryUseCase) *PricesEchoHandler {
	return &PricesEchoHandler{logger: logger, history: history}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/instruments", h.Instruments)
	g.GET("/prices/:key", h.Prices)
	g.GET("/prices/:key/summary", h.Summary)
	g.GET("/compare", h.Compare)
}

func (h *PricesEchoHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.history.Health(ctx); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.StoreUnavailableError().WithError(err))
	}
	return xhttp.SuccessResponse(c, "ok")
}

func (h *PricesEchoHandler) Instruments(c echo.Context) error {
	items := h.history.Instruments()
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *PricesEchoHandler) Prices(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.history.Prices(c.Request().Context(), req.Key, rangeParams(req.Period, req.From))
	if err != nil {
		return h.fail(c, "prices", err, req.Key)
	}

	points := make([]models.PricePoint, len(res.Prices))
	for i, rec := range res.Prices {
		points[i] = point(rec)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
	return xhttp.SuccessResponse(c, &models.PricesResponse{
		Key:            res.Instrument.Key,
		DisplayName:    res.Instrument.DisplayName,
		CurrencySymbol: res.Instrument.CurrencySymbol,
		From:           util.FormatDate(res.From),
		Count:          res.Count,
		Prices:         points,
	})
}

func (h *PricesEchoHandler) Summary(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.history.Summary(c.Request().Context(), req.Key, rangeParams(req.Period, req.From))
	if err != nil {
		return h.fail(c, "summary", err, req.Key)
	}

	out := &models.SummaryResponse{
		Key:            res.Instrument.Key,
		DisplayName:    res.Instrument.DisplayName,
		CurrencySymbol: res.Instrument.CurrencySymbol,
		From:           util.FormatDate(res.From),
		StartPrice:     res.StartPrice,
		Change:         res.Change,
		ChangePct:      res.ChangePct,
		Count:          res.Count,
	}
	if res.Latest != nil {
		p := point(*res.Latest)
		out.Latest = &p
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *PricesEchoHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.history.Compare(c.Request().Context(), util.SplitCSV(req.Keys), rangeParams(req.Period, req.From))
	if err != nil {
		return h.fail(c, "compare", err, util.SplitCSV(req.Keys)...)
	}

	out := make([]models.CompareSeries, len(series))
	for i, s := range series {
		pts := make([]models.ComparePoint, len(s.Points))
		for j, p := range s.Points {
			pts[j] = models.ComparePoint{Date: util.FormatDate(p.Date), ChangePct: p.ChangePct}
		}
		out[i] = models.CompareSeries{Key: s.Key, Points: pts}
	}
	return xhttp.ListResponse(c, out, int64(len(out)))
}

func (h *PricesEchoHandler) fail(c echo.Context, op string, err error, keys ...string) error {
	if errors.Is(err, usecase.ErrUnknownInstrument) {
		return xhttp.AppErrorResponse(c, xhttp.UnknownInstrumentError(h.unknown(keys)...).WithError(err))
	}
	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.ReadFailedError(op).WithError(err))
}

// unknown keeps the keys outside the catalog.
func (h *PricesEchoHandler) unknown(keys []string) []string {
	known := make(map[string]struct{})
	for _, inst := range h.history.Instruments() {
		known[inst.Key] = struct{}{}
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func rangeParams(period, from string) usecase.RangeParams {
	p := usecase.RangeParams{Period: period}
	if from != "" {
		// validated as YYYY-MM-DD by the request tags
		p.From, _ = util.ParseDate(from)
	}
	return p
}

func point(rec models.PriceRecord) models.PricePoint {
	return models.PricePoint{Date: util.FormatDate(rec.Date), Price: rec.Price}
}
