package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"OptionsPull/internal/domain/models"
	"OptionsPull/internal/usecase"
	"OptionsPull/pkg/export"
	xhttp "OptionsPull/pkg/http"
	xlogger "OptionsPull/pkg/logger"
	xutil "OptionsPull/pkg/util"

	"github.com/labstack/echo/v4"
)

// OptionsEchoHandler serves the options and price endpoints.
type OptionsEchoHandler struct {
	logger   *xlogger.Logger
	wrangler *usecase.OptionsWrangler
}

func NewOptionsEchoHandler(logger *xlogger.Logger, wrangler *usecase.OptionsWrangler) *OptionsEchoHandler {
	return &OptionsEchoHandler{logger: logger, wrangler: wrangler}
}

func (h *OptionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/options", h.Options)
	g.GET("/prices", h.Prices)
}

// Options returns the enriched options table as JSON or CSV.
func (h *OptionsEchoHandler) Options(c echo.Context) error {
	req := &models.OptionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.wrangler.GetWrangledOptionsData(c.Request().Context(), req.Symbol, req.Start, req.End, req.Type)
	if err != nil {
		h.logger.Error("options usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	if res.Truncated {
		c.Response().Header().Set("X-Data-Truncated", "true")
	}
	if req.Format == "csv" {
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+res.Symbol+`_options.csv"`)
		c.Response().WriteHeader(http.StatusOK)
		return export.WriteOptionsCSV(c.Response(), res.Rows)
	}
	return xhttp.SuccessResponse(c, res)
}

type pricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type pricesResponse struct {
	Symbol string       `json:"symbol"`
	Prices []pricePoint `json:"prices"`
}

// Prices returns the full daily close series, oldest first.
func (h *OptionsEchoHandler) Prices(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.wrangler.FetchStockPrices(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("prices usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}

	out := pricesResponse{Symbol: req.Symbol, Prices: make([]pricePoint, 0, len(series))}
	for _, p := range series {
		out.Prices = append(out.Prices, pricePoint{Date: xutil.FormatDate(p.Date), Close: p.Close})
	}
	return xhttp.SuccessResponse(c, out)
}

// toAppError maps usecase failures onto HTTP statuses.
func toAppError(err error) *xhttp.AppError {
	var dateErr *xutil.DateError
	var netErr net.Error
	switch {
	case errors.As(err, &dateErr):
		return xhttp.BadRequestError(dateErr.Error()).WithParam("field", dateErr.Field).WithError(err)
	case errors.Is(err, models.ErrInvalidRequest):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return xhttp.GatewayTimeoutError("market data provider timed out").WithError(err)
	case errors.Is(err, models.ErrUnexpectedResponse):
		return xhttp.BadGatewayError(err.Error()).WithError(err)
	case xhttp.IsStatusError(err):
		return xhttp.BadGatewayError("market data provider returned an error status").WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
