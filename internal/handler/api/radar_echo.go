package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	models "TradeRadar/internal/domain/models"
	"TradeRadar/internal/usecase"
	xhttp "TradeRadar/pkg/http"
	xlogger "TradeRadar/pkg/logger"
)

// RadarEchoHandler exposes the four pipeline accessors over HTTP.
// Every endpoint is a cache-idempotent read; responses are always
// structurally valid even when the pipeline degraded.
type RadarEchoHandler struct {
	logger *xlogger.Logger
	radar  *usecase.Radar
}

func NewRadarEchoHandler(logger *xlogger.Logger, radar *usecase.Radar) *RadarEchoHandler {
	return &RadarEchoHandler{logger: logger, radar: radar}
}

func (h *RadarEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/top", h.TopPicks)
	g.GET("/scalp", h.Scalp)
	g.GET("/whales", h.Whales)
	g.GET("/indicators", h.Indicators)
	e.GET("/healthz", h.Health)
}

func (h *RadarEchoHandler) TopPicks(c echo.Context) error {
	req := &models.TopPicksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.radar.TopPicks(c.Request().Context(), req.Force)
	if req.Limit > 0 && len(res.Picks) > req.Limit {
		trimmed := *res
		trimmed.Picks = res.Picks[:req.Limit]
		res = &trimmed
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *RadarEchoHandler) Scalp(c echo.Context) error {
	req := &models.ScalpRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.radar.ScalpOpportunities(c.Request().Context(), req.Force))
}

func (h *RadarEchoHandler) Whales(c echo.Context) error {
	req := &models.WhaleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.radar.WhalePressure(c.Request().Context(), req.Force))
}

func (h *RadarEchoHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	set, err := h.radar.Indicators(c.Request().Context(), req.Symbol, req.Interval, false)
	if err != nil {
		h.logger.Error("indicator lookup failed",
			xlogger.String("symbol", req.Symbol),
			xlogger.String("interval", req.Interval),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("indicator lookup failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, set)
}

func (h *RadarEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
