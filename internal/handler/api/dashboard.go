package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/usecase"
	pkgcache "FinBoard/pkg/cache"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"

	"github.com/labstack/echo/v4"
)

const respPrefix = "resp"

// DashboardHandler implements the Echo-based HTTP surface for the dashboard.
// Successful GET payloads are cached serialized for a short TTL; the manual
// refresh clears both the snapshot cache and this response cache.
type DashboardHandler struct {
	logger    *xlogger.Logger
	collector *xlogger.ErrorCollector
	dash      *usecase.Dashboard
	respCache pkgcache.Service
	respTTL   time.Duration
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	collector *xlogger.ErrorCollector,
	dash *usecase.Dashboard,
	respCache pkgcache.Service,
	respTTL time.Duration,
) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		collector: collector,
		dash:      dash,
		respCache: respCache,
		respTTL:   respTTL,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/series", h.Series)
	g.GET("/alerts", h.Alerts)
	g.GET("/insights/volatility", h.Volatility)
	g.GET("/insights/correlation", h.Correlation)
	g.GET("/insights/performance", h.Performance)
	g.POST("/refresh", h.Refresh)
	g.GET("/system/errors", h.SystemErrors)
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams(respPrefix, "dashboard", req.Window, req.Symbol, req.FXCeiling, req.RateCeiling, req.EURFloor)
	if ok := h.serveCached(c, key); ok {
		return nil
	}

	snap, err := h.dash.Snapshot(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return h.respond(c, key, snap)
}

func (h *DashboardHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols := util.SplitCSV(req.Symbols)
	payload, err := h.dash.Series(c.Request().Context(), symbols, req.Window)
	if err != nil {
		h.logger.Error("series usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return xhttp.SuccessResponse(c, payload)
}

func (h *DashboardHandler) Alerts(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	alerts, err := h.dash.Alerts(c.Request().Context(), req.Window, req.Thresholds())
	if err != nil {
		h.logger.Error("alerts usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return xhttp.SuccessResponse(c, alerts)
}

func (h *DashboardHandler) Volatility(c echo.Context) error {
	req := &models.InsightRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams(respPrefix, "volatility", req.Window)
	if ok := h.serveCached(c, key); ok {
		return nil
	}

	entries, err := h.dash.Volatility(c.Request().Context(), req.Window)
	if err != nil {
		h.logger.Error("volatility usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return h.respond(c, key, entries)
}

func (h *DashboardHandler) Correlation(c echo.Context) error {
	req := &models.InsightRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams(respPrefix, "correlation", req.Window)
	if ok := h.serveCached(c, key); ok {
		return nil
	}

	view, err := h.dash.Correlation(c.Request().Context(), req.Window)
	if err != nil {
		h.logger.Error("correlation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return h.respond(c, key, view)
}

func (h *DashboardHandler) Performance(c echo.Context) error {
	req := &models.InsightRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams(respPrefix, "performance", req.Window, req.Symbol)
	if ok := h.serveCached(c, key); ok {
		return nil
	}

	idx, err := h.dash.Performance(c.Request().Context(), req.Window, req.Symbol)
	if err != nil {
		h.logger.Error("performance usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapErr(err))
	}
	return h.respond(c, key, idx)
}

// Refresh clears the ETL snapshot cache and the serialized-response cache.
// The next pipeline invocation re-fetches.
func (h *DashboardHandler) Refresh(c echo.Context) error {
	h.dash.Refresh()
	if err := h.respCache.DeleteByPattern(c.Request().Context(), pkgcache.BuildPattern(respPrefix)); err != nil {
		h.logger.Warn("response cache clear failed", xlogger.Error(err))
	}
	return xhttp.NoContentResponse(c)
}

// SystemErrors returns recent aggregated error logs so the page can show
// what went wrong without scraping server output.
func (h *DashboardHandler) SystemErrors(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.collector.Recent())
}

func (h *DashboardHandler) mapErr(err error) error {
	if errors.Is(err, usecase.ErrDataUnavailable) {
		return xhttp.UnavailableError("market data unavailable").WithError(err)
	}
	var terr *usecase.TransformError
	if errors.As(err, &terr) {
		return xhttp.BadGatewayError(terr.Error()).WithError(err)
	}
	return err
}

// serveCached writes a previously serialized envelope if present.
func (h *DashboardHandler) serveCached(c echo.Context, key string) bool {
	var body string
	if err := h.respCache.Get(c.Request().Context(), key, &body); err != nil {
		return false
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	_ = c.JSONBlob(http.StatusOK, []byte(body))
	return true
}

// respond writes the success envelope and stores it serialized.
func (h *DashboardHandler) respond(c echo.Context, key string, data interface{}) error {
	envelope := xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return xhttp.InternalServerErrorResponse(c)
	}
	if err := h.respCache.Set(c.Request().Context(), key, string(body), h.respTTL); err != nil {
		h.logger.Warn("response cache set failed", xlogger.Error(err))
	}
	return c.JSONBlob(http.StatusOK, body)
}
