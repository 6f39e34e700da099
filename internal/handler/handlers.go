package handler

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"sentinel/internal/config"
	"sentinel/internal/model"
	"sentinel/internal/scanner"
	"sentinel/internal/service"
	"sentinel/internal/storage"
	"sentinel/internal/trust"
	"sentinel/internal/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	Storage   *storage.Storage
	Engine    service.Evaluator
	Anchors   *trust.Store
	Alerts    *service.AlertService
	AppConfig *config.Config
	Upgrader  websocket.Upgrader
	wsMu      sync.Mutex
}

func NewHandler(store *storage.Storage, engine service.Evaluator, anchors *trust.Store, alerts *service.AlertService, cfg *config.Config) *Handler {
	h := &Handler{
		Storage:   store,
		Engine:    engine,
		Anchors:   anchors,
		Alerts:    alerts,
		AppConfig: cfg,
	}
	h.Upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/api/scan", h.ScanQuery)
	e.POST("/api/scan", h.Scan)
	e.GET("/api/anchors", h.TrustAnchors)
	e.GET("/api/history/:domain", h.History)
	e.GET("/api/watch", h.ListWatched)
	e.POST("/api/watch", h.AddWatched)
	e.DELETE("/api/watch/:domain", h.RemoveWatched)
	e.GET("/ws", h.HandleWS)
}

type ScanRequest struct {
	Domain   string `json:"domain"`
	Online   *bool  `json:"online,omitempty"`
	Language string `json:"language,omitempty"`
}

type ScanResponse struct {
	Result model.ScanResult `json:"result"`
	Audio  string           `json:"audio,omitempty"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	online := true
	if req.Online != nil {
		online = *req.Online
	}
	return h.respondScan(c, req.Domain, online, req.Language)
}

func (h *Handler) ScanQuery(c echo.Context) error {
	online := true
	if raw := c.QueryParam("online"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "online must be a boolean")
		}
		online = v
	}
	return h.respondScan(c, c.QueryParam("domain"), online, c.QueryParam("language"))
}

func (h *Handler) respondScan(c echo.Context, domain string, online bool, language string) error {
	if !utils.IsAcceptableInput(domain) {
		return echo.NewHTTPError(http.StatusBadRequest, "domain is required")
	}
	return c.JSON(http.StatusOK, h.scan(c.Request().Context(), domain, online, language))
}

// scan evaluates one domain, records it and selects the audio alert. History
// failures are logged and never change the verdict.
func (h *Handler) scan(ctx context.Context, domain string, online bool, language string) ScanResponse {
	res := h.Engine.Evaluate(ctx, domain, online)

	if h.AppConfig.EnableHistory && h.Storage != nil && res.Domain != "" {
		if err := h.Storage.AddScanHistory(ctx, res); err != nil {
			utils.Log.Warn("failed to store scan history",
				utils.Field("domain", res.Domain),
				utils.Field("error", err.Error()))
		}
	}

	resp := ScanResponse{Result: res}
	if h.Alerts != nil {
		if language == "" {
			language = h.AppConfig.DefaultLanguage
		}
		if path, ok := h.Alerts.Select(res.Status, language); ok {
			resp.Audio = path
		}
	}
	return resp
}

func (h *Handler) TrustAnchors(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   h.Anchors.Len(),
		"domains": h.Anchors.Domains(),
	})
}

func (h *Handler) History(c echo.Context) error {
	domain := scanner.Normalize(c.Param("domain"))
	entries, diffs, err := h.Storage.GetHistoryWithDiffs(c.Request().Context(), domain)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"domain":  domain,
		"entries": entries,
		"diffs":   diffs,
	})
}

func (h *Handler) ListWatched(c echo.Context) error {
	items, err := h.Storage.GetWatchedDomains(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	if items == nil {
		items = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"domains": items})
}

func (h *Handler) AddWatched(c echo.Context) error {
	var req struct {
		Domain string `json:"domain"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	domain := scanner.Normalize(req.Domain)
	if !utils.IsValidTarget(domain) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid domain")
	}
	if err := h.Storage.AddWatchedDomain(c.Request().Context(), domain); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{"domain": domain})
}

func (h *Handler) RemoveWatched(c echo.Context) error {
	domain := scanner.Normalize(c.Param("domain"))
	if err := h.Storage.RemoveWatchedDomain(c.Request().Context(), domain); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// checkOrigin accepts same-host origins, subdomains of AllowedOrigin, and
// requests without an Origin header.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.AppConfig.SkipOriginCheck {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	originHost := strings.ToLower(u.Hostname())

	reqHost := strings.ToLower(r.Host)
	if host, _, err := net.SplitHostPort(reqHost); err == nil {
		reqHost = host
	}
	if originHost == reqHost {
		return true
	}

	if allowed := strings.ToLower(h.AppConfig.AllowedOrigin); allowed != "" {
		if originHost == allowed || strings.HasSuffix(originHost, "."+allowed) {
			return true
		}
	}
	return false
}
