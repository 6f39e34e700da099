package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"sentinel/internal/app"
	"sentinel/internal/config"
	"sentinel/internal/handler"
	"sentinel/internal/metrics"
	"sentinel/internal/service"
	"sentinel/internal/storage"
	"sentinel/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Echo      *echo.Echo
	Scheduler *service.Scheduler
	Storage   *storage.Storage
}

func NewServer(cfg *config.Config) (*Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	engine, anchors, err := app.NewEngine(cfg, m)
	if err != nil {
		return nil, err
	}
	utils.Log.Info("trust anchors loaded", utils.Field("count", anchors.Len()))

	store := storage.NewStorage(cfg.RedisHost, cfg.RedisPort)
	alerts := service.NewAlertService(cfg.AudioDir, cfg.DefaultLanguage)
	h := handler.NewHandler(store, engine, anchors, alerts, cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16K"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per second

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		}
		if jsonErr := c.JSON(code, map[string]interface{}{"code": code, "message": message}); jsonErr != nil {
			utils.Log.Error("failed to write error response", utils.Field("error", jsonErr.Error()))
		}
	}

	h.Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	e.Static("/audio", cfg.AudioDir)

	srv := &Server{Echo: e, Storage: store}
	if cfg.EnableWatch {
		srv.Scheduler = service.NewScheduler(store, engine, cfg.WatchSchedule)
	}
	return srv, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.InitLogger("info")
		utils.Log.Fatal("invalid configuration", utils.Field("error", err.Error()))
	}
	utils.InitLogger(cfg.LogLevel)
	defer func() { _ = utils.Log.Sync() }()

	srv, err := NewServer(cfg)
	if err != nil {
		utils.Log.Fatal("failed to build server", utils.Field("error", err.Error()))
	}

	if err := srv.Storage.Ping(context.Background()); err != nil {
		utils.Log.Warn("redis unavailable, history and watch list disabled until it recovers",
			utils.Field("error", err.Error()))
	}

	if srv.Scheduler != nil {
		if err := srv.Scheduler.Start(); err != nil {
			utils.Log.Fatal("invalid WATCH_SCHEDULE", utils.Field("error", err.Error()))
		}
		defer srv.Scheduler.Stop()
	}

	// Start server
	go func() {
		if err := srv.Echo.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			utils.Log.Fatal("shutting down the server", utils.Field("error", err.Error()))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Echo.Shutdown(ctx); err != nil {
		utils.Log.Error("shutdown failed", utils.Field("error", err.Error()))
	}
}
