package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/api"
	"github.com/iliyamo/matrimony-admin/internal/config"
	"github.com/iliyamo/matrimony-admin/internal/handler"
	"github.com/iliyamo/matrimony-admin/internal/logger"
	"github.com/iliyamo/matrimony-admin/internal/middleware"
	"github.com/iliyamo/matrimony-admin/internal/router"
	"github.com/iliyamo/matrimony-admin/internal/service"
	"github.com/iliyamo/matrimony-admin/internal/session"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

// sweepEvery is how often idle user-list state is collected.
const sweepEvery = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl := logger.New(cfg.LogLevel, cfg.IsProd())
	defer func() { _ = zl.Sync() }()

	// Redis is optional: without it sessions live in memory and the
	// login limiter and page cache are off.
	rdb := config.NewRedisClient(cfg.Redis)
	var store session.Store
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		store = session.NewRedisStore(rdb, cfg.SessionPrefix, cfg.SessionTTL)
		zl.Info("redis connected", zap.String("addr", cfg.Redis.Address()))
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		zl.Warn("redis unavailable; using in-memory sessions", zap.String("addr", cfg.Redis.Address()))
	}

	client := api.New(cfg.APIBaseURL, api.WithTimeout(cfg.APITimeout), api.WithLogger(zl.Named("api")))

	var auditor *service.AuditPublisher
	if cfg.Audit.Enabled {
		auditor = service.NewAuditPublisher(cfg.Audit.URL, cfg.Audit.Queue, zl.Named("audit"))
	}
	lists := userlist.NewRegistry(func(s session.Session) *userlist.Engine {
		opts := []userlist.Option{userlist.WithLogger(zl.Named("userlist"))}
		if auditor != nil {
			opts = append(opts, userlist.WithAuditor(auditor, s.User))
		}
		return userlist.New(client.WithToken(s.Token), opts...)
	}, zl)

	cache := middleware.NewResponseCache(cfg.Cache, rdb, zl)

	renderer, err := view.New()
	if err != nil {
		zl.Fatal("parse templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(zl.Named("http")))

	router.RegisterRoutes(e, router.Handlers{
		Health:    handler.NewHealthHandler(rdb),
		Auth:      handler.NewAuthHandler(cfg, client, store, lists, cache, zl),
		Dashboard: handler.NewDashboardHandler(client, zl),
		Users:     handler.NewUsersHandler(lists, cache, zl),
		Profile:   handler.NewProfileHandler(client, zl),
	}, router.Middlewares{
		Guard:      middleware.Guard(cfg.SessionSecret, store, zl),
		Admin:      middleware.RequireRole(cfg.AdminRoles...),
		LoginLimit: middleware.NewTokenBucket(cfg.RateLimit, rdb, zl),
		Cache:      cache.Middleware(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go lists.Run(ctx, sweepEvery, cfg.EngineIdleTTL)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("api", cfg.APIBaseURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}
