package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/catalog-browser/api/openapi"
	"github.com/donaldgifford/catalog-browser/internal/api/handlers"
	mw "github.com/donaldgifford/catalog-browser/internal/api/middleware"
	"github.com/donaldgifford/catalog-browser/internal/pager"
	"github.com/donaldgifford/catalog-browser/internal/session"
	"github.com/donaldgifford/catalog-browser/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the product grid server",
		Long: "Start the HTTP server: the infinite-scroll product grid at /, the\n" +
			"JSON sessions API under /api/v1, health probes and Prometheus metrics.",
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	client := newCatalogClient(cfg)
	store := session.NewStore(func() *pager.Controller {
		return pager.New(client,
			pager.WithPageSize(cfg.Catalog.PageSize),
			pager.WithLogger(log),
		)
	})

	sweeper, err := session.NewSweeper(store, cfg.Sessions.SweepInterval, cfg.Sessions.MaxIdle, log)
	if err != nil {
		return fmt.Errorf("creating session sweeper: %w", err)
	}

	ui, err := handlers.NewUIHandler(store, handlers.UIOptions{
		Title:                 cfg.UI.Title,
		IntersectionThreshold: cfg.UI.IntersectionThreshold,
		CookieName:            cfg.Sessions.CookieName,
	}, log)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.Recovery(log), mw.RequestLog(log), mw.Metrics())

	health := handlers.NewHealthHandler(client)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.RegisterUIRoutes(e, ui)

	api := humaecho.New(e, huma.DefaultConfig("catalog-browser API", Version))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(store, log))

	spec, err := openapi.Render(api.OpenAPI())
	if err != nil {
		return err
	}
	openapi.RegisterRoutes(e, spec)

	sweeper.Start()

	addr := cfg.Server.Addr()
	log.Info("starting server",
		"addr", addr,
		"catalog", cfg.Catalog.BaseURL,
		"page_size", cfg.Catalog.PageSize,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := serveUntilDone(ctx, e, addr, log)

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	select {
	case <-sweeper.Stop().Done():
	case <-stopCtx.Done():
		log.Warn("session sweeper did not stop in time")
	}

	if serveErr != nil {
		return serveErr
	}
	log.Info("server stopped", "sessions", store.Len())
	return nil
}

// serveUntilDone runs e on addr until ctx is done, then shuts it down
// gracefully. A server that fails to start or stops on its own returns
// the error immediately.
func serveUntilDone(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error("server error", "err", err)
		return fmt.Errorf("running server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
