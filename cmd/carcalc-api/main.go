// README: Entry point; loads config, wires the catalog, quote and HTTP
// layers and runs the server until interrupted.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carcalc/internal/config"
	httptransport "carcalc/internal/http"
	"carcalc/internal/infra"
	"carcalc/internal/maps"
	"carcalc/internal/modules/catalog"
	"carcalc/internal/modules/quote"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var catalogStore *catalog.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		catalogStore = catalog.NewStore(dbPool)
	}

	var catalogCache *catalog.Cache
	if cfg.Redis.Addr != "" {
		catalogCache = catalog.NewCache(infra.NewRedis(cfg.Redis.Addr))
	}

	catalogSvc := catalog.NewService(catalogStore, catalogCache, cfg.Catalog.DataDir, logger)

	var distance quote.DistanceResolver
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			logger.Error("init maps client", "error", err)
			os.Exit(1)
		}
		distance = routeSvc
	}

	quoteSvc := quote.NewService(catalogSvc, distance, cfg.Fuel, logger)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(quoteSvc, catalogSvc, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("serve", "error", err)
			os.Exit(1)
		}
	}
}
