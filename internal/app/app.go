package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Mahesh199811/OrderManagement/internal/api"
	"github.com/Mahesh199811/OrderManagement/internal/config"
	"github.com/Mahesh199811/OrderManagement/internal/domain"
	healthcheck "github.com/Mahesh199811/OrderManagement/internal/health"
	"github.com/Mahesh199811/OrderManagement/internal/metrics"
	"github.com/Mahesh199811/OrderManagement/internal/storage/memory"
	"github.com/Mahesh199811/OrderManagement/internal/storage/postgres"
	"github.com/Mahesh199811/OrderManagement/internal/version"
)

const (
	httpReadTimeout  = 30 * time.Second
	httpWriteTimeout = 30 * time.Second
	httpIdleTimeout  = 30 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// Run запускает сервис с уже разрешённой конфигурацией профиля и блокируется
// до отмены контекста или фатальной ошибки сервера.
func Run(ctx context.Context, cfg config.Config) error {
	logger := log.WithField("component", "app")

	var (
		repo  domain.OrderRepository
		store *postgres.Store
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data will not survive a restart")
		repo = memory.NewOrderRepository()
	default:
		var err error
		store, err = postgres.Open(ctx, cfg.DSN())
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		defer func() { _ = store.Close() }()

		if cfg.AutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
		}
		repo = postgres.NewOrderRepository(store)
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
	}

	httpMetrics := metrics.NewHTTPMetrics()
	router := api.NewRouter(cfg, repo, healthHandler, httpMetrics, logger)

	opsSrv := startOpsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(log.Fields{
			"addr": cfg.HTTPAddr,
			"env":  cfg.Env,
		}).Info("HTTP сервер запущен")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		shutdownHTTP(opsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный HTTP-сервер: /metrics для Prometheus
// и health-пробы для оркестрации.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
