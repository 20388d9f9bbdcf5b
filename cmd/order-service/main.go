package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/Mahesh199811/OrderManagement/internal/app"
	"github.com/Mahesh199811/OrderManagement/internal/config"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

//	@title			Order Management API
//	@version		1.0
//	@description	CRUD API for customer orders.
//	@BasePath		/api

func main() {
	setupLogger()

	// Профиль окружения разрешается один раз; неполная production-конфигурация
	// валит процесс до открытия слушающего сокета.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("не удалось разрешить конфигурацию окружения")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"env":          cfg.Env,
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.StorageDriver,
		"swagger":      cfg.SwaggerEnabled,
	}).Info("запускаем OrderManagement")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("OrderManagement остановлен")
}
