package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"employee-insights/agg-svc/internal/service"
	"employee-insights/agg-svc/internal/storage"
	"employee-insights/config"
	"employee-insights/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.WithService(logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout), "agg-svc")

	if !cfg.Redis.Enabled || !cfg.Kafka.Enabled {
		log.Fatal("agg-svc requires INSIGHTS_REDIS_ENABLED and INSIGHTS_KAFKA_ENABLED")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(ctx, cfg.Redis, log)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	service.NewConsumer(reader, storage.NewStore(rdb), log).Start(ctx)
}
