package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"employee-insights/config"
	httpapi "employee-insights/insights-svc/internal/api/http"
	"employee-insights/insights-svc/internal/service"
	"employee-insights/insights-svc/internal/storage"
	"employee-insights/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.WithService(logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout), httpapi.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	insights, cleanup := buildService(ctx, cfg, log)
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := httpapi.NewRouter(httpapi.NewHandler(insights, log), httpapi.RouterConfig{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: cfg.Server.CORSAllowedMethods,
		AllowedHeaders: cfg.Server.CORSAllowedHeaders,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Registry:       reg,
	}, log)

	err = httpapi.StartServer(ctx, httpapi.ServerConfig{
		Addr:            ":" + cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, log)
	if err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// buildService connects the store and the optional Redis and Kafka
// backends. The returned cleanup closes whatever was opened.
func buildService(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*service.InsightService, func()) {
	db := config.MustInitDB(ctx, cfg.DB, log)
	closers := []func() error{db.Close}

	repository := storage.NewSQLRepository(db, cfg.DB.DriverName())

	var trending service.TrendingReader
	if cfg.Redis.Enabled {
		rdb := config.MustInitRedis(ctx, cfg.Redis, log)
		closers = append(closers, rdb.Close)
		trending = storage.NewRedisTrending(rdb)
	}

	var publisher service.LookupPublisher
	if cfg.Kafka.Enabled {
		writer := config.NewKafkaWriter(cfg.Kafka, log)
		closers = append(closers, writer.Close)
		publisher = storage.NewKafkaPublisher(writer)
	}

	qr := service.DefaultQRGenerator{BaseURL: cfg.Server.PublicBaseURL}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.WithError(err).Warn("Failed to close backend")
			}
		}
	}

	return service.NewInsightService(repository, publisher, trending, qr, log), cleanup
}
