package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"employee-insights/insights-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// RateLimitRPS of zero disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int
	// Registry receives the HTTP metrics and backs /metrics. Nil gets a
	// fresh registry.
	Registry *prometheus.Registry
}

func NewRouter(handler *Handler, cfg RouterConfig, log logrus.FieldLogger) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := NewMetrics(reg)

	r := mux.NewRouter()
	r.Use(requestID, accessLog(log), instrument(metrics), recoverer(log))
	r.NotFoundHandler = requestID(accessLog(log)(instrument(metrics)(failWith(http.StatusNotFound, msgNotFound))))
	r.MethodNotAllowedHandler = requestID(accessLog(log)(instrument(metrics)(failWith(http.StatusMethodNotAllowed, msgMethodNotAllowed))))
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst), metrics))
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(r)
}

func failWith(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, domain.Fail([]domain.InsightSummary{}, message))
	})
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StartServer serves until ctx is cancelled, then drains in-flight requests
// for at most ShutdownTimeout.
func StartServer(ctx context.Context, cfg ServerConfig, handler http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("Insights Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down Insights Service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
