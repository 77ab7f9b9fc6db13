package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"schedule-proposer/internal/schedule"
	tgDelivery "schedule-proposer/internal/schedule/delivery/telegram"
	"schedule-proposer/pkg/log"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	gatherer    prometheus.Gatherer

	// Schedule domain
	scheduleUC      schedule.UseCase
	telegramHandler tgDelivery.Handler
	telegramSecret  string
	rateLimitPerMin int
	calendarEnabled bool
	llmProviders    []string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Gatherer    prometheus.Gatherer // defaults to prometheus.DefaultGatherer

	// Schedule domain
	ScheduleUseCase schedule.UseCase
	TelegramHandler tgDelivery.Handler // optional
	TelegramSecret  string
	RateLimitPerMin int
	TrustedProxies  []string // empty trusts no forwarding headers
	CalendarEnabled bool     // reported by /ready
	LLMProviders    []string // reported by /ready, in fallback order
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		gatherer:        gatherer,
		scheduleUC:      cfg.ScheduleUseCase,
		telegramHandler: cfg.TelegramHandler,
		telegramSecret:  cfg.TelegramSecret,
		rateLimitPerMin: cfg.RateLimitPerMin,
		calendarEnabled: cfg.CalendarEnabled,
		llmProviders:    cfg.LLMProviders,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.scheduleUC == nil {
		return errors.New("schedule use case is required")
	}
	return nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

// Run serves until ctx is cancelled, then shuts down gracefully and waits for background
// Telegram replies to finish.
func (srv *HTTPServer) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	srv.l.Info(ctx, "HTTP server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	if srv.telegramHandler != nil {
		srv.telegramHandler.Wait()
	}
	return nil
}
