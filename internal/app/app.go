package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"cookie4/internal/config"
	"cookie4/internal/game"
	httphandler "cookie4/internal/http"
	"cookie4/internal/metrics"
	"cookie4/internal/util"
)

// App is a booted server: the board service and the handler serving it
type App struct {
	Config  config.Config
	Board   *game.Service
	Handler http.Handler
	Logger  *log.Logger
}

// NewLogger builds the root logger from the log settings in cfg
func NewLogger(w io.Writer, cfg config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}), nil
}

// Boot wires the board, random stream, metrics and routes, and returns the ready app
func Boot(cfg config.Config, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// one table and one stream for the whole process
	table := game.NewTable()
	stream := util.NewLockedStream(cfg.Seed)

	opts := httphandler.RouterOptions{
		Logger: logger,
		Clock:  clock.New(),
	}
	svcOpts := []game.Option{game.WithLogger(logger.WithPrefix("board"))}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg, cfg.MetricsNamespace)
		opts.Metrics = m
		opts.Gatherer = reg
		svcOpts = append(svcOpts, game.WithRecorder(m))
	}

	board := game.NewService(table, stream, svcOpts...)
	router := httphandler.NewRouter(httphandler.NewHandler(board, logger), opts)

	return &App{
		Config:  cfg,
		Board:   board,
		Handler: router,
		Logger:  logger,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Address,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Info("Server started", "addr", a.Config.Address, "seed", a.Config.Seed)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
