// Package server wires the ForoHub server together and handles graceful
// shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/forohub/internal/logging"
	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/dmitrijs2005/forohub/internal/server/config"
	"github.com/dmitrijs2005/forohub/internal/server/metrics"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/forohub/internal/server/rest"
	"github.com/dmitrijs2005/forohub/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	metrics    *metrics.Metrics
	httpServer *rest.HTTPServer
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService(rm.Users(db), c.TokenIssuer, c.TokenValidityDuration, c.TokenZoneOffset)

	us := services.NewUserService(db, rm, tokens)
	ts := services.NewTopicService(db, rm)
	rs := services.NewResponseService(db, rm)

	m := metrics.New()
	hs := rest.NewHTTPServer(c.EndpointAddrHTTP, c.ShutdownTimeout, logger, tokens, us, ts, rs, rest.WithRecorder(m))

	return &App{config: c, logger: logger, db: db, metrics: m, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startMetricsServer failures are logged but do not stop the API.
func (app *App) startMetricsServer(ctx context.Context) {
	if app.config.EndpointAddrMetrics == "" {
		return
	}
	if err := app.metrics.Serve(ctx, app.config.EndpointAddrMetrics, app.logger); err != nil {
		app.logger.Error(ctx, "metrics server error", "error", err)
	}
}

// Run blocks until a termination signal arrives or the HTTP server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
