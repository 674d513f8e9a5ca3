// Package server wires configuration, storage, side channels and the HTTP
// API together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/ratelimit"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/rest"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/dmitrijs2005/taskboard/internal/server/snapshots"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	limiter     ratelimit.Limiter
	closers     []func() error
	services    rest.Services
}

// NewApp opens storage and the optional NATS, Redis and S3 integrations
// described by c. Each integration is skipped when its address is empty.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	app := &App{config: c, logger: logger}

	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the default JWT secret; set JWT_SECRET in production")
	}

	m, err := repomanager.Open(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.repomanager = m
	app.closers = append(app.closers, m.Close)

	if err := app.initPublisher(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	if err := app.initLimiter(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}

	var uploader services.Uploader
	if c.SnapshotsEnabled() {
		uploader = snapshots.NewS3Store(c)
		logger.Info(ctx, "snapshots enabled", "bucket", c.S3Bucket)
	}

	transfer := services.NewTransferService(m, c, app.publisher, logger)
	app.services = rest.Services{
		Users:      services.NewUserService(m, c, app.publisher, logger),
		Categories: services.NewCategoryService(m, app.publisher, logger),
		Tasks:      services.NewTaskService(m, c, app.publisher, logger),
		Transfer:   transfer,
		Snapshots:  services.NewSnapshotService(m, transfer, uploader, app.publisher, logger),
	}

	return app, nil
}

func (app *App) initPublisher(ctx context.Context) error {
	if app.config.NatsURL == "" {
		app.publisher = events.Nop{}
		return nil
	}

	p, err := events.ConnectNats(app.config.NatsURL, app.logger)
	if err != nil {
		return fmt.Errorf("nats init error: %w", err)
	}
	app.publisher = p
	app.closers = append(app.closers, p.Close)
	app.logger.Info(ctx, "publishing events to NATS")
	return nil
}

func (app *App) initLimiter(ctx context.Context) error {
	perMinute := app.config.LoginRateLimit
	if perMinute <= 0 {
		return nil
	}

	if app.config.RedisAddr == "" {
		app.limiter = ratelimit.NewLocal(perMinute)
		return nil
	}

	client, err := ratelimit.NewRedisClient(ctx, app.config.RedisAddr)
	if err != nil {
		return fmt.Errorf("redis init error: %w", err)
	}
	app.limiter = ratelimit.NewRedis(client, perMinute)
	app.closers = append(app.closers, client.Close)
	app.logger.Info(ctx, "rate limiting through Redis", "per_minute", perMinute)
	return nil
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
	s := rest.NewHTTPServer(app.config.ListenAddr, app.logger, app.services, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the HTTP server fails,
// then releases every resource NewApp acquired.
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

	<-ctx.Done()
	wg.Wait()

	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}

// close runs the registered closers in reverse order.
func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(ctx, "close failed", "error", err)
		}
	}
	app.closers = nil
}
