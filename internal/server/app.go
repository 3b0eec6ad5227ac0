// Package server assembles the storefront server from its configuration:
// storage backend, mailer, optional Redis rate limit and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/httpapi"
	"github.com/dmitrijs2005/storefront/internal/server/mailer"
	"github.com/dmitrijs2005/storefront/internal/server/ratelimit"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/dmitrijs2005/storefront/internal/server/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	db          *sql.DB
	redis       *redis.Client
	registry    *prometheus.Registry
	userService *services.UserService
}

// NewApp connects the configured backends and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := newLogger(c.LogLevel)
	app := &App{config: c, logger: logger, registry: prometheus.NewRegistry()}
	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := app.initStorage(ctx); err != nil {
		return nil, err
	}

	mail, err := app.newMailer()
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("mailer init error: %w", err)
	}

	opts := []services.Option{}
	if c.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(ctx, c.RedisAddr)
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		app.redis = client
		opts = append(opts, services.WithResetLimiter(
			ratelimit.NewLimiter(ratelimit.NewRedisCounter(client), "reset", c.ResetRequestsPerHour, time.Hour)))
	}

	app.userService = services.NewUserService(app.repos, mail, c, logger, opts...)
	return app, nil
}

func newLogger(level string) logging.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return logging.NewJSONLogger(os.Stdout, lvl)
}

func (app *App) initStorage(ctx context.Context) error {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database configured, using in-memory store")
		app.repos = repomanager.NewMemoryRepositoryManager()
		return nil
	}

	db, err := repomanager.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	m := repomanager.NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("migration error: %w", err)
	}
	app.repos = m
	return nil
}

func (app *App) newMailer() (services.Mailer, error) {
	if app.config.SMTPHost == "" {
		return mailer.NewLogMailer(app.logger), nil
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     app.config.SMTPHost,
		Port:     app.config.SMTPPort,
		Username: app.config.SMTPUsername,
		Password: app.config.SMTPPassword,
		From:     app.config.SMTPFrom,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(httpapi.Options{
		Address:     app.config.EndpointAddrHTTP,
		SecretKey:   app.config.SecretKey,
		FrontendURL: app.config.FrontendURL,
		Cookie: session.CookieOptions{
			MaxAge: app.config.CookieMaxAge,
			Secure: app.config.CookieSecure,
		},
	}, app.logger, app.userService, app.repos.Users(), app.registry)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the backends.
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

	wg.Wait()
	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close failed", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close failed", "error", err)
		}
	}
}
