// Package app wires configuration, storage and handlers into a runnable
// catalog server.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/events"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// App is a configured catalog server.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	server   *fiber.App
	services Services
	closers  []func() error
}

// Services are the catalog services behind the HTTP handlers.
type Services struct {
	Categories      *services.CategoryService
	GroupCategories *services.GroupCategoryService
	Products        *services.ProductService
}

type repositorySet struct {
	categories repositories.CategoryRepository
	groups     repositories.GroupCategoryRepository
	products   repositories.ProductRepository
	db         handlers.Pinger
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// New builds the server described by cfg. Redis and RabbitMQ are optional:
// when configured but unreachable the server starts without them.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log}

	repos := a.buildRepositories()

	optional := map[string]handlers.Pinger{}
	var readCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", rc.Addr()).Msg("redis unreachable, reads fall through to storage")
		}
		cancel()
		readCache = rc
		optional["cache"] = rc
		a.closers = append(a.closers, rc.Close)
	}

	var emitter *events.Emitter
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange, Logger: log})
		if err != nil {
			log.Warn().Err(err).Msg("event publishing disabled")
		} else {
			emitter = events.NewEmitter(mq, cfg.EventsExchange, log)
			a.closers = append(a.closers, mq.Close)
		}
	}

	deps := services.Deps{
		Validator: validation.New(),
		Cache:     readCache,
		Events:    emitter,
		Logger:    log,
	}
	a.services = Services{
		Categories:      services.NewCategoryService(repos.categories, repos.groups, repos.products, deps),
		GroupCategories: services.NewGroupCategoryService(repos.groups, deps),
		Products:        services.NewProductService(repos.products, deps),
	}

	server := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})
	server.Use(middleware.RequestLogger(log))
	server.Use(recover.New())
	if cfg.RateLimitMax > 0 {
		server.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	server.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	handlers.NewHealthHandler(repos.db, optional).RegisterRoutes(server)

	api := server.Group(cfg.APIPrefix)
	handlers.NewCategoryHandler(a.services.Categories).RegisterRoutes(api)
	handlers.NewGroupCategoryHandler(a.services.GroupCategories).RegisterRoutes(api)
	handlers.NewProductHandler(a.services.Products).RegisterRoutes(api)

	a.server = server
	return a, nil
}

func (a *App) buildRepositories() repositorySet {
	if a.cfg.DatabaseDriver == "memory" {
		store := repositories.NewMockStore()
		a.log.Warn().Msg("using in-memory storage, data is lost on exit")
		return repositorySet{
			categories: repositories.NewMockCategoryRepository(store),
			groups:     repositories.NewMockGroupCategoryRepository(store),
			products:   repositories.NewMockProductRepository(store),
			db:         pingFunc(func(context.Context) error { return nil }),
		}
	}

	manager := database.NewManager(database.Config{
		Driver:       a.cfg.DatabaseDriver,
		DSN:          a.cfg.DatabaseDSN,
		MaxOpenConns: a.cfg.DatabaseMaxOpenConns,
		AutoMigrate:  a.cfg.DatabaseAutoMigrate,
		Logger:       a.log,
	})
	a.closers = append(a.closers, manager.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := manager.Ping(ctx); err != nil {
		// the manager retries on the next request
		a.log.Warn().Err(err).Str("driver", a.cfg.DatabaseDriver).Msg("database not reachable at startup")
	}
	return repositorySet{
		categories: repositories.NewGORMCategoryRepository(manager),
		groups:     repositories.NewGORMGroupCategoryRepository(manager),
		products:   repositories.NewGORMProductRepository(manager),
		db:         manager,
	}
}

// Fiber exposes the HTTP application, mainly for tests.
func (a *App) Fiber() *fiber.App { return a.server }

// Services returns the services the server is built on.
func (a *App) Services() Services { return a.services }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.AppPort).Msg("starting server")
		errCh <- a.server.Listen(a.cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down server")
	if err := a.server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Close releases storage, cache and broker connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
