package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crud-backends/internal/api/http"
	"github.com/spec-kit/crud-backends/internal/api/http/handlers"
	"github.com/spec-kit/crud-backends/internal/auth"
	"github.com/spec-kit/crud-backends/internal/cache"
	"github.com/spec-kit/crud-backends/internal/config"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/observability"
	"github.com/spec-kit/crud-backends/internal/persistence"
	"github.com/spec-kit/crud-backends/internal/persistence/migrations"
	"github.com/spec-kit/crud-backends/internal/repository"
	"github.com/spec-kit/crud-backends/internal/service"
	"github.com/spec-kit/crud-backends/internal/worker"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	app  string
	port string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server of one backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.app, "app", "", "Backend to serve (fyyur, trivia, coffee)")
	cmd.Flags().StringVar(&opts.port, "port", "", "Listen port (overrides APP_PORT)")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts.app)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.port != "" {
		cfg.App.Port = opts.port
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is required to serve")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("app", cfg.App.Name))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		files, err := migrations.For(opts.app)
		if err != nil {
			return err
		}
		if err := persistence.RunMigrations(cfg.Postgres.DSN, files, persistence.MigrateUp, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	metrics := observability.NewMetrics(cfg.App.Name)
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var redisPinger handlers.Pinger
	if rdb.Client != nil {
		redisPinger = rdb
	}
	health := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger)
	httptransport.RegisterOpsRoutes(app, health, metrics)

	backend := backendDeps{
		cfg:        cfg,
		logger:     logger,
		pool:       pg.PoolHandle(),
		cache:      cache.NewRedisCache(rdb.Client, cfg.App.Name+":", cfg.Redis.CacheTTL()),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	if err := registerBackend(app, opts.app, backend); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber listen: %w", err)
	case sig := <-shutdownSignal():
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func shutdownSignal() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}

type backendDeps struct {
	cfg        *config.Config
	logger     *zap.Logger
	pool       *pgxpool.Pool
	cache      cache.Cache
	dispatcher events.Dispatcher
}

// registerBackend builds the repositories, services and handlers of one backend and mounts them.
func registerBackend(app *fiber.App, name string, d backendDeps) error {
	worker.StartChangeWorker(service.NewChangeListener(d.dispatcher, d.cache, d.logger))

	switch name {
	case config.AppFyyur:
		booking := service.NewBookingService(service.BookingDependencies{
			VenueRepo:  repository.NewVenueRepository(d.pool),
			ArtistRepo: repository.NewArtistRepository(d.pool),
			ShowRepo:   repository.NewShowRepository(d.pool),
			Dispatcher: d.dispatcher,
			Logger:     d.logger,
		})
		httptransport.RegisterFyyurRoutes(app, httptransport.FyyurRoutes{
			Home:    handlers.NewHomeHandler(booking),
			Venues:  handlers.NewVenuesHandler(booking),
			Artists: handlers.NewArtistsHandler(booking),
			Shows:   handlers.NewShowsHandler(booking),
		})
	case config.AppTrivia:
		trivia := service.NewTriviaService(service.TriviaDependencies{
			CategoryRepo: repository.NewCategoryRepository(d.pool),
			QuestionRepo: repository.NewQuestionRepository(d.pool),
			Cache:        d.cache,
			Dispatcher:   d.dispatcher,
			Logger:       d.logger,
		})
		httptransport.RegisterTriviaRoutes(app, httptransport.TriviaRoutes{
			Categories: handlers.NewCategoriesHandler(trivia),
			Questions:  handlers.NewQuestionsHandler(trivia),
			Quizzes:    handlers.NewQuizzesHandler(trivia),
		})
	case config.AppCoffee:
		verifier, err := auth.NewVerifier(d.cfg.Auth)
		if err != nil {
			return err
		}
		drinks := service.NewDrinkService(service.DrinkDependencies{
			DrinkRepo:  repository.NewDrinkRepository(d.pool),
			Cache:      d.cache,
			Dispatcher: d.dispatcher,
			Logger:     d.logger,
		})
		httptransport.RegisterCoffeeRoutes(app, httptransport.CoffeeRoutes{
			Drinks:   handlers.NewDrinksHandler(drinks),
			Verifier: verifier,
		})
	default:
		return fmt.Errorf("unknown app %q", name)
	}
	return nil
}
