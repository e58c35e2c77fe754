package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/photoshare-service/internal/api/http"
	"github.com/spec-kit/photoshare-service/internal/api/http/handlers"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/config"
	"github.com/spec-kit/photoshare-service/internal/events"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/observability"
	"github.com/spec-kit/photoshare-service/internal/persistence"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
	"github.com/spec-kit/photoshare-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	images, err := imagehost.Open(ctx, cfg.Images, logger)
	if err != nil {
		return err
	}
	defer images.Close() //nolint:errcheck

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		Algorithm:  cfg.Auth.JWTAlgorithm,
		AccessTTL:  cfg.Auth.AccessTokenTTL(),
		RefreshTTL: cfg.Auth.RefreshTokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger, metrics)

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)
	refreshStore := repository.NewRefreshTokenStore(redis.Client, redis.KeyPrefix)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:     userRepo,
		RefreshStore: refreshStore,
		Tokens:       tokens,
		Hasher:       hasher,
		Recorder:     metrics,
		Logger:       logger,
	})
	userService := service.NewUserService(userRepo, images, dispatcher, logger)
	photoService := service.NewPhotoService(service.PhotoDependencies{
		PhotoRepo:  photoRepo,
		Images:     images,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	tagService := service.NewTagService(repository.NewTagRepository(pool))
	commentService := service.NewCommentService(repository.NewCommentRepository(pool), photoRepo, logger)

	worker.StartLifecycleWorker(service.NewLifecycleService(dispatcher, images, refreshStore, logger))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimitMB << 20,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	maxUpload := cfg.Images.MaxUploadBytes()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, maxUpload),
		Photos:         handlers.NewPhotosHandler(photoService, maxUpload),
		Tags:           handlers.NewTagsHandler(tagService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Transformer:    handlers.NewTransformerHandler(photoService),
		Media:          handlers.NewMediaHandler(images),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewResolver(tokens, userRepo), metrics, logger),
		Metrics:        metrics,
		MetricsPath:    metricsPath,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
