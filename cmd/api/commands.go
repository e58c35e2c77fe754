package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/config"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/events"
	"github.com/spec-kit/photoshare-service/internal/observability"
	"github.com/spec-kit/photoshare-service/internal/persistence"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
	"github.com/spec-kit/photoshare-service/internal/worker"
)

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	return persistence.RunMigrations(cfg.Postgres.DSN, logger)
}

// runSetRole changes the role of an account directly in the database and revokes
// its refresh token, the same way PATCH /api/users/role does.
func runSetRole(ctx context.Context, email, rawRole string) error {
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger, nil)
	refreshStore := repository.NewRefreshTokenStore(redis.Client, redis.KeyPrefix)
	worker.StartLifecycleWorker(service.NewLifecycleService(dispatcher, nil, refreshStore, logger))

	users := service.NewUserService(repository.NewUserRepository(pg.Pool), nil, dispatcher, logger)
	user, err := users.ChangeRole(ctx, nil, email, role)
	if err != nil {
		return err
	}
	logger.Info("role assigned", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}
