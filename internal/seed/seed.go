package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emirkaya/schoolhub/internal/app/models"
	appRepos "github.com/emirkaya/schoolhub/internal/app/repositories"
	"github.com/emirkaya/schoolhub/internal/config"
	"github.com/emirkaya/schoolhub/internal/db"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
)

// CreateDefaultData makes sure a bootstrap admin account exists. Account
// creation is admin-only, so a fresh database needs one seeded account to
// get started.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		return fmt.Errorf("failed to check for bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := &models.User{
		Email:     cfg.Admin.Email,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	err = db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
		_, err := userRepo.CreateUserTx(ctx, tx, admin)
		return err
	})
	if err != nil {
		// Concurrent startup may have won the race; that admin serves fine.
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Bootstrap admin account created")
	return nil
}
