package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/ogzkr/campushub/internal/app/models"
	appRepos "github.com/ogzkr/campushub/internal/app/repositories"
	"github.com/ogzkr/campushub/internal/config"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/auth"
)

// CreateDefaultData seeds a development admin account and a handful of
// starter tags when the database is empty. Everything here is idempotent;
// existing rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	tagRepo := appRepos.NewTagRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	adminPassword := config.GetEnv("SEED_ADMIN_PASSWORD", "")
	if adminPassword != "" {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return err
		}

		admin := &appModels.User{
			Username:    config.GetEnv("SEED_ADMIN_USERNAME", "admin"),
			Password:    hash,
			DisplayName: "Administrator",
			Consent:     true,
		}
		if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrUsernameTaken) {
			lgr.Error().Err(err).Msg("Error creating seed admin user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, value := range []string{"announcement", "social", "academic", "sports"} {
		if _, err := tagRepo.GetOrCreateTag(ctx, value); err != nil {
			lgr.Error().Err(err).Str("tag", value).Msg("Error creating seed tag")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
