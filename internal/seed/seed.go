package seed

import (
	"context"

	appModels "github.com/MiiguelHG/escolar-api/internal/app/models"
	appRepos "github.com/MiiguelHG/escolar-api/internal/app/repositories"
	pkgAuth "github.com/MiiguelHG/escolar-api/internal/pkg/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	defaultUsername = "admin"
	defaultPassword = "admin"
)

// CreateDefaultData creates the default login account if no account with that
// username exists yet. There is no registration endpoint, so this seed is the
// only way a fresh deployment gets a usable login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, defaultUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default user")
		return err
	}
	if exists {
		lgr.Debug().Str("username", defaultUsername).Msg("Default user already present")
		return nil
	}

	hashed, err := pkgAuth.HashPassword(defaultPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default user password")
		return err
	}

	user := &appModels.Usuario{
		Username: defaultUsername,
		Password: hashed,
		Disabled: false,
	}

	if _, err := userRepo.CreateUser(ctx, user); err != nil {
		lgr.Error().Err(err).Msg("Error creating default user")
		return err
	}

	lgr.Info().Str("username", defaultUsername).Msg("Default user created; change its password before exposing the API")
	return nil
}
