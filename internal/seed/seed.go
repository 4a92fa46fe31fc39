package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/otabek/davomat/internal/app/models"
	appRepos "github.com/otabek/davomat/internal/app/repositories"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@davomat.app"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the default SUPER_ADMIN account so a fresh
// deployment can log in and issue certificates.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		lgr.Info().Msg("Default admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), auth.BcryptCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Username: "System Administrator",
		Email:    defaultAdminEmail,
		Password: string(hashedPassword),
		Role:     appModels.RoleSuperAdmin,
	}

	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Str("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}
