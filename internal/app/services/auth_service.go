package services

import (
	"context"
	"errors"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/auth"
	"github.com/otabek/davomat/internal/pkg/logger"
)

// userAuthStore is the user lookup the login flow needs
type userAuthStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService authenticates users and issues access tokens
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   userAuthStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo userAuthStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("userId", user.ID).Msg("User logged in")

	return &dto.LoginResponse{Token: token, ExpiresIn: expiresIn, User: user}, nil
}
