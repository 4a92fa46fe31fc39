package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/auth"
)

type fakeUserAuthStore struct {
	byEmail map[string]*models.User
}

func (f *fakeUserAuthStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	store := &fakeUserAuthStore{byEmail: map[string]*models.User{
		"alice@davomat.app": {ID: alice, Email: "alice@davomat.app", Password: hash, Role: models.RoleStudent},
	}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "davomat-test",
	})
	return NewAuthService(store, jwtService)
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "alice@davomat.app", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if resp.Token == "" || resp.ExpiresIn != 3600 {
		t.Errorf("unexpected token response: %+v", resp)
	}
	if resp.User == nil || resp.User.ID != alice {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@davomat.app", "wrong"},
		{"unknown email", "mallory@davomat.app", "correct horse"},
	}

	// both cases must surface the same error so callers cannot probe
	// which emails exist
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
