package usecase

import (
	"context"

	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
	"medhasmind/internal/pkg/token"
	ucauth "medhasmind/internal/usecase/auth"
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (ucauth.Result, error)
	Login(ctx context.Context, in ucauth.LoginInput) (ucauth.Result, error)
	Logout(ctx context.Context, claims token.Claims) error
	Refresh(ctx context.Context, claims token.Claims) (ucauth.Result, error)
	CurrentUser(ctx context.Context, claims token.Claims) (profile.Profile, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, recoveryToken, newPassword string) error
}

type ProfileUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetWithStats(ctx context.Context, id uuid.UUID) (profile.Profile, profile.Stats, error)
	UpdateOwn(ctx context.Context, id uuid.UUID, in profile.UpdateInput) (profile.Profile, error)
	AdminSearch(ctx context.Context, query, role string) ([]profile.Profile, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
