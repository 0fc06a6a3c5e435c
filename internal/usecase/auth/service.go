package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"medhasmind/internal/domain/profile"
	"medhasmind/internal/infrastructure/identity"
	"medhasmind/internal/pkg/token"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAccountInactive        = errors.New("account inactive")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrResetUnsupported       = errors.New("password reset unsupported")
	ErrInternal               = errors.New("internal error")
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
	UserType profile.UserType
}

type LoginInput struct {
	Email    string
	Password string
}

type Result struct {
	Token     string
	ExpiresIn time.Duration
	Profile   profile.Profile
}

// Revoker marks a token id unusable until the token's own expiry.
type Revoker interface {
	MarkRevoked(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Service struct {
	provider identity.Provider
	profiles profile.Repository
	tokens   token.Service
	revoker  Revoker
	logger   *log.Logger
}

func NewService(provider identity.Provider, profiles profile.Repository, tokens token.Service, revoker Revoker, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{provider: provider, profiles: profiles, tokens: tokens, revoker: revoker, logger: logger}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (Result, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || len(name) > 100 {
		return Result{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return Result{}, ErrInvalidInput
	}
	userType := in.UserType
	if userType == "" {
		userType = profile.UserTypeStudent
	}
	if !userType.Valid() {
		return Result{}, ErrInvalidInput
	}

	if _, found, err := s.profiles.GetByEmail(ctx, email); err != nil {
		return Result{}, ErrInternal
	} else if found {
		return Result{}, ErrEmailAlreadyRegistered
	}

	ident, err := s.provider.SignUp(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return Result{}, ErrUpstreamUnavailable
		}
		// Covers a credential record that already exists at the provider,
		// including orphans from an earlier half-failed signup.
		return Result{}, ErrInvalidInput
	}

	prof, err := s.profiles.Create(ctx, profile.Profile{
		ID:       ident.SubjectID,
		Email:    email,
		Name:     name,
		Role:     userType.Role(),
		UserType: userType,
	})
	if err != nil {
		// Known gap: the credential record already exists at the provider
		// and there is no compensating delete, so a failed insert leaves an
		// orphaned identity behind.
		s.logger.Printf("[Auth] profile insert failed after identity creation, subject=%s: %v", ident.SubjectID, err)
		return Result{}, err
	}

	return s.issue(prof)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Result, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Result{}, ErrInvalidCredentials
	}

	ident, err := s.provider.VerifyPassword(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return Result{}, ErrUpstreamUnavailable
		}
		return Result{}, ErrInvalidCredentials
	}

	prof, found, err := s.profiles.GetByID(ctx, ident.SubjectID)
	if err != nil {
		return Result{}, ErrInternal
	}
	if !found {
		return Result{}, ErrProfileNotFound
	}
	if !prof.IsActive {
		return Result{}, ErrAccountInactive
	}

	// Best-effort stamp. Login succeeds even when it fails.
	if err := s.profiles.StampLastLogin(ctx, prof.ID); err != nil {
		s.logger.Printf("[Auth] last-login stamp failed for %s: %v", prof.ID, err)
	}

	return s.issue(prof)
}

// Logout marks the presented token revoked. The returned error is the
// best-effort signal; callers log it and still report the logout as done.
func (s *Service) Logout(ctx context.Context, claims token.Claims) error {
	if s.revoker == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoker.MarkRevoked(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Refresh issues a new token for already-validated claims. The role is read
// from the current profile record, so a role change lands here at the
// latest.
func (s *Service) Refresh(ctx context.Context, claims token.Claims) (Result, error) {
	prof, found, err := s.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		return Result{}, ErrInternal
	}
	if !found {
		return Result{}, ErrProfileNotFound
	}
	return s.issue(prof)
}

func (s *Service) CurrentUser(ctx context.Context, claims token.Claims) (profile.Profile, error) {
	prof, found, err := s.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if !found {
		return profile.Profile{}, ErrProfileNotFound
	}
	return prof, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	err := s.provider.SendRecovery(ctx, email)
	if err == nil {
		return nil
	}
	if errors.Is(err, identity.ErrUnsupported) {
		return ErrResetUnsupported
	}
	if errors.Is(err, identity.ErrUnavailable) {
		return ErrUpstreamUnavailable
	}
	return ErrInternal
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, recoveryToken, newPassword string) error {
	if strings.TrimSpace(recoveryToken) == "" || !isValidPassword(newPassword) {
		return ErrInvalidInput
	}

	err := s.provider.ConfirmReset(ctx, recoveryToken, newPassword)
	if err == nil {
		return nil
	}
	if errors.Is(err, identity.ErrUnsupported) {
		return ErrResetUnsupported
	}
	if errors.Is(err, identity.ErrUnavailable) {
		return ErrUpstreamUnavailable
	}
	return ErrInvalidCredentials
}

func (s *Service) issue(prof profile.Profile) (Result, error) {
	tok, err := s.tokens.Generate(token.Claims{
		UserID: prof.ID,
		Email:  prof.Email,
		Role:   prof.Role,
	}, 0)
	if err != nil {
		return Result{}, ErrInternal
	}
	return Result{Token: tok, ExpiresIn: s.tokens.TTL(), Profile: prof}, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
