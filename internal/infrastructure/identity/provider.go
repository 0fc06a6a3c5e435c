package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignUpRejected     = errors.New("sign up rejected")
	ErrUnavailable        = errors.New("identity provider unavailable")
	ErrUnsupported        = errors.New("operation not supported by this provider")
)

// Identity is the stable subject the provider assigns to a credential
// record. Its ID becomes the profile's primary key and the token subject.
type Identity struct {
	SubjectID uuid.UUID
	Email     string
}

// Provider is the external auth service boundary. It owns credentials and
// recovery emails; this backend only re-wraps the returned subject into its
// own signed token.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (Identity, error)
	VerifyPassword(ctx context.Context, email, password string) (Identity, error)

	// SendRecovery triggers the provider's password-reset email.
	// Fire-and-forget from this backend's perspective.
	SendRecovery(ctx context.Context, email string) error

	// ConfirmReset redeems a provider-issued recovery token for a new
	// password.
	ConfirmReset(ctx context.Context, recoveryToken, newPassword string) error
}
