package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCreateFailed covers a rejected insert, typically a duplicate email.
var ErrCreateFailed = errors.New("profile create failed")

const (
	DefaultSearchLimit = 20
	DefaultRoleLimit   = 50
)

// Repository is the gateway to the external profile store. Each call is a
// single remote round trip. Lookups report absence through the bool return
// instead of an error so the boundary decides the user-facing status.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (Profile, bool, error)

	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (Profile, bool, error)

	// StampLastLogin and SetActive are best-effort single-field updates.
	// Callers log failures and carry on.
	StampLastLogin(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	Search(ctx context.Context, query string, limit int) ([]Profile, error)
	ListByRole(ctx context.Context, role Role, limit int) ([]Profile, error)
}

// StatsRepository aggregates a profile's activity from related collections.
type StatsRepository interface {
	Summary(ctx context.Context, id uuid.UUID) (Stats, error)
}
