package profiles

import (
	"context"
	"errors"
	"log"
	"strings"

	"medhasmind/internal/domain/profile"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	profiles profile.Repository
	stats    profile.StatsRepository
	logger   *log.Logger
}

func NewService(profiles profile.Repository, stats profile.StatsRepository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{profiles: profiles, stats: stats, logger: logger}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	prof, found, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if !found {
		return profile.Profile{}, ErrNotFound
	}
	return prof, nil
}

// GetWithStats joins the profile record with its aggregated activity.
func (s *Service) GetWithStats(ctx context.Context, id uuid.UUID) (profile.Profile, profile.Stats, error) {
	prof, err := s.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, profile.Stats{}, err
	}

	st, err := s.stats.Summary(ctx, id)
	if err != nil {
		return profile.Profile{}, profile.Stats{}, ErrInternal
	}
	return prof, st, nil
}

func (s *Service) UpdateOwn(ctx context.Context, id uuid.UUID, in profile.UpdateInput) (profile.Profile, error) {
	if err := validateUpdate(in); err != nil {
		return profile.Profile{}, err
	}

	// An empty field set is allowed; it still refreshes updated_at.
	prof, found, err := s.profiles.Update(ctx, id, in)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if !found {
		return profile.Profile{}, ErrNotFound
	}
	return prof, nil
}

// AdminSearch resolves the admin listing: a text query wins over a role
// filter; with neither the result is an empty slice. There is no "all
// users" pagination yet.
func (s *Service) AdminSearch(ctx context.Context, query, role string) ([]profile.Profile, error) {
	query = strings.TrimSpace(query)
	role = strings.TrimSpace(role)

	switch {
	case query != "":
		out, err := s.profiles.Search(ctx, query, profile.DefaultSearchLimit)
		if err != nil {
			return nil, ErrInternal
		}
		return out, nil
	case role != "":
		r := profile.Role(role)
		if !r.Valid() {
			return nil, ErrInvalidInput
		}
		out, err := s.profiles.ListByRole(ctx, r, profile.DefaultRoleLimit)
		if err != nil {
			return nil, ErrInternal
		}
		return out, nil
	default:
		return []profile.Profile{}, nil
	}
}

// SetActive toggles the only removal semantics the system has. The error is
// a best-effort signal the caller decides how to treat.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.profiles.SetActive(ctx, id, active); err != nil {
		s.logger.Printf("[Profiles] set-active failed for %s: %v", id, err)
		return err
	}
	return nil
}

func validateUpdate(in profile.UpdateInput) error {
	tooLong := func(v *string, max int) bool {
		return v != nil && len(*v) > max
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ErrInvalidInput
	}
	if tooLong(in.Name, 100) || tooLong(in.Bio, 500) || tooLong(in.Institution, 100) || tooLong(in.Location, 100) {
		return ErrInvalidInput
	}
	return nil
}
