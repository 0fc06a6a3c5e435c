package postgres

import (
	"context"
	"fmt"
	"strings"

	"medhasmind/internal/database"
	"medhasmind/internal/domain/profile"

	"github.com/google/uuid"
)

const profileColumns = `id, email, name, role, user_type,
	avatar_url, bio, institution, location,
	linkedin_url, github_url, portfolio_url,
	created_at, updated_at, last_login, is_active, email_confirmed`

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (profile.Profile, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	return scanProfile(row)
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, email, name, role, user_type,
			avatar_url, bio, institution, location,
			linkedin_url, github_url, portfolio_url,
			is_active, email_confirmed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE, FALSE)
		 RETURNING `+profileColumns,
		p.ID, strings.ToLower(strings.TrimSpace(p.Email)), p.Name, p.Role, p.UserType,
		p.AvatarURL, p.Bio, p.Institution, p.Location,
		p.LinkedInURL, p.GitHubURL, p.PortfolioURL,
	)

	created, found, err := scanProfile(row)
	if err != nil {
		// The remote store rejected the insert, usually a duplicate email.
		return profile.Profile{}, fmt.Errorf("%w: %v", profile.ErrCreateFailed, err)
	}
	if !found {
		return profile.Profile{}, profile.ErrCreateFailed
	}
	return created, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, in profile.UpdateInput) (profile.Profile, bool, error) {
	set, args := buildUpdateSet(in)
	args = append(args, id)

	row := r.db.QueryRow(ctx,
		`UPDATE profiles SET `+set+fmt.Sprintf(` WHERE id = $%d RETURNING `, len(args))+profileColumns,
		args...,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) StampLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET last_login = now() WHERE id = $1`,
		id,
	)
	return err
}

func (r *ProfileRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	return err
}

func (r *ProfileRepository) Search(ctx context.Context, query string, limit int) ([]profile.Profile, error) {
	if limit <= 0 {
		limit = profile.DefaultSearchLimit
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE name ILIKE $1 OR email ILIKE $1
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectProfiles(rows)
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role profile.Role, limit int) ([]profile.Profile, error) {
	if limit <= 0 {
		limit = profile.DefaultRoleLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE role = $1 LIMIT $2`,
		role, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectProfiles(rows)
}

// buildUpdateSet turns a sparse field set into a SET clause. updated_at is
// always refreshed, even for an empty input.
func buildUpdateSet(in profile.UpdateInput) (string, []any) {
	parts := []string{"updated_at = now()"}
	args := make([]any, 0, 8)

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		parts = append(parts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("name", in.Name)
	add("avatar_url", in.AvatarURL)
	add("bio", in.Bio)
	add("institution", in.Institution)
	add("location", in.Location)
	add("linkedin_url", in.LinkedInURL)
	add("github_url", in.GitHubURL)
	add("portfolio_url", in.PortfolioURL)

	return strings.Join(parts, ", "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanProfile(row database.Row) (profile.Profile, bool, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.UserType,
		&p.AvatarURL, &p.Bio, &p.Institution, &p.Location,
		&p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL,
		&p.CreatedAt, &p.UpdatedAt, &p.LastLogin, &p.IsActive, &p.EmailConfirmed,
	)
	if err != nil {
		if isNoRows(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

func collectProfiles(rows database.Rows) ([]profile.Profile, error) {
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		var p profile.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.Role, &p.UserType,
			&p.AvatarURL, &p.Bio, &p.Institution, &p.Location,
			&p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL,
			&p.CreatedAt, &p.UpdatedAt, &p.LastLogin, &p.IsActive, &p.EmailConfirmed,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
