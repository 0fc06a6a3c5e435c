package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RolePartner, RoleAdmin:
		return true
	}
	return false
}

// UserType is a signup-time classification. Role is derived from it at
// creation and is not expected to change through the update path.
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypePartner UserType = "partner"
)

func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypePartner
}

func (t UserType) Role() Role {
	if t == UserTypePartner {
		return RolePartner
	}
	return RoleStudent
}

// Profile mirrors one row of the external store's profiles collection.
// ID equals the identity provider's subject id and is immutable.
type Profile struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Role     Role
	UserType UserType

	AvatarURL    *string
	Bio          *string
	Institution  *string
	Location     *string
	LinkedInURL  *string
	GitHubURL    *string
	PortfolioURL *string

	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLogin      *time.Time
	IsActive       bool
	EmailConfirmed bool
}

// UpdateInput is a sparse field set for partial updates. Nil means
// leave the stored value untouched.
type UpdateInput struct {
	Name         *string
	AvatarURL    *string
	Bio          *string
	Institution  *string
	Location     *string
	LinkedInURL  *string
	GitHubURL    *string
	PortfolioURL *string
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil &&
		in.AvatarURL == nil &&
		in.Bio == nil &&
		in.Institution == nil &&
		in.Location == nil &&
		in.LinkedInURL == nil &&
		in.GitHubURL == nil &&
		in.PortfolioURL == nil
}

// Stats aggregates activity from related collections (enrollments,
// hackathon participations, achievements).
type Stats struct {
	TotalCourses           int
	CompletedCourses       int
	TotalHours             int
	HackathonsParticipated int
	HackathonsWon          int
	BadgesEarned           int
}

// SkillLevel derives the display label from completed course counts.
func (s Stats) SkillLevel() string {
	switch {
	case s.CompletedCourses >= 15:
		return "expert"
	case s.CompletedCourses >= 8:
		return "advanced"
	case s.CompletedCourses >= 4:
		return "intermediate"
	default:
		return "beginner"
	}
}
