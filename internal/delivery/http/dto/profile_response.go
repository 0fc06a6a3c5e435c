package dto

import (
	"time"

	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
)

type ProfileResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	UserType string    `json:"user_type"`

	AvatarURL    *string `json:"avatar_url"`
	Bio          *string `json:"bio"`
	Institution  *string `json:"institution"`
	Location     *string `json:"location"`
	LinkedInURL  *string `json:"linkedin_url"`
	GitHubURL    *string `json:"github_url"`
	PortfolioURL *string `json:"portfolio_url"`

	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLogin      *time.Time `json:"last_login"`
	IsActive       bool       `json:"is_active"`
	EmailConfirmed bool       `json:"email_confirmed"`
}

// ProfileStatsResponse is the profile plus its aggregated activity.
type ProfileStatsResponse struct {
	ProfileResponse

	TotalCourses           int    `json:"total_courses"`
	CompletedCourses       int    `json:"completed_courses"`
	TotalHours             int    `json:"total_hours"`
	HackathonsParticipated int    `json:"hackathons_participated"`
	HackathonsWon          int    `json:"hackathons_won"`
	BadgesEarned           int    `json:"badges_earned"`
	SkillLevel             string `json:"skill_level"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:       p.ID,
		Email:    p.Email,
		Name:     p.Name,
		Role:     string(p.Role),
		UserType: string(p.UserType),

		AvatarURL:    p.AvatarURL,
		Bio:          p.Bio,
		Institution:  p.Institution,
		Location:     p.Location,
		LinkedInURL:  p.LinkedInURL,
		GitHubURL:    p.GitHubURL,
		PortfolioURL: p.PortfolioURL,

		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		LastLogin:      p.LastLogin,
		IsActive:       p.IsActive,
		EmailConfirmed: p.EmailConfirmed,
	}
}

func NewProfileStatsResponse(p profile.Profile, s profile.Stats) ProfileStatsResponse {
	return ProfileStatsResponse{
		ProfileResponse: NewProfileResponse(p),

		TotalCourses:           s.TotalCourses,
		CompletedCourses:       s.CompletedCourses,
		TotalHours:             s.TotalHours,
		HackathonsParticipated: s.HackathonsParticipated,
		HackathonsWon:          s.HackathonsWon,
		BadgesEarned:           s.BadgesEarned,
		SkillLevel:             s.SkillLevel(),
	}
}

func NewProfileListResponse(list []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
