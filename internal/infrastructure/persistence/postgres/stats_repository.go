package postgres

import (
	"context"

	"medhasmind/internal/database"
	"medhasmind/internal/domain/profile"

	"github.com/google/uuid"
)

// StatsRepository computes profile statistics from the related collections
// instead of returning stand-in constants.
type StatsRepository struct {
	db database.DB
}

func NewStatsRepository(db database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Summary(ctx context.Context, id uuid.UUID) (profile.Stats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM enrollments WHERE user_id = $1),
			(SELECT COUNT(*) FROM enrollments WHERE user_id = $1 AND completed_at IS NOT NULL),
			(SELECT COALESCE(SUM(hours_spent), 0) FROM enrollments WHERE user_id = $1),
			(SELECT COUNT(*) FROM hackathon_participations WHERE user_id = $1),
			(SELECT COUNT(*) FROM hackathon_participations WHERE user_id = $1 AND placement = 1),
			(SELECT COUNT(*) FROM achievements WHERE user_id = $1)`,
		id,
	)

	var s profile.Stats
	if err := row.Scan(
		&s.TotalCourses,
		&s.CompletedCourses,
		&s.TotalHours,
		&s.HackathonsParticipated,
		&s.HackathonsWon,
		&s.BadgesEarned,
	); err != nil {
		return profile.Stats{}, err
	}
	return s, nil
}

var (
	_ profile.Repository      = (*ProfileRepository)(nil)
	_ profile.StatsRepository = (*StatsRepository)(nil)
)
