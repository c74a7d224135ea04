package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

// ProgressRepository runs the read-only aggregation queries backing user
// stats and per-profile progress. It holds no state of its own.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs a ProgressRepository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CountEarned returns how many applications the user has in the earned state.
func (r *ProgressRepository) CountEarned(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM badge_applications WHERE user_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, models.StatusEarned); err != nil {
		return 0, fmt.Errorf("count earned applications: %w", err)
	}
	return count, nil
}

// CountActive returns how many applications the user has in any active state.
func (r *ProgressRepository) CountActive(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM badge_applications WHERE user_id = $1 AND status IN ($2, $3, $4)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID,
		models.StatusInProgress, models.StatusSubmitted, models.StatusInReview); err != nil {
		return 0, fmt.Errorf("count active applications: %w", err)
	}
	return count, nil
}

// CountActiveBadges returns the number of active badge definitions.
func (r *ProgressRepository) CountActiveBadges(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM badges WHERE is_active = true`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active badges: %w", err)
	}
	return count, nil
}

// ProfileCount pairs a graduate profile with a row count.
type ProfileCount struct {
	Profile models.GraduateProfile `db:"graduate_profile"`
	Count   int                    `db:"count"`
}

// EarnedByProfile returns the user's earned-application count per graduate
// profile. Profiles without earned badges are absent from the result.
func (r *ProgressRepository) EarnedByProfile(ctx context.Context, userID string) ([]ProfileCount, error) {
	const query = `SELECT b.graduate_profile, COUNT(*) AS count
        FROM badge_applications a
        JOIN badges b ON b.id = a.badge_id
        WHERE a.user_id = $1 AND a.status = $2
        GROUP BY b.graduate_profile`
	var counts []ProfileCount
	if err := r.db.SelectContext(ctx, &counts, query, userID, models.StatusEarned); err != nil {
		return nil, fmt.Errorf("count earned by profile: %w", err)
	}
	return counts, nil
}

// ActiveBadgesByProfile returns the active badge-definition count per profile.
func (r *ProgressRepository) ActiveBadgesByProfile(ctx context.Context) ([]ProfileCount, error) {
	const query = `SELECT graduate_profile, COUNT(*) AS count
        FROM badges WHERE is_active = true
        GROUP BY graduate_profile`
	var counts []ProfileCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count badges by profile: %w", err)
	}
	return counts, nil
}
