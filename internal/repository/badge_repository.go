package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

// BadgeRepository manages persistence for badge definitions.
type BadgeRepository struct {
	db *sqlx.DB
}

// NewBadgeRepository constructs a BadgeRepository.
func NewBadgeRepository(db *sqlx.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

const badgeColumns = `id, name, description, criteria, graduate_profile, level, required_evidence_count, is_active, created_at`

// ListActive returns active badges, optionally filtered by graduate profile.
// The catalog orders by profile and level so the client can group rows.
func (r *BadgeRepository) ListActive(ctx context.Context, profile *models.GraduateProfile) ([]models.Badge, error) {
	var badges []models.Badge
	if profile != nil {
		query := fmt.Sprintf(`SELECT %s FROM badges WHERE is_active = true AND graduate_profile = $1 ORDER BY level`, badgeColumns)
		if err := r.db.SelectContext(ctx, &badges, query, *profile); err != nil {
			return nil, fmt.Errorf("list badges by profile: %w", err)
		}
		return badges, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM badges WHERE is_active = true ORDER BY graduate_profile, level`, badgeColumns)
	if err := r.db.SelectContext(ctx, &badges, query); err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return badges, nil
}

// FindByID fetches a badge by ID regardless of active state.
func (r *BadgeRepository) FindByID(ctx context.Context, id string) (*models.Badge, error) {
	query := fmt.Sprintf(`SELECT %s FROM badges WHERE id = $1`, badgeColumns)
	var badge models.Badge
	if err := r.db.GetContext(ctx, &badge, query, id); err != nil {
		return nil, err
	}
	return &badge, nil
}

// Create inserts a new badge definition.
func (r *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}
	if badge.CreatedAt.IsZero() {
		badge.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO badges (id, name, description, criteria, graduate_profile, level, required_evidence_count, is_active, created_at)
        VALUES (:id, :name, :description, :criteria, :graduate_profile, :level, :required_evidence_count, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, badge); err != nil {
		return fmt.Errorf("create badge: %w", err)
	}
	return nil
}

// Update overwrites an existing badge definition.
func (r *BadgeRepository) Update(ctx context.Context, badge *models.Badge) error {
	const query = `UPDATE badges SET name = :name, description = :description, criteria = :criteria,
        graduate_profile = :graduate_profile, level = :level, required_evidence_count = :required_evidence_count,
        is_active = :is_active WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, badge); err != nil {
		return fmt.Errorf("update badge: %w", err)
	}
	return nil
}
