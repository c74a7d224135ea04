package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

// EvidenceRepository manages persistence for evidence records.
type EvidenceRepository struct {
	db *sqlx.DB
}

// NewEvidenceRepository constructs an EvidenceRepository.
func NewEvidenceRepository(db *sqlx.DB) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

const evidenceColumns = `id, application_id, type, title, description, content, file_url, metadata, created_at`

// ListByApplication returns evidence for an application, newest first.
func (r *EvidenceRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.Evidence, error) {
	query := fmt.Sprintf(`SELECT %s FROM evidence WHERE application_id = $1 ORDER BY created_at DESC`, evidenceColumns)
	var items []models.Evidence
	if err := r.db.SelectContext(ctx, &items, query, applicationID); err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return items, nil
}

// FindByID fetches a single evidence record.
func (r *EvidenceRepository) FindByID(ctx context.Context, id string) (*models.Evidence, error) {
	query := fmt.Sprintf(`SELECT %s FROM evidence WHERE id = $1`, evidenceColumns)
	var item models.Evidence
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new evidence record.
func (r *EvidenceRepository) Create(ctx context.Context, evidence *models.Evidence) error {
	if evidence.ID == "" {
		evidence.ID = uuid.NewString()
	}
	if evidence.CreatedAt.IsZero() {
		evidence.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO evidence (id, application_id, type, title, description, content, file_url, metadata, created_at)
        VALUES (:id, :application_id, :type, :title, :description, :content, :file_url, :metadata, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evidence); err != nil {
		return fmt.Errorf("create evidence: %w", err)
	}
	return nil
}

// Delete removes an evidence record, reporting whether a row existed.
func (r *EvidenceRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM evidence WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete evidence: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete evidence: %w", err)
	}
	return affected > 0, nil
}
