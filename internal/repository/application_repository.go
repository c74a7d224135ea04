package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

// ApplicationRepository manages persistence for badge applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.user_id, a.badge_id, a.status, a.submitted_at, a.reviewed_at, a.reviewed_by, a.feedback, a.created_at`

const badgeJoinColumns = `b.id AS b_id, b.name AS b_name, b.description AS b_description, b.criteria AS b_criteria,
        b.graduate_profile AS b_graduate_profile, b.level AS b_level, b.required_evidence_count AS b_required_evidence_count,
        b.is_active AS b_is_active, b.created_at AS b_created_at`

const userJoinColumns = `u.id AS u_id, u.username AS u_username, u.email AS u_email,
        u.first_name AS u_first_name, u.last_name AS u_last_name, u.role AS u_role`

// BadgeRow scans aliased badge columns from joined queries.
type BadgeRow struct {
	ID                    string                 `db:"b_id"`
	Name                  string                 `db:"b_name"`
	Description           string                 `db:"b_description"`
	Criteria              string                 `db:"b_criteria"`
	GraduateProfile       models.GraduateProfile `db:"b_graduate_profile"`
	Level                 int                    `db:"b_level"`
	RequiredEvidenceCount int                    `db:"b_required_evidence_count"`
	IsActive              bool                   `db:"b_is_active"`
	CreatedAt             time.Time              `db:"b_created_at"`
}

func (r BadgeRow) toBadge() models.Badge {
	return models.Badge{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		Criteria:              r.Criteria,
		GraduateProfile:       r.GraduateProfile,
		Level:                 r.Level,
		RequiredEvidenceCount: r.RequiredEvidenceCount,
		IsActive:              r.IsActive,
		CreatedAt:             r.CreatedAt,
	}
}

// UserRow scans aliased user columns from joined queries.
type UserRow struct {
	ID        string          `db:"u_id"`
	Username  string          `db:"u_username"`
	Email     string          `db:"u_email"`
	FirstName string          `db:"u_first_name"`
	LastName  string          `db:"u_last_name"`
	Role      models.UserRole `db:"u_role"`
}

func (r UserRow) toInfo() models.UserInfo {
	return models.UserInfo{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
	}
}

// Create inserts a new application.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO badge_applications (id, user_id, badge_id, status, created_at)
        VALUES (:id, :user_id, :badge_id, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByID fetches a bare application row.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM badge_applications a WHERE a.id = $1`, applicationColumns)
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, err
	}
	return &app, nil
}

// FindDetail fetches an application joined with its badge, user and evidence.
func (r *ApplicationRepository) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s
        FROM badge_applications a
        JOIN badges b ON b.id = a.badge_id
        JOIN users u ON u.id = a.user_id
        WHERE a.id = $1`, applicationColumns, badgeJoinColumns, userJoinColumns)

	var row struct {
		models.Application
		BadgeRow
		UserRow
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}

	evidence, err := r.evidenceFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	detail := &models.ApplicationDetail{
		Application: row.Application,
		Badge:       row.BadgeRow.toBadge(),
		User:        row.UserRow.toInfo(),
		Evidence:    evidence[id],
	}
	if detail.Evidence == nil {
		detail.Evidence = []models.Evidence{}
	}
	return detail, nil
}

// ListByUser returns a user's applications with badge context and evidence,
// newest first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]models.UserApplication, error) {
	query := fmt.Sprintf(`SELECT %s, %s
        FROM badge_applications a
        JOIN badges b ON b.id = a.badge_id
        WHERE a.user_id = $1
        ORDER BY a.created_at DESC`, applicationColumns, badgeJoinColumns)

	var rows []struct {
		models.Application
		BadgeRow
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list user applications: %w", err)
	}

	apps := make([]models.UserApplication, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, models.UserApplication{
			Application: row.Application,
			Badge:       row.BadgeRow.toBadge(),
			Evidence:    []models.Evidence{},
		})
		ids = append(ids, row.Application.ID)
	}

	if len(ids) > 0 {
		grouped, err := r.evidenceFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range apps {
			if ev, ok := grouped[apps[i].ID]; ok {
				apps[i].Evidence = ev
			}
		}
	}
	return apps, nil
}

// ListForReview returns submitted applications ordered by submission time,
// newest first.
func (r *ApplicationRepository) ListForReview(ctx context.Context) ([]models.ReviewItem, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s
        FROM badge_applications a
        JOIN badges b ON b.id = a.badge_id
        JOIN users u ON u.id = a.user_id
        WHERE a.status = $1
        ORDER BY a.submitted_at DESC`, applicationColumns, badgeJoinColumns, userJoinColumns)

	var rows []struct {
		models.Application
		BadgeRow
		UserRow
	}
	if err := r.db.SelectContext(ctx, &rows, query, models.StatusSubmitted); err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}

	items := make([]models.ReviewItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.ReviewItem{
			Application: row.Application,
			Badge:       row.BadgeRow.toBadge(),
			User:        row.UserRow.toInfo(),
		})
	}
	return items, nil
}

// ExistsForUserBadge reports whether the user already has an application for
// the badge. Duplicates are permitted; callers only use this for visibility.
func (r *ApplicationRepository) ExistsForUserBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	const query = `SELECT 1 FROM badge_applications WHERE user_id = $1 AND badge_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, badgeID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check existing application: %w", err)
	}
	return true, nil
}

// UpdateStatus transitions an application. Moving to submitted stamps the
// submission time; moving to a terminal state stamps review time, reviewer and
// feedback. No other transition has side effects.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewedBy, feedback *string) (*models.Application, error) {
	now := time.Now().UTC()

	query := `UPDATE badge_applications SET status = $1 WHERE id = $2`
	args := []interface{}{status, id}
	switch {
	case status == models.StatusSubmitted:
		query = `UPDATE badge_applications SET status = $1, submitted_at = $3 WHERE id = $2`
		args = append(args, now)
	case status.Terminal():
		query = `UPDATE badge_applications SET status = $1, reviewed_at = $3, reviewed_by = $4, feedback = $5 WHERE id = $2`
		args = append(args, now, reviewedBy, feedback)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *ApplicationRepository) evidenceFor(ctx context.Context, applicationIDs []string) (map[string][]models.Evidence, error) {
	query, args, err := sqlx.In(`SELECT id, application_id, type, title, description, content, file_url, metadata, created_at
        FROM evidence WHERE application_id IN (?) ORDER BY created_at DESC`, applicationIDs)
	if err != nil {
		return nil, fmt.Errorf("build evidence query: %w", err)
	}
	query = r.db.Rebind(query)

	var items []models.Evidence
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list application evidence: %w", err)
	}

	grouped := make(map[string][]models.Evidence, len(applicationIDs))
	for _, item := range items {
		grouped[item.ApplicationID] = append(grouped[item.ApplicationID], item)
	}
	return grouped, nil
}
