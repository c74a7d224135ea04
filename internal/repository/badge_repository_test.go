package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func badgeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "criteria", "graduate_profile", "level", "required_evidence_count", "is_active", "created_at"}).
		AddRow("b1", "Excellence 1 Junior", "desc", "Show curiosity...", "excellence", 1, 3, true, time.Now())
}

func TestBadgeRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBadgeRepository(db)

	mock.ExpectQuery("SELECT .+ FROM badges WHERE is_active = true ORDER BY graduate_profile, level").
		WillReturnRows(badgeRows())

	badges, err := repo.ListActive(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
	assert.Equal(t, models.ProfileExcellence, badges[0].GraduateProfile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadgeRepositoryListActiveByProfile(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBadgeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active = true AND graduate_profile = $1 ORDER BY level")).
		WithArgs(models.ProfileHauora).
		WillReturnRows(badgeRows())

	profile := models.ProfileHauora
	badges, err := repo.ListActive(context.Background(), &profile)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadgeRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBadgeRepository(db)

	mock.ExpectQuery("SELECT .+ FROM badges WHERE id = ").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBadgeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBadgeRepository(db)

	mock.ExpectExec("INSERT INTO badges").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	badge := &models.Badge{Name: "Innovation 2", GraduateProfile: models.ProfileInnovation, Level: 2, RequiredEvidenceCount: 3, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), badge))
	assert.NotEmpty(t, badge.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
