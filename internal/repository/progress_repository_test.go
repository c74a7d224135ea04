package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

func TestProgressRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM badge_applications WHERE user_id = .+ AND status = ").
		WithArgs("u1", models.StatusEarned).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	earned, err := repo.CountEarned(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, earned)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM badge_applications WHERE user_id = .+ AND status IN ").
		WithArgs("u1", models.StatusInProgress, models.StatusSubmitted, models.StatusInReview).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	active, err := repo.CountActive(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, active)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM badges WHERE is_active = true").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.CountActiveBadges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestProgressRepositoryProfileBreakdowns(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectQuery("SELECT b.graduate_profile, COUNT\\(\\*\\) AS count").
		WithArgs("u1", models.StatusEarned).
		WillReturnRows(sqlmock.NewRows([]string{"graduate_profile", "count"}).
			AddRow("excellence", 2).
			AddRow("hauora", 1))

	earned, err := repo.EarnedByProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, earned, 2)
	assert.Equal(t, models.ProfileExcellence, earned[0].Profile)

	mock.ExpectQuery("SELECT graduate_profile, COUNT\\(\\*\\) AS count").
		WillReturnRows(sqlmock.NewRows([]string{"graduate_profile", "count"}).
			AddRow("excellence", 4))

	totals, err := repo.ActiveBadgesByProfile(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 4, totals[0].Count)
}
