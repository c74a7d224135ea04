package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/repository"
)

type mockProgressRepo struct {
	earned      int
	active      int
	totalBadges int
	earnedRows  []repository.ProfileCount
	badgeRows   []repository.ProfileCount
}

func (m *mockProgressRepo) CountEarned(ctx context.Context, userID string) (int, error) {
	return m.earned, nil
}

func (m *mockProgressRepo) CountActive(ctx context.Context, userID string) (int, error) {
	return m.active, nil
}

func (m *mockProgressRepo) CountActiveBadges(ctx context.Context) (int, error) {
	return m.totalBadges, nil
}

func (m *mockProgressRepo) EarnedByProfile(ctx context.Context, userID string) ([]repository.ProfileCount, error) {
	return m.earnedRows, nil
}

func (m *mockProgressRepo) ActiveBadgesByProfile(ctx context.Context) ([]repository.ProfileCount, error) {
	return m.badgeRows, nil
}

func TestProgressServiceStats(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{earned: 2, active: 3, totalBadges: 12}, zap.NewNop())

	stats, err := svc.Stats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EarnedBadges)
	assert.Equal(t, 3, stats.InProgress)
	assert.Equal(t, 12, stats.TotalBadges)
	assert.Equal(t, 17, stats.CompletionRate)
}

func TestProgressServiceStatsEmptyCatalog(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{earned: 0, active: 0, totalBadges: 0}, zap.NewNop())

	stats, err := svc.Stats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletionRate)
}

func TestProgressServiceStatsUnclamped(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{earned: 5, active: 0, totalBadges: 4}, zap.NewNop())

	stats, err := svc.Stats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 125, stats.CompletionRate)
}

func TestProgressServiceStatsRounding(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{earned: 1, active: 0, totalBadges: 3}, zap.NewNop())

	stats, err := svc.Stats(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 33, stats.CompletionRate)
}

func TestProgressServiceProfileProgress(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{
		earnedRows: []repository.ProfileCount{
			{Profile: models.ProfileHauora, Count: 2},
		},
		badgeRows: []repository.ProfileCount{
			{Profile: models.ProfileHauora, Count: 4},
			{Profile: models.ProfileExcellence, Count: 3},
		},
	}, zap.NewNop())

	rows, err := svc.ProfileProgress(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, rows, len(models.GraduateProfiles))

	for i, profile := range models.GraduateProfiles {
		assert.Equal(t, profile, rows[i].Profile)
	}

	byProfile := make(map[models.GraduateProfile]models.ProfileProgress)
	for _, row := range rows {
		byProfile[row.Profile] = row
	}
	assert.Equal(t, 50, byProfile[models.ProfileHauora].Percentage)
	assert.Equal(t, 0, byProfile[models.ProfileExcellence].Percentage)
	assert.Equal(t, 0, byProfile[models.ProfileIntegrity].TotalCount)
}
