package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/repository"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
)

type progressRepository interface {
	CountEarned(ctx context.Context, userID string) (int, error)
	CountActive(ctx context.Context, userID string) (int, error)
	CountActiveBadges(ctx context.Context) (int, error)
	EarnedByProfile(ctx context.Context, userID string) ([]repository.ProfileCount, error)
	ActiveBadgesByProfile(ctx context.Context) ([]repository.ProfileCount, error)
}

// ProgressService computes per-user badge statistics. Results are always
// computed fresh from the database, never cached.
type ProgressService struct {
	repo   progressRepository
	logger *zap.Logger
}

// NewProgressService constructs a ProgressService.
func NewProgressService(repo progressRepository, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{repo: repo, logger: logger}
}

// Stats returns the user's headline numbers. CompletionRate counts earned
// applications against the active badge catalog and is not clamped; a user
// with repeat earns can exceed 100.
func (s *ProgressService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	earned, err := s.repo.CountEarned(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count earned badges")
	}
	active, err := s.repo.CountActive(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active applications")
	}
	total, err := s.repo.CountActiveBadges(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count badges")
	}

	return &models.UserStats{
		EarnedBadges:   earned,
		InProgress:     active,
		TotalBadges:    total,
		CompletionRate: ratePercent(earned, total),
	}, nil
}

// ProfileProgress returns one row for every graduate profile in canonical
// order, zero-filled for profiles with no badges or earns.
func (s *ProgressService) ProfileProgress(ctx context.Context, userID string) ([]models.ProfileProgress, error) {
	earned, err := s.repo.EarnedByProfile(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count earned by profile")
	}
	totals, err := s.repo.ActiveBadgesByProfile(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count badges by profile")
	}

	earnedBy := make(map[models.GraduateProfile]int, len(earned))
	for _, c := range earned {
		earnedBy[c.Profile] = c.Count
	}
	totalBy := make(map[models.GraduateProfile]int, len(totals))
	for _, c := range totals {
		totalBy[c.Profile] = c.Count
	}

	progress := make([]models.ProfileProgress, 0, len(models.GraduateProfiles))
	for _, profile := range models.GraduateProfiles {
		e := earnedBy[profile]
		t := totalBy[profile]
		progress = append(progress, models.ProfileProgress{
			Profile:     profile,
			EarnedCount: e,
			TotalCount:  t,
			Percentage:  ratePercent(e, t),
		})
	}
	return progress, nil
}

func ratePercent(earned, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(earned) / float64(total) * 100))
}
