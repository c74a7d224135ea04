package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error)
	ListByUser(ctx context.Context, userID string) ([]models.UserApplication, error)
	ListForReview(ctx context.Context) ([]models.ReviewItem, error)
	ExistsForUserBadge(ctx context.Context, userID, badgeID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewedBy, feedback *string) (*models.Application, error)
}

type applicationBadgeReader interface {
	FindByID(ctx context.Context, id string) (*models.Badge, error)
}

// ApplicationService manages the badge application lifecycle.
type ApplicationService struct {
	repo      applicationRepository
	badges    applicationBadgeReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(repo applicationRepository, badges applicationBadgeReader, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{repo: repo, badges: badges, validator: validate, logger: logger}
}

// Create starts a new application in the in_progress state. A user may hold
// multiple applications for the same badge; repeats are logged, not rejected.
func (s *ApplicationService) Create(ctx context.Context, req dto.CreateApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	if _, err := s.badges.FindByID(ctx, req.BadgeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}

	exists, err := s.repo.ExistsForUserBadge(ctx, req.UserID, req.BadgeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing applications")
	}
	if exists {
		s.logger.Warn("duplicate badge application",
			zap.String("user_id", req.UserID),
			zap.String("badge_id", req.BadgeID))
	}

	app := &models.Application{
		UserID:  req.UserID,
		BadgeID: req.BadgeID,
		Status:  models.StatusInProgress,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}
	return app, nil
}

// GetDetail returns an application with its badge, applicant and evidence.
func (s *ApplicationService) GetDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return detail, nil
}

// ListByUser returns all of a user's applications, newest first.
func (s *ApplicationService) ListByUser(ctx context.Context, userID string) ([]models.UserApplication, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, nil
}

// ListForReview returns the teacher review queue of submitted applications.
func (s *ApplicationService) ListForReview(ctx context.Context) ([]models.ReviewItem, error) {
	items, err := s.repo.ListForReview(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list review queue")
	}
	return items, nil
}

// UpdateStatus transitions an application to a new status. Any valid status
// value is accepted, backward moves included.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown application status")
	}

	app, err := s.repo.UpdateStatus(ctx, id, status, req.ReviewedBy, req.Feedback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
	}
	return app, nil
}
