package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
)

type badgeRepository interface {
	ListActive(ctx context.Context, profile *models.GraduateProfile) ([]models.Badge, error)
	FindByID(ctx context.Context, id string) (*models.Badge, error)
	Create(ctx context.Context, badge *models.Badge) error
	Update(ctx context.Context, badge *models.Badge) error
}

// BadgeCacheConfig controls the optional catalog cache.
type BadgeCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// BadgeService serves the badge catalog.
type BadgeService struct {
	repo      badgeRepository
	cache     *redis.Client
	cacheCfg  BadgeCacheConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBadgeService constructs a BadgeService. The cache client may be nil.
func NewBadgeService(repo badgeRepository, cache *redis.Client, cacheCfg BadgeCacheConfig, validate *validator.Validate, logger *zap.Logger) *BadgeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheCfg.TTL <= 0 {
		cacheCfg.TTL = 5 * time.Minute
	}
	return &BadgeService{repo: repo, cache: cache, cacheCfg: cacheCfg, validator: validate, logger: logger}
}

// List returns active badges, optionally filtered to one graduate profile.
func (s *BadgeService) List(ctx context.Context, profile string) ([]models.Badge, error) {
	var filter *models.GraduateProfile
	if profile != "" {
		p := models.GraduateProfile(profile)
		if !p.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown graduate profile")
		}
		filter = &p
	}

	if cached, ok := s.fromCache(ctx, filter); ok {
		return cached, nil
	}

	badges, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list badges")
	}

	s.storeCache(ctx, filter, badges)
	return badges, nil
}

// Get returns a single badge by ID.
func (s *BadgeService) Get(ctx context.Context, id string) (*models.Badge, error) {
	badge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}
	return badge, nil
}

// Create stores a new badge and invalidates the catalog cache.
func (s *BadgeService) Create(ctx context.Context, req dto.CreateBadgeRequest) (*models.Badge, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid badge payload")
	}
	profile := models.GraduateProfile(req.GraduateProfile)
	if !profile.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown graduate profile")
	}

	badge := &models.Badge{
		Name:                  req.Name,
		Description:           req.Description,
		GraduateProfile:       profile,
		Criteria:              req.Criteria,
		Level:                 req.Level,
		RequiredEvidenceCount: req.RequiredEvidenceCount,
		IsActive:              true,
	}
	if badge.Level <= 0 {
		badge.Level = 1
	}
	if badge.RequiredEvidenceCount <= 0 {
		badge.RequiredEvidenceCount = 1
	}

	if err := s.repo.Create(ctx, badge); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create badge")
	}
	s.invalidateCache(ctx)
	return badge, nil
}

// Update applies changes to an existing badge and invalidates the cache.
func (s *BadgeService) Update(ctx context.Context, id string, req dto.UpdateBadgeRequest) (*models.Badge, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid badge payload")
	}

	badge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}

	if req.Name != nil {
		badge.Name = *req.Name
	}
	if req.Description != nil {
		badge.Description = *req.Description
	}
	if req.Criteria != nil {
		badge.Criteria = *req.Criteria
	}
	if req.GraduateProfile != nil {
		profile := models.GraduateProfile(*req.GraduateProfile)
		if !profile.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown graduate profile")
		}
		badge.GraduateProfile = profile
	}
	if req.Level != nil {
		badge.Level = *req.Level
	}
	if req.RequiredEvidenceCount != nil {
		badge.RequiredEvidenceCount = *req.RequiredEvidenceCount
	}
	if req.IsActive != nil {
		badge.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, badge); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update badge")
	}
	s.invalidateCache(ctx)
	return badge, nil
}

func (s *BadgeService) cacheKey(filter *models.GraduateProfile) string {
	if filter == nil {
		return "badges:catalog:all"
	}
	return fmt.Sprintf("badges:catalog:%s", *filter)
}

func (s *BadgeService) fromCache(ctx context.Context, filter *models.GraduateProfile) ([]models.Badge, bool) {
	if !s.cacheCfg.Enabled || s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(filter)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("badge cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var badges []models.Badge
	if err := json.Unmarshal(raw, &badges); err != nil {
		s.logger.Warn("badge cache decode failed", zap.Error(err))
		return nil, false
	}
	return badges, true
}

func (s *BadgeService) storeCache(ctx context.Context, filter *models.GraduateProfile, badges []models.Badge) {
	if !s.cacheCfg.Enabled || s.cache == nil {
		return
	}
	raw, err := json.Marshal(badges)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(filter), raw, s.cacheCfg.TTL).Err(); err != nil {
		s.logger.Warn("badge cache write failed", zap.Error(err))
	}
}

func (s *BadgeService) invalidateCache(ctx context.Context) {
	if !s.cacheCfg.Enabled || s.cache == nil {
		return
	}
	keys := []string{s.cacheKey(nil)}
	for _, p := range models.GraduateProfiles {
		profile := p
		keys = append(keys, s.cacheKey(&profile))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("badge cache invalidation failed", zap.Error(err))
	}
}
