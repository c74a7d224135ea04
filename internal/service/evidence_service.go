package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
	"github.com/kahu-edu/badge-portfolio-api/pkg/storage"
)

type evidenceRepository interface {
	ListByApplication(ctx context.Context, applicationID string) ([]models.Evidence, error)
	FindByID(ctx context.Context, id string) (*models.Evidence, error)
	Create(ctx context.Context, evidence *models.Evidence) error
	Delete(ctx context.Context, id string) (bool, error)
}

type evidenceApplicationReader interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
}

type evidenceStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// UploadPolicy bounds what file uploads are accepted.
type UploadPolicy struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// Upload describes an incoming evidence file.
type Upload struct {
	Filename string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// EvidenceService manages evidence submission and removal.
type EvidenceService struct {
	repo         evidenceRepository
	applications evidenceApplicationReader
	store        evidenceStore
	policy       UploadPolicy
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewEvidenceService constructs an EvidenceService.
func NewEvidenceService(repo evidenceRepository, applications evidenceApplicationReader, store evidenceStore, policy UploadPolicy, validate *validator.Validate, logger *zap.Logger) *EvidenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.MaxFileSizeBytes <= 0 {
		policy.MaxFileSizeBytes = 10 << 20
	}
	return &EvidenceService{
		repo:         repo,
		applications: applications,
		store:        store,
		policy:       policy,
		validator:    validate,
		logger:       logger,
	}
}

// Create records a piece of evidence. When an upload is present it is
// validated before any disk or database write happens.
func (s *EvidenceService) Create(ctx context.Context, req dto.CreateEvidenceRequest, upload *Upload) (*models.Evidence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evidence payload")
	}
	evidenceType := models.EvidenceType(req.EvidenceType)
	if !evidenceType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown evidence type")
	}

	if _, err := s.applications.FindByID(ctx, req.ApplicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	evidence := &models.Evidence{
		ApplicationID: req.ApplicationID,
		Type:          evidenceType,
		Title:         req.Title,
		Description:   req.Description,
	}
	if req.Content != "" {
		content := req.Content
		evidence.Content = &content
	}
	if req.FileURL != "" {
		fileURL := req.FileURL
		evidence.FileURL = &fileURL
	}

	var storedName string
	if upload != nil {
		if err := s.checkUpload(upload); err != nil {
			return nil, err
		}
		name, err := s.store.SaveStream(storage.RandomName(), upload.Reader)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
		}
		storedName = name
		fileURL := "/uploads/" + name
		evidence.FileURL = &fileURL
		evidence.Metadata = &models.EvidenceMetadata{
			OriginalName: upload.Filename,
			Size:         upload.Size,
			MimeType:     upload.MimeType,
		}
	}

	if err := s.repo.Create(ctx, evidence); err != nil {
		if storedName != "" {
			if cleanupErr := s.store.Delete(storedName); cleanupErr != nil {
				s.logger.Warn("orphaned upload cleanup failed",
					zap.String("file", storedName), zap.Error(cleanupErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create evidence")
	}
	return evidence, nil
}

// ListByApplication returns evidence for one application, newest first.
func (s *EvidenceService) ListByApplication(ctx context.Context, applicationID string) ([]models.Evidence, error) {
	items, err := s.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evidence")
	}
	return items, nil
}

// Delete removes an evidence record and its stored file, if any.
func (s *EvidenceService) Delete(ctx context.Context, id string) error {
	evidence, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "evidence not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evidence")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evidence")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "evidence not found")
	}

	if evidence.FileURL != nil {
		if name, ok := strings.CutPrefix(*evidence.FileURL, "/uploads/"); ok {
			if err := s.store.Delete(name); err != nil {
				s.logger.Warn("stored file cleanup failed",
					zap.String("file", name), zap.Error(err))
			}
		}
	}
	return nil
}

func (s *EvidenceService) checkUpload(upload *Upload) error {
	if upload.Size > s.policy.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.policy.MaxFileSizeBytes))
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(upload.Filename)), ".")
	for _, allowed := range s.policy.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrUnsupportedFile,
		fmt.Sprintf("file type %q is not allowed", ext))
}
