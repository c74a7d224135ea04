package service

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
)

type mockEvidenceRepo struct {
	items map[string]models.Evidence
}

func (m *mockEvidenceRepo) ListByApplication(ctx context.Context, applicationID string) ([]models.Evidence, error) {
	list := make([]models.Evidence, 0)
	for _, e := range m.items {
		if e.ApplicationID == applicationID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockEvidenceRepo) FindByID(ctx context.Context, id string) (*models.Evidence, error) {
	if e, ok := m.items[id]; ok {
		item := e
		return &item, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvidenceRepo) Create(ctx context.Context, evidence *models.Evidence) error {
	if m.items == nil {
		m.items = make(map[string]models.Evidence)
	}
	if evidence.ID == "" {
		evidence.ID = "generated"
	}
	m.items[evidence.ID] = *evidence
	return nil
}

func (m *mockEvidenceRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type mockFileStore struct {
	saved   map[string][]byte
	deleted []string
}

func (m *mockFileStore) SaveStream(filename string, r io.Reader) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[filename] = data
	return filename, nil
}

func (m *mockFileStore) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	delete(m.saved, filename)
	return nil
}

const testApplicationID = "6f1a2d34-0000-4000-8000-000000000003"

func newEvidenceService(repo *mockEvidenceRepo, store *mockFileStore) *EvidenceService {
	apps := &mockApplicationRepo{applications: map[string]models.Application{
		testApplicationID: {ID: testApplicationID, UserID: testUserID, BadgeID: testBadgeID, Status: models.StatusInProgress},
	}}
	policy := UploadPolicy{MaxFileSizeBytes: 1024, AllowedExtensions: []string{"jpg", "pdf", "txt"}}
	return NewEvidenceService(repo, apps, store, policy, validator.New(), zap.NewNop())
}

func TestEvidenceServiceCreateWritten(t *testing.T) {
	repo := &mockEvidenceRepo{}
	svc := newEvidenceService(repo, &mockFileStore{})

	evidence, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: testApplicationID,
		EvidenceType:  "written_reflection",
		Title:         "My reflection",
		Content:       "I learned a lot about native planting.",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, evidence.Content)
	assert.Nil(t, evidence.FileURL)
	assert.Len(t, repo.items, 1)
}

func TestEvidenceServiceCreateUpload(t *testing.T) {
	repo := &mockEvidenceRepo{}
	store := &mockFileStore{}
	svc := newEvidenceService(repo, store)

	upload := &Upload{
		Filename: "photo.JPG",
		Size:     12,
		MimeType: "image/jpeg",
		Reader:   strings.NewReader("fake content"),
	}
	evidence, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: testApplicationID,
		EvidenceType:  "file_upload",
		Title:         "Planting day photo",
	}, upload)
	require.NoError(t, err)
	require.NotNil(t, evidence.FileURL)
	assert.True(t, strings.HasPrefix(*evidence.FileURL, "/uploads/"))
	assert.NotContains(t, *evidence.FileURL, "photo")
	require.NotNil(t, evidence.Metadata)
	assert.Equal(t, "photo.JPG", evidence.Metadata.OriginalName)
	assert.Len(t, store.saved, 1)
}

func TestEvidenceServiceCreateUploadTooLarge(t *testing.T) {
	repo := &mockEvidenceRepo{}
	store := &mockFileStore{}
	svc := newEvidenceService(repo, store)

	upload := &Upload{Filename: "clip.mp4", Size: 2048, Reader: strings.NewReader("x")}
	_, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: testApplicationID,
		EvidenceType:  "video_submission",
		Title:         "My video",
	}, upload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileTooLarge.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.items)
}

func TestEvidenceServiceCreateUploadBadExtension(t *testing.T) {
	repo := &mockEvidenceRepo{}
	store := &mockFileStore{}
	svc := newEvidenceService(repo, store)

	upload := &Upload{Filename: "malware.exe", Size: 10, Reader: strings.NewReader("x")}
	_, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: testApplicationID,
		EvidenceType:  "file_upload",
		Title:         "Suspicious",
	}, upload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestEvidenceServiceCreateUnknownApplication(t *testing.T) {
	svc := newEvidenceService(&mockEvidenceRepo{}, &mockFileStore{})

	_, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: "6f1a2d34-0000-4000-8000-00000000dead",
		EvidenceType:  "project_link",
		Title:         "My project",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEvidenceServiceCreateRejectsUnknownType(t *testing.T) {
	svc := newEvidenceService(&mockEvidenceRepo{}, &mockFileStore{})

	_, err := svc.Create(context.Background(), dto.CreateEvidenceRequest{
		ApplicationID: testApplicationID,
		EvidenceType:  "interpretive_dance",
		Title:         "Dance",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEvidenceServiceDeleteRemovesFile(t *testing.T) {
	fileURL := "/uploads/abc123"
	repo := &mockEvidenceRepo{items: map[string]models.Evidence{
		"e1": {ID: "e1", ApplicationID: testApplicationID, Type: models.EvidenceFileUpload, FileURL: &fileURL},
	}}
	store := &mockFileStore{saved: map[string][]byte{"abc123": []byte("data")}}
	svc := newEvidenceService(repo, store)

	require.NoError(t, svc.Delete(context.Background(), "e1"))
	assert.Empty(t, repo.items)
	assert.Contains(t, store.deleted, "abc123")
}

func TestEvidenceServiceDeleteNotFound(t *testing.T) {
	svc := newEvidenceService(&mockEvidenceRepo{}, &mockFileStore{})

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
