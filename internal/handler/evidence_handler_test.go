package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
)

type evidenceRepoStub struct {
	items map[string]models.Evidence
}

func (m *evidenceRepoStub) ListByApplication(ctx context.Context, applicationID string) ([]models.Evidence, error) {
	list := make([]models.Evidence, 0)
	for _, e := range m.items {
		if e.ApplicationID == applicationID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *evidenceRepoStub) FindByID(ctx context.Context, id string) (*models.Evidence, error) {
	if e, ok := m.items[id]; ok {
		item := e
		return &item, nil
	}
	return nil, sql.ErrNoRows
}

func (m *evidenceRepoStub) Create(ctx context.Context, evidence *models.Evidence) error {
	if m.items == nil {
		m.items = make(map[string]models.Evidence)
	}
	if evidence.ID == "" {
		evidence.ID = "generated"
	}
	m.items[evidence.ID] = *evidence
	return nil
}

func (m *evidenceRepoStub) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type fileStoreStub struct {
	saved map[string][]byte
}

func (m *fileStoreStub) SaveStream(filename string, r io.Reader) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	data, _ := io.ReadAll(r)
	m.saved[filename] = data
	return filename, nil
}

func (m *fileStoreStub) Delete(filename string) error {
	delete(m.saved, filename)
	return nil
}

func newEvidenceHandler(repo *evidenceRepoStub, store *fileStoreStub) *EvidenceHandler {
	apps := &applicationRepoStub{applications: map[string]models.Application{
		testAppID: {ID: testAppID, UserID: testUserID, BadgeID: testBadgeID, Status: models.StatusInProgress},
	}}
	policy := service.UploadPolicy{MaxFileSizeBytes: 1024, AllowedExtensions: []string{"jpg", "txt"}}
	svc := service.NewEvidenceService(repo, apps, store, policy, nil, nil)
	return NewEvidenceHandler(svc, service.NewMetricsService())
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestEvidenceHandlerCreateMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &evidenceRepoStub{}
	store := &fileStoreStub{}
	handler := newEvidenceHandler(repo, store)

	body, contentType := multipartBody(t, map[string]string{
		"applicationId": testAppID,
		"evidenceType":  "file_upload",
		"title":         "Planting day photo",
	}, "file", "photo.jpg", []byte("image-bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/evidence", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.items, 1)
	require.Len(t, store.saved, 1)
}

func TestEvidenceHandlerCreateRejectsOversizeUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fileStoreStub{}
	handler := newEvidenceHandler(&evidenceRepoStub{}, store)

	body, contentType := multipartBody(t, map[string]string{
		"applicationId": testAppID,
		"evidenceType":  "file_upload",
		"title":         "Huge file",
	}, "file", "big.jpg", bytes.Repeat([]byte("x"), 2048))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/evidence", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Empty(t, store.saved)
}

func TestEvidenceHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &evidenceRepoStub{items: map[string]models.Evidence{
		"e1": {ID: "e1", ApplicationID: testAppID, Type: models.EvidenceWrittenReflection},
	}}
	handler := newEvidenceHandler(repo, &fileStoreStub{})

	c, w := newGinContext(http.MethodDelete, "/evidence/e1", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, repo.items)
}

func TestEvidenceHandlerListByApplication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &evidenceRepoStub{items: map[string]models.Evidence{
		"e1": {ID: "e1", ApplicationID: testAppID, Type: models.EvidenceWrittenReflection, Title: "My reflection"},
	}}
	handler := newEvidenceHandler(repo, &fileStoreStub{})

	c, w := newGinContext(http.MethodGet, "/applications/"+testAppID+"/evidence", nil)
	c.Params = gin.Params{{Key: "id", Value: testAppID}}
	handler.ListByApplication(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "My reflection")
}
