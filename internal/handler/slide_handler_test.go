package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	"github.com/kahu-edu/badge-portfolio-api/pkg/export"
	"github.com/kahu-edu/badge-portfolio-api/pkg/response"
	"github.com/kahu-edu/badge-portfolio-api/pkg/storage"
)

func newSlideHandler(t *testing.T, badges *badgeRepoStub) *SlideHandler {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewShareSigner("share-secret", time.Hour)
	cfg := service.SlideConfig{BaseURL: "http://localhost:8080", APIPrefix: "/api"}
	svc := service.NewSlideService(badges, store, export.NewPDFRenderer(), signer, cfg, nil, nil)
	return NewSlideHandler(svc, service.NewMetricsService())
}

func TestSlideHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	badges := &badgeRepoStub{badges: map[string]models.Badge{testBadgeID: catalogBadge()}}
	handler := newSlideHandler(t, badges)

	payload, _ := json.Marshal(dto.GenerateSlidesRequest{
		BadgeID:     testBadgeID,
		Reflections: map[string]string{"learning": "I learned about kaitiakitanga."},
	})
	c, w := newGinContext(http.MethodPost, "/slides/generate", payload)
	handler.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	// title, criteria, one reflection, summary
	require.Equal(t, float64(4), data["slide_count"])
}

func TestSlideHandlerGenerateUnknownBadge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlideHandler(t, &badgeRepoStub{})

	payload, _ := json.Marshal(dto.GenerateSlidesRequest{BadgeID: testBadgeID})
	c, w := newGinContext(http.MethodPost, "/slides/generate", payload)
	handler.Generate(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSlideHandlerDownloadMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlideHandler(t, &badgeRepoStub{})

	c, w := newGinContext(http.MethodGet, "/slides/download/badge-x-1.pptx", nil)
	c.Params = gin.Params{{Key: "filename", Value: "badge-x-1.pptx"}}
	handler.Download(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSlideHandlerView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	badges := &badgeRepoStub{badges: map[string]models.Badge{testBadgeID: catalogBadge()}}
	handler := newSlideHandler(t, badges)

	c, w := newGinContext(http.MethodGet, "/slides/view/"+testBadgeID, nil)
	c.Params = gin.Params{{Key: "badgeId", Value: testBadgeID}}
	handler.View(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Kaitiakitanga")
}

func TestSlideHandlerViewUnknownBadge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlideHandler(t, &badgeRepoStub{})

	c, w := newGinContext(http.MethodGet, "/slides/view/missing", nil)
	c.Params = gin.Params{{Key: "badgeId", Value: "missing"}}
	handler.View(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestSlideHandlerShareWithoutDeck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	badges := &badgeRepoStub{badges: map[string]models.Badge{testBadgeID: catalogBadge()}}
	handler := newSlideHandler(t, badges)

	c, w := newGinContext(http.MethodGet, "/slides/share/"+testBadgeID, nil)
	c.Params = gin.Params{{Key: "badgeId", Value: testBadgeID}}
	handler.Share(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
