package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
	"github.com/kahu-edu/badge-portfolio-api/pkg/response"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// SlideHandler exposes deck generation and artifact endpoints.
type SlideHandler struct {
	slides  *service.SlideService
	metrics *service.MetricsService
}

// NewSlideHandler constructs SlideHandler.
func NewSlideHandler(slides *service.SlideService, metrics *service.MetricsService) *SlideHandler {
	return &SlideHandler{slides: slides, metrics: metrics}
}

// Generate godoc
// @Summary Generate a presentation deck for a badge
// @Tags Slides
// @Accept json
// @Produce json
// @Param payload body dto.GenerateSlidesRequest true "Deck inputs"
// @Success 200 {object} response.Envelope
// @Router /slides/generate [post]
func (h *SlideHandler) Generate(c *gin.Context) {
	var req dto.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	start := time.Now()
	resp, err := h.slides.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveDeckGenerated(req.GraduateProfile, time.Since(start))
	response.JSON(c, http.StatusOK, resp, nil)
}

// Download godoc
// @Summary Download a generated PPTX deck
// @Tags Slides
// @Produce application/octet-stream
// @Param filename path string true "Artifact filename"
// @Success 200 {file} binary
// @Router /slides/download/{filename} [get]
func (h *SlideHandler) Download(c *gin.Context) {
	h.stream(c, c.Param("filename"), pptxContentType)
}

// DownloadPDF godoc
// @Summary Download the PDF rendition of a deck
// @Tags Slides
// @Produce application/pdf
// @Param filename path string true "Artifact filename"
// @Success 200 {file} binary
// @Router /slides/pdf/{filename} [get]
func (h *SlideHandler) DownloadPDF(c *gin.Context) {
	file, err := h.slides.OpenPDF(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+c.Param("filename")+`"`)
	c.Header("Content-Type", "application/pdf")
	c.File(file.Name())
}

// View godoc
// @Summary Interactive HTML view of a badge deck
// @Tags Slides
// @Produce html
// @Param badgeId path string true "Badge ID"
// @Success 200 {string} string
// @Router /slides/view/{badgeId} [get]
func (h *SlideHandler) View(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.slides.RenderView(c.Request.Context(), c.Param("badgeId"), &buf); err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Share godoc
// @Summary Issue a signed share link for the newest deck of a badge
// @Tags Slides
// @Produce json
// @Param badgeId path string true "Badge ID"
// @Success 200 {object} response.Envelope
// @Router /slides/share/{badgeId} [get]
func (h *SlideHandler) Share(c *gin.Context) {
	resp, err := h.slides.Share(c.Request.Context(), c.Param("badgeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Shared godoc
// @Summary Download a deck through a share token
// @Tags Slides
// @Produce application/octet-stream
// @Param token path string true "Share token"
// @Success 200 {file} binary
// @Router /slides/shared/{token} [get]
func (h *SlideHandler) Shared(c *gin.Context) {
	file, filename, err := h.slides.ResolveShared(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := pptxContentType
	if strings.HasSuffix(filename, ".pdf") {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	c.File(file.Name())
}

func (h *SlideHandler) stream(c *gin.Context, filename, contentType string) {
	file, err := h.slides.OpenArtifact(filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.File(file.Name())
}
