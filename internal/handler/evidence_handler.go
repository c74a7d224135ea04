package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
	"github.com/kahu-edu/badge-portfolio-api/pkg/response"
)

// EvidenceHandler exposes evidence submission endpoints. Submissions arrive
// either as JSON or as a multipart form carrying an optional file part.
type EvidenceHandler struct {
	evidence *service.EvidenceService
	metrics  *service.MetricsService
}

// NewEvidenceHandler constructs EvidenceHandler.
func NewEvidenceHandler(evidence *service.EvidenceService, metrics *service.MetricsService) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence, metrics: metrics}
}

// Create godoc
// @Summary Submit evidence for an application
// @Tags Evidence
// @Accept json
// @Accept mpfd
// @Produce json
// @Param payload body dto.CreateEvidenceRequest true "Evidence"
// @Success 201 {object} response.Envelope
// @Router /evidence [post]
func (h *EvidenceHandler) Create(c *gin.Context) {
	var req dto.CreateEvidenceRequest
	var upload *service.Upload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload"))
			return
		}
		if header, err := c.FormFile("file"); err == nil {
			file, err := header.Open()
			if err != nil {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
				return
			}
			defer file.Close() //nolint:errcheck
			upload = &service.Upload{
				Filename: header.Filename,
				Size:     header.Size,
				MimeType: header.Header.Get("Content-Type"),
				Reader:   file,
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
			return
		}
	}

	evidence, err := h.evidence.Create(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	if upload != nil {
		h.metrics.ObserveUpload(upload.Size)
	}
	response.Created(c, evidence)
}

// ListByApplication godoc
// @Summary List evidence for an application
// @Tags Evidence
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /applications/{id}/evidence [get]
func (h *EvidenceHandler) ListByApplication(c *gin.Context) {
	items, err := h.evidence.ListByApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Delete godoc
// @Summary Delete an evidence record
// @Tags Evidence
// @Param id path string true "Evidence ID"
// @Success 204
// @Router /evidence/{id} [delete]
func (h *EvidenceHandler) Delete(c *gin.Context) {
	if err := h.evidence.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
