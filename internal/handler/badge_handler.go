package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
	"github.com/kahu-edu/badge-portfolio-api/pkg/response"
)

// BadgeHandler exposes badge catalog endpoints.
type BadgeHandler struct {
	badges *service.BadgeService
}

// NewBadgeHandler constructs BadgeHandler.
func NewBadgeHandler(badges *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// List godoc
// @Summary List active badges
// @Tags Badges
// @Produce json
// @Param graduateProfile query string false "Filter by graduate profile"
// @Success 200 {object} response.Envelope
// @Router /badges [get]
func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.badges.List(c.Request.Context(), c.Query("graduateProfile"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, badges, nil)
}

// Get godoc
// @Summary Get one badge
// @Tags Badges
// @Produce json
// @Param id path string true "Badge ID"
// @Success 200 {object} response.Envelope
// @Router /badges/{id} [get]
func (h *BadgeHandler) Get(c *gin.Context) {
	badge, err := h.badges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, badge, nil)
}

// Create godoc
// @Summary Create a badge
// @Tags Badges
// @Accept json
// @Produce json
// @Param payload body dto.CreateBadgeRequest true "Badge definition"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /badges [post]
func (h *BadgeHandler) Create(c *gin.Context) {
	var req dto.CreateBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	badge, err := h.badges.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, badge)
}

// Update godoc
// @Summary Update a badge
// @Tags Badges
// @Accept json
// @Produce json
// @Param id path string true "Badge ID"
// @Param payload body dto.UpdateBadgeRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /badges/{id} [put]
func (h *BadgeHandler) Update(c *gin.Context) {
	var req dto.UpdateBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	badge, err := h.badges.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, badge, nil)
}
