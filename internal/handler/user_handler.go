package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	"github.com/kahu-edu/badge-portfolio-api/pkg/response"
)

// UserHandler exposes per-user progress and application endpoints.
type UserHandler struct {
	auth         *service.AuthService
	applications *service.ApplicationService
	progress     *service.ProgressService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(auth *service.AuthService, applications *service.ApplicationService, progress *service.ProgressService) *UserHandler {
	return &UserHandler{auth: auth, applications: applications, progress: progress}
}

// Get godoc
// @Summary Get user info
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	info, err := h.auth.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// Applications godoc
// @Summary List a user's badge applications
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/applications [get]
func (h *UserHandler) Applications(c *gin.Context) {
	apps, err := h.applications.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

// Stats godoc
// @Summary User badge statistics
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.progress.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Progress godoc
// @Summary Per-profile progress breakdown
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/progress [get]
func (h *UserHandler) Progress(c *gin.Context) {
	progress, err := h.progress.ProfileProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
