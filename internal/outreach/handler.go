package outreach

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/leadloop/leadloop/common"
	"github.com/leadloop/leadloop/internal/dto"
	"github.com/leadloop/leadloop/middleware"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

var _ HandlerInterface = (*Handler)(nil)

// UpdatePreferences handles PUT /users/:id/outreach. It saves the new
// settings and returns the resulting job (absent when outreach is off).
func (h *Handler) UpdatePreferences(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req dto.OutreachPreferencesDTO
	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	prefs, job, err := h.service.UpdateUserPreferences(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	resp := gin.H{"preferences": prefs}
	if job != nil {
		resp["job"] = gin.H{
			"status":      job.Status,
			"next_run_at": job.NextRunAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Disable handles DELETE /users/:id/outreach.
func (h *Handler) Disable(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DisableUserOutreach(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetJob handles GET /users/:id/outreach/job.
func (h *Handler) GetJob(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetJob(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetLog handles GET /users/:id/outreach/log.
func (h *Handler) GetLog(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.service.GetExecutionLog(c.Request.Context(), userID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// RegisterRoutes mounts the outreach endpoints.
func RegisterRoutes(r gin.IRouter, h HandlerInterface) {
	r.PUT("/users/:id/outreach", h.UpdatePreferences)
	r.DELETE("/users/:id/outreach", h.Disable)
	r.GET("/users/:id/outreach/job", h.GetJob)
	r.GET("/users/:id/outreach/log", h.GetLog)
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id < 1 {
		c.Error(common.Errf(http.StatusBadRequest, "invalid user ID"))
		c.Abort()
		return 0, false
	}
	return uint(id), true
}
