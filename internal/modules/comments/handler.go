package comments

import (
	"errors"
	"net/http"
	"strconv"

	"photoshare/internal/domain"
	"photoshare/internal/middleware"
	"photoshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, rl *middleware.RateLimiter) {
	protected.POST("/images/:id/comments", rl.Limit(middleware.ClassUpdate), h.Create)
	protected.GET("/images/:id/comments", rl.Limit(middleware.ClassRead), h.ListByImage)
	protected.PUT("/comments/:id", rl.Limit(middleware.ClassUpdate), h.Update)
	protected.DELETE("/comments/:id", rl.Limit(middleware.ClassDelete), h.Delete)
}

// Create godoc
// @Summary Comment on an image
// @Tags comments
// @Success 201 {object} domain.Comment
// @Router /api/v1/images/{id}/comments [post]
func (h *Handler) Create(c *gin.Context) {
	imageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	comment, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), imageID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

// ListByImage godoc
// @Summary List comments on an image
// @Tags comments
// @Success 200 {array} domain.Comment
// @Router /api/v1/images/{id}/comments [get]
func (h *Handler) ListByImage(c *gin.Context) {
	imageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.ListByImage(c.Request.Context(), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, found)
}

// Update godoc
// @Summary Edit a comment (author only)
// @Tags comments
// @Success 200 {object} domain.Comment
// @Router /api/v1/comments/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	comment, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), commentID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment (author, moderator or admin)
// @Tags comments
// @Success 200 {object} gin.H
// @Router /api/v1/comments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	role := domain.UserRole(c.GetString("role"))
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), role, commentID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this comment")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
