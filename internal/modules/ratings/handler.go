package ratings

import (
	"errors"
	"net/http"
	"strconv"

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
	protected.POST("/images/:id/rating", rl.Limit(middleware.ClassUpdate), h.Set)
	protected.GET("/images/:id/rating", rl.Limit(middleware.ClassRead), h.Average)
}

// Set godoc
// @Summary Rate an image
// @Description Scores run 1 to 5; rating the same image again replaces the previous score
// @Tags ratings
// @Success 200 {object} domain.Rating
// @Router /api/v1/images/{id}/rating [post]
func (h *Handler) Set(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid image ID")
		return
	}

	var req SetRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rating, err := h.service.Set(c.Request.Context(), c.GetInt64("user_id"), imageID, req.Score)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rating)
}

// Average godoc
// @Summary Average rating for an image
// @Tags ratings
// @Success 200 {object} AverageResponse
// @Router /api/v1/images/{id}/rating [get]
func (h *Handler) Average(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid image ID")
		return
	}

	avg, count, err := h.service.Average(c.Request.Context(), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AverageResponse{ImageID: imageID, Average: avg, Count: count})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidScore):
		response.Error(c, http.StatusBadRequest, "INVALID_SCORE", "Score must be between 1 and 5")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
