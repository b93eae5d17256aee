package images

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"photoshare/internal/domain"
	"photoshare/internal/middleware"
	"photoshare/internal/pkg/response"
	"photoshare/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the image endpoints onto the authenticated group.
// Each route carries its own rate-limit class.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, rl *middleware.RateLimiter) {
	imgs := protected.Group("/images")
	{
		imgs.POST("", rl.Limit(middleware.ClassUpload), h.Upload)
		imgs.GET("/:id", rl.Limit(middleware.ClassRead), h.Get)
		imgs.PUT("/:id", rl.Limit(middleware.ClassUpdate), h.UpdateDescription)
		imgs.DELETE("/:id", rl.Limit(middleware.ClassDelete), h.Delete)
		imgs.POST("/:id/crop", rl.Limit(middleware.ClassCrop), h.Crop)
		imgs.POST("/:id/effect", rl.Limit(middleware.ClassEffect), h.ApplyEffect)
		imgs.GET("/:id/qrcode", rl.Limit(middleware.ClassQRCode), h.QRCode)
	}

	protected.GET("/search/:query", rl.Limit(middleware.ClassSearch), h.Search)

	moderation := protected.Group("/moderation")
	moderation.Use(middleware.RequireRole(string(domain.RoleModerator), string(domain.RoleAdmin)))
	{
		moderation.GET("/users/:user_id/images", rl.Limit(middleware.ClassRead), h.ListForUser)
	}
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts a multipart file up to 5 MiB with an optional description and comma-separated tags
// @Tags images
// @Accept multipart/form-data
// @Success 201 {object} domain.Image
// @Router /api/v1/images [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "File is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot read uploaded file")
		return
	}
	defer f.Close()

	// Read one byte past the cap so oversize files are detected without
	// buffering the whole payload unbounded.
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot read uploaded file")
		return
	}

	description := c.PostForm("description")
	if fieldErrors := validator.Validate(UploadForm{Description: description}); fieldErrors != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid upload fields", fieldErrors)
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	img, err := h.service.Upload(c.Request.Context(), actorFromContext(c), data, description, tags)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img)
}

// Get godoc
// @Summary Get an image
// @Tags images
// @Success 200 {object} domain.Image
// @Router /api/v1/images/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	img, err := h.service.Get(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// UpdateDescription godoc
// @Summary Update an image description
// @Tags images
// @Success 200 {object} domain.Image
// @Router /api/v1/images/{id} [put]
func (h *Handler) UpdateDescription(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	img, err := h.service.UpdateDescription(c.Request.Context(), actorFromContext(c), id, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// Delete godoc
// @Summary Delete an image and all derived data
// @Tags images
// @Success 200 {object} gin.H
// @Router /api/v1/images/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Crop godoc
// @Summary Create a cropped version of an image
// @Tags images
// @Success 201 {object} TransformedImageResponse
// @Router /api/v1/images/{id}/crop [post]
func (h *Handler) Crop(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	var req CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ti, err := h.service.Crop(c.Request.Context(), actorFromContext(c), id, req.Width, req.Height, req.Mode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, newTransformedImageResponse(ti))
}

// ApplyEffect godoc
// @Summary Create an artistic-effect version of an image
// @Tags images
// @Success 201 {object} TransformedImageResponse
// @Router /api/v1/images/{id}/effect [post]
func (h *Handler) ApplyEffect(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	var req EffectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ti, err := h.service.ApplyEffect(c.Request.Context(), actorFromContext(c), id, req.Effect)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, newTransformedImageResponse(ti))
}

// QRCode godoc
// @Summary QR code for the latest transformed version of an image
// @Tags images
// @Produce image/png
// @Router /api/v1/images/{id}/qrcode [get]
func (h *Handler) QRCode(c *gin.Context) {
	id, ok := h.imageID(c)
	if !ok {
		return
	}

	png, err := h.service.GenerateQR(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Search godoc
// @Summary Search images by description or tag
// @Description Sort with ?sort_by=rating|date and ?descending=true
// @Tags images
// @Success 200 {array} domain.Image
// @Router /api/v1/search/{query} [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Param("query")

	key := SortBy(c.DefaultQuery("sort_by", string(SortByDate)))
	descending := c.DefaultQuery("descending", "false") == "true"

	found, err := h.service.Search(c.Request.Context(), query, key, descending)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, found)
}

// ListForUser godoc
// @Summary List all images owned by a user (moderators and admins)
// @Tags moderation
// @Success 200 {array} domain.Image
// @Router /api/v1/moderation/users/{user_id}/images [get]
func (h *Handler) ListForUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid user ID")
		return
	}

	imgs, err := h.service.ListForUser(c.Request.Context(), actorFromContext(c), targetID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, imgs)
}

func (h *Handler) imageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid image ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 5 MiB upload limit")
	case errors.Is(err, ErrInvalidTransform):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSFORM", "Unknown transformation parameters")
	case errors.Is(err, ErrQueryTooShort):
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Search query must be at least 2 characters")
	case errors.Is(err, ErrInvalidSortKey):
		response.Error(c, http.StatusBadRequest, "INVALID_SORT", "Sort key must be 'rating' or 'date'")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
	case errors.Is(err, ErrUpstream):
		response.Error(c, http.StatusBadGateway, "UPSTREAM_FAILED", "Image engine request failed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
