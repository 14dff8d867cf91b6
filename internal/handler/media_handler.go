package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// MediaHandler image upload endpoints
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload godoc
// @Summary Upload an image
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpeg, png, gif, webp; max 10 MiB)"
// @Success 201 {object} common.APIResponse{data=storage.UploadResult}
// @Failure 400 {object} common.APIResponse
// @Router /media/upload [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "missing file field", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file", err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.mediaService.UploadImage(
		c.Request.Context(),
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid upload", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "upload failed", err)
		return
	}

	common.CreatedResponse(c, result)
}
