package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/pkg/response"
)

const maxUploadSize = 50 * 1024 * 1024 // 50MB

type UploadHandler struct {
	service   *service.UploadService
	validator *validator.Validate
}

func NewUploadHandler(svc *service.UploadService, v *validator.Validate) *UploadHandler {
	return &UploadHandler{
		service:   svc,
		validator: v,
	}
}

// Audio handles POST /api/upload/audio
// @Summary      Upload reference audio
// @Description  Upload an audio file to use as a style reference
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Audio file (WAV, MP3, M4A, AAC; max 50MB)"
// @Success      201 {object} model.UploadAudioResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/upload/audio [post]
func (h *UploadHandler) Audio(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	if file.Size > maxUploadSize {
		return response.ValidationError(c, "File size exceeds 50MB limit", map[string]interface{}{
			"maxSize":  maxUploadSize,
			"fileSize": file.Size,
		})
	}

	contentType := file.Header.Get("Content-Type")
	validTypes := map[string]bool{
		"audio/wav":   true,
		"audio/x-wav": true,
		"audio/wave":  true,
		"audio/mpeg":  true,
		"audio/mp3":   true,
		"audio/mp4":   true,
		"audio/x-m4a": true,
		"audio/aac":   true,
		"audio/x-aac": true,
	}
	if !validTypes[contentType] {
		return response.ValidationError(c, "Unsupported audio format", map[string]interface{}{
			"contentType": contentType,
		})
	}

	src, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	userID := middleware.GetUserID(c)
	result, err := h.service.UploadAudio(c.Context(), userID, src, file.Size)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Created(c, result)
}

// DeleteAudio handles DELETE /api/upload/audio/:uploadId
// @Summary      Delete uploaded audio
// @Tags         Upload
// @Param        uploadId path string true "Upload ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/upload/audio/{uploadId} [delete]
func (h *UploadHandler) DeleteAudio(c *fiber.Ctx) error {
	uploadID := c.Params("uploadId")
	if uploadID == "" {
		return response.ValidationError(c, "Upload ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	if err := h.service.DeleteAudio(c.Context(), userID, uploadID); err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}
