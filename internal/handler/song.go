package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/policy"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/pkg/response"
)

type SongHandler struct {
	songService       *service.SongService
	generationService *service.GenerationService
	validator         *validator.Validate
}

func NewSongHandler(songService *service.SongService, generationService *service.GenerationService, v *validator.Validate) *SongHandler {
	return &SongHandler{
		songService:       songService,
		generationService: generationService,
		validator:         v,
	}
}

// Create handles POST /api/songs
// @Summary      Queue a song generation
// @Description  Validate the prompt, persist a queued song record, and enqueue its generation job
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Param        request body model.CreateSongParams true "Song parameters"
// @Success      202 {object} model.SongCreateResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs [post]
func (h *SongHandler) Create(c *fiber.Ctx) error {
	var params model.CreateSongParams
	if err := c.BodyParser(&params); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&params); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	advisory, blocked := checkPrompt(&params)
	if blocked != nil {
		return response.PromptBlocked(c, blocked.Error, fiber.Map{
			"suggestion": blocked.Suggestion,
		})
	}

	userID := middleware.GetUserID(c)
	result, svcErr := h.songService.CreateSong(c.Context(), userID, &params, advisory)
	if svcErr != nil {
		return response.ServiceError(c, svcErr.Error())
	}

	return response.Accepted(c, result)
}

// Generate handles POST /api/songs/generate
// @Summary      Generate a song synchronously
// @Description  Validate the prompt, run one generation call, and stream the audio back
// @Tags         Songs
// @Accept       json
// @Produce      audio/mpeg
// @Param        request body model.CreateSongParams true "Song parameters"
// @Success      200 {file} binary
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/generate [post]
func (h *SongHandler) Generate(c *fiber.Ctx) error {
	var params model.CreateSongParams
	if err := c.BodyParser(&params); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&params); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	if _, blocked := checkPrompt(&params); blocked != nil {
		return response.PromptBlocked(c, blocked.Error, fiber.Map{
			"suggestion": blocked.Suggestion,
		})
	}

	result, err := h.generationService.Generate(c.Context(), &params)
	if err != nil {
		return h.mapGenerationError(c, err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(result.Audio)
}

// List handles GET /api/songs
// @Summary      List songs
// @Description  List the user's song library, newest first
// @Tags         Songs
// @Produce      json
// @Success      200 {object} model.SongListResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs [get]
func (h *SongHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	result, err := h.songService.ListSongs(c.Context(), userID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, result)
}

// Get handles GET /api/songs/:songId
// @Summary      Get a song
// @Tags         Songs
// @Produce      json
// @Param        songId path string true "Song ID"
// @Success      200 {object} model.Song
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId} [get]
func (h *SongHandler) Get(c *fiber.Ctx) error {
	songID := c.Params("songId")
	if songID == "" {
		return response.ValidationError(c, "Song ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	song, err := h.songService.GetSong(c.Context(), userID, songID)
	if err != nil {
		if err.Error() == "song not found" {
			return response.NotFound(c, "Song not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, song)
}

// Delete handles DELETE /api/songs/:songId
// @Summary      Delete a song
// @Tags         Songs
// @Param        songId path string true "Song ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/songs/{songId} [delete]
func (h *SongHandler) Delete(c *fiber.Ctx) error {
	songID := c.Params("songId")
	if songID == "" {
		return response.ValidationError(c, "Song ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	if err := h.songService.DeleteSong(c.Context(), userID, songID); err != nil {
		if err.Error() == "song not found" {
			return response.NotFound(c, "Song not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}

// checkPrompt runs the content policy checks over the free-text fields.
// A blocked field returns its verdict; a long-prompt advisory is returned
// so it can ride along on the queued record.
func checkPrompt(params *model.CreateSongParams) (advisory string, blocked *model.ValidationResult) {
	for _, text := range []string{params.Prompt, params.CustomStyle, params.CustomLyrics} {
		if text == "" {
			continue
		}
		result := policy.Classify(text)
		if !result.IsValid {
			return "", &result
		}
		if result.WarningLevel == model.WarningWarning && advisory == "" {
			advisory = result.Suggestion
		}
	}
	return advisory, nil
}

// mapGenerationError translates the typed client failure into an HTTP error.
func (h *SongHandler) mapGenerationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrEmptyPrompt) {
		return response.ValidationError(c, "Prompt is empty after compilation", nil)
	}

	var genErr *client.GenerationError
	if !errors.As(err, &genErr) {
		return response.ServiceError(c, err.Error())
	}

	details := fiber.Map{"kind": genErr.Kind}
	if genErr.Hint != "" {
		details["hint"] = genErr.Hint
	}
	if genErr.Suggestion != "" {
		details["suggestion"] = genErr.Suggestion
	}

	switch genErr.Kind {
	case client.ErrKindPromptRejected:
		return response.Error(c, fiber.StatusUnprocessableEntity, response.CodeGenerationError, genErr.Message, details)
	case client.ErrKindConnectivity, client.ErrKindBackendUnavailable:
		return response.GenerationError(c, fiber.StatusServiceUnavailable, genErr.Message, details)
	default:
		return response.GenerationError(c, fiber.StatusBadGateway, genErr.Message, details)
	}
}
