package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/pkg/response"
)

type PlaylistHandler struct {
	service   *service.PlaylistService
	validator *validator.Validate
}

func NewPlaylistHandler(svc *service.PlaylistService, v *validator.Validate) *PlaylistHandler {
	return &PlaylistHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/playlists
// @Summary      Create playlist
// @Tags         Playlists
// @Accept       json
// @Produce      json
// @Param        request body model.PlaylistCreateRequest true "Playlist to create"
// @Success      201 {object} model.Playlist
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists [post]
func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	var req model.PlaylistCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	userID := middleware.GetUserID(c)
	playlist, err := h.service.CreatePlaylist(c.Context(), userID, &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Created(c, playlist)
}

// List handles GET /api/playlists
// @Summary      List playlists
// @Tags         Playlists
// @Produce      json
// @Success      200 {object} model.PlaylistListResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists [get]
func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	result, err := h.service.ListPlaylists(c.Context(), userID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, result)
}

// Get handles GET /api/playlists/:playlistId
// @Summary      Get a playlist
// @Tags         Playlists
// @Produce      json
// @Param        playlistId path string true "Playlist ID"
// @Success      200 {object} model.Playlist
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists/{playlistId} [get]
func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return response.ValidationError(c, "Playlist ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	playlist, err := h.service.GetPlaylist(c.Context(), userID, playlistID)
	if err != nil {
		if err.Error() == "playlist not found" {
			return response.NotFound(c, "Playlist not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, playlist)
}

// Delete handles DELETE /api/playlists/:playlistId
// @Summary      Delete a playlist
// @Tags         Playlists
// @Param        playlistId path string true "Playlist ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists/{playlistId} [delete]
func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return response.ValidationError(c, "Playlist ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	if err := h.service.DeletePlaylist(c.Context(), userID, playlistID); err != nil {
		if err.Error() == "playlist not found" {
			return response.NotFound(c, "Playlist not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}

// AddSong handles POST /api/playlists/:playlistId/songs
// @Summary      Add a song to a playlist
// @Tags         Playlists
// @Accept       json
// @Produce      json
// @Param        playlistId path string true "Playlist ID"
// @Param        request body model.PlaylistAddSongRequest true "Song to add"
// @Success      200 {object} model.Playlist
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists/{playlistId}/songs [post]
func (h *PlaylistHandler) AddSong(c *fiber.Ctx) error {
	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return response.ValidationError(c, "Playlist ID is required", nil)
	}

	var req model.PlaylistAddSongRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	userID := middleware.GetUserID(c)
	playlist, err := h.service.AddSong(c.Context(), userID, playlistID, req.SongID)
	if err != nil {
		if err.Error() == "playlist not found" || err.Error() == "song not found" {
			return response.NotFound(c, err.Error())
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, playlist)
}

// RemoveSong handles DELETE /api/playlists/:playlistId/songs/:songId
// @Summary      Remove a song from a playlist
// @Tags         Playlists
// @Produce      json
// @Param        playlistId path string true "Playlist ID"
// @Param        songId path string true "Song ID"
// @Success      200 {object} model.Playlist
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/playlists/{playlistId}/songs/{songId} [delete]
func (h *PlaylistHandler) RemoveSong(c *fiber.Ctx) error {
	playlistID := c.Params("playlistId")
	songID := c.Params("songId")
	if playlistID == "" || songID == "" {
		return response.ValidationError(c, "Playlist ID and song ID are required", nil)
	}

	userID := middleware.GetUserID(c)
	playlist, err := h.service.RemoveSong(c.Context(), userID, playlistID, songID)
	if err != nil {
		if err.Error() == "playlist not found" {
			return response.NotFound(c, "Playlist not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, playlist)
}
