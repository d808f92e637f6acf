package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/service"
	"github.com/soundforge/api/pkg/response"
)

type WorkspaceHandler struct {
	service   *service.WorkspaceService
	validator *validator.Validate
}

func NewWorkspaceHandler(svc *service.WorkspaceService, v *validator.Validate) *WorkspaceHandler {
	return &WorkspaceHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/workspaces
// @Summary      Create workspace
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Param        request body model.WorkspaceCreateRequest true "Workspace to create"
// @Success      201 {object} model.Workspace
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workspaces [post]
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	var req model.WorkspaceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	userID := middleware.GetUserID(c)
	workspace, err := h.service.CreateWorkspace(c.Context(), userID, &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Created(c, workspace)
}

// List handles GET /api/workspaces
// @Summary      List workspaces
// @Tags         Workspaces
// @Produce      json
// @Success      200 {object} model.WorkspaceListResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workspaces [get]
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	result, err := h.service.ListWorkspaces(c.Context(), userID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, result)
}

// Get handles GET /api/workspaces/:workspaceId
// @Summary      Get a workspace
// @Tags         Workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Success      200 {object} model.Workspace
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workspaces/{workspaceId} [get]
func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	if workspaceID == "" {
		return response.ValidationError(c, "Workspace ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	workspace, err := h.service.GetWorkspace(c.Context(), userID, workspaceID)
	if err != nil {
		if err.Error() == "workspace not found" {
			return response.NotFound(c, "Workspace not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, workspace)
}

// Delete handles DELETE /api/workspaces/:workspaceId
// @Summary      Delete a workspace
// @Tags         Workspaces
// @Param        workspaceId path string true "Workspace ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workspaces/{workspaceId} [delete]
func (h *WorkspaceHandler) Delete(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	if workspaceID == "" {
		return response.ValidationError(c, "Workspace ID is required", nil)
	}

	userID := middleware.GetUserID(c)
	if err := h.service.DeleteWorkspace(c.Context(), userID, workspaceID); err != nil {
		if err.Error() == "workspace not found" {
			return response.NotFound(c, "Workspace not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}
