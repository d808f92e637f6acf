package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/soundforge/api/internal/model"
	"github.com/soundforge/api/internal/policy"
	"github.com/soundforge/api/pkg/response"
)

type PromptHandler struct {
	validator *validator.Validate
}

func NewPromptHandler(v *validator.Validate) *PromptHandler {
	return &PromptHandler{validator: v}
}

// Validate handles POST /api/prompt/validate
// @Summary      Validate a prompt
// @Description  Run the content policy checks against a prompt and return the full verdict
// @Tags         Prompt
// @Accept       json
// @Produce      json
// @Param        request body model.ValidatePromptRequest true "Prompt to validate"
// @Success      200 {object} model.ValidationResult
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/prompt/validate [post]
func (h *PromptHandler) Validate(c *fiber.Ctx) error {
	var req model.ValidatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result := policy.Classify(req.Text)
	return response.OK(c, result)
}

// Feedback handles POST /api/prompt/feedback
// @Summary      Get prompt feedback
// @Description  Return a compact status/message summary suitable for inline editor hints
// @Tags         Prompt
// @Accept       json
// @Produce      json
// @Param        request body model.ValidatePromptRequest true "Prompt to check"
// @Success      200 {object} model.PromptFeedback
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/prompt/feedback [post]
func (h *PromptHandler) Feedback(c *fiber.Ctx) error {
	var req model.ValidatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	feedback := policy.Feedback(req.Text)
	return response.OK(c, feedback)
}

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
