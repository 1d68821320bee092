package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/ai"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AIHandler interface {
		Chat(c *fiber.Ctx) error
	}

	aiHandler struct {
		aiService ai.AIService
		validator *validator.Validate
	}
)

func NewAIHandler(aiService ai.AIService, validator *validator.Validate) AIHandler {
	return &aiHandler{
		aiService: aiService,
		validator: validator,
	}
}

func (h *aiHandler) Chat(c *fiber.Ctx) error {
	req := new(domain.ChatRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedChat, err)
	}
	res, err := h.aiService.Chat(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedChat, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessChat)
}
