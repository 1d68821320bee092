package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/rating"

	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		ListRatings(c *fiber.Ctx) error
		Rate(c *fiber.Ctx) error
		MyRating(c *fiber.Ctx) error
		Stats(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
	}
)

func NewRatingHandler(ratingService rating.RatingService) RatingHandler {
	return &ratingHandler{ratingService: ratingService}
}

func (h *ratingHandler) ListRatings(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	res, err := h.ratingService.ListRatings(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatingList)
}

func (h *ratingHandler) Rate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	req := new(domain.RateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, domain.BadRequest(domain.MessageFailedBodyRequest))
	}
	// range is checked by the service so the client sees its message
	res, err := h.ratingService.Rate(c.Context(), userID, recipeID, req.Rating)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRateRecipe)
}

func (h *ratingHandler) MyRating(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	res, err := h.ratingService.GetUserRating(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}

func (h *ratingHandler) Stats(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	res, err := h.ratingService.Stats(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}

func (h *ratingHandler) DeleteRating(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	res, err := h.ratingService.DeleteRating(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRate, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}
