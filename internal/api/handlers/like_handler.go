package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/like"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	LikeHandler interface {
		Like(c *fiber.Ctx) error
		Unlike(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		IsLiked(c *fiber.Ctx) error
		LikedRecipeIDs(c *fiber.Ctx) error
	}

	likeHandler struct {
		likeService like.LikeService
	}
)

func NewLikeHandler(likeService like.LikeService) LikeHandler {
	return &likeHandler{likeService: likeService}
}

func (h *likeHandler) Like(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		added, err := h.likeService.Like(c.Context(), userID, recipeID)
		if !added {
			return domain.MessageRecipeAlreadyLiked, err
		}
		return domain.MessageRecipeLiked, err
	})
}

func (h *likeHandler) Unlike(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		removed, err := h.likeService.Unlike(c.Context(), userID, recipeID)
		if !removed {
			return domain.MessageRecipeNotLiked, err
		}
		return domain.MessageRecipeUnliked, err
	})
}

func (h *likeHandler) ToggleLike(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		liked, err := h.likeService.Toggle(c.Context(), userID, recipeID)
		if liked {
			return domain.MessageRecipeLiked, err
		}
		return domain.MessageRecipeUnliked, err
	})
}

func (h *likeHandler) IsLiked(c *fiber.Ctx) error {
	return h.respond(c, func(uuid.UUID, uuid.UUID) (string, error) {
		return "", nil
	})
}

func (h *likeHandler) LikedRecipeIDs(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}
	ids, err := h.likeService.LikedRecipeIDs(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}
	return presenters.SuccessResponse(c, domain.RecipeIDsResponse{RecipeIDs: ids}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// respond runs action and answers with the caller's current like state and
// the live counter.
func (h *likeHandler) respond(c *fiber.Ctx, action func(userID, recipeID uuid.UUID) (string, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}

	message, err := action(userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}
	status, err := h.likeService.Status(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLike, err)
	}
	status.Message = message
	if message == "" {
		message = domain.MessageSuccessGetRecipeDetail
	}
	return presenters.SuccessResponse(c, status, fiber.StatusOK, message)
}
