package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/bookmark"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	BookmarkHandler interface {
		Bookmark(c *fiber.Ctx) error
		RemoveBookmark(c *fiber.Ctx) error
		ToggleBookmark(c *fiber.Ctx) error
		IsBookmarked(c *fiber.Ctx) error
		BookmarkedRecipeIDs(c *fiber.Ctx) error
	}

	bookmarkHandler struct {
		bookmarkService bookmark.BookmarkService
	}
)

func NewBookmarkHandler(bookmarkService bookmark.BookmarkService) BookmarkHandler {
	return &bookmarkHandler{bookmarkService: bookmarkService}
}

func (h *bookmarkHandler) Bookmark(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		added, err := h.bookmarkService.Bookmark(c.Context(), userID, recipeID)
		if !added {
			return domain.MessageRecipeAlreadySaved, err
		}
		return domain.MessageRecipeBookmarked, err
	})
}

func (h *bookmarkHandler) RemoveBookmark(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		removed, err := h.bookmarkService.RemoveBookmark(c.Context(), userID, recipeID)
		if !removed {
			return domain.MessageRecipeNotBookmarked, err
		}
		return domain.MessageRecipeUnbookmarked, err
	})
}

func (h *bookmarkHandler) ToggleBookmark(c *fiber.Ctx) error {
	return h.respond(c, func(userID, recipeID uuid.UUID) (string, error) {
		saved, err := h.bookmarkService.Toggle(c.Context(), userID, recipeID)
		if saved {
			return domain.MessageRecipeBookmarked, err
		}
		return domain.MessageRecipeUnbookmarked, err
	})
}

func (h *bookmarkHandler) IsBookmarked(c *fiber.Ctx) error {
	return h.respond(c, func(uuid.UUID, uuid.UUID) (string, error) {
		return "", nil
	})
}

func (h *bookmarkHandler) BookmarkedRecipeIDs(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}
	ids, err := h.bookmarkService.BookmarkedRecipeIDs(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}
	return presenters.SuccessResponse(c, domain.RecipeIDsResponse{RecipeIDs: ids}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// respond runs action and answers with the caller's current bookmark state and
// the live counter.
func (h *bookmarkHandler) respond(c *fiber.Ctx, action func(userID, recipeID uuid.UUID) (string, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}

	message, err := action(userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}
	status, err := h.bookmarkService.Status(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}
	status.Message = message
	if message == "" {
		message = domain.MessageSuccessGetRecipeDetail
	}
	return presenters.SuccessResponse(c, status, fiber.StatusOK, message)
}
