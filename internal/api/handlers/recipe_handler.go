package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		ListRecipes(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		FilterRecipes(c *fiber.Ctx) error
		GetRecipesByUser(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		GetFollowingFeed(c *fiber.Ctx) error
		GetLikedRecipes(c *fiber.Ctx) error
		GetBookmarkedRecipes(c *fiber.Ctx) error
		GetRecentlyViewed(c *fiber.Ctx) error
		ClearRecentlyViewed(c *fiber.Ctx) error
		RemoveRecentlyViewed(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.ListRecipes(c.Context(), pagination(c), viewerID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.SearchByTitle(c.Context(), c.Query("title"), viewerID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// FilterRecipes takes comma separated ingredient names, e.g.
// ?include=egg,rice&exclude=peanut.
func (h *recipeHandler) FilterRecipes(c *fiber.Ctx) error {
	filter := domain.IngredientFilterRequest{
		Include: queryList(c, "include"),
		Exclude: queryList(c, "exclude"),
	}
	res, err := h.recipeService.FilterByIngredients(c.Context(), filter, viewerID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipesByUser(c *fiber.Ctx) error {
	ownerID, err := paramUUID(c, "userId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.ListByOwner(c.Context(), ownerID, viewerID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.ListByOwner(c.Context(), userID, &userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetFollowingFeed(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.FollowingFeed(c.Context(), userID, pagination(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetLikedRecipes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.ListLiked(c.Context(), userID, pagination(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetBookmarkedRecipes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.ListBookmarked(c.Context(), userID, pagination(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecentlyViewed(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	res, err := h.recipeService.RecentlyViewed(c.Context(), userID, queryInt(c, "limit"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) ClearRecentlyViewed(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.recipeService.ClearRecentlyViewed(c.Context(), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearViews)
}

func (h *recipeHandler) RemoveRecentlyViewed(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	recipeID, err := paramUUID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.recipeService.RemoveRecentlyViewed(c.Context(), userID, recipeID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveView)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}
	res, err := h.recipeService.GetRecipeByID(c.Context(), recipeID, viewerID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	req := new(domain.RecipeRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	res, err := h.recipeService.CreateRecipe(c.Context(), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	req := new(domain.RecipeRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
