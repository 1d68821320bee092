package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/recipe"
	"cookbook-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		BulkCreateRecipes(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ListUsers(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		recipeService recipe.RecipeService
		userService   user.UserService
		validator     *validator.Validate
	}
)

func NewAdminHandler(recipeService recipe.RecipeService, userService user.UserService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		recipeService: recipeService,
		userService:   userService,
		validator:     validator,
	}
}

func (h *adminHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.AdminRecipeRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	res, err := h.recipeService.AdminCreateRecipe(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

// BulkCreateRecipes only checks the envelope; each item is validated by the
// service so one bad recipe does not reject the batch.
func (h *adminHandler) BulkCreateRecipes(c *fiber.Ctx) error {
	req := new(domain.BulkRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, domain.BadRequest(domain.MessageFailedBodyRequest))
	}
	if len(req.Recipes) == 0 {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, domain.BadRequest("recipes must not be empty"))
	}
	res := h.recipeService.AdminBulkCreate(c.Context(), *req)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessBulkCreate)
}

func (h *adminHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	req := new(domain.RecipeRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	res, err := h.recipeService.AdminUpdateRecipe(c.Context(), recipeID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *adminHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	if err := h.recipeService.AdminDeleteRecipe(c.Context(), recipeID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *adminHandler) ListUsers(c *fiber.Ctx) error {
	res, err := h.userService.ListUsers(c.Context(), pagination(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteUser, err)
	}
	if err := h.userService.DeleteUser(c.Context(), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteUser, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}
