package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessBulkCreate      = "bulk create finished"
	MessageSuccessClearViews      = "recently viewed cleared"
	MessageSuccessRemoveView      = "recipe removed from recently viewed"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = NewClientError(http.StatusNotFound, "recipe not found")
	ErrUnauthorizedRecipeAccess = NewClientError(http.StatusForbidden, "you are not the owner of this recipe")
	ErrRecipeTitleBlank         = NewClientError(http.StatusBadRequest, "recipe title must not be blank")
	ErrRecipeServingsInvalid    = NewClientError(http.StatusBadRequest, "servings must be greater than zero")
	ErrRecipeOwnerRequired      = NewClientError(http.StatusBadRequest, "owner id is required")
)

type (
	IngredientRequest struct {
		Name     string `json:"name" validate:"required,notblank"`
		Quantity string `json:"quantity"`
		Unit     string `json:"unit"`
	}

	StepImageRequest struct {
		ImageURL    string `json:"imageUrl" validate:"required"`
		OrderNumber int    `json:"orderNumber"`
	}

	StepRequest struct {
		StepNumber  int                `json:"stepNumber" validate:"gte=1"`
		Title       string             `json:"title" validate:"required,notblank"`
		Description string             `json:"description"`
		Images      []StepImageRequest `json:"images" validate:"dive"`
	}

	RecipeRequest struct {
		Title       string              `json:"title" validate:"required,notblank"`
		ImageURL    string              `json:"imageUrl"`
		Servings    int                 `json:"servings" validate:"gt=0"`
		CookingTime int                 `json:"cookingTime" validate:"gte=0"`
		Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
		Steps       []StepRequest       `json:"steps" validate:"dive"`
	}

	// AdminRecipeRequest carries the owner in the payload instead of taking it
	// from the caller.
	AdminRecipeRequest struct {
		RecipeRequest
		UserID string `json:"userId" validate:"required,uuid"`
	}

	BulkRecipeRequest struct {
		Recipes []AdminRecipeRequest `json:"recipes" validate:"required,min=1"`
	}

	BulkRecipeError struct {
		Index int    `json:"index"`
		Title string `json:"title"`
		Error string `json:"error"`
	}

	BulkRecipeResponse struct {
		TotalRequested int               `json:"totalRequested"`
		TotalCreated   int               `json:"totalCreated"`
		Created        []RecipeResponse  `json:"created"`
		Errors         []BulkRecipeError `json:"errors"`
	}

	IngredientResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		Unit     string `json:"unit"`
	}

	StepImageResponse struct {
		ID          string `json:"id"`
		ImageURL    string `json:"imageUrl"`
		OrderNumber int    `json:"orderNumber"`
	}

	StepResponse struct {
		ID          string              `json:"id"`
		StepNumber  int                 `json:"stepNumber"`
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Images      []StepImageResponse `json:"images"`
	}

	RecipeResponse struct {
		ID                        string               `json:"id"`
		Title                     string               `json:"title"`
		ImageURL                  string               `json:"imageUrl,omitempty"`
		Servings                  int                  `json:"servings"`
		CookingTime               int                  `json:"cookingTime"`
		UserID                    string               `json:"userId"`
		UserName                  string               `json:"userName"`
		UserAvatar                string               `json:"userAvatar,omitempty"`
		LikesCount                int                  `json:"likesCount"`
		BookmarksCount            int                  `json:"bookmarksCount"`
		RatingsCount              int                  `json:"ratingsCount"`
		AverageRating             float64              `json:"averageRating"`
		CommentsCount             int                  `json:"commentsCount"`
		IsLikedByCurrentUser      bool                 `json:"isLikedByCurrentUser"`
		IsBookmarkedByCurrentUser bool                 `json:"isBookmarkedByCurrentUser"`
		UserRating                *int                 `json:"userRating"`
		Ingredients               []IngredientResponse `json:"ingredients"`
		Steps                     []StepResponse       `json:"steps"`
		CreatedAt                 time.Time            `json:"createdAt"`
		UpdatedAt                 time.Time            `json:"updatedAt"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeResponse   `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}

	IngredientFilterRequest struct {
		Include []string
		Exclude []string
	}
)
