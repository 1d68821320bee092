package recipe

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/internal/utils"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/history"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, ownerID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID, ownerID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, ownerID uuid.UUID) error
		GetRecipeByID(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (domain.RecipeResponse, error)
		SearchByTitle(ctx context.Context, text string, viewerID *uuid.UUID) ([]domain.RecipeResponse, error)

		ListRecipes(ctx context.Context, page domain.PaginationRequest, viewerID *uuid.UUID) (domain.RecipeListResponse, error)
		ListByOwner(ctx context.Context, ownerID uuid.UUID, viewerID *uuid.UUID) ([]domain.RecipeResponse, error)
		FollowingFeed(ctx context.Context, viewerID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error)
		FilterByIngredients(ctx context.Context, filter domain.IngredientFilterRequest, viewerID *uuid.UUID) ([]domain.RecipeResponse, error)
		ListLiked(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error)
		ListBookmarked(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error)

		RecentlyViewed(ctx context.Context, userID uuid.UUID, limit int) ([]domain.RecipeResponse, error)
		ClearRecentlyViewed(ctx context.Context, userID uuid.UUID) error
		RemoveRecentlyViewed(ctx context.Context, userID, recipeID uuid.UUID) error

		AdminCreateRecipe(ctx context.Context, req domain.AdminRecipeRequest) (domain.RecipeResponse, error)
		AdminBulkCreate(ctx context.Context, req domain.BulkRecipeRequest) domain.BulkRecipeResponse
		AdminUpdateRecipe(ctx context.Context, recipeID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error)
		AdminDeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		historyService   history.HistoryService
		transactor       database.Transactor
	}
)

func NewRecipeService(recipeRepository RecipeRepository, historyService history.HistoryService, transactor database.Transactor) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		historyService:   historyService,
		transactor:       transactor,
	}
}

func validateRecipe(req domain.RecipeRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.ErrRecipeTitleBlank
	}
	if req.Servings <= 0 {
		return domain.ErrRecipeServingsInvalid
	}
	return nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if err := validateRecipe(req); err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		ImageURL:    req.ImageURL,
		Servings:    req.Servings,
		CookingTime: req.CookingTime,
	}
	ingredients, steps := toChildEntities(req)

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.recipeRepository.OwnerExists(ctx, ownerID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		return s.recipeRepository.ReplaceChildren(ctx, recipe.ID, ingredients, steps)
	})
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.assemble(ctx, recipe.ID, &ownerID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID, ownerID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if err := s.update(ctx, recipeID, &ownerID, req); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.assemble(ctx, recipeID, &ownerID)
}

func (s *recipeService) AdminUpdateRecipe(ctx context.Context, recipeID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if err := s.update(ctx, recipeID, nil, req); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.assemble(ctx, recipeID, nil)
}

// update replaces the recipe fields and its child collections. A nil
// ownerID skips the ownership check.
func (s *recipeService) update(ctx context.Context, recipeID uuid.UUID, ownerID *uuid.UUID, req domain.RecipeRequest) error {
	if err := validateRecipe(req); err != nil {
		return err
	}
	ingredients, steps := toChildEntities(req)

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadForWrite(ctx, recipeID, ownerID); err != nil {
			return err
		}
		if err := s.recipeRepository.UpdateRecipe(ctx, recipeID, map[string]any{
			"title":        strings.TrimSpace(req.Title),
			"image_url":    req.ImageURL,
			"servings":     req.Servings,
			"cooking_time": req.CookingTime,
		}); err != nil {
			return err
		}
		return s.recipeRepository.ReplaceChildren(ctx, recipeID, ingredients, steps)
	})
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, ownerID uuid.UUID) error {
	return s.delete(ctx, recipeID, &ownerID)
}

func (s *recipeService) AdminDeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return s.delete(ctx, recipeID, nil)
}

func (s *recipeService) delete(ctx context.Context, recipeID uuid.UUID, ownerID *uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadForWrite(ctx, recipeID, ownerID); err != nil {
			return err
		}
		return s.recipeRepository.DeleteRecipe(ctx, recipeID)
	})
}

func (s *recipeService) loadForWrite(ctx context.Context, recipeID uuid.UUID, ownerID *uuid.UUID) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if ownerID != nil && recipe.UserID != *ownerID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (domain.RecipeResponse, error) {
	res, err := s.assemble(ctx, recipeID, viewerID)
	if err != nil {
		return res, err
	}

	if viewerID != nil {
		if err := s.historyService.RecordView(ctx, *viewerID, recipeID); err != nil {
			metrics.RecordBestEffortFailure("view_history")
			utils.Logger.Warn("failed to record recipe view",
				zap.String("user_id", viewerID.String()),
				zap.String("recipe_id", recipeID.String()),
				zap.Error(err))
		}
	}
	return res, nil
}

func (s *recipeService) SearchByTitle(ctx context.Context, text string, viewerID *uuid.UUID) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.SearchByTitle(ctx, text)
	if err != nil {
		return nil, err
	}

	if viewerID != nil && strings.TrimSpace(text) != "" {
		if err := s.historyService.SaveSearch(ctx, *viewerID, text); err != nil {
			metrics.RecordBestEffortFailure("search_history")
			utils.Logger.Warn("failed to record search query",
				zap.String("user_id", viewerID.String()),
				zap.String("query", text),
				zap.Error(err))
		}
	}
	return s.toResponses(ctx, recipes, viewerID)
}

func (s *recipeService) ListRecipes(ctx context.Context, page domain.PaginationRequest, viewerID *uuid.UUID) (domain.RecipeListResponse, error) {
	page = page.Normalize(defaultPageLimit, maxPageLimit)
	recipes, total, err := s.recipeRepository.GetRecipes(ctx, page)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	return s.toListResponse(ctx, recipes, total, page, viewerID)
}

func (s *recipeService) ListByOwner(ctx context.Context, ownerID uuid.UUID, viewerID *uuid.UUID) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, recipes, viewerID)
}

func (s *recipeService) FollowingFeed(ctx context.Context, viewerID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error) {
	page = page.Normalize(defaultPageLimit, maxPageLimit)
	recipes, total, err := s.recipeRepository.GetFollowingFeed(ctx, viewerID, page)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	return s.toListResponse(ctx, recipes, total, page, &viewerID)
}

func (s *recipeService) FilterByIngredients(ctx context.Context, filter domain.IngredientFilterRequest, viewerID *uuid.UUID) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.FilterByIngredients(ctx, normalizeNames(filter.Include), normalizeNames(filter.Exclude))
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, recipes, viewerID)
}

func (s *recipeService) ListLiked(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error) {
	page = page.Normalize(defaultPageLimit, maxPageLimit)
	recipes, total, err := s.recipeRepository.GetLikedRecipes(ctx, userID, page)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	return s.toListResponse(ctx, recipes, total, page, &userID)
}

func (s *recipeService) ListBookmarked(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) (domain.RecipeListResponse, error) {
	page = page.Normalize(defaultPageLimit, maxPageLimit)
	recipes, total, err := s.recipeRepository.GetBookmarkedRecipes(ctx, userID, page)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	return s.toListResponse(ctx, recipes, total, page, &userID)
}

func (s *recipeService) RecentlyViewed(ctx context.Context, userID uuid.UUID, limit int) ([]domain.RecipeResponse, error) {
	ids, err := s.historyService.RecentlyViewedIDs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepository.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entities.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	ordered := make([]entities.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return s.toResponses(ctx, ordered, &userID)
}

func (s *recipeService) ClearRecentlyViewed(ctx context.Context, userID uuid.UUID) error {
	return s.historyService.ClearViews(ctx, userID)
}

func (s *recipeService) RemoveRecentlyViewed(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.historyService.RemoveView(ctx, userID, recipeID)
}

func (s *recipeService) AdminCreateRecipe(ctx context.Context, req domain.AdminRecipeRequest) (domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeOwnerRequired
	}
	return s.CreateRecipe(ctx, ownerID, req.RecipeRequest)
}

// AdminBulkCreate creates each recipe on its own; a failing item does not
// stop the others.
func (s *recipeService) AdminBulkCreate(ctx context.Context, req domain.BulkRecipeRequest) domain.BulkRecipeResponse {
	res := domain.BulkRecipeResponse{
		TotalRequested: len(req.Recipes),
		Created:        []domain.RecipeResponse{},
		Errors:         []domain.BulkRecipeError{},
	}
	for i, item := range req.Recipes {
		created, err := s.AdminCreateRecipe(ctx, item)
		if err != nil {
			msg := domain.MessageFailedCreateRecipe
			if ce, ok := domain.IsClientError(err); ok {
				msg = ce.Message
			} else {
				utils.Logger.Error("bulk recipe create failed", zap.Int("index", i), zap.Error(err))
			}
			res.Errors = append(res.Errors, domain.BulkRecipeError{Index: i, Title: item.Title, Error: msg})
			continue
		}
		res.Created = append(res.Created, created)
	}
	res.TotalCreated = len(res.Created)
	return res
}

func (s *recipeService) assemble(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	var state ViewerState
	if viewerID != nil {
		states, err := s.recipeRepository.GetViewerState(ctx, *viewerID, []uuid.UUID{recipe.ID})
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		state = states[recipe.ID]
	}
	return ToRecipeResponse(*recipe, state), nil
}

func (s *recipeService) toResponses(ctx context.Context, recipes []entities.Recipe, viewerID *uuid.UUID) ([]domain.RecipeResponse, error) {
	states := map[uuid.UUID]ViewerState{}
	if viewerID != nil && len(recipes) > 0 {
		ids := make([]uuid.UUID, 0, len(recipes))
		for _, r := range recipes {
			ids = append(ids, r.ID)
		}
		var err error
		states, err = s.recipeRepository.GetViewerState(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToRecipeResponse(r, states[r.ID]))
	}
	return out, nil
}

func (s *recipeService) toListResponse(ctx context.Context, recipes []entities.Recipe, total int64, page domain.PaginationRequest, viewerID *uuid.UUID) (domain.RecipeListResponse, error) {
	items, err := s.toResponses(ctx, recipes, viewerID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	return domain.RecipeListResponse{
		Recipes:    items,
		Pagination: domain.NewPaginationResponse(page, total),
	}, nil
}
