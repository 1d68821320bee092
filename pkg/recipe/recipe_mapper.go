package recipe

import (
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"math"
	"strings"
)

// RoundRating rounds an average to two decimals.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

func ToRecipeResponse(r entities.Recipe, state ViewerState) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:                        r.ID.String(),
		Title:                     r.Title,
		ImageURL:                  r.ImageURL,
		Servings:                  r.Servings,
		CookingTime:               r.CookingTime,
		UserID:                    r.UserID.String(),
		LikesCount:                r.LikesCount,
		BookmarksCount:            r.BookmarksCount,
		RatingsCount:              r.RatingsCount,
		AverageRating:             r.AverageRating,
		CommentsCount:             r.CommentsCount,
		IsLikedByCurrentUser:      state.Liked,
		IsBookmarkedByCurrentUser: state.Bookmarked,
		UserRating:                state.Rating,
		Ingredients:               make([]domain.IngredientResponse, 0, len(r.Ingredients)),
		Steps:                     make([]domain.StepResponse, 0, len(r.Steps)),
		CreatedAt:                 r.CreatedAt,
		UpdatedAt:                 r.UpdatedAt,
	}
	if r.User != nil {
		res.UserName = r.User.FullName
		res.UserAvatar = r.User.AvatarURL
	}

	for _, ing := range r.Ingredients {
		res.Ingredients = append(res.Ingredients, domain.IngredientResponse{
			ID:       ing.ID.String(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for _, step := range r.Steps {
		s := domain.StepResponse{
			ID:          step.ID.String(),
			StepNumber:  step.StepNumber,
			Title:       step.Title,
			Description: step.Description,
			Images:      make([]domain.StepImageResponse, 0, len(step.Images)),
		}
		for _, img := range step.Images {
			s.Images = append(s.Images, domain.StepImageResponse{
				ID:          img.ID.String(),
				ImageURL:    img.ImageURL,
				OrderNumber: img.OrderNumber,
			})
		}
		res.Steps = append(res.Steps, s)
	}
	return res
}

func toChildEntities(req domain.RecipeRequest) ([]entities.Ingredient, []entities.RecipeStep) {
	ingredients := make([]entities.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, entities.Ingredient{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: strings.TrimSpace(ing.Quantity),
			Unit:     strings.TrimSpace(ing.Unit),
		})
	}

	steps := make([]entities.RecipeStep, 0, len(req.Steps))
	for i, st := range req.Steps {
		number := st.StepNumber
		if number <= 0 {
			number = i + 1
		}
		step := entities.RecipeStep{
			StepNumber:  number,
			Title:       strings.TrimSpace(st.Title),
			Description: st.Description,
		}
		for j, img := range st.Images {
			order := img.OrderNumber
			if order <= 0 {
				order = j + 1
			}
			step.Images = append(step.Images, entities.StepImage{
				ImageURL:    img.ImageURL,
				OrderNumber: order,
			})
		}
		steps = append(steps, step)
	}
	return ingredients, steps
}

// normalizeNames lower-cases, trims and de-duplicates ingredient names.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
