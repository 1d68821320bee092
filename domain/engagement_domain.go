package domain

import (
	"net/http"
	"time"
)

var (
	MessageRecipeLiked          = "recipe liked"
	MessageRecipeAlreadyLiked   = "recipe already liked"
	MessageRecipeUnliked        = "recipe unliked"
	MessageRecipeNotLiked       = "recipe was not liked"
	MessageRecipeBookmarked     = "recipe bookmarked"
	MessageRecipeAlreadySaved   = "recipe already bookmarked"
	MessageRecipeUnbookmarked   = "bookmark removed"
	MessageRecipeNotBookmarked  = "recipe was not bookmarked"
	MessageSuccessRateRecipe    = "recipe rated successfully"
	MessageSuccessDeleteRating  = "rating deleted successfully"
	MessageSuccessGetRating     = "success get rating"
	MessageSuccessGetRatingList = "success get ratings"

	MessageFailedLike     = "failed to like recipe"
	MessageFailedBookmark = "failed to bookmark recipe"
	MessageFailedRate     = "failed to rate recipe"
	MessageFailedGetStats = "failed to get rating stats"

	ErrRatingScoreInvalid = NewClientError(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrRatingNotFound     = NewClientError(http.StatusNotFound, "you have not rated this recipe")
)

type (
	LikeResponse struct {
		Liked      bool   `json:"liked"`
		LikesCount int    `json:"likesCount"`
		Message    string `json:"message,omitempty"`
	}

	BookmarkResponse struct {
		Bookmarked     bool   `json:"bookmarked"`
		BookmarksCount int    `json:"bookmarksCount"`
		Message        string `json:"message,omitempty"`
	}

	RateRequest struct {
		Rating int `json:"rating" validate:"required,min=1,max=5"`
	}

	RatingResponse struct {
		Rating        int     `json:"rating"`
		AverageRating float64 `json:"averageRating"`
		RatingsCount  int     `json:"ratingsCount"`
	}

	UserRatingResponse struct {
		Rating *int `json:"rating"`
	}

	RatingStatsResponse struct {
		AverageRating float64       `json:"averageRating"`
		RatingsCount  int           `json:"ratingsCount"`
		Distribution  map[int]int64 `json:"distribution"`
	}

	RatingItemResponse struct {
		ID         string    `json:"id"`
		UserID     string    `json:"userId"`
		UserName   string    `json:"userName"`
		UserAvatar string    `json:"userAvatar,omitempty"`
		Rating     int       `json:"rating"`
		CreatedAt  time.Time `json:"createdAt"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	RecipeIDsResponse struct {
		RecipeIDs []string `json:"recipeIds"`
	}
)
