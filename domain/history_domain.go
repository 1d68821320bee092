package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessSaveSearch   = "search saved"
	MessageSuccessGetSearches  = "success get search history"
	MessageSuccessClearSearch  = "search history cleared"
	MessageSuccessDeleteSearch = "search query deleted"

	ErrSearchQueryBlank = NewClientError(http.StatusBadRequest, "search query must not be blank")
)

type (
	SaveSearchRequest struct {
		Query string `json:"query" validate:"required,notblank,max=255"`
	}

	SearchHistoryResponse struct {
		Queries []string `json:"queries"`
	}

	SearchHistoryItem struct {
		ID         string    `json:"id"`
		Query      string    `json:"query"`
		SearchedAt time.Time `json:"searchedAt"`
	}

	SearchStatsResponse struct {
		Count int64 `json:"count"`
	}
)
