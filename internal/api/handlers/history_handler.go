package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/history"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	HistoryHandler interface {
		GetSearchHistory(c *fiber.Ctx) error
		SaveSearch(c *fiber.Ctx) error
		ClearSearchHistory(c *fiber.Ctx) error
		DeleteSearchQuery(c *fiber.Ctx) error
		SearchStats(c *fiber.Ctx) error
	}

	historyHandler struct {
		historyService history.HistoryService
		validator      *validator.Validate
	}
)

func NewHistoryHandler(historyService history.HistoryService, validator *validator.Validate) HistoryHandler {
	return &historyHandler{
		historyService: historyService,
		validator:      validator,
	}
}

// GetSearchHistory returns distinct recent queries, or every entry with
// timestamps when ?all=true.
func (h *historyHandler) GetSearchHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}

	if c.QueryBool("all", false) {
		items, err := h.historyService.AllSearches(c.Context(), userID)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetSearches)
	}

	queries, err := h.historyService.RecentSearches(c.Context(), userID, queryInt(c, "limit"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, domain.SearchHistoryResponse{Queries: queries}, fiber.StatusOK, domain.MessageSuccessGetSearches)
}

func (h *historyHandler) SaveSearch(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	req := new(domain.SaveSearchRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.historyService.SaveSearch(c.Context(), userID, req.Query); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessSaveSearch)
}

func (h *historyHandler) ClearSearchHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.historyService.ClearSearches(c.Context(), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearSearch)
}

func (h *historyHandler) DeleteSearchQuery(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.historyService.DeleteSearchQuery(c.Context(), userID, c.Query("q")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteSearch)
}

func (h *historyHandler) SearchStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	count, err := h.historyService.CountSearches(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, domain.SearchStatsResponse{Count: count}, fiber.StatusOK, domain.MessageSuccessGetSearches)
}
