package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/follow"

	"github.com/gofiber/fiber/v2"
)

type (
	FollowHandler interface {
		Follow(c *fiber.Ctx) error
		Unfollow(c *fiber.Ctx) error
		Followers(c *fiber.Ctx) error
		Following(c *fiber.Ctx) error
		IsFollowing(c *fiber.Ctx) error
		Stats(c *fiber.Ctx) error
	}

	followHandler struct {
		followService follow.FollowService
	}
)

func NewFollowHandler(followService follow.FollowService) FollowHandler {
	return &followHandler{followService: followService}
}

func (h *followHandler) Follow(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedFollow, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedFollow, err)
	}
	if err := h.followService.Follow(c.Context(), userID, target); err != nil {
		return presenters.HandleError(c, domain.MessageFailedFollow, err)
	}
	return presenters.SuccessResponse(c, domain.IsFollowingResponse{Following: true}, fiber.StatusOK, domain.MessageSuccessFollow)
}

func (h *followHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUnfollow, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUnfollow, err)
	}
	if err := h.followService.Unfollow(c.Context(), userID, target); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUnfollow, err)
	}
	return presenters.SuccessResponse(c, domain.IsFollowingResponse{Following: false}, fiber.StatusOK, domain.MessageSuccessUnfollow)
}

func (h *followHandler) Followers(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	res, err := h.followService.Followers(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFollowers)
}

func (h *followHandler) Following(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	res, err := h.followService.Following(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFollowing)
}

func (h *followHandler) IsFollowing(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	following, err := h.followService.IsFollowing(c.Context(), userID, target)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, domain.IsFollowingResponse{Following: following}, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *followHandler) Stats(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	res, err := h.followService.Stats(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}
