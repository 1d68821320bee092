package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		GetUnread(c *fiber.Ctx) error
		CountUnread(c *fiber.Ctx) error
		MarkRead(c *fiber.Ctx) error
		MarkAllRead(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
		DeleteAll(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	res, err := h.notificationService.GetNotifications(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) GetUnread(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	res, err := h.notificationService.GetUnread(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) CountUnread(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetNotifications, err)
	}
	return presenters.SuccessResponse(c, domain.UnreadCountResponse{Count: count}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.notificationService.MarkRead(c.Context(), userID, id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}

func (h *notificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAllRead)
}

func (h *notificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.notificationService.Delete(c.Context(), userID, id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteNotification)
}

func (h *notificationHandler) DeleteAll(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	if err := h.notificationService.DeleteAll(c.Context(), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAll)
}
