package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		SendOTP(c *fiber.Ctx) error
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateMe(c *fiber.Ctx) error
		ChangePassword(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		EmailExists(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) SendOTP(c *fiber.Ctx) error {
	req := new(domain.SendOTPRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedSendOTP, err)
	}
	if err := h.userService.SendRegisterOTP(c.Context(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedSendOTP, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendOTP)
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRegister, err)
	}
	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRegister, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}
	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedForgotPassword, err)
	}
	if err := h.userService.ForgotPassword(c.Context(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedForgotPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}
	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedResetPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	res, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateUser, err)
	}
	req := new(domain.UpdateProfileRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateUser, err)
	}
	res, err := h.userService.UpdateProfile(c.Context(), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

func (h *userHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedChangePassword, err)
	}
	req := new(domain.ChangePasswordRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedChangePassword, err)
	}
	if err := h.userService.ChangePassword(c.Context(), userID, *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedChangePassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangePassword)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	res, err := h.userService.GetUser(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) EmailExists(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return presenters.HandleError(c, domain.MessageFailedGetUser, domain.BadRequest("email query parameter is required"))
	}
	exists, err := h.userService.EmailExists(c.Context(), email)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, domain.EmailExistsResponse{Exists: exists}, fiber.StatusOK, domain.MessageSuccessGetUser)
}
