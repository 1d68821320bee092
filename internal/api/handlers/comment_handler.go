package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/pkg/comment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CommentHandler interface {
		ListComments(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		UpdateComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	commentHandler struct {
		commentService comment.CommentService
		validator      *validator.Validate
	}
)

func NewCommentHandler(commentService comment.CommentService, validator *validator.Validate) CommentHandler {
	return &commentHandler{
		commentService: commentService,
		validator:      validator,
	}
}

func (h *commentHandler) ListComments(c *fiber.Ctx) error {
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	res, err := h.commentService.ListComments(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *commentHandler) AddComment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	recipeID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	req := new(domain.CommentRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	res, err := h.commentService.AddComment(c.Context(), userID, recipeID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddComment)
}

func (h *commentHandler) UpdateComment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	commentID, err := paramUUID(c, "commentId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	req := new(domain.UpdateCommentRequest)
	if err := parseBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	res, err := h.commentService.UpdateComment(c.Context(), userID, commentID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateComment)
}

func (h *commentHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	commentID, err := paramUUID(c, "commentId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	if err := h.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}
