package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessAddComment    = "comment added successfully"
	MessageSuccessUpdateComment = "comment updated successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"
	MessageSuccessGetComments   = "success get comments"

	MessageFailedAddComment    = "failed to add comment"
	MessageFailedUpdateComment = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"

	ErrCommentNotFound       = NewClientError(http.StatusNotFound, "comment not found")
	ErrParentCommentNotFound = NewClientError(http.StatusNotFound, "parent comment not found")
	ErrCommentForbidden      = NewClientError(http.StatusForbidden, "you can only modify your own comments")
	ErrCommentBlank          = NewClientError(http.StatusBadRequest, "comment must not be blank")
)

type (
	CommentRequest struct {
		Comment         string  `json:"comment" validate:"required,notblank,max=2000"`
		ParentCommentID *string `json:"parentCommentId" validate:"omitempty,uuid"`
	}

	UpdateCommentRequest struct {
		Comment string `json:"comment" validate:"required,notblank,max=2000"`
	}

	CommentResponse struct {
		ID              string            `json:"id"`
		RecipeID        string            `json:"recipeId"`
		UserID          string            `json:"userId"`
		UserName        string            `json:"userName"`
		UserAvatar      string            `json:"userAvatar,omitempty"`
		Comment         string            `json:"comment"`
		ParentCommentID *string           `json:"parentCommentId"`
		Replies         []CommentResponse `json:"replies,omitempty"`
		CreatedAt       time.Time         `json:"createdAt"`
		UpdatedAt       time.Time         `json:"updatedAt"`
	}
)
