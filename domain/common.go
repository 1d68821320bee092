package domain

import (
	"errors"
	"net/http"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalError        = "internal server error"

	ErrParseUUID      = NewClientError(http.StatusBadRequest, "failed to parse UUID")
	ErrUserNotAllowed = NewClientError(http.StatusForbidden, "user not allowed")
	ErrTokenNotFound  = NewClientError(http.StatusUnauthorized, "failed to token not found")
	ErrTokenInvalid   = NewClientError(http.StatusUnauthorized, "token invalid")
	ErrTokenExpired   = NewClientError(http.StatusUnauthorized, "token expired")
)

// ClientError is a failure caused by the caller: bad input, a missing entity,
// an ownership violation or a state conflict. Every other error is treated as
// a server error by the HTTP layer.
type ClientError struct {
	Status  int
	Message string
}

func NewClientError(status int, message string) *ClientError {
	return &ClientError{Status: status, Message: message}
}

func (e *ClientError) Error() string {
	return e.Message
}

func BadRequest(message string) *ClientError {
	return NewClientError(http.StatusBadRequest, message)
}

func IsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type (
	PaginationRequest struct {
		Page  int
		Limit int
	}

	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"totalItems"`
		TotalPages int64 `json:"totalPages"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func (p PaginationRequest) Normalize(defaultLimit, maxLimit int) PaginationRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPaginationResponse(p PaginationRequest, total int64) PaginationResponse {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return PaginationResponse{Page: p.Page, Limit: p.Limit, TotalItems: total, TotalPages: pages}
}
