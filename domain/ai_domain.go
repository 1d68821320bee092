package domain

import "net/http"

var (
	MessageSuccessChat = "success get answer"
	MessageFailedChat  = "failed to get answer"

	ErrAIUnavailable = NewClientError(http.StatusServiceUnavailable, "assistant is temporarily unavailable")
)

type (
	ChatRequest struct {
		Question string `json:"question" validate:"required,notblank,max=2000"`
	}

	ChatResponse struct {
		Answer  string   `json:"answer"`
		Sources []string `json:"sources"`
	}
)
