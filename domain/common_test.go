package domain

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationRequest(t *testing.T) {
	p := PaginationRequest{Page: 0, Limit: 500}.Normalize(20, 100)
	assert.Equal(t, PaginationRequest{Page: 1, Limit: 100}, p)
	assert.Equal(t, 0, p.Offset())

	p = PaginationRequest{Page: 3, Limit: 0}.Normalize(20, 100)
	assert.Equal(t, 40, p.Offset())

	assert.Equal(t, PaginationResponse{Page: 3, Limit: 20, TotalItems: 41, TotalPages: 3}, NewPaginationResponse(p, 41))
}

func TestClientErrorMatching(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrRecipeNotFound)

	ce, ok := IsClientError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ce.Status)
	assert.ErrorIs(t, wrapped, ErrRecipeNotFound)

	_, ok = IsClientError(errors.New("disk full"))
	assert.False(t, ok)
}
