package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cookbook-backend/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_ProxiesQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body upstreamRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "how long to simmer pho broth?", body.Question)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"At least 6 hours","sources":["recipe:123"]}`))
	}))
	defer srv.Close()

	svc := NewAIService(DefaultOptions(srv.URL + "/"))
	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "  how long to simmer pho broth?  "})
	require.NoError(t, err)
	assert.Equal(t, domain.ChatResponse{Answer: "At least 6 hours", Sources: []string{"recipe:123"}}, resp)
}

func TestChat_EmptySourcesAreNotNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"yes"}`))
	}))
	defer srv.Close()

	resp, err := NewAIService(DefaultOptions(srv.URL)).Chat(context.Background(), domain.ChatRequest{Question: "salt?"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Sources)
}

func TestChat_BlankQuestion(t *testing.T) {
	svc := NewAIService(DefaultOptions("http://127.0.0.1:1"))
	_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "   "})
	ce, ok := domain.IsClientError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
}

func TestChat_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "model offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	opts := DefaultOptions(srv.URL)
	opts.FailureThreshold = 3
	opts.OpenTimeout = time.Hour
	svc := NewAIService(opts)

	for i := 0; i < 5; i++ {
		_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "hi"})
		assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestChat_CanceledCallsDoNotOpenBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "model offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	opts := DefaultOptions(srv.URL)
	opts.FailureThreshold = 2
	opts.OpenTimeout = time.Hour
	svc := NewAIService(opts)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := svc.Chat(canceled, domain.ChatRequest{Question: "hi"})
		assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	}
	assert.Equal(t, int32(0), hits.Load())

	// real upstream failures still trip it
	for i := 0; i < 3; i++ {
		_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "hi"})
		assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestChat_NoBaseURL(t *testing.T) {
	_, err := NewAIService(Options{}).Chat(context.Background(), domain.ChatRequest{Question: "hi"})
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}
