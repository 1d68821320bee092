// Package ai proxies cooking questions to the external assistant service.
// Calls go through a circuit breaker so a failing upstream is cut off
// instead of tying up request workers.
package ai

import (
	"bytes"
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/internal/utils"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerName = "ai-chat"

type (
	AIService interface {
		Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
	}

	Options struct {
		BaseURL string
		// Timeout bounds a single upstream call.
		Timeout time.Duration
		// FailureThreshold is the number of consecutive failures that opens
		// the breaker.
		FailureThreshold uint32
		// OpenTimeout is how long the breaker stays open before letting a
		// single trial request through.
		OpenTimeout time.Duration
		HTTPClient  *http.Client
	}

	aiService struct {
		baseURL string
		client  *http.Client
		cb      *gobreaker.CircuitBreaker[domain.ChatResponse]
	}

	upstreamRequest struct {
		Question string `json:"question"`
	}
)

func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:          baseURL,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      time.Minute,
	}
}

func NewAIService(opts Options) AIService {
	def := DefaultOptions(opts.BaseURL)
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = def.FailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = def.OpenTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(stateToFloat(gobreaker.StateClosed))

	threshold := opts.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[domain.ChatResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a caller that gave up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utils.Logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &aiService{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		cb:      cb,
	}
}

func (s *aiService) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return domain.ChatResponse{}, domain.BadRequest("question must not be blank")
	}
	if s.baseURL == "" {
		return domain.ChatResponse{}, domain.ErrAIUnavailable
	}

	resp, err := s.cb.Execute(func() (domain.ChatResponse, error) {
		return s.ask(ctx, question)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		case errors.Is(err, context.Canceled):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "canceled").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		utils.Logger.Warn("ai chat failed", zap.Error(err))
		return domain.ChatResponse{}, domain.ErrAIUnavailable
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	return resp, nil
}

func (s *aiService) ask(ctx context.Context, question string) (domain.ChatResponse, error) {
	body, err := json.Marshal(upstreamRequest{Question: question})
	if err != nil {
		return domain.ChatResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return domain.ChatResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("ai request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return domain.ChatResponse{}, fmt.Errorf("ai service returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out domain.ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return domain.ChatResponse{}, fmt.Errorf("decode ai response: %w", err)
	}
	return out, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
