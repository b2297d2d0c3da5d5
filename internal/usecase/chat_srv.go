package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// ErrChatNotConfigured is returned when no upstream API key is set.
var ErrChatNotConfigured = errors.New("chat assistant is not configured")

const chatSystemPrompt = "You are a helpful assistant for a movie ticket booking site. " +
	"Answer questions about movies, showtimes and bookings briefly and politely. " +
	"If asked about anything unrelated, steer the conversation back to movies."

type ChatService interface {
	// Ask relays the user message to the configured chat completions
	// endpoint and returns the assistant reply. Upstream failures come
	// back as friendly messages; keys and raw upstream errors never
	// reach the client.
	Ask(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error)
}

type chatService struct {
	config *utils.Config
	client *http.Client
	log    *zap.Logger
}

func NewChatService(config *utils.Config, log *zap.Logger) ChatService {
	return &chatService{
		config: config,
		client: &http.Client{Timeout: config.Chat.Timeout},
		log:    log.With(zap.String("service", "chat")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// endpointURL builds the chat completions URL. A base that already
// points at an OpenAI-compatible path is used as-is; otherwise the
// standard path is appended.
func (s *chatService) endpointURL() string {
	base := strings.TrimRight(s.config.Chat.BaseURL, "/")
	if strings.Contains(base, "/openai/") || strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/openai/v1/chat/completions"
}

func (s *chatService) Ask(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error) {
	if s.config.Chat.APIKey == "" {
		return nil, ErrChatNotConfigured
	}

	payload := chatCompletionRequest{
		Model: s.config.Chat.Model,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: req.Message},
		},
		MaxTokens: s.config.Chat.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.Chat.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Error("Chat upstream unreachable", zap.Error(err))
		return &response.ChatResponse{Reply: "The assistant is unavailable right now. Please try again later."}, nil
	}
	defer resp.Body.Close()

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil && resp.StatusCode == http.StatusOK {
		s.log.Error("Chat upstream returned malformed body", zap.Error(err))
		return &response.ChatResponse{Reply: "The assistant is unavailable right now. Please try again later."}, nil
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		s.log.Error("Chat upstream rejected credentials", zap.Int("status", resp.StatusCode))
		return &response.ChatResponse{Reply: "The assistant is misconfigured. Please contact support."}, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired:
		s.log.Warn("Chat upstream throttled", zap.Int("status", resp.StatusCode))
		return &response.ChatResponse{Reply: "The assistant is busy right now. Please try again in a moment."}, nil
	case resp.StatusCode != http.StatusOK:
		msg := ""
		if completion.Error != nil {
			msg = completion.Error.Message
		}
		s.log.Error("Chat upstream error", zap.Int("status", resp.StatusCode), zap.String("upstream_error", msg))
		return &response.ChatResponse{Reply: "The assistant is unavailable right now. Please try again later."}, nil
	}

	if len(completion.Choices) == 0 {
		return &response.ChatResponse{Reply: "I could not come up with an answer. Please try rephrasing."}, nil
	}

	return &response.ChatResponse{Reply: strings.TrimSpace(completion.Choices[0].Message.Content)}, nil
}
