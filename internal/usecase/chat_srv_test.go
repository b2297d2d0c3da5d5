package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-booking/internal/dto/request"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chatConfig(baseURL string) *utils.Config {
	return &utils.Config{
		Chat: utils.ChatConfig{
			APIKey:    "test-key",
			BaseURL:   baseURL,
			Model:     "gpt-4o-mini",
			MaxTokens: 100,
			Timeout:   2 * time.Second,
		},
	}
}

func TestChatEndpointURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://api.groq.com", "https://api.groq.com/openai/v1/chat/completions"},
		{"https://api.groq.com/", "https://api.groq.com/openai/v1/chat/completions"},
		{"https://api.groq.com/openai/v1/chat/completions", "https://api.groq.com/openai/v1/chat/completions"},
		{"https://example.com/v1/chat/completions", "https://example.com/v1/chat/completions"},
	}

	for _, tt := range tests {
		svc := NewChatService(chatConfig(tt.base), zap.NewNop()).(*chatService)
		assert.Equal(t, tt.want, svc.endpointURL())
	}
}

func TestChatAskRelaysMessage(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  Showtimes are at 7pm.  "}},
			},
		})
	}))
	defer server.Close()

	svc := NewChatService(chatConfig(server.URL+"/openai/v1/chat/completions"), zap.NewNop())

	resp, err := svc.Ask(context.Background(), &request.ChatRequest{Message: "When is the next show?"})

	require.NoError(t, err)
	assert.Equal(t, "Showtimes are at 7pm.", resp.Reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotPayload["model"])

	messages := gotPayload["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "When is the next show?", messages[1].(map[string]any)["content"])
}

func TestChatAskMapsUpstreamFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantReply string
	}{
		{"bad credentials", http.StatusUnauthorized, "The assistant is misconfigured. Please contact support."},
		{"forbidden", http.StatusForbidden, "The assistant is misconfigured. Please contact support."},
		{"throttled", http.StatusTooManyRequests, "The assistant is busy right now. Please try again in a moment."},
		{"quota exceeded", http.StatusPaymentRequired, "The assistant is busy right now. Please try again in a moment."},
		{"upstream error", http.StatusInternalServerError, "The assistant is unavailable right now. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "secret upstream detail"},
				})
			}))
			defer server.Close()

			svc := NewChatService(chatConfig(server.URL+"/openai/v1/chat/completions"), zap.NewNop())

			resp, err := svc.Ask(context.Background(), &request.ChatRequest{Message: "hi"})

			require.NoError(t, err)
			assert.Equal(t, tt.wantReply, resp.Reply)
			assert.NotContains(t, resp.Reply, "secret upstream detail")
		})
	}
}

func TestChatAskWithoutKey(t *testing.T) {
	cfg := chatConfig("https://api.groq.com")
	cfg.Chat.APIKey = ""
	svc := NewChatService(cfg, zap.NewNop())

	_, err := svc.Ask(context.Background(), &request.ChatRequest{Message: "hi"})

	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

func TestChatAskEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	svc := NewChatService(chatConfig(server.URL+"/openai/v1/chat/completions"), zap.NewNop())

	resp, err := svc.Ask(context.Background(), &request.ChatRequest{Message: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "I could not come up with an answer. Please try rephrasing.", resp.Reply)
}
