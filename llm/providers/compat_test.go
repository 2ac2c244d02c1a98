package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manasdutta04/layr/llm"
)

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			if r.Header.Get("Authorization") == "Bearer good-key" {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusUnauthorized)
			}
			return
		}

		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)
		require.Equal(t, "user", req.Messages[1].Role)
		require.Greater(t, req.MaxTokens, 0)

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: content}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestCompatGeneratePlan(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"title":"Mock Project"}`)
	defer srv.Close()

	p := NewDeepseek(llm.Settings{APIKey: "good-key", BaseURL: srv.URL})

	got, err := p.GeneratePlan(context.Background(), "a todo app", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Mock Project"}`, got)
}

func TestCompatTokenBudgetFollowsPlanSize(t *testing.T) {
	var gotMaxTokens int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMaxTokens = req.MaxTokens
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "{}"}}},
		})
	}))
	defer srv.Close()

	p := NewGrok(llm.Settings{APIKey: "k", BaseURL: srv.URL})

	_, err := p.GeneratePlan(context.Background(), "x", &llm.GenerateOptions{PlanSize: llm.SizeConcise})
	require.NoError(t, err)
	assert.Equal(t, 2500, gotMaxTokens)

	_, err = p.GeneratePlan(context.Background(), "x", &llm.GenerateOptions{PlanSize: llm.SizeDescriptive})
	require.NoError(t, err)
	assert.Equal(t, 8000, gotMaxTokens)
}

func TestCompatErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication failed"},
		{"forbidden", http.StatusForbidden, "authentication failed"},
		{"rate limited", http.StatusTooManyRequests, "rate limit"},
		{"server error", http.StatusInternalServerError, "temporarily unavailable"},
		{"bad gateway", http.StatusBadGateway, "temporarily unavailable"},
		{"timeout", http.StatusGatewayTimeout, "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, "")
			defer srv.Close()

			p := NewKimi(llm.Settings{APIKey: "k", BaseURL: srv.URL})

			_, err := p.GeneratePlan(context.Background(), "x", nil)
			require.Error(t, err)
			assert.True(t, llm.IsProviderError(err), "want *ProviderError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCompatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewDeepseek(llm.Settings{APIKey: "k", BaseURL: srv.URL})

	_, err := p.GeneratePlan(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestCompatValidateAPIKey(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "")
	defer srv.Close()

	p := NewDeepseek(llm.Settings{BaseURL: srv.URL})

	assert.True(t, p.ValidateAPIKey(context.Background(), "good-key"))
	assert.False(t, p.ValidateAPIKey(context.Background(), "bad-key"))
	assert.False(t, p.ValidateAPIKey(context.Background(), ""))
}

func TestCompatRefineTruncatesOversizedInputs(t *testing.T) {
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotLen = len(req.Messages[len(req.Messages)-1].Content)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "refined"}}},
		})
	}))
	defer srv.Close()

	p := NewDeepseek(llm.Settings{APIKey: "k", BaseURL: srv.URL})

	huge := strings.Repeat("a", 200000)
	got, err := p.RefineSection(context.Background(), huge, huge, huge)
	require.NoError(t, err)
	assert.Equal(t, "refined", got)
	// Two bounded contexts plus a bounded refinement plus the prompt
	// scaffolding.
	assert.Less(t, gotLen, 2*llm.MaxRefineSectionLen+llm.MaxRefinePromptLen+2000)
}

func TestO3OrganizationHeader(t *testing.T) {
	var gotOrg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrg = r.Header.Get("OpenAI-Organization")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "{}"}}},
		})
	}))
	defer srv.Close()

	p := NewO3(llm.Settings{APIKey: "k", BaseURL: srv.URL, Organization: "org-123"})

	_, err := p.GeneratePlan(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "org-123", gotOrg)
}

func TestCompatDefaults(t *testing.T) {
	assert.Equal(t, llm.ProviderDeepseek, NewDeepseek(llm.Settings{}).Type())
	assert.Equal(t, llm.OutputStructured, NewDeepseek(llm.Settings{}).Output())
	assert.Contains(t, NewDeepseek(llm.Settings{}).SupportedModels(), "deepseek-chat")
	assert.Contains(t, NewGrok(llm.Settings{}).SupportedModels(), "grok-4")
	assert.Contains(t, NewKimi(llm.Settings{}).SupportedModels(), "kimi-k2-0905")
	assert.Contains(t, NewO3(llm.Settings{}).SupportedModels(), "o3-mini")
}
