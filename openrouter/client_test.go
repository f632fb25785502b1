package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(modelsResponse{})
	}))
	defer server.Close()

	client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
	_, err := client.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("HTTP-Referer"))
	assert.Equal(t, "TaskTamer", got.Get("X-Title"))
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"accepted", http.StatusOK, true},
		{"unauthorized", http.StatusUnauthorized, false},
		{"server error", http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/models", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
			assert.Equal(t, tt.want, client.ValidateAPIKey(context.Background()))
		})
	}
}

func TestValidateAPIKeyEmptyKey(t *testing.T) {
	client := NewClient("", time.Second)
	assert.False(t, client.ValidateAPIKey(context.Background()))
}

func TestCreateCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req CompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "openai/gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(CompletionResponse{
			ID:    "gen-1",
			Model: req.Model,
			Choices: []CompletionChoice{{
				Message:      Message{Role: "assistant", Content: "1. First\n2. Second"},
				FinishReason: "stop",
			}},
			Usage: Usage{PromptTokens: 30, CompletionTokens: 12, TotalTokens: 42},
		})
	}))
	defer server.Close()

	client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
	resp, err := client.CreateCompletion(context.Background(), CompletionRequest{
		Model: "openai/gpt-3.5-turbo",
		Messages: []Message{
			{Role: "system", Content: "break it down"},
			{Role: "user", Content: "write the report"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1. First\n2. Second", resp.Choices[0].Message.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
}

func TestCreateCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"insufficient credits","code":402}}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
	_, err := client.CreateCompletion(context.Background(), CompletionRequest{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestCreateCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CompletionResponse{ID: "gen-2"})
	}))
	defer server.Close()

	client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
	_, err := client.CreateCompletion(context.Background(), CompletionRequest{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"openai/gpt-3.5-turbo","name":"GPT-3.5 Turbo","context_length":16385}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", time.Second).WithBaseURL(server.URL)
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "openai/gpt-3.5-turbo", models[0].ID)
	assert.Equal(t, 16385, models[0].ContextLength)
}

func TestParseNumberedList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "clean list",
			content: "1. Gather receipts\n2. Open the spreadsheet\n3. Enter totals",
			want:    []string{"Gather receipts", "Open the spreadsheet", "Enter totals"},
		},
		{
			name:    "chatter around the list",
			content: "Sure! Here you go:\n1. First step\n2. Second step\nGood luck!",
			want:    []string{"First step", "Second step"},
		},
		{
			name:    "indented and spaced numbering",
			content: "  1.   Padded item\n10. Double digit",
			want:    []string{"Padded item", "Double digit"},
		},
		{
			name:    "no list at all",
			content: "I cannot break this down.",
			want:    nil,
		},
		{
			name:    "number with empty item",
			content: "1.\n2. Real item",
			want:    []string{"Real item"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumberedList(tt.content))
		})
	}
}
