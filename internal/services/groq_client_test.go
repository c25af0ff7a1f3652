package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
)

func newTestGroqClient(t *testing.T, baseURL string) GroqClient {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	client, err := NewGroqClient(config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "llama-3.3-70b-versatile",
		Timeout: 5 * time.Second,
	}, log)
	if err != nil {
		t.Fatalf("client init: %v", err)
	}
	return client
}

func TestGroqClient_SendsPromptAndReturnsContent(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "the reply"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	got, err := client.Complete(context.Background(), "hello", CompletionOptions{Temperature: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the reply" {
		t.Fatalf("unexpected content %q", got)
	}
	if gotPath != "/openai/v1/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["temperature"] != 0.5 {
		t.Fatalf("expected temperature in request, got %v", gotBody["temperature"])
	}
	if _, ok := gotBody["response_format"]; ok {
		t.Fatalf("response_format must be absent without JSON mode")
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected a single user message, got %v", gotBody["messages"])
	}
}

func TestGroqClient_JSONModeRequestsJSONObject(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "{}"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	if _, err := client.Complete(context.Background(), "p", CompletionOptions{JSONMode: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rf, _ := gotBody["response_format"].(map[string]any)
	if rf == nil || rf["type"] != "json_object" {
		t.Fatalf("expected response_format json_object, got %v", gotBody["response_format"])
	}
}

func TestGroqClient_NonSuccessStatusIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "p", CompletionOptions{})
	if !apierr.Is(err, apierr.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGroqClient_EmptyChoicesIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "p", CompletionOptions{})
	if !apierr.Is(err, apierr.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGroqClient_RequiresAPIKey(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	if _, err := NewGroqClient(config.GroqConfig{}, log); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
