package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"google.golang.org/genai"
)

func TestNewLister(t *testing.T) {
	lister := NewLister(" test-api-key ", "", os.Stdout)

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "", &bytes.Buffer{})

	err := lister.ListAvailableModels(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "Gemini API key not found. Set GEMDICT_API_KEY or GEMINI_API_KEY, or configure gemini.api_key in .gemdict.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestGenerativeModels(t *testing.T) {
	models := []*genai.Model{
		{Name: "models/gemini-2.5-flash", SupportedActions: []string{"generateContent", "countTokens"}},
		{Name: "models/text-embedding-004", SupportedActions: []string{"embedContent"}},
		nil,
		{Name: "models/gemini-2.0-flash", SupportedActions: []string{"generateContent"}},
		{Name: "models/aqa"},
	}

	got := GenerativeModels(models)
	want := []string{"gemini-2.0-flash", "gemini-2.5-flash"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerativeModels() = %v, want %v", got, want)
	}
}

func TestPrintModels(t *testing.T) {
	var buf bytes.Buffer
	PrintModels(&buf, []string{"gemini-2.5-flash"})

	want := "Available Gemini models (use with --model):\n  gemini-2.5-flash\n"
	if buf.String() != want {
		t.Errorf("PrintModels() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	PrintModels(&buf, nil)
	if !bytes.Contains(buf.Bytes(), []byte("No models supporting generateContent found")) {
		t.Errorf("PrintModels(nil) = %q", buf.String())
	}
}

func TestListAvailableModels_Paging(t *testing.T) {
	pages := map[string]string{
		"": `{
			"models": [
				{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": ["generateContent", "countTokens"]},
				{"name": "models/text-embedding-004", "supportedGenerationMethods": ["embedContent"]}
			],
			"nextPageToken": "page-2"
		}`,
		"page-2": `{
			"models": [
				{"name": "models/gemini-2.0-flash", "supportedGenerationMethods": ["generateContent"]}
			]
		}`,
	}

	var (
		mu     sync.Mutex
		tokens []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("Expected API key header 'test-key', got '%s'", got)
		}

		token := r.URL.Query().Get("pageToken")
		mu.Lock()
		tokens = append(tokens, token)
		mu.Unlock()

		body, ok := pages[token]
		if !ok {
			http.Error(w, "unknown page token", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	var buf bytes.Buffer
	if err := NewLister("test-key", server.URL, &buf).ListAvailableModels(context.Background()); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}

	want := "Available Gemini models (use with --model):\n  gemini-2.0-flash\n  gemini-2.5-flash\n"
	if buf.String() != want {
		t.Errorf("ListAvailableModels() printed %q, want %q", buf.String(), want)
	}

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(tokens, []string{"", "page-2"}) {
		t.Errorf("Expected requests for pages [\"\" \"page-2\"], got %q", tokens)
	}
}

func TestListAvailableModels_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	var buf bytes.Buffer
	err := NewLister("test-key", server.URL, &buf).ListAvailableModels(context.Background())
	if err == nil {
		t.Fatal("Expected error for forbidden response")
	}
	if !strings.Contains(err.Error(), "failed to list models") {
		t.Errorf("Expected 'failed to list models' error, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output on error, got %q", buf.String())
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	var buf bytes.Buffer
	if err := NewLister(apiKey, "", &buf).ListAvailableModels(context.Background()); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
	t.Log(buf.String())
}
