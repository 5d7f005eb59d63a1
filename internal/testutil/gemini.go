package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// CatDefinitionJSON is a complete definition as the model would return it
const CatDefinitionJSON = `{"word":"cat","pronunciation":"/kæt/","definition":"a small domesticated animal","examples":["The cat sleeps.","I have a cat."],"image":"cat.png"}`

// FencedCatDefinition wraps CatDefinitionJSON in a ```json fence
const FencedCatDefinition = "```json\n" + CatDefinitionJSON + "\n```"

// GeminiEnvelope builds a generateContent response body carrying text
func GeminiEnvelope(text string) []byte {
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
					"role":  "model",
				},
				"finishReason": "STOP",
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return body
}

// RecordedRequest captures what the fake Gemini server received
type RecordedRequest struct {
	Method string
	Path   string
	Key    string
	Body   []byte
	// BodyErr is set when the request body was not valid JSON.
	BodyErr error
}

// GeminiServer is an httptest server that answers generateContent calls
// with a fixed status and body
type GeminiServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewGeminiServer starts a fake Gemini endpoint that replies with status and
// body to every request. It is closed when the test ends.
func NewGeminiServer(t *testing.T, status int, body []byte) *GeminiServer {
	t.Helper()

	gs := &GeminiServer{}
	gs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload json.RawMessage
		bodyErr := json.NewDecoder(r.Body).Decode(&payload)

		gs.mu.Lock()
		gs.requests = append(gs.requests, RecordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Key:     r.URL.Query().Get("key"),
			Body:    payload,
			BodyErr: bodyErr,
		})
		gs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(gs.Close)
	return gs
}

// Requests returns a copy of the requests received so far
func (gs *GeminiServer) Requests() []RecordedRequest {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]RecordedRequest(nil), gs.requests...)
}
