package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// generateContentAction is the action a model must support to be usable
// as a dictionary.
const generateContentAction = "generateContent"

// Lister handles listing available Gemini models
type Lister struct {
	apiKey  string
	baseURL string
	out     io.Writer
}

// NewLister creates a new model lister writing to out. An empty baseURL
// uses the SDK default endpoint.
func NewLister(apiKey, baseURL string, out io.Writer) *Lister {
	return &Lister{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: baseURL,
		out:     out,
	}
}

// ListAvailableModels prints the models that can generate content
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("Gemini API key not found. Set GEMDICT_API_KEY or GEMINI_API_KEY, or configure gemini.api_key in .gemdict.yaml")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      l.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: l.baseURL},
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var all []*genai.Model
	page, err := client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 100})
	for {
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		page, err = page.Next(ctx)
	}

	PrintModels(l.out, GenerativeModels(all))
	return nil
}

// GenerativeModels returns the sorted names of models that support
// generateContent, without the "models/" prefix.
func GenerativeModels(models []*genai.Model) []string {
	var names []string
	for _, m := range models {
		if m == nil || !slices.Contains(m.SupportedActions, generateContentAction) {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	sort.Strings(names)
	return names
}

// PrintModels writes names as an indented list
func PrintModels(w io.Writer, names []string) {
	fmt.Fprintln(w, "Available Gemini models (use with --model):")
	if len(names) == 0 {
		fmt.Fprintln(w, "  No models supporting generateContent found")
		return
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
