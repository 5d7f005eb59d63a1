package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-pro"
)

// Config holds the settings for a Gemini dictionary.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	APIVersion string

	// Timeout bounds a whole lookup. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient is used for the request when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultConfig returns a Config for the public Gemini endpoint without an
// API key.
func DefaultConfig() Config {
	return Config{
		Model:      DefaultModel,
		BaseURL:    DefaultBaseURL,
		APIVersion: DefaultAPIVersion,
	}
}

// Endpoint returns the generateContent URL for cfg, API key included.
func Endpoint(cfg Config) string {
	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	return fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		strings.TrimRight(cfg.BaseURL, "/"),
		cfg.APIVersion,
		model,
		url.QueryEscape(cfg.APIKey),
	)
}

// Gemini is a Dictionary backed by the Gemini generateContent API.
type Gemini struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

var _ Dictionary = (*Gemini)(nil)

// NewGemini creates a Gemini dictionary. Empty fields in cfg fall back to
// DefaultConfig and the API key is trimmed.
func NewGemini(cfg Config) *Gemini {
	defaults := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaults.APIVersion
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Gemini{
		cfg:    cfg,
		client: client,
		log:    logger.With("adapter", "gemini"),
	}
}

// Define asks the model to define word and parses its answer.
func (g *Gemini) Define(ctx context.Context, word string) (*Definition, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	log := g.log.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("model", g.cfg.Model),
	)

	prompt := BuildPrompt(word)
	log.DebugContext(ctx, "gemini request",
		slog.String("word", strings.TrimSpace(word)),
		slog.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	raw, err := postJSON(ctx, g.client, Endpoint(g.cfg), newGenerateContentRequest(prompt))
	if err != nil {
		attrs := []any{slog.String("stage", string(StageOf(err))), slog.String("error", err.Error())}
		var se *StatusError
		if errors.As(err, &se) {
			attrs = append(attrs, slog.String("body", se.Body))
		}
		log.WarnContext(ctx, "gemini request failed", attrs...)
		return nil, err
	}

	def, err := Extract(raw)
	if err != nil {
		log.WarnContext(ctx, "gemini response rejected",
			slog.String("stage", string(StageOf(err))),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	log.DebugContext(ctx, "gemini response",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("examples", len(def.Examples)),
	)
	return def, nil
}

// Option adjusts the Config used by DefineWord.
type Option func(*Config)

// WithModel selects the Gemini model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL points requests at another host, e.g. a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) { c.BaseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for the request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithTimeout bounds the lookup.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// DefineWord defines word using a fresh Gemini dictionary, so concurrent
// calls share nothing. It is the entry point exposed to host environments.
func DefineWord(ctx context.Context, word, apiKey string, opts ...Option) (*Definition, error) {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewGemini(cfg).Define(ctx, word)
}
