package cli

import (
	"time"

	"codeberg.org/snonux/gemdict/internal/batch"
	"codeberg.org/snonux/gemdict/internal/dictionary"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	BatchFile   string
	ListModels  bool
	Format      string
	MaxFailures int

	// Gemini flags
	Model   string
	BaseURL string
	Timeout time.Duration

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Format:      FormatText,
		MaxFailures: batch.DefaultMaxFailures,
		Model:       dictionary.DefaultModel,
		BaseURL:     dictionary.DefaultBaseURL,
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}
