package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings is the resolved configuration for one run, merged from flags,
// environment and config file.
type Settings struct {
	APIKey      string        `validate:"required"`
	Model       string        `validate:"required"`
	BaseURL     string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gte=0"`
	Format      string        `validate:"oneof=text json"`
	MaxFailures int           `validate:"gte=1"`
	LogLevel    string        `validate:"oneof=debug info warn warning error"`
	LogFormat   string        `validate:"oneof=text json"`
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// LoadSettings reads the settings from viper and validates them
func LoadSettings() (*Settings, error) {
	s := &Settings{
		APIKey:      GetAPIKey(),
		Model:       strings.TrimSpace(viper.GetString("gemini.model")),
		BaseURL:     strings.TrimSpace(viper.GetString("gemini.base_url")),
		Timeout:     viper.GetDuration("gemini.timeout"),
		Format:      strings.ToLower(viper.GetString("output.format")),
		MaxFailures: viper.GetInt("batch.max_failures"),
		LogLevel:    strings.ToLower(viper.GetString("log.level")),
		LogFormat:   strings.ToLower(viper.GetString("log.format")),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every field and reports the first problem in terms of
// the flag or config key a user would change
func (s *Settings) Validate() error {
	err := settingsValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid settings: %w", err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "APIKey":
		return fmt.Errorf("Gemini API key not found. Set GEMDICT_API_KEY or GEMINI_API_KEY, or configure gemini.api_key in .gemdict.yaml")
	case "Model":
		return fmt.Errorf("invalid --model: a model name is required")
	case "BaseURL":
		return fmt.Errorf("invalid --base-url %q: must be an absolute URL", s.BaseURL)
	case "Timeout":
		return fmt.Errorf("invalid --timeout %s: must not be negative", s.Timeout)
	case "Format":
		return fmt.Errorf("invalid --format %q: must be text or json", s.Format)
	case "MaxFailures":
		return fmt.Errorf("invalid --max-failures %d: must be at least 1", s.MaxFailures)
	case "LogLevel":
		return fmt.Errorf("invalid --log-level %q: must be debug, info, warn or error", s.LogLevel)
	case "LogFormat":
		return fmt.Errorf("invalid --log-format %q: must be text or json", s.LogFormat)
	}
	return fmt.Errorf("invalid setting %s: failed %q check", fe.Field(), fe.Tag())
}
