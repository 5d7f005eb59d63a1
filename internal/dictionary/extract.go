package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// generateContentResponse is the part of the provider envelope we read.
// Text stays raw so a non-string value is reported as missing rather than
// as a type error.
type generateContentResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text json.RawMessage `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// definitionPayload mirrors Definition with pointer fields so that an
// absent or null key can be told apart from an empty value.
type definitionPayload struct {
	Word          *string    `json:"word" validate:"required"`
	Pronunciation *string    `json:"pronunciation" validate:"required"`
	Definition    *string    `json:"definition" validate:"required"`
	Examples      *[]*string `json:"examples" validate:"required"`
	Image         *string    `json:"image" validate:"required"`
}

// definitionKeys is the exact key set of a definition object.
var definitionKeys = map[string]bool{
	"word":          true,
	"pronunciation": true,
	"definition":    true,
	"examples":      true,
	"image":         true,
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Extract pulls the model text out of a generateContent response and
// decodes it into a Definition.
func Extract(raw []byte) (*Definition, error) {
	text, err := modelText(raw)
	if err != nil {
		return nil, err
	}
	return DecodeDefinition(StripFence(text))
}

// modelText follows candidates[0].content.parts[0].text.
func modelText(raw []byte) (string, error) {
	var env generateContentResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", ErrExtraction
	}
	if len(env.Candidates) == 0 || env.Candidates[0].Content == nil || len(env.Candidates[0].Content.Parts) == 0 {
		return "", ErrExtraction
	}

	value := bytes.TrimSpace(env.Candidates[0].Content.Parts[0].Text)
	if len(value) == 0 || value[0] != '"' {
		return "", ErrExtraction
	}

	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return "", ErrExtraction
	}
	return text, nil
}

// StripFence removes a leading ```json or ``` marker and a trailing ```
// marker, then trims surrounding whitespace. Text without fences is only
// trimmed.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	// ```json must go first or the bare marker leaves "json" behind.
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeDefinition decodes text into a Definition. Unknown keys, missing or
// null keys and trailing data are all rejected; no partial result is
// returned.
func DecodeDefinition(text string) (*Definition, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var p definitionPayload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after definition", ErrDeserialization)
	}
	// encoding/json matches keys case-insensitively and lets a repeated key
	// overwrite the first one.
	if err := checkKeys(text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	if err := payloadValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: missing field `%s`", ErrDeserialization, verrs[0].Field())
		}
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	examples := make([]string, len(*p.Examples))
	for i, ex := range *p.Examples {
		if ex == nil {
			return nil, fmt.Errorf("%w: null at examples[%d]", ErrDeserialization, i)
		}
		examples[i] = *ex
	}

	return &Definition{
		Word:          *p.Word,
		Pronunciation: *p.Pronunciation,
		Definition:    *p.Definition,
		Examples:      examples,
		Image:         *p.Image,
	}, nil
}

// checkKeys walks the top-level object in text and rejects any key that is
// not byte-for-byte one of definitionKeys, or that appears twice. text must
// already be known to hold a single JSON object.
func checkKeys(text string) error {
	dec := json.NewDecoder(strings.NewReader(text))
	if _, err := dec.Token(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(definitionKeys))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if !definitionKeys[key] {
			return fmt.Errorf("unknown field %q", key)
		}
		if seen[key] {
			return fmt.Errorf("duplicate field `%s`", key)
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
	}
	return nil
}
