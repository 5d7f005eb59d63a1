package dictionary

import (
	"errors"
	"fmt"
	"net/http"
)

// Error definitions for each stage of a lookup. Every error returned by
// Define wraps exactly one of them.
var (
	// ErrRequest is returned when the HTTP call fails or the provider
	// answers with a status other than 200.
	ErrRequest = errors.New("request error")

	// ErrJSON is returned when the response body is not valid JSON.
	ErrJSON = errors.New("json error")

	// ErrExtraction is returned when the response is valid JSON but has no
	// text at candidates[0].content.parts[0].text.
	ErrExtraction = errors.New("json error: dictionary not found")

	// ErrDeserialization is returned when the model text does not decode
	// into a Definition.
	ErrDeserialization = errors.New("decode error")
)

// StatusError reports a non-200 answer from the provider.
type StatusError struct {
	Code int
	// Body holds the start of the response body for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrRequest, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return ErrRequest }

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageRequest         Stage = "request"
	StageJSON            Stage = "json"
	StageExtraction      Stage = "extraction"
	StageDeserialization Stage = "deserialization"
)

// StageOf classifies err. It returns an empty Stage for errors that did not
// come from this package.
func StageOf(err error) Stage {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRequest):
		return StageRequest
	case errors.Is(err, ErrExtraction):
		return StageExtraction
	case errors.Is(err, ErrJSON):
		return StageJSON
	case errors.Is(err, ErrDeserialization):
		return StageDeserialization
	}
	return ""
}
