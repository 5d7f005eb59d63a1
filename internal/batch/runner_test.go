package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/gemdict/internal/dictionary"
	"codeberg.org/snonux/gemdict/internal/testutil"
)

// scriptedDictionary answers from a per-word table and records calls.
type scriptedDictionary struct {
	errs  map[string]error
	calls []string
}

func (d *scriptedDictionary) Define(_ context.Context, word string) (*dictionary.Definition, error) {
	d.calls = append(d.calls, word)
	if err, ok := d.errs[word]; ok {
		return nil, err
	}
	return &dictionary.Definition{Word: word, Examples: []string{}}, nil
}

func requestErr(word string) error {
	return fmt.Errorf("%w: dial tcp: %s", dictionary.ErrRequest, word)
}

func TestRunner_AllDefined(t *testing.T) {
	dict := &scriptedDictionary{}
	r := NewRunner(dict, 0, nil)

	results, summary := r.Run(context.Background(), []string{"cat", "dog"})

	assert.Equal(t, Summary{Total: 2, Defined: 2}, summary)
	require.Len(t, results, 2)
	assert.Equal(t, "cat", results[0].Definition.Word)
	assert.Equal(t, "dog", results[1].Definition.Word)
	assert.Equal(t, []string{"cat", "dog"}, dict.calls)
}

func TestRunner_BreakerOpensOnRequestFailures(t *testing.T) {
	dict := &scriptedDictionary{errs: map[string]error{
		"a": requestErr("a"),
		"b": &dictionary.StatusError{Code: http.StatusForbidden},
		"c": requestErr("c"),
	}}
	r := NewRunner(dict, 3, nil)

	results, summary := r.Run(context.Background(), []string{"a", "b", "c", "d", "e"})

	assert.Equal(t, Summary{Total: 5, Failed: 3, Skipped: 2}, summary)
	assert.Equal(t, []string{"a", "b", "c"}, dict.calls, "no calls after the breaker opens")
	for _, res := range results[3:] {
		assert.ErrorIs(t, res.Err, ErrCircuitOpen)
		assert.Nil(t, res.Definition)
	}
	assert.ErrorIs(t, results[1].Err, dictionary.ErrRequest)
}

func TestRunner_ResponseErrorsDoNotTrip(t *testing.T) {
	dict := &scriptedDictionary{errs: map[string]error{
		"a": dictionary.ErrExtraction,
		"b": fmt.Errorf("%w: missing field", dictionary.ErrDeserialization),
		"c": dictionary.ErrExtraction,
		"d": dictionary.ErrExtraction,
	}}
	r := NewRunner(dict, 2, nil)

	_, summary := r.Run(context.Background(), []string{"a", "b", "c", "d", "e"})

	assert.Equal(t, Summary{Total: 5, Defined: 1, Failed: 4}, summary)
	assert.Len(t, dict.calls, 5)
}

func TestRunner_SuccessResetsFailureCount(t *testing.T) {
	dict := &scriptedDictionary{errs: map[string]error{
		"a": requestErr("a"),
		"c": requestErr("c"),
		"e": requestErr("e"),
	}}
	r := NewRunner(dict, 2, nil)

	_, summary := r.Run(context.Background(), []string{"a", "b", "c", "d", "e"})

	assert.Equal(t, Summary{Total: 5, Defined: 2, Failed: 3}, summary)
	assert.Len(t, dict.calls, 5)
}

func TestRunner_CancelledContextSkipsRest(t *testing.T) {
	dict := &scriptedDictionary{}
	r := NewRunner(dict, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, summary := r.Run(ctx, []string{"a", "b"})

	assert.Equal(t, Summary{Total: 2, Skipped: 2}, summary)
	assert.Empty(t, dict.calls)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}

func TestRunner_WithGemini(t *testing.T) {
	srv := testutil.NewGeminiServer(t, http.StatusOK, testutil.GeminiEnvelope(testutil.FencedCatDefinition))
	dict := dictionary.NewGemini(dictionary.Config{APIKey: "k", BaseURL: srv.URL})

	results, summary := NewRunner(dict, 0, nil).Run(context.Background(), []string{"cat", "kitten"})

	assert.Equal(t, Summary{Total: 2, Defined: 2}, summary)
	assert.Equal(t, "cat", results[1].Definition.Word)
	assert.Len(t, srv.Requests(), 2)
}

func TestRunner_WithGeminiRejectedKey(t *testing.T) {
	srv := testutil.NewGeminiServer(t, http.StatusBadRequest, []byte(`{"error":{"status":"INVALID_ARGUMENT"}}`))
	dict := dictionary.NewGemini(dictionary.Config{APIKey: "bad", BaseURL: srv.URL})

	_, summary := NewRunner(dict, 2, nil).Run(context.Background(), []string{"a", "b", "c", "d"})

	assert.Equal(t, Summary{Total: 4, Failed: 2, Skipped: 2}, summary)
	assert.Len(t, srv.Requests(), 2)
}
