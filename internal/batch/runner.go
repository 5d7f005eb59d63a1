package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/gemdict/internal/dictionary"
)

// ErrCircuitOpen marks words that were skipped because earlier requests
// kept failing.
var ErrCircuitOpen = errors.New("skipped after repeated request failures")

// DefaultMaxFailures is the number of consecutive request failures that
// stops a run.
const DefaultMaxFailures = 3

// Result is the outcome for one word.
type Result struct {
	Word       string
	Definition *dictionary.Definition
	Err        error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total   int
	Defined int
	Failed  int
	Skipped int
}

// Runner defines words sequentially through a Dictionary.
type Runner struct {
	dict    dictionary.Dictionary
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewRunner creates a Runner. maxFailures is the number of consecutive
// request-stage failures after which remaining words are skipped; values
// below 1 use DefaultMaxFailures. A nil logger discards output.
func NewRunner(dict dictionary.Dictionary, maxFailures int, logger *slog.Logger) *Runner {
	if maxFailures < 1 {
		maxFailures = DefaultMaxFailures
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "batch")
	threshold := uint32(maxFailures)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "gemini",
		// Stay open for the rest of any realistic run.
		Timeout: time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only transport problems say anything about the next call; a
		// badly formatted answer for one word does not.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, dictionary.ErrRequest)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Runner{dict: dict, breaker: breaker, log: log}
}

// Run defines each word in order and returns one Result per word. Each
// word is attempted at most once.
func (r *Runner) Run(ctx context.Context, words []string) ([]Result, Summary) {
	results := make([]Result, 0, len(words))
	summary := Summary{Total: len(words)}

	for i, word := range words {
		res := Result{Word: word}

		if err := ctx.Err(); err != nil {
			res.Err = err
			summary.Skipped++
			results = append(results, res)
			continue
		}

		r.log.Info("defining word",
			slog.Int("index", i+1),
			slog.Int("total", len(words)),
			slog.String("word", word),
		)

		out, err := r.breaker.Execute(func() (interface{}, error) {
			return r.dict.Define(ctx, word)
		})

		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			res.Err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
			summary.Skipped++
		case err != nil:
			res.Err = err
			summary.Failed++
			r.log.Warn("word failed",
				slog.String("word", word),
				slog.String("stage", string(dictionary.StageOf(err))),
				slog.String("error", err.Error()),
			)
		default:
			res.Definition = out.(*dictionary.Definition)
			summary.Defined++
		}

		results = append(results, res)
	}

	r.log.Info("batch complete",
		slog.Int("total", summary.Total),
		slog.Int("defined", summary.Defined),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
	)
	return results, summary
}
