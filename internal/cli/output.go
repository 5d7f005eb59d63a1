package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/snonux/gemdict/internal/batch"
	"codeberg.org/snonux/gemdict/internal/dictionary"
)

// PrintDefinition writes def to w in the given format
func PrintDefinition(w io.Writer, def *dictionary.Definition, format string) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(def)
	}

	fmt.Fprintf(w, "%s  %s\n", def.Word, def.Pronunciation)
	fmt.Fprintf(w, "  %s\n", def.Definition)
	if len(def.Examples) > 0 {
		fmt.Fprintln(w, "\nExamples:")
		for i, ex := range def.Examples {
			fmt.Fprintf(w, "  %d. %s\n", i+1, ex)
		}
	}
	if def.Image != "" {
		fmt.Fprintf(w, "\nImage: %s\n", def.Image)
	}
	return nil
}

// batchRecord is one JSON line of batch output
type batchRecord struct {
	Word       string                 `json:"word"`
	Definition *dictionary.Definition `json:"definition,omitempty"`
	Stage      string                 `json:"stage,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// PrintBatch writes batch results to w. JSON output is one object per line;
// text output separates entries with blank lines and ends with a summary.
func PrintBatch(w io.Writer, results []batch.Result, summary batch.Summary, format string) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, res := range results {
			rec := batchRecord{Word: res.Word, Definition: res.Definition}
			if res.Err != nil {
				rec.Stage = string(dictionary.StageOf(res.Err))
				rec.Error = res.Err.Error()
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if res.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", res.Word, res.Err)
			continue
		}
		if err := PrintDefinition(w, res.Definition, FormatText); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n=== Batch Summary ===\n")
	fmt.Fprintf(w, "Total words: %d\n", summary.Total)
	fmt.Fprintf(w, "Defined: %d\n", summary.Defined)
	fmt.Fprintf(w, "Failed: %d\n", summary.Failed)
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "Skipped: %d\n", summary.Skipped)
	}
	return nil
}
