package dictionary

import (
	"context"
)

// Definition is a parsed dictionary entry for one word.
type Definition struct {
	Word          string   `json:"word"`
	Pronunciation string   `json:"pronunciation"`
	Definition    string   `json:"definition"`
	Examples      []string `json:"examples"`
	Image         string   `json:"image"`
}

// Dictionary looks up a single word.
type Dictionary interface {
	Define(ctx context.Context, word string) (*Definition, error)
}

// Map returns the definition as a plain map keyed by the JSON field names,
// the shape host environments such as syscall/js accept directly.
func (d *Definition) Map() map[string]any {
	examples := make([]any, len(d.Examples))
	for i, e := range d.Examples {
		examples[i] = e
	}
	return map[string]any{
		"word":          d.Word,
		"pronunciation": d.Pronunciation,
		"definition":    d.Definition,
		"examples":      examples,
		"image":         d.Image,
	}
}
