package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ReadWordList reads words from a file, one per line.
// Blank lines and lines starting with '#' are ignored, surrounding
// whitespace is trimmed and later duplicates of a word (compared after
// Unicode normalisation and case folding) are dropped. The first spelling
// seen is kept.
func ReadWordList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	var words []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}

		key := NormalizeWord(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return words, nil
}

// NormalizeWord returns the comparison key for word: NFC normalised, case
// folded and with inner runs of whitespace collapsed.
func NormalizeWord(word string) string {
	word = norm.NFC.String(word)
	word = strings.Join(strings.Fields(word), " ")
	return cases.Fold().String(word)
}
