// Package wordlist loads word pairs from text files.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// ErrEmpty is returned when a file holds no word pairs.
var ErrEmpty = errors.New("word list is empty")

// separators are tried in order; the first one present splits the line.
var separators = []string{"\t", " = ", " — ", " – ", " - ", "=", ";"}

// LoadPairs reads one "native<sep>foreign" pair per line from path.
func LoadPairs(path string) ([]model.WordPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads word pairs from r. Blank lines and lines starting with '#' are
// skipped.
func Parse(r io.Reader) ([]model.WordPair, error) {
	var pairs []model.WordPair
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pair, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrEmpty
	}
	return pairs, nil
}

// ParseLine splits a single "native<sep>foreign" line.
func ParseLine(line string) (model.WordPair, error) {
	for _, sep := range separators {
		native, foreign, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		native = strings.TrimSpace(native)
		foreign = strings.TrimSpace(foreign)
		if native == "" || foreign == "" {
			return model.WordPair{}, fmt.Errorf("both words must be filled in %q", line)
		}
		return model.WordPair{Native: native, Foreign: foreign}, nil
	}
	return model.WordPair{}, fmt.Errorf("no separator in %q", line)
}
