package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLineSeparators(t *testing.T) {
	cases := map[string][2]string{
		"gato\tcat":                 {"gato", "cat"},
		"perro = dog":               {"perro", "dog"},
		"buenos días — good morning": {"buenos días", "good morning"},
		"casa - house":              {"casa", "house"},
		"pan=bread":                 {"pan", "bread"},
		"co-op;cooperative":         {"co-op", "cooperative"},
	}
	for line, want := range cases {
		pair, err := ParseLine(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if pair.Native != want[0] || pair.Foreign != want[1] {
			t.Fatalf("parse %q: got %q/%q", line, pair.Native, pair.Foreign)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{"lonely", "gato\t", " = dog"} {
		if _, err := ParseLine(line); err == nil {
			t.Fatalf("expected error for %q", line)
		}
	}
}

func TestParseSkipsCommentsAndReportsLine(t *testing.T) {
	pairs, err := Parse(strings.NewReader("# animals\n\ngato\tcat\nperro\tdog\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 2 || pairs[1].Foreign != "dog" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}

	_, err = Parse(strings.NewReader("gato\tcat\nbroken\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("# nothing\n\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("sol\tsun\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Native != "sol" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
	if _, err := LoadPairs(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
