// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// WordPair is one vocabulary entry of a dictionary.
type WordPair struct {
	ID      int64
	Native  string
	Foreign string
	Learned bool
}

// Group is a named set of dictionaries, usually one per language.
type Group struct {
	ID   int64
	Name string
}

// Dictionary is a word list inside a group.
type Dictionary struct {
	ID      int64
	GroupID int64
	Group   string
	Name    string
}

// Direction selects which side of a word pair is asked for.
type Direction string

const (
	NativeToForeign Direction = "native-foreign"
	ForeignToNative Direction = "foreign-native"
)

// Mode selects the scheduling policy of a drill session.
type Mode string

const (
	Sequential Mode = "sequential"
	Random     Mode = "random"
	Infinite   Mode = "infinite"
)

// QuestionStyle selects how the expected word is presented.
type QuestionStyle string

const (
	FullWord QuestionStyle = "full"
	Blanked  QuestionStyle = "blanked"
)

// SessionConfig is fixed for the lifetime of one drill session.
type SessionConfig struct {
	Direction Direction
	Mode      Mode
	Style     QuestionStyle
}

// ParseDirection accepts the CLI and config spelling of a direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case NativeToForeign:
		return NativeToForeign, nil
	case ForeignToNative:
		return ForeignToNative, nil
	}
	return "", fmt.Errorf("unknown direction %q (want %s or %s)", s, NativeToForeign, ForeignToNative)
}

// ParseMode accepts the CLI and config spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Sequential:
		return Sequential, nil
	case Random:
		return Random, nil
	case Infinite:
		return Infinite, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s, %s or %s)", s, Sequential, Random, Infinite)
}

// ParseQuestionStyle accepts the CLI and config spelling of a question style.
func ParseQuestionStyle(s string) (QuestionStyle, error) {
	switch QuestionStyle(strings.ToLower(strings.TrimSpace(s))) {
	case FullWord:
		return FullWord, nil
	case Blanked:
		return Blanked, nil
	}
	return "", fmt.Errorf("unknown question style %q (want %s or %s)", s, FullWord, Blanked)
}

// Validate reports the first invalid field.
func (c SessionConfig) Validate() error {
	if _, err := ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseQuestionStyle(string(c.Style)); err != nil {
		return err
	}
	return nil
}

// TrainingResult is the log entry for the first attempt at a word.
type TrainingResult struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	Correct       bool
}

// SessionSummary is the score and result log of a drill session.
type SessionSummary struct {
	Mode         Mode
	CorrectCount int
	TotalCount   int
	Results      []TrainingResult
	Complete     bool
}

// Percent returns the score in percent. Infinite sessions have no fixed
// total, so ok is false for them.
func (s SessionSummary) Percent() (pct float64, ok bool) {
	if s.Mode == Infinite {
		return 0, false
	}
	if s.TotalCount <= 0 {
		return 0, true
	}
	return float64(s.CorrectCount) / float64(s.TotalCount) * 100, true
}

// SessionRecord captures a finished drill session for the history tables.
type SessionRecord struct {
	ID         string
	Dictionary Dictionary
	Config     SessionConfig
	StartedAt  time.Time
	EndedAt    time.Time
	Correct    int
	Total      int
	Complete   bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Group       string
	Dictionary  string
	Since       *time.Time
	Last        int
	CurveWindow int
	Top         int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  string
	Dictionary string
	Mode       Mode
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	Total      int
	DurationMs int64
}

// WordAggregate aggregates first-attempt outcomes for one expected answer.
type WordAggregate struct {
	Word      string
	Correct   int
	Incorrect int
}
