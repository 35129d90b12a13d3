// Package session runs one vocabulary drill over a dictionary snapshot.
//
// A Session is a small state machine: it waits for an answer to the current
// question, and either moves on (correct) or keeps the same word for a retry
// (incorrect). Sequential and Random sessions complete once every word was
// answered correctly; Infinite sessions never complete and are abandoned by
// the caller. A Session is not safe for concurrent use.
package session

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/verte-zerg/lexdrill/internal/answer"
	"github.com/verte-zerg/lexdrill/internal/generator"
	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/scheduler"
)

var (
	// ErrEmptyDictionary is returned by Start for an empty word list.
	ErrEmptyDictionary = scheduler.ErrEmptyDictionary
	// ErrSessionComplete is returned by Submit once the session is over.
	ErrSessionComplete = errors.New("session: already complete")
)

// State is the position of a session in its lifecycle.
type State int

const (
	StateAwaitingAnswer State = iota
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Question is the word currently asked.
type Question struct {
	Index    int
	Word     model.WordPair
	Expected string
	// Prompt is what the user sees: the source word, or Template for
	// blanked questions.
	Prompt    string
	Template  string
	WrongOnce bool
}

// Blanked reports whether the question shows a masked word.
func (q Question) Blanked() bool {
	return q.Template != ""
}

// Feedback is the outcome of one submitted answer.
type Feedback struct {
	Correct      bool
	FirstAttempt bool
	Expected     string
	// Word is the answered word; Learned is set on a correct answer so the
	// caller can persist it.
	Word     model.WordPair
	Complete bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for shuffling and masking.
func WithRand(rnd generator.Source) Option {
	return func(s *Session) {
		s.rnd = rnd
	}
}

// WithLogger sets the logger for session events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session drives question/answer cycles for one dictionary.
type Session struct {
	cfg    model.SessionConfig
	rnd    generator.Source
	logger *slog.Logger
	queue  *scheduler.Queue
	masker *generator.Masker
	words  []model.WordPair

	state    State
	question Question
	correct  int
	results  []model.TrainingResult
}

// Start snapshots words and loads the first question.
func Start(words []model.WordPair, cfg model.SessionConfig, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = generator.NewSource()
	}
	queue, err := scheduler.New(words, cfg.Mode, s.rnd)
	if err != nil {
		return nil, err
	}
	s.queue = queue
	s.masker = generator.NewMasker(s.rnd)
	s.words = append([]model.WordPair(nil), words...)
	s.logger.Debug("session started",
		"words", len(words),
		"direction", cfg.Direction,
		"mode", cfg.Mode,
		"style", cfg.Style)
	s.loadQuestion()
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() model.SessionConfig {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Complete reports whether the session has finished.
func (s *Session) Complete() bool {
	return s.state == StateComplete
}

// Question returns the current question. It is the zero Question once the
// session is complete.
func (s *Session) Question() Question {
	return s.question
}

// Words returns the session's copy of the word list, including Learned flags
// set during the session.
func (s *Session) Words() []model.WordPair {
	return append([]model.WordPair(nil), s.words...)
}

// Progress returns how many words are done and the dictionary size. Infinite
// sessions report the number of questions asked instead.
func (s *Session) Progress() (done, total int) {
	if s.cfg.Mode == model.Infinite {
		return len(s.results), len(s.results)
	}
	return s.queue.Len() - s.queue.Pending(), s.queue.Len()
}

// Correct returns the number of words answered right on the first attempt.
func (s *Session) Correct() int {
	return s.correct
}

// Submit checks raw against the current question.
func (s *Session) Submit(raw string) (Feedback, error) {
	if s.state == StateComplete {
		return Feedback{}, ErrSessionComplete
	}
	q := s.question
	ok := answer.Check(q.Expected, q.Template, raw)
	first := !q.WrongOnce
	if first {
		s.results = append(s.results, model.TrainingResult{
			Question:      q.Prompt,
			UserAnswer:    strings.TrimSpace(raw),
			CorrectAnswer: q.Expected,
			Correct:       ok,
		})
	}
	s.logger.Debug("answer checked",
		"index", q.Index,
		"correct", ok,
		"first_attempt", first)

	fb := Feedback{
		Correct:      ok,
		FirstAttempt: first,
		Expected:     q.Expected,
		Word:         s.words[q.Index],
	}
	if !ok {
		s.question.WrongOnce = true
		return fb, nil
	}

	if first {
		s.correct++
	}
	s.words[q.Index].Learned = true
	fb.Word = s.words[q.Index]
	if refill := s.queue.Report(q.Index, true); refill.Refilled {
		s.logRefill(refill)
	}
	s.loadQuestion()
	fb.Complete = s.state == StateComplete
	return fb, nil
}

// Summary returns the score and result log so far.
func (s *Session) Summary() model.SessionSummary {
	total := s.queue.Len()
	if s.cfg.Mode == model.Infinite {
		total = len(s.results)
	}
	return model.SessionSummary{
		Mode:         s.cfg.Mode,
		CorrectCount: s.correct,
		TotalCount:   total,
		Results:      append([]model.TrainingResult(nil), s.results...),
		Complete:     s.state == StateComplete,
	}
}

func (s *Session) loadQuestion() {
	if s.queue.Exhausted() {
		s.state = StateComplete
		s.question = Question{}
		s.logger.Debug("session complete", "correct", s.correct, "total", s.queue.Len())
		return
	}
	if refill := s.queue.RefillIfNeeded(); refill.Refilled {
		s.logRefill(refill)
	}
	idx, word, ok := s.queue.Peek()
	if !ok {
		s.state = StateComplete
		s.question = Question{}
		return
	}

	q := Question{Index: idx, Word: word}
	source := word.Foreign
	q.Expected = word.Native
	if s.cfg.Direction == model.NativeToForeign {
		source = word.Native
		q.Expected = word.Foreign
	}
	q.Prompt = source
	if s.cfg.Style == model.Blanked {
		q.Template = s.masker.Mask(q.Expected)
		q.Prompt = q.Template
	}
	s.question = q
	s.state = StateAwaitingAnswer
	s.logger.Debug("question loaded", "index", idx, "blanked", q.Blanked())
}

func (s *Session) logRefill(r scheduler.Refill) {
	s.logger.Debug("queue refilled", "size", r.Size, "reset", r.Reset)
}
