// Package scheduler decides which word a drill session asks next.
package scheduler

import (
	"errors"

	"github.com/verte-zerg/lexdrill/internal/generator"
	"github.com/verte-zerg/lexdrill/internal/model"
)

// RepeatCap is how many correct answers a word collects in Infinite mode
// before it leaves the pool until a full refill.
const RepeatCap = 2

// ErrEmptyDictionary is returned when a queue is built from no words.
var ErrEmptyDictionary = errors.New("scheduler: dictionary has no words")

// Queue holds the pending words of one session. Words are addressed by their
// position in the original snapshot, so equal word pairs are tracked apart.
type Queue struct {
	mode    model.Mode
	rnd     generator.Source
	all     []model.WordPair
	pending []int
	repeats []int
}

// Refill describes what RefillIfNeeded did.
type Refill struct {
	Refilled bool
	// Reset is set when every word had reached RepeatCap and the full
	// word list was put back with counters cleared.
	Reset bool
	Size  int
}

// New copies words and builds the initial queue for mode.
func New(words []model.WordPair, mode model.Mode, rnd generator.Source) (*Queue, error) {
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}
	if rnd == nil {
		rnd = generator.NewSource()
	}
	q := &Queue{
		mode:    mode,
		rnd:     rnd,
		all:     append([]model.WordPair(nil), words...),
		repeats: make([]int, len(words)),
	}
	q.pending = q.allIndices()
	if mode == model.Random || mode == model.Infinite {
		generator.Shuffle(q.rnd, q.pending)
	}
	return q, nil
}

// Mode returns the scheduling mode.
func (q *Queue) Mode() model.Mode {
	return q.mode
}

// Len returns the number of words in the snapshot.
func (q *Queue) Len() int {
	return len(q.all)
}

// Pending returns the number of queued entries.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Word returns the snapshot word at index.
func (q *Queue) Word(index int) model.WordPair {
	return q.all[index]
}

// RepeatCount returns how often the word at index was answered correctly in
// the current cycle.
func (q *Queue) RepeatCount(index int) int {
	return q.repeats[index]
}

// Order returns a copy of the pending indices, head first.
func (q *Queue) Order() []int {
	return append([]int(nil), q.pending...)
}

// Peek returns the head of the queue without removing it.
func (q *Queue) Peek() (int, model.WordPair, bool) {
	if len(q.pending) == 0 {
		return -1, model.WordPair{}, false
	}
	idx := q.pending[0]
	return idx, q.all[idx], true
}

// Report records the outcome of an answer for the word at index. Wrong
// answers leave the queue untouched so the word is retried. An Infinite queue
// emptied by a correct answer is refilled right away.
func (q *Queue) Report(index int, correct bool) Refill {
	if !correct || index < 0 || index >= len(q.all) {
		return Refill{}
	}
	q.repeats[index]++
	q.remove(index)

	switch q.mode {
	case model.Random:
		generator.Shuffle(q.rnd, q.pending)
	case model.Infinite:
		if len(q.pending) == 0 {
			return q.RefillIfNeeded()
		}
		generator.Shuffle(q.rnd, q.pending)
	}
	return Refill{}
}

// Exhausted reports whether a finite session has run out of words.
func (q *Queue) Exhausted() bool {
	return len(q.pending) == 0 && q.mode != model.Infinite
}

// RefillIfNeeded rebuilds an empty Infinite queue from the words still below
// RepeatCap, or from every word once all of them reached it.
func (q *Queue) RefillIfNeeded() Refill {
	if q.mode != model.Infinite || len(q.pending) > 0 {
		return Refill{}
	}
	candidates := make([]int, 0, len(q.all))
	for i, n := range q.repeats {
		if n < RepeatCap {
			candidates = append(candidates, i)
		}
	}
	reset := false
	if len(candidates) == 0 {
		candidates = q.allIndices()
		for i := range q.repeats {
			q.repeats[i] = 0
		}
		reset = true
	}
	generator.Shuffle(q.rnd, candidates)
	q.pending = candidates
	return Refill{Refilled: true, Reset: reset, Size: len(candidates)}
}

func (q *Queue) remove(index int) {
	for i, idx := range q.pending {
		if idx == index {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *Queue) allIndices() []int {
	out := make([]int, len(q.all))
	for i := range out {
		out[i] = i
	}
	return out
}
