// Package generator builds blanked questions and shuffles word queues.
package generator

import (
	"math/rand"
	"time"
)

// Blank replaces a hidden letter in a blanked question.
const Blank = '_'

// maxBlanks is the number of letters hidden in words longer than shortWordLen.
const (
	maxBlanks    = 3
	shortWordLen = 3
)

// Source is the random draw used for shuffling and blank selection.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source seeded with the current time.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle permutes items in place with Fisher-Yates.
func Shuffle[T any](rnd Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Masker hides letters of a word behind Blank.
type Masker struct {
	rnd Source
}

// NewMasker returns a Masker drawing from rnd. A nil rnd uses NewSource.
func NewMasker(rnd Source) *Masker {
	if rnd == nil {
		rnd = NewSource()
	}
	return &Masker{rnd: rnd}
}

// Mask returns word with some letters replaced by Blank. The first letter is
// always kept.
func (m *Masker) Mask(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	for _, pos := range m.MaskPositions(word) {
		runes[pos] = Blank
	}
	return string(runes)
}

// MaskPositions returns the rune positions Mask hides, in draw order.
// Words of up to three runes lose everything but the first rune; longer words
// lose three positions chosen uniformly without replacement.
func (m *Masker) MaskPositions(word string) []int {
	n := len([]rune(word))
	if n <= 1 {
		return nil
	}
	available := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		available = append(available, i)
	}
	if n <= shortWordLen {
		return available
	}

	count := min(maxBlanks, len(available))
	picked := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := m.rnd.Intn(len(available))
		picked = append(picked, available[idx])
		available = append(available[:idx], available[idx+1:]...)
	}
	return picked
}
