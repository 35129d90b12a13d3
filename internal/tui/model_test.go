package tui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/session"
)

type fakeRecorder struct {
	learned  []int64
	sessions []model.SessionRecord
	results  [][]model.TrainingResult
	err      error
}

func (f *fakeRecorder) SetLearned(_ context.Context, id int64, learned bool) error {
	if learned {
		f.learned = append(f.learned, id)
	}
	return f.err
}

func (f *fakeRecorder) InsertSession(_ context.Context, rec model.SessionRecord, results []model.TrainingResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sessions = append(f.sessions, rec)
	f.results = append(f.results, results)
	return "session-1", nil
}

func newTestModel(t *testing.T, cfg model.SessionConfig, rec *fakeRecorder) *Model {
	t.Helper()
	words := []model.WordPair{
		{ID: 1, Native: "gato", Foreign: "cat"},
		{ID: 2, Native: "perro", Foreign: "dog"},
	}
	sess, err := session.Start(words, cfg, session.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewModel(sess, Options{
		Dictionary: model.Dictionary{ID: 7, Group: "Spanish", Name: "Animals"},
		Store:      rec,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
}

func typeAnswer(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

var sequential = model.SessionConfig{Direction: model.NativeToForeign, Mode: model.Sequential, Style: model.FullWord}

func TestQuestionViewAndFooter(t *testing.T) {
	m := newTestModel(t, sequential, &fakeRecorder{})
	out := m.View()
	for _, want := range []string{"Animals", "Translate:", "Word 1 of 2 | Correct: 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestWrongAnswerShowsCorrection(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, sequential, rec)
	typeAnswer(m, "dog")
	if !strings.Contains(m.View(), "Correct answer: cat") {
		t.Fatalf("expected correction in view:\n%s", m.View())
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after submit")
	}
	typeAnswer(m, "cat")
	if strings.Contains(m.View(), "Correct answer:") {
		t.Fatalf("correction must clear after a correct answer")
	}
	if !strings.Contains(m.View(), "Word 2 of 2 | Correct: 0") {
		t.Fatalf("retry must not count as correct:\n%s", m.View())
	}
	if len(rec.learned) != 1 || rec.learned[0] != 1 {
		t.Fatalf("expected word 1 marked learned, got %v", rec.learned)
	}
}

func TestCompleteSessionIsSaved(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, sequential, rec)
	typeAnswer(m, "cat")
	typeAnswer(m, " DOG ")

	if !m.sess.Complete() {
		t.Fatalf("expected session complete")
	}
	if len(rec.sessions) != 1 {
		t.Fatalf("expected one saved session, got %d", len(rec.sessions))
	}
	saved := rec.sessions[0]
	if !saved.Complete || saved.Correct != 2 || saved.Total != 2 || saved.Dictionary.ID != 7 {
		t.Fatalf("unexpected record: %+v", saved)
	}
	if !saved.EndedAt.After(saved.StartedAt) {
		t.Fatalf("expected end after start: %+v", saved)
	}
	if len(rec.results[0]) != 2 {
		t.Fatalf("expected 2 results, got %d", len(rec.results[0]))
	}

	out := m.View()
	if !strings.Contains(out, "Result: 2 of 2 (100%)") {
		t.Fatalf("expected result line in view:\n%s", out)
	}
	if !strings.Contains(out, "gato → cat") {
		t.Fatalf("expected result list in view:\n%s", out)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command on enter")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(rec.sessions) != 1 {
		t.Fatalf("session must be saved only once")
	}
}

func TestAbandonedSequentialIsNotSaved(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, sequential, rec)
	typeAnswer(m, "cat")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if len(rec.sessions) != 0 {
		t.Fatalf("unfinished drill must not be saved")
	}
}

func TestInfiniteSavedOnQuit(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := model.SessionConfig{Direction: model.ForeignToNative, Mode: model.Infinite, Style: model.FullWord}
	m := newTestModel(t, cfg, rec)
	out := m.View()
	if !strings.Contains(out, "(Infinite)") {
		t.Fatalf("expected infinite marker in title:\n%s", out)
	}
	if strings.Contains(out, "Word 1 of") {
		t.Fatalf("infinite drills have no progress footer:\n%s", out)
	}

	expected := m.sess.Question().Expected
	typeAnswer(m, expected)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(rec.sessions) != 1 {
		t.Fatalf("expected infinite drill saved, got %d", len(rec.sessions))
	}
	if rec.sessions[0].Complete {
		t.Fatalf("infinite drill must be stored as incomplete")
	}
	if SummaryLine(m.Summary()) != "Correct: 1 of 1 answered" {
		t.Fatalf("unexpected summary line %q", SummaryLine(m.Summary()))
	}
}

func TestInfiniteWithoutAnswersIsNotSaved(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := model.SessionConfig{Direction: model.NativeToForeign, Mode: model.Infinite, Style: model.FullWord}
	m := newTestModel(t, cfg, rec)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(rec.sessions) != 0 {
		t.Fatalf("empty infinite drill must not be saved")
	}
}

func TestBlankedTitleAndLabel(t *testing.T) {
	cfg := model.SessionConfig{Direction: model.NativeToForeign, Mode: model.Random, Style: model.Blanked}
	m := newTestModel(t, cfg, &fakeRecorder{})
	out := m.View()
	for _, want := range []string{"(Random)", "[_B_]", "Fill in:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestSaveErrorKeepsRunning(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel(t, sequential, rec)
	typeAnswer(m, "cat")
	typeAnswer(m, "dog")
	if m.saved {
		t.Fatalf("failed save must not be marked saved")
	}
	if !strings.Contains(m.View(), "Result: 2 of 2") {
		t.Fatalf("expected result screen despite save error")
	}
}

func TestWindowSizeLaysOut(t *testing.T) {
	m := newTestModel(t, sequential, &fakeRecorder{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	out := m.View()
	if got := len(strings.Split(out, "\n")); got != 20 {
		t.Fatalf("expected 20 lines, got %d", got)
	}
}
