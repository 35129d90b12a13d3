package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lexdrill/internal/model"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(3, 1); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %f", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for no answers, got %f", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample: %v", got)
	}
	if got := Resample([]float64{1, 2}, 10); len(got) != 2 {
		t.Fatalf("short series must not be stretched: %v", got)
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 50, 100})
	if line != " +@" {
		t.Fatalf("unexpected sparkline %q", line)
	}
	flat := Sparkline([]float64{5, 5})
	if flat != strings.Repeat(string(sparkChars[len(sparkChars)/2]), 2) {
		t.Fatalf("unexpected flat sparkline %q", flat)
	}
}

func sampleSessions() []model.SessionAggregate {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.SessionAggregate{
		{SessionID: "a", Dictionary: "Animals", Mode: model.Sequential, EndedAt: end, Correct: 1, Incorrect: 1, Total: 2, DurationMs: 60000},
		{SessionID: "b", Dictionary: "Animals", Mode: model.Infinite, EndedAt: end.Add(time.Hour), Correct: 3, Incorrect: 1, Total: 4, DurationMs: 30000},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleSessions()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2 (1 finished)", "Words answered: 6", "Avg accuracy: 62.50%", "Best accuracy: 75.00%", "Time drilled: 1m30s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestRenderHistoryScores(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, sampleSessions()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1/2") {
		t.Fatalf("expected finite score, got:\n%s", out)
	}
	if !strings.Contains(out, "infinite") {
		t.Fatalf("expected mode column, got:\n%s", out)
	}
}

func TestRenderCurveFitsWidth(t *testing.T) {
	sessions := make([]model.SessionAggregate, 100)
	for i := range sessions {
		sessions[i] = model.SessionAggregate{Correct: i % 7, Incorrect: 3}
	}
	var buf bytes.Buffer
	if err := RenderCurve(&buf, sessions, 3, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines[1]) != 40 {
		t.Fatalf("expected sparkline row of 40 columns, got %d (%q)", len(lines[1]), lines[1])
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	if got := TerminalWidth(&bytes.Buffer{}); got != terminalWidthBackup {
		t.Fatalf("expected fallback width, got %d", got)
	}
}

func TestRenderWordTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderWordTable(&buf, []model.WordAggregate{{Word: "perro", Correct: 1, Incorrect: 3}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "25.00%") {
		t.Fatalf("expected accuracy in table:\n%s", buf.String())
	}
}
