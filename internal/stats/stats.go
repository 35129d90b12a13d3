// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/lexdrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of first attempts that were correct.
func Accuracy(correct, incorrect int) float64 {
	den := correct + incorrect
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// SessionAccuracy is Accuracy over a stored session's result log.
func SessionAccuracy(s model.SessionAggregate) float64 {
	return Accuracy(s.Correct, s.Incorrect)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Resample stretches or averages values down to width points.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalAcc, bestAcc float64
	var answered, completed int
	var elapsed time.Duration
	for _, s := range sessions {
		acc := SessionAccuracy(s)
		totalAcc += acc
		bestAcc = math.Max(bestAcc, acc)
		answered += s.Correct + s.Incorrect
		if s.Mode != model.Infinite && s.Total > 0 && s.Correct+s.Incorrect >= s.Total {
			completed++
		}
		elapsed += time.Duration(s.DurationMs) * time.Millisecond
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d finished)", len(sessions), completed),
		fmt.Sprintf("Words answered: %d", answered),
		fmt.Sprintf("Avg accuracy: %.2f%%", totalAcc/count*100),
		fmt.Sprintf("Best accuracy: %.2f%%", bestAcc*100),
		fmt.Sprintf("Time drilled: %s", elapsed.Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints one row per session, oldest first.
func RenderHistory(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Date", "Dictionary", "Mode", "Score", "Accuracy", "Time"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Dictionary,
			string(s.Mode),
			scoreLabel(s),
			fmt.Sprintf("%.1f%%", SessionAccuracy(s)*100),
			(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second).String(),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{3: true, 4: true, 5: true})
}

func scoreLabel(s model.SessionAggregate) string {
	if s.Mode == model.Infinite {
		return fmt.Sprintf("%d", s.Correct)
	}
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}

// RenderCurve prints the moving-average accuracy as a sparkline fitted to
// width columns. A width of zero uses the terminal width.
func RenderCurve(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		accs[i] = SessionAccuracy(s) * 100
	}
	accs = MovingAverage(accs, window)
	if width <= 0 {
		width = TerminalWidth(w)
	}
	width = max(width-curveMargin, minCurveWidth)
	points := Resample(accs, width)
	lo, hi := points[0], points[0]
	for _, v := range points[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lines := []string{
		fmt.Sprintf("Accuracy (moving average, window %d)", max(window, 1)),
		"|" + Sparkline(points) + "|",
		fmt.Sprintf("min %.1f%%  max %.1f%%  last %.1f%%", lo, hi, accs[len(accs)-1]),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWordTable prints the hardest words with their first-attempt scores.
func RenderWordTable(w io.Writer, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Hardest Words"); err != nil {
		return err
	}
	headers := []string{"Word", "Accuracy", "Correct", "Wrong"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, []string{
			agg.Word,
			fmt.Sprintf("%.2f%%", Accuracy(agg.Correct, agg.Incorrect)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	if err := writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true}); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
