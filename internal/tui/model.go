// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lexdrill/internal/flags"
	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/session"
)

// Recorder persists drill progress. *store.Store satisfies it.
type Recorder interface {
	SetLearned(ctx context.Context, id int64, learned bool) error
	InsertSession(ctx context.Context, rec model.SessionRecord, results []model.TrainingResult) (string, error)
}

// Options configures a Model.
type Options struct {
	Dictionary model.Dictionary
	Store      Recorder
	Logger     *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	sess   *session.Session
	dict   model.Dictionary
	store  Recorder
	logger *slog.Logger
	now    func() time.Time

	input   textinput.Model
	results viewport.Model

	width  int
	height int

	startedAt time.Time
	// wrongAnswer holds the expected word after a miss until the next
	// correct answer.
	wrongAnswer string
	saved       bool
	sessionID   string
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	filledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	blankStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const (
	contentRatio  = 0.70
	resultsMargin = 6
)

// NewModel constructs a drill TUI model around a started session.
func NewModel(sess *session.Session, opts Options) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "answer"
	input.Focus()

	m := &Model{
		sess:    sess,
		dict:    opts.Dictionary,
		store:   opts.Store,
		logger:  opts.Logger,
		now:     opts.Now,
		input:   input,
		results: viewport.New(0, 0),
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.startedAt = m.now()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.contentWidth()-len(m.input.Prompt)-1, 1)
		m.results.Width = m.contentWidth()
		m.results.Height = max(m.height-resultsMargin, 1)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.finish()
			return m, tea.Quit
		}
		if m.sess.Complete() {
			return m.updateResults(msg)
		}
		if msg.Type == tea.KeyEnter {
			m.submit()
			return m, nil
		}
	}
	if m.sess.Complete() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	fb, err := m.sess.Submit(m.input.Value())
	if err != nil {
		m.logger.Warn("submit failed", "err", err)
		return
	}
	m.input.Reset()
	if !fb.Correct {
		m.wrongAnswer = fb.Expected
		return
	}
	m.wrongAnswer = ""
	m.persistLearned(fb.Word)
	if fb.Complete {
		m.finish()
		m.results.SetContent(renderResults(m.sess.Summary().Results))
		m.results.GotoTop()
	}
}

func (m *Model) persistLearned(word model.WordPair) {
	if m.store == nil || word.ID == 0 {
		return
	}
	if err := m.store.SetLearned(context.Background(), word.ID, true); err != nil {
		m.logger.Warn("failed to mark word learned", "word_id", word.ID, "err", err)
	}
}

// finish stores the session once. Unfinished sequential and random drills
// are dropped; infinite drills are stored whenever something was answered.
func (m *Model) finish() {
	if m.saved || m.store == nil {
		return
	}
	sum := m.sess.Summary()
	if !sum.Complete && (sum.Mode != model.Infinite || len(sum.Results) == 0) {
		return
	}
	rec := model.SessionRecord{
		Dictionary: m.dict,
		Config:     m.sess.Config(),
		StartedAt:  m.startedAt,
		EndedAt:    m.now(),
		Correct:    sum.CorrectCount,
		Total:      sum.TotalCount,
		Complete:   sum.Complete,
	}
	id, err := m.store.InsertSession(context.Background(), rec, sum.Results)
	if err != nil {
		m.logger.Error("failed to save session", "err", err)
		return
	}
	m.saved = true
	m.sessionID = id
	m.logger.Info("session saved", "id", id, "correct", rec.Correct, "total", rec.Total)
}

// Summary returns the score of the drill so far.
func (m *Model) Summary() model.SessionSummary {
	return m.sess.Summary()
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.sess.Complete() {
		body = m.renderComplete()
	} else {
		body = m.renderQuestion()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return body
		}
		return body + "\n\n" + footer
	}
	content := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	page := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return page + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	return max(int(float64(m.width)*contentRatio), 1)
}

func (m *Model) renderTitle() string {
	parts := []string{}
	if m.dict.Group != "" {
		parts = append(parts, flags.Label(m.dict.Group))
	}
	if m.dict.Name != "" {
		parts = append(parts, m.dict.Name)
	}
	title := strings.Join(parts, " / ")
	cfg := m.sess.Config()
	switch cfg.Mode {
	case model.Random:
		title += " (Random)"
	case model.Infinite:
		title += " (Infinite)"
	}
	if cfg.Style == model.Blanked {
		title += " [_B_]"
	}
	return titleStyle.Render(strings.TrimSpace(title))
}

func (m *Model) renderQuestion() string {
	q := m.sess.Question()
	label := "Translate:"
	if q.Blanked() {
		label = "Fill in:"
	}
	input := []rune(strings.TrimSpace(m.input.Value()))
	prompt := buildPromptRunes([]rune(q.Prompt), q.Blanked(), input)
	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	lines := []string{
		m.renderTitle(),
		"",
		labelStyle.Render(label),
		wrapStyledRunes(prompt, width),
		"",
		m.input.View(),
	}
	if m.wrongAnswer != "" {
		lines = append(lines, "", incorrectStyle.Render("Correct answer: "+m.wrongAnswer))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderComplete() string {
	lines := []string{
		m.renderTitle(),
		"",
		SummaryLine(m.sess.Summary()),
		"",
	}
	if m.width == 0 || m.height == 0 {
		lines = append(lines, renderResults(m.sess.Summary().Results))
	} else {
		lines = append(lines, m.results.View())
	}
	return strings.Join(lines, "\n")
}

// renderFooter shows drill progress. Infinite drills have no fixed length,
// so they only get the key hint.
func (m *Model) renderFooter() string {
	if m.sess.Complete() {
		return footerStyle.Render("enter: quit  ↑/↓: scroll")
	}
	if m.sess.Config().Mode == model.Infinite {
		return footerStyle.Render("esc: finish")
	}
	done, total := m.sess.Progress()
	current := min(done+1, total)
	return footerStyle.Render(fmt.Sprintf("Word %d of %d | Correct: %d", current, total, m.sess.Correct()))
}

// SummaryLine formats the final score of a session.
func SummaryLine(sum model.SessionSummary) string {
	pct, ok := sum.Percent()
	if !ok {
		return fmt.Sprintf("Correct: %d of %d answered", sum.CorrectCount, sum.TotalCount)
	}
	return fmt.Sprintf("Result: %d of %d (%.0f%%)", sum.CorrectCount, sum.TotalCount, pct)
}

// renderResults lists first attempts, green when right and red when wrong.
func renderResults(results []model.TrainingResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r.Correct {
			lines = append(lines, correctStyle.Render(fmt.Sprintf("✓ %s → %s", r.Question, r.CorrectAnswer)))
			continue
		}
		given := r.UserAnswer
		if given == "" {
			given = "(empty)"
		}
		lines = append(lines, incorrectStyle.Render(fmt.Sprintf("✗ %s → %s (correct: %s)", r.Question, given, r.CorrectAnswer)))
	}
	return strings.Join(lines, "\n")
}
