// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/stats"
)

const (
	tabOverview = iota
	tabWords
	tabSessions
)

// Store is the history access the stats UI needs. *store.Store satisfies it.
type Store interface {
	stats.HistoryStore
	ListResults(ctx context.Context, sessionID string) ([]model.TrainingResult, error)
}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	words     table.Model
	sessions  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	// detail shows the result log of the selected session when open.
	detailOpen bool
	detail     viewport.Model
	detailErr  string
}

// NewModel constructs a stats UI model.
func NewModel(st Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Hardest Words", "Sessions"},
		overview: viewport.New(0, 0),
		detail:   viewport.New(0, 0),
		words:    newTable(wordColumns()),
		sessions: newTable(sessionColumns()),
	}
	m.initInputs()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.detailOpen {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabSessions {
				m.openDetail()
			}
			return m, nil
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case tabWords:
			m.words, cmd = m.words.Update(msg)
		case tabSessions:
			m.sessions, cmd = m.sessions.Update(msg)
		default:
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.detailOpen {
		return fitLines(m.renderDetail(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range []*table.Model{&m.words, &m.sessions} {
		t.SetWidth(m.width)
		// One row is taken by the header border.
		t.SetHeight(max(bodyHeight-1, 1))
	}
	inner := modalInnerWidth(m.width)
	m.detail.Width = inner
	m.detail.Height = max(m.height-8, 1)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	m.words.Blur()
	m.sessions.Blur()
	switch m.activeTab {
	case tabWords:
		m.words.Focus()
	case tabSessions:
		m.sessions.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Settings: group=%s  dict=%s  since=%s  last=%s  window=%d  top=%d",
		orAny(m.cfg.Group), orAny(m.cfg.Dictionary), formatSince(m.cfg.Since), formatLast(m.cfg.Last),
		m.cfg.CurveWindow, m.cfg.Top)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q"
	if m.activeTab == tabSessions {
		help = "Nav: left/right  Select: up/down  Results: enter  Settings: /  Quit: q"
	}
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render(help)
}

func (m *Model) renderBody() string {
	if m.filterMode {
		return m.renderFilterForm()
	}
	switch m.activeTab {
	case tabWords:
		switch {
		case len(m.report.Sessions) == 0:
			return "No sessions found."
		case len(m.report.HardWords) == 0:
			return "No missed words in this window."
		}
		return tableMutedStyle.Render(m.words.View())
	case tabSessions:
		if len(m.report.Sessions) == 0 {
			return "No sessions found."
		}
		return tableMutedStyle.Render(m.sessions.View())
	}
	return m.overview.View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.words.SetRows(wordRows(report.HardWords))
	m.sessions.SetRows(sessionRows(report.Sessions))
	m.sessions.GotoBottom()
	m.updateLayout()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	var buf bytes.Buffer
	if err := stats.RenderCurve(&buf, report.Sessions, window, width); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	out := renderSummaryCards(report.Sessions, width) + "\n\n" + buf.String()
	if practiced := stats.MostPracticed(report.WordAggsAll, 5); len(practiced) > 0 {
		out += headerStyle.Render("Most practiced: " + strings.Join(practiced, ", "))
	}
	return strings.TrimRight(out, "\n")
}

func renderSummaryCards(sessions []model.SessionAggregate, width int) string {
	var totalAcc, bestAcc float64
	answered := 0
	for _, s := range sessions {
		acc := stats.SessionAccuracy(s)
		totalAcc += acc
		bestAcc = max(bestAcc, acc)
		answered += s.Correct + s.Incorrect
	}
	count := float64(len(sessions))
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", len(sessions))),
		metricCard("Answered", fmt.Sprintf("%d", answered)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", totalAcc/count*100)),
		metricCard("Best Acc", fmt.Sprintf("%.1f%%", bestAcc*100)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) openDetail() {
	if len(m.report.Sessions) == 0 {
		return
	}
	idx := m.sessions.Cursor()
	if idx < 0 || idx >= len(m.report.Sessions) {
		return
	}
	m.detailOpen = true
	m.detailErr = ""
	results, err := m.store.ListResults(context.Background(), m.report.Sessions[idx].SessionID)
	if err != nil {
		m.detailErr = err.Error()
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(renderResults(results))
	m.detail.GotoTop()
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.detailOpen = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) renderDetail() string {
	s := m.report.Sessions[m.sessions.Cursor()]
	body := []string{
		cardValueStyle.Render(fmt.Sprintf("%s  %s  %s", s.Dictionary, s.Mode, s.EndedAt.Local().Format("2006-01-02 15:04"))),
		"",
	}
	if m.detailErr != "" {
		body = append(body, errorStyle.Render(m.detailErr))
	} else {
		body = append(body, m.detail.View())
	}
	body = append(body, "", headerStyle.Render("Scroll: up/down  Close: esc"))
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderResults(results []model.TrainingResult) string {
	if len(results) == 0 {
		return "No answers recorded."
	}
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r.Correct {
			lines = append(lines, okStyle.Render(fmt.Sprintf("✓ %s → %s", r.Question, r.CorrectAnswer)))
			continue
		}
		lines = append(lines, errorStyle.Render(fmt.Sprintf("✗ %s → %s (correct: %s)", r.Question, r.UserAnswer, r.CorrectAnswer)))
	}
	return strings.Join(lines, "\n")
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
