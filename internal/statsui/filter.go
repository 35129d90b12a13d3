package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lexdrill/internal/model"
)

const (
	fieldGroup = iota
	fieldDictionary
	fieldSince
	fieldLast
	fieldWindow
	fieldTop
)

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Group: "),
		newFilterInput("Dictionary: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
		newFilterInput("Top words: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[fieldGroup].SetValue(m.cfg.Group)
	m.filterInputs[fieldDictionary].SetValue(m.cfg.Dictionary)
	m.filterInputs[fieldSince].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[fieldSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[fieldLast].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[fieldLast].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[fieldWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
	m.filterInputs[fieldTop].SetValue(strconv.Itoa(m.cfg.Top))
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.filterInputs)
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func parseFilter(inputs []textinput.Model) (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Group:      strings.TrimSpace(inputs[fieldGroup].Value()),
		Dictionary: strings.TrimSpace(inputs[fieldDictionary].Value()),
	}
	if raw := strings.TrimSpace(inputs[fieldSince].Value()); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	var err error
	if cfg.Last, err = parseCount(inputs[fieldLast].Value(), 0); err != nil {
		return model.StatsConfig{}, fmt.Errorf("invalid last value (use 0 or positive integer)")
	}
	if cfg.CurveWindow, err = parseCount(inputs[fieldWindow].Value(), 1); err != nil {
		return model.StatsConfig{}, fmt.Errorf("invalid curve window (use integer >= 1)")
	}
	if cfg.Top, err = parseCount(inputs[fieldTop].Value(), 1); err != nil {
		return model.StatsConfig{}, fmt.Errorf("invalid top value (use integer >= 1)")
	}
	return cfg, nil
}

// parseCount reads an integer >= floor; blank input yields floor.
func parseCount(raw string, floor int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return floor, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < floor {
		return 0, fmt.Errorf("value %d below %d", n, floor)
	}
	return n, nil
}
