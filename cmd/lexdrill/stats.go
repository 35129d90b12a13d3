package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/stats"
	"github.com/verte-zerg/lexdrill/internal/statsui"
	"github.com/verte-zerg/lexdrill/internal/store"
)

const (
	defaultCurveWindow = 10
	defaultTopWords    = 10
)

var (
	statsGroup       string
	statsDictionary  string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTop         int
	statsPlain       bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show drill history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsGroup, "group", "", "group filter")
	cmd.Flags().StringVar(&statsDictionary, "dict", "", "dictionary filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", defaultTopWords, "number of hardest words to show")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print text instead of opening the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig(statsGroup, statsDictionary, statsSince, statsLast, statsCurveWindow, statsTop)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsPlain {
		return printStats(cmd, st, cfg)
	}
	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig(group, dict, since string, last, window, top int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since = strings.TrimSpace(since); since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--window must be >= 1")
	}
	if top < 1 {
		return model.StatsConfig{}, fmt.Errorf("--top must be >= 1")
	}
	return model.StatsConfig{
		Group:       strings.TrimSpace(group),
		Dictionary:  strings.TrimSpace(dict),
		Since:       sinceTime,
		Last:        last,
		CurveWindow: window,
		Top:         top,
	}, nil
}

func printStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	w := cmd.OutOrStdout()
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderCurve(w, report.Sessions, cfg.CurveWindow, stats.TerminalWidth(os.Stdout)); err != nil {
		return err
	}
	if err := stats.RenderHistory(w, report.Sessions); err != nil {
		return err
	}
	if err := writeLines(w, ""); err != nil {
		return err
	}
	return stats.RenderWordTable(w, report.HardWords)
}
