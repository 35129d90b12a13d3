// Package main provides the CLI entrypoint for lexdrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexdrill/internal/config"
	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/session"
	"github.com/verte-zerg/lexdrill/internal/tui"
)

const (
	defaultDirection = string(model.NativeToForeign)
	defaultMode      = string(model.Sequential)
	defaultStyle     = string(model.FullWord)
	defaultLogLevel  = "info"
)

var (
	drillGroup      string
	drillDictionary string
	drillDirection  string
	drillMode       string
	drillStyle      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lexdrill",
		Short:         "TUI vocabulary trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().StringVar(&drillGroup, "group", "", "group (language) to drill")
	rootCmd.Flags().StringVar(&drillDictionary, "dict", "", "dictionary to drill")
	rootCmd.Flags().StringVar(&drillDirection, "direction", defaultDirection, "native-foreign or foreign-native")
	rootCmd.Flags().StringVar(&drillMode, "mode", defaultMode, "sequential, random or infinite")
	rootCmd.Flags().StringVar(&drillStyle, "style", defaultStyle, "full or blanked")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newWordCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "group", &drillGroup, fileCfg.Drill.Group)
	applyStringConfig(cmd, "dict", &drillDictionary, fileCfg.Drill.Dictionary)
	applyStringConfig(cmd, "direction", &drillDirection, fileCfg.Drill.Direction)
	applyStringConfig(cmd, "mode", &drillMode, fileCfg.Drill.Mode)
	applyStringConfig(cmd, "style", &drillStyle, fileCfg.Drill.Style)

	cfg, err := parseSessionConfig(drillDirection, drillMode, drillStyle)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(fileCfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	dict, err := resolveDictionary(ctx, st, drillGroup, drillDictionary)
	if err != nil {
		return err
	}
	words, err := st.LoadWords(ctx, dict.ID)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}

	sess, err := session.Start(words, cfg, session.WithLogger(logger))
	if errors.Is(err, session.ErrEmptyDictionary) {
		return fmt.Errorf("dictionary %q has no words (add some with: lexdrill word add %q %q NATIVE FOREIGN)", dict.Name, dict.Group, dict.Name)
	}
	if err != nil {
		return err
	}

	m := tui.NewModel(sess, tui.Options{
		Dictionary: dict,
		Store:      st,
		Logger:     logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if sum := m.Summary(); len(sum.Results) > 0 {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), tui.SummaryLine(sum)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func parseSessionConfig(direction, mode, style string) (model.SessionConfig, error) {
	dir, err := model.ParseDirection(direction)
	if err != nil {
		return model.SessionConfig{}, fmt.Errorf("--direction: %w", err)
	}
	m, err := model.ParseMode(mode)
	if err != nil {
		return model.SessionConfig{}, fmt.Errorf("--mode: %w", err)
	}
	s, err := model.ParseQuestionStyle(style)
	if err != nil {
		return model.SessionConfig{}, fmt.Errorf("--style: %w", err)
	}
	return model.SessionConfig{Direction: dir, Mode: m, Style: s}, nil
}
