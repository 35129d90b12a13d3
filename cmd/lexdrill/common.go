package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/verte-zerg/lexdrill/internal/config"
	"github.com/verte-zerg/lexdrill/internal/logger"
	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/store"
)

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

// withStore opens the database for the length of fn.
func withStore(fn func(context.Context, *store.Store) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	return fn(context.Background(), st)
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

// setupLogging sends logs to a file, since the TUI owns the terminal.
func setupLogging(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := defaultLogLevel
	if cfg.Level != nil {
		level = *cfg.Level
	}
	path := config.DefaultLogPath()
	if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
		path = *cfg.File
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}
	return logger.Setup(level, f), closeFn, nil
}

// resolveDictionary picks the named dictionary. A blank group or dictionary
// name is accepted when exactly one candidate exists.
func resolveDictionary(ctx context.Context, st *store.Store, group, name string) (model.Dictionary, error) {
	group = strings.TrimSpace(group)
	if group == "" {
		groups, err := st.ListGroups(ctx)
		if err != nil {
			return model.Dictionary{}, err
		}
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Name
		}
		picked, err := pickOne("group", "--group", names)
		if err != nil {
			return model.Dictionary{}, err
		}
		group = picked
	}
	name = strings.TrimSpace(name)
	if name == "" {
		dicts, err := st.ListDictionaries(ctx, group)
		if err != nil {
			return model.Dictionary{}, err
		}
		names := make([]string, len(dicts))
		for i, d := range dicts {
			names[i] = d.Name
		}
		picked, err := pickOne("dictionary", "--dict", names)
		if err != nil {
			return model.Dictionary{}, err
		}
		name = picked
	}
	return st.GetDictionary(ctx, group, name)
}

func pickOne(kind, flag string, names []string) (string, error) {
	switch len(names) {
	case 0:
		return "", fmt.Errorf("no %s found", kind)
	case 1:
		return names[0], nil
	}
	return "", fmt.Errorf("several %ss exist, choose one with %s: %s", kind, flag, strings.Join(names, ", "))
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
