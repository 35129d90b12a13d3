package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lexdrill/internal/config"
	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/store"
)

func TestParseSessionConfig(t *testing.T) {
	cfg, err := parseSessionConfig("foreign-native", "Infinite", "blanked")
	require.NoError(t, err)
	assert.Equal(t, model.SessionConfig{Direction: model.ForeignToNative, Mode: model.Infinite, Style: model.Blanked}, cfg)

	_, err = parseSessionConfig("sideways", defaultMode, defaultStyle)
	assert.ErrorContains(t, err, "--direction")
	_, err = parseSessionConfig(defaultDirection, "forever", defaultStyle)
	assert.ErrorContains(t, err, "--mode")
	_, err = parseSessionConfig(defaultDirection, defaultMode, "bold")
	assert.ErrorContains(t, err, "--style")
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig(" Spanish ", "Animals", "2026-01-31", 5, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", cfg.Group)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, "2026-01-31", cfg.Since.Format("2006-01-02"))
	assert.Equal(t, 5, cfg.Last)

	_, err = buildStatsConfig("", "", "31.01.2026", 0, 1, 1)
	assert.ErrorContains(t, err, "--since")
	_, err = buildStatsConfig("", "", "", -1, 1, 1)
	assert.Error(t, err)
	_, err = buildStatsConfig("", "", "", 0, 0, 1)
	assert.Error(t, err)
	_, err = buildStatsConfig("", "", "", 0, 1, 0)
	assert.Error(t, err)
}

func TestResolveDictionary(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "lexdrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()

	_, err = resolveDictionary(ctx, st, "", "")
	assert.ErrorContains(t, err, "no group found")

	_, err = st.CreateGroup(ctx, "Spanish")
	require.NoError(t, err)
	animals, err := st.CreateDictionary(ctx, "Spanish", "Animals")
	require.NoError(t, err)

	got, err := resolveDictionary(ctx, st, "", "")
	require.NoError(t, err)
	assert.Equal(t, animals.ID, got.ID)

	_, err = st.CreateDictionary(ctx, "Spanish", "Food")
	require.NoError(t, err)
	_, err = resolveDictionary(ctx, st, "Spanish", "")
	assert.ErrorContains(t, err, "Animals, Food")

	got, err = resolveDictionary(ctx, st, "Spanish", "Food")
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)

	_, err = resolveDictionary(ctx, st, "Spanish", "Verbs")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetOrCreateDictionary(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "lexdrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()
	_, err = st.CreateGroup(ctx, "German")
	require.NoError(t, err)

	first, err := getOrCreateDictionary(ctx, st, "German", "Basics")
	require.NoError(t, err)
	second, err := getOrCreateDictionary(ctx, st, "German", "Basics")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestFormatWords(t *testing.T) {
	assert.Equal(t, []string{"No words yet."}, formatWords(nil))
	lines := formatWords([]model.WordPair{{ID: 3, Native: "gato", Foreign: "cat", Learned: true}})
	assert.Equal(t, "    3 * gato\tcat", lines[0])
}

func TestParseWordID(t *testing.T) {
	id, err := parseWordID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	for _, raw := range []string{"0", "-1", "x"} {
		_, err := parseWordID(raw)
		assert.Error(t, err, raw)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		b.WriteString(line + "\n")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Drill.Mode)
	assert.Equal(t, defaultMode, *cfg.Drill.Mode)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, defaultLogLevel, *cfg.Log.Level)
}
