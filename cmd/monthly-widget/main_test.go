package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
)

func TestPreviewConfig(t *testing.T) {
	cfg := previewConfig("", false)
	assert.Equal(t, config.ThemeModeBuiltin, cfg.Mode)
	assert.Equal(t, config.DefaultEntryCount, cfg.Count)
	assert.False(t, cfg.ShowFunFont)
	assert.Empty(t, cfg.LocalPath)

	cfg = previewConfig("/tmp/theme.yaml", true)
	assert.Equal(t, config.ThemeModeLocal, cfg.Mode)
	assert.Equal(t, "/tmp/theme.yaml", cfg.LocalPath)
	assert.True(t, cfg.ShowFunFont)
}

func TestRunPreview_Builtin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPreview(context.Background(), &out, "", false))

	// A week always contains every weekday once.
	for _, day := range []string{"Monday", "Wednesday", "Sunday"} {
		assert.Contains(t, out.String(), day)
	}
}

func TestRunPreview_MissingTheme(t *testing.T) {
	var out bytes.Buffer
	err := runPreview(context.Background(), &out, filepath.Join(t.TempDir(), "missing.yaml"), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out.String())
}
