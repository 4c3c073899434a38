package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/catalog"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "CN", s.Lang)
	assert.False(t, s.Quiet)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, []string{"", "NA", "N/A", "NULL"}, s.NAMarkers)
	assert.Equal(t, 4, s.Workers)

	lang, err := s.Language()
	require.NoError(t, err)
	assert.Equal(t, catalog.LangCN, lang)
	assert.Equal(t, slog.LevelInfo, s.Level())
}

func TestLoadSettings_FromEnv(t *testing.T) {
	t.Setenv("TABCHECK_LANG", "en")
	t.Setenv("TABCHECK_QUIET", "true")
	t.Setenv("TABCHECK_LOG_LEVEL", "debug")
	t.Setenv("TABCHECK_LOG_FORMAT", "json")
	t.Setenv("TABCHECK_NA_MARKERS", "NA,-")
	t.Setenv("TABCHECK_WORKERS", "8")

	s, err := LoadSettings()
	require.NoError(t, err)

	lang, err := s.Language()
	require.NoError(t, err)
	assert.Equal(t, catalog.LangEN, lang)
	assert.True(t, s.Quiet)
	assert.Equal(t, slog.LevelDebug, s.Level())
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, []string{"NA", "-"}, s.NAMarkers)
	assert.Equal(t, 8, s.Workers)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"language", "TABCHECK_LANG", "FR"},
		{"log level", "TABCHECK_LOG_LEVEL", "verbose"},
		{"workers range", "TABCHECK_WORKERS", "0"},
		{"workers syntax", "TABCHECK_WORKERS", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestSettings_LoadCatalog(t *testing.T) {
	c, err := Settings{}.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, "row", c.MustGet(catalog.LangEN, "common", "row"))

	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CN:\n  common:\n    row: 行\nEN:\n  common:\n    row: line\n"), 0644))

	c, err = Settings{Catalog: path}.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, "line", c.MustGet(catalog.LangEN, "common", "row"))

	_, err = Settings{Catalog: filepath.Join(t.TempDir(), "absent.yaml")}.LoadCatalog()
	assert.Error(t, err)
}
