package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Dark())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: light")
	assert.Contains(t, string(data), "log_level: info")
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "theme: dark\nlog_level: debug\ndata_dir: /srv/shelf\nscreen_height: 2160\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, s.Dark())
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "/srv/shelf", s.DataDir)
	assert.Equal(t, 2160, s.ScreenHeight)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("theme: light\n"), 0o644))
	t.Setenv("SHELF_THEME", "dark")
	t.Setenv("SHELF_SCREEN_HEIGHT", "1440")
	t.Setenv("SHELF_LOG_FILE", "/tmp/shelf.log")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, 1440, s.ScreenHeight)
	assert.Equal(t, "/tmp/shelf.log", s.LogFile)
	assert.Equal(t, "info", s.LogLevel, "unset env keeps the default")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantKey string
	}{
		{name: "unknown theme", content: "theme: solarized\n", wantKey: KeyTheme},
		{name: "unknown log level", content: "log_level: trace\n", wantKey: KeyLogLevel},
		{name: "negative screen height", content: "screen_height: -1\n", wantKey: KeyScreenHeight},
		{name: "bad env theme", content: "", env: map[string]string{"SHELF_THEME": "blue"}, wantKey: KeyTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o644))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(dir)
			require.ErrorIs(t, err, ErrInvalidSetting)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestLoad_MalformedEnvValue(t *testing.T) {
	t.Setenv("SHELF_SCREEN_HEIGHT", "tall")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestWriteIfMissing_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o644))

	require.NoError(t, WriteIfMissing(path, Defaults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: dark\n", string(data))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHELF_TEST_DOTENV=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SHELF_TEST_DOTENV") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("SHELF_TEST_DOTENV"))

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")), "missing file is not an error")
}
