package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and GANTT_CONFIG at a temp dir so the developer's own
// settings never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GANTT_CONFIG", filepath.Join(dir, "missing.yaml"))
	for _, k := range []string{"GANTT_DB", "GANTT_OWNER", "GANTT_LOG_CALLS", "GANTT_DAY_WIDTH", "GANTT_ROW_HEIGHT", "GANTT_DEBOUNCE_MS"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".gantt", "gantt.db"), cfg.DBPath)
	assert.Equal(t, 40, cfg.DayWidth)
	assert.Equal(t, 48, cfg.RowHeight)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.False(t, cfg.LogCalls)
	assert.Empty(t, cfg.Owner)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /tmp/from-file.db
owner: file-owner
day_width: 20
page_rows: 10
debounce_ms: 500
`), 0o600))
	t.Setenv("GANTT_CONFIG", path)
	t.Setenv("GANTT_OWNER", "env-owner")
	t.Setenv("GANTT_LOG_CALLS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, "env-owner", cfg.Owner)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 20, cfg.DayWidth)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("GANTT_DAY_WIDTH", "wide")
	t.Setenv("GANTT_ROW_HEIGHT", "-3")
	t.Setenv("GANTT_DEBOUNCE_MS", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.DayWidth)
	assert.Equal(t, 48, cfg.RowHeight)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day_width: [oops"), 0o600))
	t.Setenv("GANTT_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
