package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

func TestParse(t *testing.T) {
	data := []byte(`
listen_port: 9090
log_level: debug
data_dir: /var/lib/ferien
sqlite_path: ferien.db
source: remote
remote_base_url: https://holidays.example
remote_timeout_seconds: 3
remote_max_retries: 0
remote_per_day_holidays: true
remote_regions:
  NRW: DE-NW
edit_mode: true
defaults:
  region: BY
`)
	cfg := Default()
	require.NoError(t, cfg.Parse(data))

	assert.Equal(t, 9090, cfg.ListenPort)
	assert.Equal(t, logging.DEBUG, cfg.LogLevel)
	assert.Equal(t, "/var/lib/ferien", cfg.DataDir)
	assert.Equal(t, "ferien.db", cfg.SQLitePath)
	assert.Equal(t, SourceRemote, cfg.Source)
	assert.Equal(t, "https://holidays.example", cfg.RemoteBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 0, cfg.RemoteRetries)
	assert.True(t, cfg.RemotePerDay)
	assert.Equal(t, map[string]string{"NRW": "DE-NW"}, cfg.RemoteRegions)
	assert.True(t, cfg.EditMode)
	assert.Equal(t, "BY", cfg.DefaultRegion)
	assert.Equal(t, "15.07.2026", cfg.DefaultFrom)
}

func TestParseDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Parse([]byte(`data_dir: data`)))

	assert.Equal(t, DefaultListenPort, cfg.ListenPort)
	assert.Equal(t, SourceStatic, cfg.Source)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 2, cfg.RemoteRetries)
	assert.False(t, cfg.EditMode)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "listen_port: [",
		"bad port":          "listen_port: 70000",
		"bad level":         "log_level: loud",
		"bad source":        "source: carrier-pigeon",
		"negative timeout":  "remote_timeout_seconds: -1",
		"negative retries":  "remote_max_retries: -2",
		"s3 without region": "s3_bucket: ferien",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Default().Parse([]byte(data)))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ferien.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen_port: 8181\n"), 0644))

	t.Setenv("AUTH_FILE", filepath.Join(dir, "auth.secret"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.ListenPort)
	assert.Equal(t, filepath.Join(dir, "auth.secret"), cfg.AuthFile)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yml")
	require.NoError(t, os.WriteFile(path, []byte("source: remote\n"), 0644))
	t.Setenv("FERIEN_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, cfg.Source)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Chdir(t.TempDir())
	t.Setenv("FERIEN_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ListenPort, cfg.ListenPort)
}
