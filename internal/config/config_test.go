package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"IGDL_DIRECTORY", "IGDL_DELAY", "IGDL_TOOL", "IGDL_BASE_URL",
	"IGDL_METRICS_FILE", "IGDL_CONFIG", "IGDL_VERSION",
}

// isolate runs the test in an empty working directory with no IGDL_*
// variables set. Variables are restored when the test ends.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	return Load("ig-downloader", args, &bytes.Buffer{})
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, DefaultDirectory, cfg.Directory)
	assert.Equal(t, DefaultDelay, cfg.Delay)
	assert.Equal(t, DefaultTool, cfg.Tool)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.MetricsFile)
	assert.False(t, cfg.ShowVersion)
}

func TestLoad_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		dir   string
		delay int
	}{
		{"long flags", []string{"--directory", "/tmp/videos", "--delay", "2"}, "/tmp/videos", 2},
		{"long flags with equals", []string{"--directory=/tmp/videos", "--delay=5"}, "/tmp/videos", 5},
		{"short flags", []string{"-d", "./savedVideos", "-w", "3"}, "./savedVideos", 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			isolate(t)

			cfg, err := load(t, test.args...)
			require.NoError(t, err)
			assert.Equal(t, test.dir, cfg.Directory)
			assert.Equal(t, test.delay, cfg.Delay)
			assert.Equal(t, time.Duration(test.delay)*time.Second, cfg.DelayDuration())
		})
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	isolate(t)
	t.Setenv("IGDL_DELAY", "4")
	t.Setenv("IGDL_TOOL", "ytdl")
	t.Setenv("IGDL_BASE_URL", "https://www.instagram.com")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Delay)
	assert.Equal(t, "ytdl", cfg.Tool)
	assert.Equal(t, "https://www.instagram.com", cfg.BaseURL)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("IGDL_DELAY", "4")

	cfg, err := load(t, "-w", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Delay)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("IGDL_DELAY=7\nIGDL_TOOL=from-dotenv\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvLocalFile), []byte("IGDL_TOOL=from-local\n"), 0644))

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Delay)
	assert.Equal(t, "from-local", cfg.Tool)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "igdl.yaml")
	content := "directory: /srv/posts\ndelay: 9\nmetrics-file: /tmp/igdl.prom\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := load(t, "--config", path, "-w", "2")
	require.NoError(t, err)

	assert.Equal(t, "/srv/posts", cfg.Directory)
	assert.Equal(t, 2, cfg.Delay, "flag wins over config file")
	assert.Equal(t, "/tmp/igdl.prom", cfg.MetricsFile)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := isolate(t)

	_, err := load(t, "-c", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Help(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	_, err := Load("ig-downloader", []string{"--help"}, &out)
	assert.True(t, errors.Is(err, ErrHelp))
	assert.Contains(t, out.String(), "--directory")
	assert.Contains(t, out.String(), "-w, --delay")
}

func TestLoad_InvalidFlag(t *testing.T) {
	isolate(t)

	_, err := load(t, "--delay", "soon")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrHelp))

	_, err = load(t, "--unknown")
	assert.Error(t, err)
}

func TestLoad_NegativeDelay(t *testing.T) {
	isolate(t)

	_, err := load(t, "-w", "-1")
	assert.Error(t, err)
}

func TestLoad_Version(t *testing.T) {
	isolate(t)

	// version is honoured even when other settings are invalid
	cfg, err := load(t, "--version", "--tool", "")
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Directory: "d", Tool: "t", BaseURL: "u"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty directory", func(c *Config) { c.Directory = " " }, true},
		{"empty tool", func(c *Config) { c.Tool = "" }, true},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"negative delay", func(c *Config) { c.Delay = -2 }, true},
		{"positive delay", func(c *Config) { c.Delay = 2 }, false},
	}

	for _, test := range tests {
		cfg := valid
		test.mutate(&cfg)
		err := cfg.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", test.name, err, test.wantErr)
		}
	}
}
