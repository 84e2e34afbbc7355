// Package config loads the downloader configuration from command-line flags,
// IGDL_* environment variables, optional .env files and an optional config
// file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys, used as flag names and, upper-cased with the IGDL_ prefix, as
// environment variable names
const (
	KeyDirectory   = "directory"
	KeyDelay       = "delay"
	KeyTool        = "tool"
	KeyBaseURL     = "base-url"
	KeyMetricsFile = "metrics-file"
	KeyConfig      = "config"
	KeyVersion     = "version"
)

// Default values
const (
	DefaultDirectory = "~/myDownloads"
	DefaultDelay     = 0
	DefaultTool      = "yt-dlp"
	DefaultBaseURL   = "https://instagram.com"
	EnvPrefix        = "IGDL"
)

// Optional dotenv files, later files override earlier ones
const (
	EnvFile      = ".env"
	EnvLocalFile = ".env.local"
)

// ErrHelp is returned by Load when -h or --help was requested
var ErrHelp = pflag.ErrHelp

// Config holds the run configuration
type Config struct {
	Directory   string // download directory, may start with ~
	Delay       int    // seconds between downloads
	Tool        string // downloader executable
	BaseURL     string // prepended to every link fragment
	MetricsFile string // textfile metrics output, empty disables it
	ShowVersion bool
}

// DelayDuration returns Delay as a time.Duration
func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Second
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return errors.New("download directory cannot be empty")
	}
	if strings.TrimSpace(c.Tool) == "" {
		return errors.New("downloader tool cannot be empty")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL cannot be empty")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative: %d", c.Delay)
	}
	return nil
}

// NewFlagSet defines the command-line flags. Usage and parse errors are
// written to output.
func NewFlagSet(name string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringP(KeyDirectory, "d", DefaultDirectory, "where the videos should be downloaded to")
	fs.IntP(KeyDelay, "w", DefaultDelay, "seconds to wait between downloads")
	fs.StringP(KeyTool, "t", DefaultTool, "downloader executable, called as <tool> -P <dir> <url>")
	fs.String(KeyBaseURL, DefaultBaseURL, "URL prepended to every link fragment")
	fs.String(KeyMetricsFile, "", "write run metrics in Prometheus textfile format to this path")
	fs.StringP(KeyConfig, "c", "", "optional config file (yaml, toml, json, ...)")
	fs.Bool(KeyVersion, false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(output, "Download Instagram posts listed in links.txt\n\nUsage: %s [flags]\n\n", name)
		fs.PrintDefaults()
	}

	return fs
}

// Load parses args and merges flags, environment and config file. It returns
// ErrHelp when help was requested.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	fs := NewFlagSet(name, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Directory:   v.GetString(KeyDirectory),
		Delay:       v.GetInt(KeyDelay),
		Tool:        v.GetString(KeyTool),
		BaseURL:     v.GetString(KeyBaseURL),
		MetricsFile: v.GetString(KeyMetricsFile),
		ShowVersion: v.GetBool(KeyVersion),
	}

	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence. Variables already set
// in the environment win over .env; .env.local overrides both.
func loadEnvFiles() error {
	if _, err := os.Stat(EnvFile); err == nil {
		if err := godotenv.Load(EnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", EnvFile, err)
		}
	}

	if _, err := os.Stat(EnvLocalFile); err == nil {
		if err := godotenv.Overload(EnvLocalFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", EnvLocalFile, err)
		}
	}

	return nil
}
