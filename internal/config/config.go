package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
	"github.com/NovikovRoman/ProgressBarCLI/internal/progress"
	"github.com/NovikovRoman/ProgressBarCLI/pkg/progressbar"
)

const envPrefix = "PROGRESSBAR_"

// Config defines configuration for the progressbar CLI.
type Config struct {
	Width         int
	Format        string
	DoneChar      string
	CursorChar    string
	RemainingChar string
	Plain         bool
	ChunkSize     int64
	Log           LogConfig
	Retry         RetryConfig
}

// LogConfig selects the logging level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RetryConfig defines retry behavior for HTTP sources.
type RetryConfig struct {
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// Default returns a Config with sensible defaults.
func Default() Config {
	style := progressbar.DefaultStyle()
	return Config{
		Width:         progressbar.DefaultWidth,
		Format:        style.Format,
		DoneChar:      string(style.Done),
		CursorChar:    string(style.Cursor),
		RemainingChar: string(style.Remaining),
		ChunkSize:     progress.DefaultChunkSize,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Retry: RetryConfig{
			Attempts:   5,
			Backoff:    time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}
}

// yamlConfig is used for YAML unmarshaling with string sizes and durations.
type yamlConfig struct {
	Width         int             `yaml:"width"`
	Format        string          `yaml:"format"`
	DoneChar      string          `yaml:"done_char"`
	CursorChar    string          `yaml:"cursor_char"`
	RemainingChar string          `yaml:"remaining_char"`
	Plain         bool            `yaml:"plain"`
	ChunkSize     string          `yaml:"chunk_size"`
	Log           LogConfig       `yaml:"log"`
	Retry         yamlRetryConfig `yaml:"retry"`
}

type yamlRetryConfig struct {
	Attempts   int    `yaml:"attempts"`
	Backoff    string `yaml:"backoff"`
	MaxBackoff string `yaml:"max_backoff"`
}

// LoadFromFile loads configuration from a YAML file on top of Default.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()
	override := Config{
		Width:         yc.Width,
		Format:        yc.Format,
		DoneChar:      yc.DoneChar,
		CursorChar:    yc.CursorChar,
		RemainingChar: yc.RemainingChar,
		Plain:         yc.Plain,
		Log:           yc.Log,
		Retry:         RetryConfig{Attempts: yc.Retry.Attempts},
	}
	if yc.ChunkSize != "" {
		if override.ChunkSize, err = progress.ParseBytes(yc.ChunkSize); err != nil {
			return Config{}, fmt.Errorf("parse chunk_size: %w", err)
		}
	}
	if yc.Retry.Backoff != "" {
		if override.Retry.Backoff, err = time.ParseDuration(yc.Retry.Backoff); err != nil {
			return Config{}, fmt.Errorf("parse retry.backoff: %w", err)
		}
	}
	if yc.Retry.MaxBackoff != "" {
		if override.Retry.MaxBackoff, err = time.ParseDuration(yc.Retry.MaxBackoff); err != nil {
			return Config{}, fmt.Errorf("parse retry.max_backoff: %w", err)
		}
	}

	return cfg.Merge(override), nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the PROGRESSBAR_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := getenv("WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sWIDTH: %w", envPrefix, err)
		}
		c.Width = n
	}
	if v := getenv("FORMAT"); v != "" {
		c.Format = v
	}
	if v := getenv("DONE_CHAR"); v != "" {
		c.DoneChar = v
	}
	if v := getenv("CURSOR_CHAR"); v != "" {
		c.CursorChar = v
	}
	if v := getenv("REMAINING_CHAR"); v != "" {
		c.RemainingChar = v
	}
	if v := getenv("PLAIN"); v != "" {
		c.Plain = v == "true" || v == "1"
	}
	if v := getenv("CHUNK_SIZE"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse %sCHUNK_SIZE: %w", envPrefix, err)
		}
		c.ChunkSize = size
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sRETRY_ATTEMPTS: %w", envPrefix, err)
		}
		c.Retry.Attempts = n
	}
	if v := getenv("RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sRETRY_BACKOFF: %w", envPrefix, err)
		}
		c.Retry.Backoff = d
	}
	if v := getenv("RETRY_MAX_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sRETRY_MAX_BACKOFF: %w", envPrefix, err)
		}
		c.Retry.MaxBackoff = d
	}

	return nil
}

func getenv(name string) string {
	return os.Getenv(envPrefix + name)
}

// Style builds the renderer style from the configured template and glyphs.
func (c *Config) Style() (progressbar.Style, error) {
	s := progressbar.DefaultStyle()
	fields := []struct{ name, value string }{
		{progressbar.FieldFormat, c.Format},
		{progressbar.FieldDoneChar, c.DoneChar},
		{progressbar.FieldCursorChar, c.CursorChar},
		{progressbar.FieldRemainingChar, c.RemainingChar},
	}
	for _, f := range fields {
		if err := s.Set(f.name, f.value); err != nil {
			return progressbar.Style{}, fmt.Errorf("config: %w", err)
		}
	}
	return s, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return errors.New("config: width must be positive")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.Retry.Attempts < 0 {
		return errors.New("config: retry.attempts must not be negative")
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Apply configures the process-wide logger.
func (c *Config) Apply() error {
	if err := logging.SetLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logging.SetOutputFormat(c.Log.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Width != 0 {
		c.Width = override.Width
	}
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.DoneChar != "" {
		c.DoneChar = override.DoneChar
	}
	if override.CursorChar != "" {
		c.CursorChar = override.CursorChar
	}
	if override.RemainingChar != "" {
		c.RemainingChar = override.RemainingChar
	}
	if override.Plain {
		c.Plain = override.Plain
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	if override.Log.Level != "" {
		c.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		c.Log.Format = override.Log.Format
	}
	if override.Retry.Attempts != 0 {
		c.Retry.Attempts = override.Retry.Attempts
	}
	if override.Retry.Backoff != 0 {
		c.Retry.Backoff = override.Retry.Backoff
	}
	if override.Retry.MaxBackoff != 0 {
		c.Retry.MaxBackoff = override.Retry.MaxBackoff
	}
	return c
}
