// Package config loads lmdpipe settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration.
type Config struct {
	// OnlineRoot is the site issues are fetched from.
	OnlineRoot string `toml:"online_root"`
	// LocalRoot is the mirror directory name used with --local.
	LocalRoot string `toml:"local_root"`
	// MirrorDir holds LocalRoot. Empty means the working directory.
	MirrorDir string `toml:"mirror_dir"`
	// OutputDir receives finished e-books and exports.
	OutputDir string `toml:"output_dir"`
	// WorkDir holds per-run scratch directories. Empty means $HOME.
	WorkDir string `toml:"work_dir"`
	// EbookConvert is the conversion tool binary.
	EbookConvert string `toml:"ebook_convert"`
	// TemplateDir overrides the built-in page templates when set.
	TemplateDir string `toml:"template_dir"`
	Locale      string `toml:"locale"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	// Listen is the bind address of the web preview.
	Listen string `toml:"listen"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		OnlineRoot:   "http://monde-diplomatique.de",
		LocalRoot:    "monde-diplomatique.de",
		EbookConvert: "/usr/bin/ebook-convert",
		Locale:       "de_DE.UTF-8",
		LogLevel:     "info",
		LogFormat:    "auto",
		Listen:       "127.0.0.1:8000",
	}
}

// DefaultPath returns ~/.config/lmdpipe/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lmdpipe", "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OnlineRoot) == "" {
		return errors.New("online_root must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	return nil
}

// ConfigurationError reports a malformed key=value override.
type ConfigurationError struct {
	Pair   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Pair, e.Reason)
}

// ApplyPairs applies key=value overrides in order. Malformed pairs are
// skipped and reported; they never stop the remaining pairs.
func (c *Config) ApplyPairs(pairs []string) []error {
	var errs []error
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			errs = append(errs, &ConfigurationError{Pair: pair, Reason: "expected key=value"})
			continue
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			errs = append(errs, &ConfigurationError{Pair: pair, Reason: err.Error()})
		}
	}
	return errs
}

// Set assigns the field with the given TOML key. A value that fails
// validation leaves the configuration unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	fields := map[string]*string{
		"online_root":   &next.OnlineRoot,
		"local_root":    &next.LocalRoot,
		"mirror_dir":    &next.MirrorDir,
		"output_dir":    &next.OutputDir,
		"work_dir":      &next.WorkDir,
		"ebook_convert": &next.EbookConvert,
		"template_dir":  &next.TemplateDir,
		"locale":        &next.Locale,
		"log_level":     &next.LogLevel,
		"log_format":    &next.LogFormat,
		"listen":        &next.Listen,
	}
	field, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	*field = value
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
