// Package config loads the dtcols CLI configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtcols/internal/formatter"
)

// AppName names the per-user config directory.
const AppName = "dtcols"

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with the file at path merged on top. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Merge(&cfg, data); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge decodes data over cfg. Keys absent from data keep their value.
func Merge(cfg *Config, data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := formatter.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative")
	}
	if err := formatter.ValidateRowNumberStyle(c.Table.RowNumbers); err != nil {
		return fmt.Errorf("table.row_numbers: %w", err)
	}
	return nil
}

// ResolvePath returns explicit when set, otherwise the per-user config file
// if it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, AppName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", AppName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// FormatterOptions maps the output settings onto formatter options.
func (c Config) FormatterOptions() formatter.Options {
	return formatter.Options{
		Indent:         c.Output.Indent,
		NoColor:        c.Output.NoColor,
		Width:          c.Output.Width,
		RowNumberStyle: c.Table.RowNumbers,
		MaxColumnWidth: c.Table.MaxWidth,
	}
}
