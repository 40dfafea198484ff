package config

import (
	"image/color"
	"strconv"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtcols/internal/formatter"
)

// Config is the dtcols CLI configuration. Defaults come from the embedded
// default_config.yaml; a user file only needs the keys it overrides.
type Config struct {
	Output OutputConfig `yaml:"output" json:"output"`
	Table  TableConfig  `yaml:"table" json:"table"`
	Theme  ThemeConfig  `yaml:"theme" json:"theme"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format  string `yaml:"format" json:"format"`
	Indent  int    `yaml:"indent" json:"indent"`
	Width   int    `yaml:"width" json:"width"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// TableConfig controls the table layout.
type TableConfig struct {
	RowNumbers string `yaml:"row_numbers" json:"row_numbers"`
	MaxWidth   int    `yaml:"max_width" json:"max_width"`
}

// ColorValue stores a color token (ANSI number, name or #hex) and marshals
// numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// Color returns the lipgloss color, or nil when unset.
func (c ColorValue) Color() color.Color {
	if c == "" {
		return nil
	}
	return lipgloss.Color(string(c))
}

// ThemeConfig holds the table colors.
type ThemeConfig struct {
	HeaderFG  ColorValue `yaml:"header_fg" json:"header_fg"`
	HeaderBG  ColorValue `yaml:"header_bg" json:"header_bg"`
	Key       ColorValue `yaml:"key" json:"key"`
	Value     ColorValue `yaml:"value" json:"value"`
	Separator ColorValue `yaml:"separator" json:"separator"`
}

// TableColors converts the theme for the formatter. Unset colors stay nil so
// the formatter defaults apply.
func (t ThemeConfig) TableColors() formatter.TableColors {
	return formatter.TableColors{
		HeaderFG:       t.HeaderFG.Color(),
		HeaderBG:       t.HeaderBG.Color(),
		KeyColor:       t.Key.Color(),
		ValueColor:     t.Value.Color(),
		SeparatorColor: t.Separator.Color(),
	}
}
