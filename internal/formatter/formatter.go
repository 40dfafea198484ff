// Package formatter renders a column payload for people and for the widget:
// JSON and YAML for the widget, a table, a tree, markdown or HTML for review.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/oakwood-commons/dtcols/pkg/columns"
)

var (
	defaultHeaderFG   = lipgloss.Color("12")
	defaultHeaderBG   = lipgloss.Color("236")
	defaultKeyColor   = lipgloss.Color("14")
	defaultValueColor = lipgloss.Color("248")
	defaultSeparator  = lipgloss.Color("240")

	headerStyle    lipgloss.Style
	keyStyle       lipgloss.Style
	valueStyle     lipgloss.Style
	separatorStyle lipgloss.Style
)

// TableColors controls the rendered colors for the column table.
// Nil fields fall back to the defaults (ANSI 256 codes).
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	KeyColor       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
}

func applyTableTheme(tc TableColors) {
	hfg, hbg, kc, vc, sep := tc.HeaderFG, tc.HeaderBG, tc.KeyColor, tc.ValueColor, tc.SeparatorColor
	if hfg == nil {
		hfg = defaultHeaderFG
	}
	if hbg == nil {
		hbg = defaultHeaderBG
	}
	if kc == nil {
		kc = defaultKeyColor
	}
	if vc == nil {
		vc = defaultValueColor
	}
	if sep == nil {
		sep = defaultSeparator
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(hfg).Background(hbg)
	keyStyle = lipgloss.NewStyle().Foreground(kc)
	valueStyle = lipgloss.NewStyle().Foreground(vc)
	separatorStyle = lipgloss.NewStyle().Foreground(sep)
}

// SetTableTheme overrides the table styles. Nil fields fall back to defaults.
func SetTableTheme(tc TableColors) {
	applyTableTheme(tc)
}

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	applyTableTheme(TableColors{})
}

// Format is an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTable    Format = "table"
	FormatTree     Format = "tree"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ValidFormats lists every accepted format name.
var ValidFormats = []string{"json", "yaml", "table", "tree", "markdown", "html"}

// ParseFormat validates a format name. "yml" and "md" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	default:
		for _, f := range ValidFormats {
			if v == f {
				return Format(v), nil
			}
		}
	}
	return "", fmt.Errorf("invalid output format %q: valid values are %s", s, strings.Join(ValidFormats, ", "))
}

// Options configures rendering.
type Options struct {
	// Indent is the JSON/YAML indent width. 0 means 2.
	Indent int
	// NoColor disables ANSI styling in the table.
	NoColor bool
	// Width is the table width. 0 uses the terminal width.
	Width int
	// RowNumberStyle is numbered (default), index, bullet or none.
	RowNumberStyle string
	// MaxColumnWidth caps any single table column. 0 = no cap.
	MaxColumnWidth int
}

// Render renders the payload in the given format.
func Render(p columns.Payload, format Format, opts Options) (string, error) {
	switch format {
	case FormatJSON:
		return FormatJSONIndent(p, opts.Indent)
	case FormatYAML:
		return EncodeYAML(p, YAMLOptions{Indent: opts.Indent, BlockScalars: true})
	case FormatTable:
		return RenderColumnTable(p.Columns, TableOptions{
			NoColor:        opts.NoColor,
			TotalWidth:     opts.Width,
			RowNumberStyle: opts.RowNumberStyle,
			MaxColumnWidth: opts.MaxColumnWidth,
		}), nil
	case FormatTree:
		return RenderTree(p), nil
	case FormatMarkdown:
		return RenderMarkdown(p.Columns), nil
	case FormatHTML:
		return RenderHTML(p.Columns), nil
	default:
		return "", fmt.Errorf("invalid output format %q", format)
	}
}

// FormatJSONIndent renders v as indented JSON with a trailing newline.
// HTML characters are not escaped so render functions stay readable.
func FormatJSONIndent(v any, indent int) (string, error) {
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Stringify returns a compact single-line representation of an attribute
// value: scalars as-is, everything else as JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strings.ReplaceAll(t, "\n", `\n`)
	case bool, int, int64, float64, uint64:
		return fmt.Sprint(t)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// attributeSummary joins the pass-through attributes as k=v pairs in key
// order.
func attributeSummary(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+Stringify(attrs[k]))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
