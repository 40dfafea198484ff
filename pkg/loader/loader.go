// Package loader decodes column documents (YAML, JSON or TOML) into entries
// for a columns.Builder, keeping the order in which columns were written.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedFormat is returned for an unknown explicit format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format names a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Top-level document keys.
const (
	keyColumns    = "columns"
	keyColumnDefs = "columnDefs"
	keyPrepend    = "prepend"
	keyAppend     = "append"
	keyRemove     = "remove"
)

// Document is a decoded column document.
type Document struct {
	// Columns is nil when the document has no columns key, which leaves an
	// existing set untouched on Apply.
	Columns       []columns.Entry
	ColumnDefs    any
	HasColumnDefs bool
	Prepend       []column.Attributes
	Append        []column.Attributes
	Remove        []string
}

// Apply replays the document onto b: columns first, then prepended and
// appended columns, then removals and finally columnDefs.
func (d *Document) Apply(b *columns.Builder) *columns.Builder {
	if d.Columns != nil {
		b.Columns(d.Columns...)
	}
	for i := len(d.Prepend) - 1; i >= 0; i-- {
		b.AddColumnBefore(d.Prepend[i])
	}
	for _, attrs := range d.Append {
		b.AddColumn(attrs)
	}
	if len(d.Remove) > 0 {
		b.RemoveColumn(d.Remove...)
	}
	if d.HasColumnDefs {
		b.SetColumnDefs(d.ColumnDefs)
	}
	return b
}

// Loader decodes documents and logs format decisions at V(1).
type Loader struct {
	log logr.Logger
}

// New returns a loader that logs to lgr.
func New(lgr logr.Logger) *Loader {
	return &Loader{log: lgr}
}

var defaultLoader = New(logr.Discard())

// Load decodes data in the given format. FormatAuto sniffs the content.
func Load(data []byte, format Format) (*Document, error) {
	return defaultLoader.Load(data, format)
}

// LoadFile reads and decodes a file, picking the format from its extension.
func LoadFile(path string) (*Document, error) {
	return defaultLoader.LoadFile(path)
}

// LoadReader reads r fully and decodes it. name is only used for format
// detection and may be empty.
func LoadReader(r io.Reader, name string) (*Document, error) {
	return defaultLoader.LoadReader(r, name)
}

// LoadFile reads and decodes a file.
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := l.Load(data, DetectFormat(path, data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadReader reads r fully and decodes it.
func (l *Loader) LoadReader(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return l.Load(data, DetectFormat(name, data))
}

// Load decodes data in the given format.
func (l *Loader) Load(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	if format == FormatAuto {
		format = DetectFormat("", data)
	}
	l.log.V(1).Info("decoding column document", "format", string(format), "bytes", len(data))

	switch format {
	case FormatYAML, FormatJSON:
		return l.loadYAML(data, format)
	case FormatTOML:
		return l.loadTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatYAML, FormatJSON, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks a format from the file extension, falling back to the
// content: valid JSON, then TOML headers or key = value lines, then YAML.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	input := strings.TrimSpace(string(data))
	// ["id"] is both a JSON array and a TOML header; valid JSON wins.
	if (strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[")) && json.Valid([]byte(input)) {
		return FormatJSON
	}
	if isLikelyTOML(input) {
		return FormatTOML
	}
	return FormatYAML
}

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML reports whether input has TOML section headers or mostly
// key = value lines. JSON arrays such as [1, 2] do not match the header form.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}

func invalid(path string, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", path, columns.ErrInvalidColumnSpec, fmt.Sprintf(format, args...))
}

func positional(i int) string {
	return strconv.Itoa(i)
}
