package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

func build(t *testing.T, doc *Document) *columns.Builder {
	t.Helper()
	b := doc.Apply(columns.New())
	require.NoError(t, b.Err())
	return b
}

func TestLoadYAMLSequence(t *testing.T) {
	input := `
columns:
  - id
  - data: email
  - name: users.name
    data: name
    orderable: false
`
	doc, err := Load([]byte(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Columns, 3)

	assert.Equal(t, columns.Alias("id"), doc.Columns[0])
	assert.Equal(t, columns.Record{Key: "1", Fields: column.Attributes{"data": "email"}}, doc.Columns[1])

	cols := build(t, doc).GetColumns()
	assert.Equal(t, "email", cols[1].Name)
	assert.Equal(t, "1", cols[1].Title)
	assert.Equal(t, "users.name", cols[2].Name)
	v, ok := cols[2].Get("orderable")
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestLoadYAMLMappingPreservesOrder(t *testing.T) {
	input := `
columns:
  zeta: zeta
  name:
    data: full_name
  alpha:
  created_at: {title: Created}
`
	doc, err := Load([]byte(input), FormatAuto)
	require.NoError(t, err)

	b := build(t, doc)
	assert.Equal(t, []string{"zeta", "full_name", "alpha", "created_at"}, b.Names())

	cols := b.GetColumns()
	assert.Equal(t, "Name", cols[1].Title)
	assert.Equal(t, "alpha", cols[2].Data)
	assert.Equal(t, "Alpha", cols[2].Title)
	assert.Equal(t, "Created", cols[3].Title)
}

func TestLoadJSONPreservesOrder(t *testing.T) {
	input := `{
  "columnDefs": [{"targets": 0, "orderable": false}],
  "columns": {"b": {"data": "b"}, "a": "a", "c": {}}
}`
	doc, err := Load([]byte(input), FormatAuto)
	require.NoError(t, err)

	b := build(t, doc)
	assert.Equal(t, []string{"b", "a", "c"}, b.Names())
	require.True(t, doc.HasColumnDefs)
	assert.Equal(t, []any{map[string]any{"targets": 0, "orderable": false}}, b.ColumnDefs())
}

func TestLoadBareList(t *testing.T) {
	doc, err := Load([]byte(`["id", "name"]`), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, build(t, doc).Names())
}

func TestLoadPrependAppendRemove(t *testing.T) {
	input := `
columns: [id, name, password, email]
prepend:
  - {name: select, data: null, orderable: false}
  - {name: row, data: null}
append:
  - {name: action, data: action, title: Action}
remove: [password]
`
	doc, err := Load([]byte(input), FormatYAML)
	require.NoError(t, err)

	b := build(t, doc)
	assert.Equal(t, []string{"select", "row", "id", "name", "email", "action"}, b.Names())

	cols := b.GetColumns()
	assert.Nil(t, cols[0].Data)
	assert.Equal(t, "Action", cols[5].Title)
}

func TestLoadDataValues(t *testing.T) {
	input := `
columns:
  - {name: action, data: null}
  - data: {_: office.display, sort: office.id}
  - {data: 0, title: First}
  - {data: [a, b]}
`
	doc, err := Load([]byte(input), FormatYAML)
	require.NoError(t, err)

	b := doc.Apply(columns.New())
	require.ErrorIs(t, b.Err(), columns.ErrInvalidColumnSpec)
	assert.Contains(t, b.Err().Error(), "columns[3]")

	cols := b.GetColumns()
	require.Len(t, cols, 3)
	assert.Equal(t, "action", cols[0].Name)
	assert.Nil(t, cols[0].Data)
	assert.Equal(t, "1", cols[1].Name)
	assert.Equal(t, map[string]any{"_": "office.display", "sort": "office.id"}, cols[1].Data)
	assert.Equal(t, "0", cols[2].Name)
	assert.Equal(t, 0, cols[2].Data)
}

func TestLoadRemoveSingleName(t *testing.T) {
	doc, err := Load([]byte("columns: [a, b]\nremove: b\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, build(t, doc).Names())
}

func TestLoadWithoutColumnsKeepsExistingSet(t *testing.T) {
	doc, err := Load([]byte("remove: [b]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, doc.Columns)

	b := columns.New().Columns(columns.Strs("a", "b")...)
	doc.Apply(b)
	assert.Equal(t, []string{"a"}, b.Names())
}

func TestLoadYAMLAnchors(t *testing.T) {
	input := `
base: &hidden {visible: false}
columns:
  secret: *hidden
`
	doc, err := Load([]byte(input), FormatYAML)
	require.NoError(t, err)

	cols := build(t, doc).GetColumns()
	require.Len(t, cols, 1)
	v, _ := cols[0].Get("visible")
	assert.Equal(t, false, v)
}

func TestLoadTOML(t *testing.T) {
	input := `
remove = ["password"]

[[columns]]
data = "id"

[[columns]]
name = "users.email"
data = "email"
title = "E-mail"

[[columns]]
data = "password"

[[append]]
name = "action"
data = "action"
`
	doc, err := Load([]byte(input), FormatAuto)
	require.NoError(t, err)

	b := build(t, doc)
	assert.Equal(t, []string{"id", "users.email", "action"}, b.Names())
	c, ok := b.Column("users.email")
	require.True(t, ok)
	assert.Equal(t, "E-mail", c.Title)
}

func TestLoadTOMLOrthogonalData(t *testing.T) {
	doc, err := Load([]byte(`columns = [{ name = "office", data = { _ = "office.display", sort = "office.id" } }]`), FormatTOML)
	require.NoError(t, err)

	cols := build(t, doc).GetColumns()
	require.Len(t, cols, 1)
	assert.Equal(t, map[string]any{"_": "office.display", "sort": "office.id"}, cols[0].Data)
}

func TestLoadTOMLMixedArray(t *testing.T) {
	doc, err := Load([]byte(`columns = ["id", { data = "name" }]`), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, build(t, doc).Names())
}

func TestLoadInvalidColumns(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantErr string
	}{
		{"number in list", "columns: [id, 42]", FormatYAML, "columns[1]"},
		{"boolean in mapping", "columns:\n  id: true\n", FormatYAML, "columns.id"},
		{"nested list", "columns: [[a]]", FormatYAML, "columns[0]"},
		{"scalar columns", "columns: 7", FormatYAML, "columns"},
		{"null in list", "columns: [id, null]", FormatYAML, "columns[1]"},
		{"prepend not list", "prepend: {a: b}", FormatYAML, "prepend"},
		{"remove mapping", "remove: {a: b}", FormatYAML, "remove"},
		{"json number", `{"columns": ["id", 1]}`, FormatJSON, "columns[1]"},
		{"toml table", "[columns]\nid = \"id\"\n", FormatTOML, "unordered"},
		{"toml number", "columns = [1]", FormatTOML, "columns[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input), tt.format)
			require.ErrorIs(t, err, columns.ErrInvalidColumnSpec)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEmptyAndMalformed(t *testing.T) {
	_, err := Load([]byte("   \n"), FormatAuto)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Load([]byte("# only a comment\n"), FormatYAML)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Load([]byte("columns: [a"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid yaml")

	_, err = Load([]byte("just a string"), FormatYAML)
	require.Error(t, err)

	_, err = Load([]byte("a"), Format("xml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		input string
		want  Format
	}{
		{"yaml ext", "cols.yml", "{}", FormatYAML},
		{"json ext", "cols.JSON", "a: b", FormatJSON},
		{"toml ext", "cols.toml", "", FormatTOML},
		{"json object", "", `{"columns": []}`, FormatJSON},
		{"single element json array", "", `["id"]`, FormatJSON},
		{"toml header", "", "[[columns]]\ndata = \"id\"", FormatTOML},
		{"toml key value", "", `columns = ["id"]`, FormatTOML},
		{"yaml", "", "columns:\n  - id", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.file, []byte(tt.input)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("ini")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFileAndReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [id]\n"), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Columns, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"columns": [true]}`), 0o600))
	_, err = LoadFile(bad)
	require.ErrorIs(t, err, columns.ErrInvalidColumnSpec)
	assert.Contains(t, err.Error(), "bad.json")

	doc, err = LoadReader(strings.NewReader(`columns = ["a", "b"]`), "")
	require.NoError(t, err)
	assert.Len(t, doc.Columns, 2)
}
