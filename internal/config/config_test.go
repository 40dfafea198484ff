package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtcols/internal/formatter"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, "numbered", cfg.Table.RowNumbers)
	assert.Equal(t, 60, cfg.Table.MaxWidth)
	assert.Equal(t, ColorValue("12"), cfg.Theme.HeaderFG)
	require.NoError(t, cfg.Validate())
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: table\ntheme:\n  key: \"#ff0000\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Indent, "unset keys keep defaults")
	assert.Equal(t, ColorValue("#ff0000"), cfg.Theme.Key)
	assert.Equal(t, ColorValue("248"), cfg.Theme.Value)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: csv\n"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.format")
	})

	t.Run("invalid row numbers", func(t *testing.T) {
		cfg, err := Default()
		require.NoError(t, err)
		err = Merge(&cfg, []byte("table:\n  row_numbers: roman\n"))
		require.Error(t, err)
	})
}

func TestMergeEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, Merge(&cfg, []byte("  \n")))
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Empty(t, ResolvePath(""))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppName), 0o755))
	path := filepath.Join(dir, AppName, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	assert.Equal(t, path, ResolvePath(""))
}

func TestColorValueYAML(t *testing.T) {
	out, err := yaml.Marshal(ThemeConfig{HeaderFG: "12", Key: "#00ff00"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "header_fg: 12\n")
	assert.Contains(t, string(out), "#00ff00")
}

func TestTableColors(t *testing.T) {
	tc := ThemeConfig{Key: "14"}.TableColors()
	assert.NotNil(t, tc.KeyColor)
	assert.Nil(t, tc.HeaderFG)
	assert.Nil(t, tc.SeparatorColor)
}

func TestFormatterOptions(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Output.NoColor = true

	assert.Equal(t, formatter.Options{
		Indent:         2,
		NoColor:        true,
		RowNumberStyle: "numbered",
		MaxColumnWidth: 60,
	}, cfg.FormatterOptions())
}
