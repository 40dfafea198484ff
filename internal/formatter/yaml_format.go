package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLOptions configure EncodeYAML.
type YAMLOptions struct {
	// Indent is the mapping indent width. 0 means 2.
	Indent int
	// BlockScalars writes multi-line strings, in practice the inline
	// render and createdCell functions of a column, as "|" blocks so they
	// can be read and edited in place.
	BlockScalars bool
}

// EncodeYAML writes a column payload, or the CLI config, as YAML. Column
// key order is decided by Column.MarshalYAML and kept as is.
func EncodeYAML(v any, opts YAMLOptions) (string, error) {
	var doc yaml.Node
	if err := doc.Encode(v); err != nil {
		return "", err
	}
	if opts.BlockScalars {
		blockMultiline(&doc)
	}

	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func blockMultiline(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
		return
	}
	for _, child := range n.Content {
		blockMultiline(child)
	}
}
