package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

// loadYAML decodes YAML or JSON through yaml.Node so that mapping order
// survives; a plain map would lose the column order.
func (l *Loader) loadYAML(data []byte, format Format) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("invalid %s: %w", format, err)
	}
	node := resolve(&root)
	if node == nil || isNull(node) {
		return nil, ErrEmptyInput
	}

	doc := &Document{}
	switch node.Kind {
	case yaml.SequenceNode:
		// A bare list is shorthand for {columns: [...]}.
		entries, err := entriesFromNode(node, keyColumns)
		if err != nil {
			return nil, err
		}
		doc.Columns = entries
		return doc, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("invalid %s: document must be a mapping or a list of columns", format)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := resolve(node.Content[i+1])
		var err error
		switch key {
		case keyColumns:
			doc.Columns, err = entriesFromNode(val, keyColumns)
		case keyColumnDefs:
			var defs any
			if err = val.Decode(&defs); err == nil {
				doc.ColumnDefs = defs
				doc.HasColumnDefs = true
			}
		case keyPrepend:
			doc.Prepend, err = attributesFromNode(val, keyPrepend)
		case keyAppend:
			doc.Append, err = attributesFromNode(val, keyAppend)
		case keyRemove:
			doc.Remove, err = namesFromNode(val, keyRemove)
		default:
			l.log.V(1).Info("ignoring unknown document key", "key", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func entriesFromNode(node *yaml.Node, path string) ([]columns.Entry, error) {
	if isNull(node) {
		return []columns.Entry{}, nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		entries := make([]columns.Entry, 0, len(node.Content))
		for i, item := range node.Content {
			item = resolve(item)
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case isString(item):
				entries = append(entries, columns.Alias(item.Value))
			case item.Kind == yaml.MappingNode:
				fields, err := fieldsFromNode(item, itemPath)
				if err != nil {
					return nil, err
				}
				entries = append(entries, columns.Record{Key: positional(i), Fields: fields})
			default:
				return nil, invalid(itemPath, "expected a string or a mapping, got %s", describe(item))
			}
		}
		return entries, nil
	case yaml.MappingNode:
		entries := make([]columns.Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val := resolve(node.Content[i+1])
			itemPath := path + "." + key
			switch {
			case isNull(val):
				entries = append(entries, columns.Record{Key: key, Fields: column.Attributes{}})
			case isString(val):
				entries = append(entries, columns.Alias(val.Value))
			case val.Kind == yaml.MappingNode:
				fields, err := fieldsFromNode(val, itemPath)
				if err != nil {
					return nil, err
				}
				entries = append(entries, columns.Record{Key: key, Fields: fields})
			default:
				return nil, invalid(itemPath, "expected a string or a mapping, got %s", describe(val))
			}
		}
		return entries, nil
	default:
		return nil, invalid(path, "expected a list or a mapping, got %s", describe(node))
	}
}

func fieldsFromNode(node *yaml.Node, path string) (column.Attributes, error) {
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return nil, invalid(path, "%v", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return column.Attributes(fields), nil
}

func attributesFromNode(node *yaml.Node, path string) ([]column.Attributes, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(path, "expected a list of attribute mappings, got %s", describe(node))
	}
	out := make([]column.Attributes, 0, len(node.Content))
	for i, item := range node.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item.Kind != yaml.MappingNode {
			return nil, invalid(itemPath, "expected a mapping, got %s", describe(item))
		}
		fields, err := fieldsFromNode(item, itemPath)
		if err != nil {
			return nil, err
		}
		out = append(out, fields)
	}
	return out, nil
}

func namesFromNode(node *yaml.Node, path string) ([]string, error) {
	switch {
	case isNull(node):
		return nil, nil
	case isString(node):
		return []string{node.Value}, nil
	case node.Kind == yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for i, item := range node.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return nil, invalid(fmt.Sprintf("%s[%d]", path, i), "expected a column name, got %s", describe(item))
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, invalid(path, "expected a name or a list of names, got %s", describe(node))
	}
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func describe(n *yaml.Node) string {
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!int", "!!float":
			return "number " + n.Value
		case "!!bool":
			return "boolean " + n.Value
		}
		return fmt.Sprintf("%s %q", n.ShortTag(), n.Value)
	}
	return "unsupported node"
}
