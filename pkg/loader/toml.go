package loader

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

// loadTOML decodes a TOML document. TOML tables are unordered once decoded,
// so columns must be written as an array (columns = [...] or [[columns]]).
func (l *Loader) loadTOML(data []byte) (*Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	doc := &Document{}
	for key, val := range raw {
		var err error
		switch key {
		case keyColumns:
			doc.Columns, err = entriesFromList(val, keyColumns)
		case keyColumnDefs:
			doc.ColumnDefs = val
			doc.HasColumnDefs = true
		case keyPrepend:
			doc.Prepend, err = attributesFromList(val, keyPrepend)
		case keyAppend:
			doc.Append, err = attributesFromList(val, keyAppend)
		case keyRemove:
			doc.Remove, err = namesFromList(val, keyRemove)
		default:
			l.log.V(1).Info("ignoring unknown document key", "key", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func entriesFromList(val any, path string) ([]columns.Entry, error) {
	switch v := val.(type) {
	case []any:
		entries := make([]columns.Entry, 0, len(v))
		for i, item := range v {
			switch it := item.(type) {
			case string:
				entries = append(entries, columns.Alias(it))
			case map[string]any:
				entries = append(entries, columns.Record{Key: positional(i), Fields: column.Attributes(it)})
			default:
				return nil, invalid(fmt.Sprintf("%s[%d]", path, i), "expected a string or a table, got %T", item)
			}
		}
		return entries, nil
	case map[string]any:
		return nil, invalid(path, "TOML tables are unordered; write columns as an array")
	default:
		return nil, invalid(path, "expected an array, got %T", val)
	}
}

func attributesFromList(val any, path string) ([]column.Attributes, error) {
	list, ok := val.([]any)
	if !ok {
		return nil, invalid(path, "expected an array of tables, got %T", val)
	}
	out := make([]column.Attributes, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(fmt.Sprintf("%s[%d]", path, i), "expected a table, got %T", item)
		}
		out = append(out, column.Attributes(m))
	}
	return out, nil
}

func namesFromList(val any, path string) ([]string, error) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(fmt.Sprintf("%s[%d]", path, i), "expected a column name, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(path, "expected a name or an array of names, got %T", val)
	}
}
