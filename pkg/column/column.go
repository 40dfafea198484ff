// Package column defines the descriptor for a single DataTables column and the
// helpers used to derive display titles from field keys.
package column

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Reserved attribute keys that map onto Column fields instead of the
// free-form attribute set.
const (
	KeyName  = "name"
	KeyData  = "data"
	KeyTitle = "title"
)

// Attributes is a set of DataTables column options keyed by option name.
type Attributes map[string]any

// Column describes one rendered table column.
//
// Name identifies the column for lookup and removal and Title is the header
// label. Data is the source the widget reads: a field name, a numeric array
// index, an orthogonal-data object, or nil for columns without a source
// (action or select columns). Every other option (width, orderable, render,
// ...) is passed through to the widget untouched.
type Column struct {
	Name  string
	Data  any
	Title string

	attrs Attributes
}

// New returns a column with the given name, data source and title.
func New(name string, data any, title string) *Column {
	return &Column{Name: name, Data: data, Title: title}
}

// FromAttributes builds a column from a fully specified attribute set. No
// defaulting is applied: a missing name, data or title stays empty.
func FromAttributes(attrs Attributes) *Column {
	c := &Column{}
	for k, v := range attrs {
		c.Set(k, v)
	}
	return c
}

// Set stores an attribute. The reserved keys name and title update the
// matching field, a nil value clearing them; data is stored as given.
func (c *Column) Set(key string, value any) *Column {
	switch key {
	case KeyName:
		c.Name = AsString(value)
	case KeyData:
		c.Data = value
	case KeyTitle:
		c.Title = AsString(value)
	default:
		if c.attrs == nil {
			c.attrs = Attributes{}
		}
		c.attrs[key] = value
	}
	return c
}

// Get returns the attribute stored under key.
func (c *Column) Get(key string) (any, bool) {
	switch key {
	case KeyName:
		return c.Name, true
	case KeyData:
		return c.Data, true
	case KeyTitle:
		return c.Title, c.Title != ""
	}
	v, ok := c.attrs[key]
	return v, ok
}

// Unset removes a pass-through attribute.
func (c *Column) Unset(key string) *Column {
	delete(c.attrs, key)
	return c
}

// Keys returns the pass-through attribute keys in sorted order.
func (c *Column) Keys() []string {
	keys := make([]string, 0, len(c.attrs))
	for k := range c.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attributes returns a flattened copy of the column, including name, data and
// title, in the shape the widget expects.
func (c *Column) Attributes() Attributes {
	out := make(Attributes, len(c.attrs)+3)
	for k, v := range c.attrs {
		out[k] = v
	}
	out[KeyName] = c.Name
	out[KeyData] = c.Data
	if c.Title != "" {
		out[KeyTitle] = c.Title
	}
	return out
}

// Clone returns a deep copy of c. Nested maps and lists in data and in the
// attributes are copied too.
func (c *Column) Clone() *Column {
	cp := *c
	cp.Data = deepCopy(c.Data)
	cp.attrs = nil
	if len(c.attrs) > 0 {
		cp.attrs = make(Attributes, len(c.attrs))
		for k, v := range c.attrs {
			cp.attrs[k] = deepCopy(v)
		}
	}
	return &cp
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case Attributes:
		out := make(Attributes, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// ValidData reports whether v can serve as a column data source: nil, a
// string, a number, or an orthogonal-data object mapping request types to
// sources.
func ValidData(v any) bool {
	switch t := v.(type) {
	case nil, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case map[string]any:
		return validOrthogonal(t)
	case Attributes:
		return validOrthogonal(t)
	default:
		return false
	}
}

func validOrthogonal(m map[string]any) bool {
	for _, v := range m {
		switch v.(type) {
		case map[string]any, Attributes:
			return false
		}
		if !ValidData(v) {
			return false
		}
	}
	return true
}

// IsScalar reports whether v is nil, a string, a number or a bool, the
// values a name or title may be given as.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// fields returns the serialized key order: name, data, title (when set),
// then the pass-through attributes sorted by key.
func (c *Column) fields() ([]string, Attributes) {
	attrs := c.Attributes()
	keys := []string{KeyName, KeyData}
	if c.Title != "" {
		keys = append(keys, KeyTitle)
	}
	return append(keys, c.Keys()...), attrs
}

// MarshalJSON emits the column as one flat object.
func (c *Column) MarshalJSON() ([]byte, error) {
	keys, attrs := c.fields()
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(attrs[k])
		if err != nil {
			return nil, fmt.Errorf("column %q attribute %q: %w", c.Name, k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits the column as one flat mapping.
func (c *Column) MarshalYAML() (interface{}, error) {
	keys, attrs := c.fields()
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		var val yaml.Node
		if err := val.Encode(attrs[k]); err != nil {
			return nil, fmt.Errorf("column %q attribute %q: %w", c.Name, k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return node, nil
}

// AsString converts a loosely typed attribute value to a string. nil maps to
// the empty string.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
