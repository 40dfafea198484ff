package columns

import (
	"fmt"
	"strconv"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

// Entry is one input to Builder.Columns. It is a closed set: Alias, Record
// and Descriptor are the only implementations.
type Entry interface {
	isEntry()
}

// Alias is a bare field name. It becomes a column whose name and data are the
// alias and whose title is derived from it.
type Alias string

// Record is an attribute set keyed by its position or map key. Key is used as
// the data source, name and title seed when the fields do not provide them.
type Record struct {
	Key    string
	Fields column.Attributes
}

// Descriptor is a pre-built column appended without normalization.
type Descriptor struct {
	Column *column.Column
}

func (Alias) isEntry()      {}
func (Record) isEntry()     {}
func (Descriptor) isEntry() {}

// Str returns an Alias entry.
func Str(v string) Entry { return Alias(v) }

// Rec returns a Record entry keyed by key.
func Rec(key string, fields column.Attributes) Entry {
	return Record{Key: key, Fields: fields}
}

// At returns a Record entry keyed by its position in a list.
func At(index int, fields column.Attributes) Entry {
	return Record{Key: strconv.Itoa(index), Fields: fields}
}

// Desc returns a Descriptor entry.
func Desc(c *column.Column) Entry { return Descriptor{Column: c} }

// Strs converts field names into Alias entries.
func Strs(names ...string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Alias(n)
	}
	return out
}

// normalize turns an entry into the column it describes.
func normalize(e Entry) (*column.Column, error) {
	switch v := e.(type) {
	case Alias:
		s := string(v)
		return column.New(s, s, column.QualifiedTitle(s)), nil
	case Record:
		return normalizeRecord(v)
	case Descriptor:
		if v.Column == nil {
			return nil, ErrInvalidColumnSpec
		}
		return v.Column, nil
	default:
		return nil, ErrInvalidColumnSpec
	}
}

// normalizeRecord fills in the reserved keys a record leaves out. Only an
// absent field is defaulted: an explicit null data stays null and an explicit
// null name or title stays empty.
func normalizeRecord(r Record) (*column.Column, error) {
	if err := ValidateAttributes(r.Fields); err != nil {
		return nil, fmt.Errorf("record %q: %w", r.Key, err)
	}
	data, hasData := r.Fields[column.KeyData]
	name, hasName := r.Fields[column.KeyName]

	c := &column.Column{}
	for k, v := range r.Fields {
		c.Set(k, v)
	}

	c.Data = r.Key
	if hasData {
		c.Data = data
	}
	switch {
	case hasName:
		c.Name = column.AsString(name)
	case hasData && data != nil && column.IsScalar(data):
		c.Name = column.AsString(data)
	default:
		c.Name = r.Key
	}
	if title, ok := r.Fields[column.KeyTitle]; ok {
		c.Title = column.AsString(title)
	} else {
		c.Title = column.QualifiedTitle(r.Key)
	}
	return c, nil
}

// ValidateAttributes rejects reserved keys the widget could not use: a name or
// title that is not a scalar, or a data value that is neither a source nor an
// orthogonal-data object.
func ValidateAttributes(attrs column.Attributes) error {
	for _, k := range []string{column.KeyName, column.KeyTitle} {
		if v, ok := attrs[k]; ok && !column.IsScalar(v) {
			return fmt.Errorf("%s must be a scalar, got %T: %w", k, v, ErrInvalidColumnSpec)
		}
	}
	if v, ok := attrs[column.KeyData]; ok && !column.ValidData(v) {
		return fmt.Errorf("data must be a string, number, null or orthogonal object, got %T: %w", v, ErrInvalidColumnSpec)
	}
	return nil
}
