// Package columns assembles the ordered column set and columnDefs override
// value consumed by a DataTables widget.
package columns

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

// ErrInvalidColumnSpec is reported when an entry does not describe a column.
var ErrInvalidColumnSpec = errors.New("invalid column specification")

// Builder maintains an ordered set of columns. Methods return the receiver so
// calls can be chained. A Builder is not safe for concurrent use.
type Builder struct {
	columns    []*column.Column
	columnDefs any
	hasDefs    bool
	err        error
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// SetColumnDefs stores the columnDefs override value verbatim, replacing any
// previous value.
func (b *Builder) SetColumnDefs(value any) *Builder {
	b.columnDefs = value
	b.hasDefs = true
	return b
}

// ColumnDefs returns the stored columnDefs value.
func (b *Builder) ColumnDefs() any {
	return b.columnDefs
}

// Columns replaces the column set with the normalized entries, in order.
// Entries that do not describe a column are skipped and recorded in Err. Any
// error from an earlier build is cleared, since the set it concerned is gone.
func (b *Builder) Columns(entries ...Entry) *Builder {
	b.err = nil
	b.columns = make([]*column.Column, 0, len(entries))
	for i, e := range entries {
		c, err := normalize(e)
		if err != nil {
			b.fail(fmt.Errorf("columns[%d]: %w", i, err))
			continue
		}
		b.columns = append(b.columns, c)
	}
	return b
}

// AddColumn appends a column built from attrs as given.
func (b *Builder) AddColumn(attrs column.Attributes) *Builder {
	if err := ValidateAttributes(attrs); err != nil {
		b.fail(fmt.Errorf("add: %w", err))
		return b
	}
	return b.Add(column.FromAttributes(attrs))
}

// AddColumnBefore inserts a column built from attrs at the front.
func (b *Builder) AddColumnBefore(attrs column.Attributes) *Builder {
	if err := ValidateAttributes(attrs); err != nil {
		b.fail(fmt.Errorf("add before: %w", err))
		return b
	}
	return b.AddBefore(column.FromAttributes(attrs))
}

// Add appends c.
func (b *Builder) Add(c *column.Column) *Builder {
	if c == nil {
		b.fail(fmt.Errorf("add: %w", ErrInvalidColumnSpec))
		return b
	}
	b.columns = append(b.columns, c)
	return b
}

// AddBefore inserts c at the front, shifting the other columns back.
func (b *Builder) AddBefore(c *column.Column) *Builder {
	if c == nil {
		b.fail(fmt.Errorf("add before: %w", ErrInvalidColumnSpec))
		return b
	}
	b.columns = append([]*column.Column{c}, b.columns...)
	return b
}

// GetColumns returns a snapshot of the column set. The returned columns are
// copies; changing them does not affect the builder.
func (b *Builder) GetColumns() []*column.Column {
	out := make([]*column.Column, len(b.columns))
	for i, c := range b.columns {
		out[i] = c.Clone()
	}
	return out
}

// RemoveColumn removes every column whose name matches one of names.
func (b *Builder) RemoveColumn(names ...string) *Builder {
	for _, name := range names {
		b.RemoveFunc(func(c *column.Column) bool { return c.Name == name })
	}
	return b
}

// RemoveFunc removes every column for which fn returns true. Survivors keep
// their relative order.
func (b *Builder) RemoveFunc(fn func(*column.Column) bool) *Builder {
	kept := b.columns[:0]
	for _, c := range b.columns {
		if !fn(c) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(b.columns); i++ {
		b.columns[i] = nil
	}
	b.columns = kept
	return b
}

// Update calls fn on a copy of every column in order and, when all calls
// succeed, replaces the set with the updated copies. On error the set is left
// unchanged.
func (b *Builder) Update(fn func(index int, c *column.Column) error) error {
	updated := b.GetColumns()
	for i, c := range updated {
		if err := fn(i, c); err != nil {
			return fmt.Errorf("column %d (%s): %w", i, c.Name, err)
		}
	}
	b.columns = updated
	return nil
}

// Len returns the number of columns.
func (b *Builder) Len() int {
	return len(b.columns)
}

// Names returns the column names in order.
func (b *Builder) Names() []string {
	out := make([]string, len(b.columns))
	for i, c := range b.columns {
		out[i] = c.Name
	}
	return out
}

// Column returns a copy of the first column named name.
func (b *Builder) Column(name string) (*column.Column, bool) {
	for _, c := range b.columns {
		if c.Name == name {
			return c.Clone(), true
		}
	}
	return nil, false
}

// Err returns the first error recorded while building.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Payload is the configuration handed to the widget.
type Payload struct {
	Columns    []*column.Column `json:"columns" yaml:"columns"`
	ColumnDefs any              `json:"columnDefs,omitempty" yaml:"columnDefs,omitempty"`
}

// Payload returns the widget configuration, or the first build error.
func (b *Builder) Payload() (Payload, error) {
	if b.err != nil {
		return Payload{}, b.err
	}
	p := Payload{Columns: b.GetColumns()}
	if b.hasDefs {
		p.ColumnDefs = b.columnDefs
	}
	return p, nil
}

// MarshalJSON encodes the widget payload.
func (b *Builder) MarshalJSON() ([]byte, error) {
	p, err := b.Payload()
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}
