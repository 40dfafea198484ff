package cel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/dtcols/pkg/column"
	"github.com/oakwood-commons/dtcols/pkg/columns"
)

// Assignment sets one attribute on every column to the value of an
// expression, e.g. `orderable=column.name != "action"`.
type Assignment struct {
	Key  string
	Expr *Expression
}

// ParseAssignment parses "key=expr". The key is everything before the first
// "=".
func (e *Evaluator) ParseAssignment(s string) (*Assignment, error) {
	key, expr, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.TrimSpace(expr) == "" {
		return nil, errors.New("expected key=expression")
	}
	x, err := e.CompileValue(expr)
	if err != nil {
		return nil, err
	}
	return &Assignment{Key: key, Expr: x}, nil
}

// Apply evaluates the expression for every column of b and stores the result
// under Key. index is the column position. A result the key cannot hold, such
// as a list for data, fails with columns.ErrInvalidColumnSpec. On error b is
// left unchanged.
func (a *Assignment) Apply(b *columns.Builder) error {
	return b.Update(func(i int, c *column.Column) error {
		v, err := a.Expr.Eval(c, i)
		if err != nil {
			return err
		}
		if err := columns.ValidateAttributes(column.Attributes{a.Key: v}); err != nil {
			return fmt.Errorf("%s=%s: %w", a.Key, a.Expr, err)
		}
		c.Set(a.Key, v)
		return nil
	})
}
