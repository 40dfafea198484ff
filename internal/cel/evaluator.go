// Package cel evaluates CEL expressions against column descriptors. An
// expression sees the flattened column as `column` and its position as
// `index`, e.g. `column.name.startsWith("meta_") || index == 0`.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

const (
	varColumn = "column"
	varIndex  = "index"
)

// Evaluator compiles CEL expressions over columns.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable(varColumn, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(varIndex, cel.IntType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. The expression must produce a bool.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, err := e.check(expr)
	if err != nil {
		return nil, err
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q must evaluate to bool, not %s", expr, out)
	}
	prg, err := e.program(ast)
	if err != nil {
		return nil, err
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

func (e *Evaluator) check(expr string) (*cel.Ast, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	return ast, nil
}

func (e *Evaluator) program(ast *cel.Ast) (cel.Program, error) {
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Match evaluates the predicate for the column at index.
func (p *Predicate) Match(c *column.Column, index int) (bool, error) {
	val, _, err := p.prg.Eval(activation(c, index))
	if err != nil {
		return false, fmt.Errorf("eval error on column %q: %w", c.Name, err)
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %s for column %q, want bool", p.expr, val.Type(), c.Name)
	}
	return bool(b), nil
}

// Expression is a compiled expression of any result type.
type Expression struct {
	expr string
	prg  cel.Program
}

// CompileValue parses and type-checks expr without constraining its result.
func (e *Evaluator) CompileValue(expr string) (*Expression, error) {
	ast, err := e.check(expr)
	if err != nil {
		return nil, err
	}
	prg, err := e.program(ast)
	if err != nil {
		return nil, err
	}
	return &Expression{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (x *Expression) String() string {
	return x.expr
}

// Eval runs the expression for the column at index and converts the result
// to plain Go values.
func (x *Expression) Eval(c *column.Column, index int) (any, error) {
	val, _, err := x.prg.Eval(activation(c, index))
	if err != nil {
		return nil, fmt.Errorf("eval error on column %q: %w", c.Name, err)
	}
	return ToGo(val), nil
}

func activation(c *column.Column, index int) map[string]any {
	return map[string]any{
		varColumn: map[string]any(c.Attributes()),
		varIndex:  int64(index),
	}
}

// ToGo converts a CEL value to plain Go types, recursing into lists and maps.
func ToGo(val ref.Val) any {
	switch v := val.(type) {
	case nil:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	inner := val.Value()
	switch in := inner.(type) {
	case []ref.Val:
		out := make([]any, len(in))
		for i, elem := range in {
			out[i] = ToGo(elem)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(in))
		for k, v := range in {
			out[fmt.Sprint(k.Value())] = ToGo(v)
		}
		return out
	}
	return inner
}
