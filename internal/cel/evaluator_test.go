package cel

import (
	"strings"
	"testing"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

func TestNewEvaluator_CreatesValidEnvironment(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	if eval == nil || eval.env == nil {
		t.Fatal("NewEvaluator returned no environment")
	}
}

func TestPredicate_Match(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	hidden := column.New("secret", "secret", "Secret").Visible(false)
	plain := column.New("id", "id", "Id")
	action := column.New("action", nil, "")

	tests := []struct {
		name  string
		expr  string
		col   *column.Column
		index int
		want  bool
	}{
		{"name equality", `column.name == "id"`, plain, 0, true},
		{"has attribute", `has(column.visible)`, hidden, 0, true},
		{"missing attribute guarded", `!has(column.visible) || column.visible`, plain, 0, true},
		{"attribute false", `!has(column.visible) || column.visible`, hidden, 0, false},
		{"null data", `column.data == null`, action, 0, true},
		{"index", `index > 1`, plain, 2, true},
		{"string extension", `column.title.lowerAscii() == "secret"`, hidden, 0, true},
		{"startsWith", `column.name.startsWith("sec")`, plain, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := eval.Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.expr, err)
			}
			got, err := p.Match(tt.col, tt.index)
			if err != nil {
				t.Fatalf("Match failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
			}
			if p.String() != tt.expr {
				t.Errorf("String() = %q, want %q", p.String(), tt.expr)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	if _, err := eval.Compile(`column.name ==`); err == nil {
		t.Error("expected syntax error")
	}
	if _, err := eval.Compile(`index + 1`); err == nil || !strings.Contains(err.Error(), "must evaluate to bool") {
		t.Errorf("expected non-bool error, got %v", err)
	}
	if _, err := eval.Compile(`unknown == 1`); err == nil {
		t.Error("expected undeclared reference error")
	}
}

func TestPredicate_MatchErrors(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	p, err := eval.Compile(`column.visible`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := p.Match(column.New("id", "id", "Id"), 0); err == nil {
		t.Error("expected missing key error")
	}

	p, err = eval.Compile(`column.width`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	_, err = p.Match(column.New("id", "id", "Id").Width("10px"), 0)
	if err == nil || !strings.Contains(err.Error(), "want bool") {
		t.Errorf("expected non-bool result error, got %v", err)
	}
}

func TestExpression_Eval(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	c := column.New("price", "price", "Price").Width("80px")

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"string", `column.width`, "80px"},
		{"int", `index * 2`, int64(6)},
		{"bool", `column.name == "price"`, true},
		{"double", `1.5`, 1.5},
		{"null", `null`, nil},
		{"null data guard", `column.data == null ? "none" : column.data`, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := eval.CompileValue(tt.expr)
			if err != nil {
				t.Fatalf("CompileValue(%q) failed: %v", tt.expr, err)
			}
			got, err := x.Eval(c, 3)
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
			if x.String() != tt.expr {
				t.Errorf("String() = %q, want %q", x.String(), tt.expr)
			}
		})
	}

	x, err := eval.CompileValue(`column.missing`)
	if err != nil {
		t.Fatalf("CompileValue failed: %v", err)
	}
	if _, err := x.Eval(c, 0); err == nil {
		t.Error("expected missing key error")
	}
	if _, err := eval.CompileValue(`column.name +`); err == nil {
		t.Error("expected syntax error")
	}

	x, err = eval.CompileValue(`[column.name, column.title]`)
	if err != nil {
		t.Fatalf("CompileValue list failed: %v", err)
	}
	got, err := x.Eval(c, 0)
	if err != nil {
		t.Fatalf("Eval list failed: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "price" || list[1] != "Price" {
		t.Errorf("unexpected list result %#v", got)
	}

	x, err = eval.CompileValue(`{"_": column.name, "sort": column.data}`)
	if err != nil {
		t.Fatalf("CompileValue map failed: %v", err)
	}
	got, err = x.Eval(c, 0)
	if err != nil {
		t.Fatalf("Eval map failed: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["_"] != "price" || m["sort"] != "price" {
		t.Errorf("unexpected map result %#v", got)
	}
}
