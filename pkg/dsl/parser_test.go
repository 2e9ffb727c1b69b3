package dsl

import (
	"testing"
)

func parse(t *testing.T, input string) *Program {
	t.Helper()
	program, err := NewParser(NewLexer(input).Tokenize()).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return program
}

func TestParser_Assignment(t *testing.T) {
	program := parse(t, "mu = param(5.0)")

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	assign, ok := program.Statements[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", program.Statements[0])
	}
	if assign.Name != "mu" {
		t.Errorf("expected name mu, got %q", assign.Name)
	}
	call, ok := assign.Value.(*CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", assign.Value)
	}
	if call.Func != "param" || len(call.Args) != 1 {
		t.Errorf("expected param with 1 arg, got %s with %d", call.Func, len(call.Args))
	}
}

func TestParser_Return(t *testing.T) {
	program := parse(t, "return nll(g)")

	ret, ok := program.Statements[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", program.Statements[0])
	}
	call, ok := ret.Value.(*CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", ret.Value)
	}
	if call.Func != "nll" {
		t.Errorf("expected nll, got %q", call.Func)
	}
}

func TestParser_Precedence(t *testing.T) {
	program := parse(t, "v = a + b * c")

	assign := program.Statements[0].(*AssignStmt)
	add, ok := assign.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", assign.Value)
	}
	if add.Op != TokenPlus {
		t.Errorf("top operator should be +, got %v", add.Op)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("right operand should be the multiplication, got %T", add.Right)
	}
	if mul.Op != TokenStar {
		t.Errorf("nested operator should be *, got %v", mul.Op)
	}
}

func TestParser_Parentheses(t *testing.T) {
	program := parse(t, "v = (a + b) * c")

	assign := program.Statements[0].(*AssignStmt)
	mul, ok := assign.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", assign.Value)
	}
	if mul.Op != TokenStar {
		t.Errorf("top operator should be *, got %v", mul.Op)
	}
	if _, ok := mul.Left.(*BinaryExpr); !ok {
		t.Errorf("left operand should be the parenthesized sum, got %T", mul.Left)
	}
}

func TestParser_UnaryMinus(t *testing.T) {
	program := parse(t, "c = param(-0.5)")

	assign := program.Statements[0].(*AssignStmt)
	call := assign.Value.(*CallExpr)
	neg, ok := call.Args[0].(*UnaryExpr)
	if !ok {
		t.Fatalf("expected UnaryExpr, got %T", call.Args[0])
	}
	lit, ok := neg.Right.(*FloatLit)
	if !ok || lit.Value != 0.5 {
		t.Errorf("expected negated 0.5, got %#v", neg.Right)
	}
}

func TestParser_NestedCalls(t *testing.T) {
	program := parse(t, `return nll(gauss(x, mu, sigma))`)

	ret := program.Statements[0].(*ReturnStmt)
	outer := ret.Value.(*CallExpr)
	inner, ok := outer.Args[0].(*CallExpr)
	if !ok {
		t.Fatalf("expected nested call, got %T", outer.Args[0])
	}
	if inner.Func != "gauss" || len(inner.Args) != 3 {
		t.Errorf("expected gauss with 3 args, got %s with %d", inner.Func, len(inner.Args))
	}
}

func TestParser_MultiStatement(t *testing.T) {
	input := `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
g = gauss(x, mu, sigma)
return nll(g)`

	program := parse(t, input)
	if len(program.Statements) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[4].(*ReturnStmt); !ok {
		t.Errorf("last statement should be the return, got %T", program.Statements[4])
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare expression", "gauss(x, mu, sigma)"},
		{"missing rparen", "g = gauss(x, mu"},
		{"dangling operator", "v = a +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(NewLexer(tt.input).Tokenize()).Parse()
			if err == nil {
				t.Errorf("expected parse error for %q", tt.input)
			}
		})
	}
}
