package squash

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestBuildCall_MixedArgs(t *testing.T) {
	table := NewSymbolTable()
	ctx := NewContext(table, nil)

	x := newFakeNode(table, "x")
	if err := ctx.AddResult(x, "obs[0]"); err != nil {
		t.Fatalf("AddResult: %v", err)
	}

	got, err := ctx.BuildCall("fitc_gauss_pdf", Ref(x), Float(0.5), Int(3), Raw("sigma"))
	if err != nil {
		t.Fatalf("BuildCall: %v", err)
	}
	want := "fitc_gauss_pdf(obs[0], 0.5, 3, sigma)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildCall_CompoundDependency(t *testing.T) {
	table := NewSymbolTable()
	ctx := NewContext(table, nil)

	a := newFakeNode(table, "a")
	if err := ctx.AddResult(a, "x+1"); err != nil {
		t.Fatalf("AddResult: %v", err)
	}
	// x+1 is compound, so a was materialized and the call references its
	// temp name.
	aExpr, err := ctx.Result(a)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}

	got, err := ctx.BuildCall("f", Ref(a))
	if err != nil {
		t.Fatalf("BuildCall: %v", err)
	}
	if got != "f("+aExpr+")" {
		t.Errorf("expected f(%s), got %q", aExpr, got)
	}

	out, err := ctx.AssembleCode(got)
	if err != nil {
		t.Fatalf("AssembleCode: %v", err)
	}
	if !strings.Contains(out, "const double "+aExpr+" = x+1;\n") {
		t.Errorf("dependency should be computed once as a temp:\n%s", out)
	}
}

func TestBuildCall_NoArgs(t *testing.T) {
	table := NewSymbolTable()
	ctx := NewContext(table, nil)

	got, err := ctx.BuildCall("rand")
	if err != nil {
		t.Fatalf("BuildCall: %v", err)
	}
	if got != "rand()" {
		t.Errorf("expected rand(), got %q", got)
	}
}

func TestBuildCall_RefMissingResult(t *testing.T) {
	table := NewSymbolTable()
	ctx := NewContext(table, nil)
	x := newFakeNode(table, "x")

	_, err := ctx.BuildCall("f", Ref(x))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildCall_ListRefMaterializes(t *testing.T) {
	table := NewSymbolTable()
	ctx := NewContext(table, nil)

	a := newFakeNode(table, "a")
	b := newFakeNode(table, "b")
	if err := ctx.AddResult(a, "params[0]"); err != nil {
		t.Fatalf("AddResult: %v", err)
	}
	if err := ctx.AddResult(b, "params[1]"); err != nil {
		t.Fatalf("AddResult: %v", err)
	}
	list := &fakeList{id: 1, nodes: []Node{a, b}}

	got, err := ctx.BuildCall("fitc_mixture", ListRef(list), Int(2))
	if err != nil {
		t.Fatalf("BuildCall: %v", err)
	}
	if !strings.HasPrefix(got, "fitc_mixture(") || !strings.HasSuffix(got, ", 2)") {
		t.Fatalf("unexpected call shape %q", got)
	}

	out, err := ctx.AssembleCode("0.0")
	if err != nil {
		t.Fatalf("AssembleCode: %v", err)
	}
	if !strings.Contains(out, "[2] = {params[0], params[1]};") {
		t.Errorf("expected array initializer in:\n%s", out)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{1e-9, "1e-09"},
		{math.Inf(1), "INFINITY"},
		{math.Inf(-1), "-INFINITY"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
