package dsl

import (
	"strings"
	"testing"
)

func TestBuild_GaussModel(t *testing.T) {
	source := `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
g = gauss(x, mu, sigma)
return nll(g)`

	model, err := Build(source)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	params := model.Params()
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[0].Name() != "mu" || params[0].Init != 5.0 {
		t.Errorf("first parameter should be mu=5.0, got %s=%v", params[0].Name(), params[0].Init)
	}
	if params[1].Name() != "sigma" || params[1].Init != 2.0 {
		t.Errorf("second parameter should be sigma=2.0, got %s=%v", params[1].Name(), params[1].Init)
	}

	obs := model.Observables()
	if len(obs) != 1 || obs[0] != "x" {
		t.Errorf("expected observable [x], got %v", obs)
	}

	if model.Root() == nil {
		t.Fatal("root not set")
	}
}

func TestBuild_GeneratedCode(t *testing.T) {
	source := `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
g = gauss(x, mu, sigma)
return nll(g)`

	model, err := Build(source)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src, err := model.GenerateFunction("model_eval", 100)
	if err != nil {
		t.Fatalf("GenerateFunction: %v", err)
	}
	if !strings.Contains(src, "fitc_gauss_pdf(obs[0 + loopIdx0], params[0], params[1])") {
		t.Errorf("unexpected generated code:\n%s", src)
	}
}

func TestBuild_Arithmetic(t *testing.T) {
	source := `a = param(1.0)
b = param(2.0)
v = a + b * 2
return v`

	model, err := Build(source)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	body, err := model.Squash(1)
	if err != nil {
		t.Fatalf("Squash: %v", err)
	}
	if !strings.Contains(body, "(params[0] + ") || !strings.Contains(body, "(params[1] * 2)") {
		t.Errorf("expected arithmetic over param slots:\n%s", body)
	}
}

func TestBuild_Mixture(t *testing.T) {
	source := `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
c = param(-0.3)
frac = param(0.7)
g = gauss(x, mu, sigma)
e = expo(x, c)
m = mix(frac, g, 1 - frac, e)
return nll(m)`

	model, err := Build(source)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	body, err := model.Squash(10)
	if err != nil {
		t.Fatalf("Squash: %v", err)
	}
	if !strings.Contains(body, "fitc_mixture(") {
		t.Errorf("mixture call missing:\n%s", body)
	}
}

func TestBuild_SharedSubexpressionBuiltOnce(t *testing.T) {
	source := `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
g = gauss(x, mu, sigma)
p = prod(g, g)
return nll(p)`

	// The same variable used twice refers to one node, so its code is
	// emitted once.
	model, err := Build(source)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	body, err := model.Squash(10)
	if err != nil {
		t.Fatalf("Squash: %v", err)
	}
	if got := strings.Count(body, "fitc_gauss_pdf("); got != 1 {
		t.Errorf("shared density should be computed once, got %d:\n%s", got, body)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"undefined variable", "return v", "undefined variable"},
		{"missing return", `mu = param(5.0)`, "return"},
		{"unknown function", "return magic(1)", "unknown function"},
		{"unassigned param", "return nll(param(5.0))", "assigned"},
		{"obs arity", `x = obs("x", "y")` + "\nreturn x", "obs expects 1 argument"},
		{"obs arg type", "x = obs(5)\nreturn x", "quoted column name"},
		{"gauss arity", `x = obs("x")` + "\nreturn gauss(x, x)", "gauss expects 3 arguments"},
		{"odd mix args", `x = obs("x")` + "\nreturn mix(1, x, 2)", "pairs"},
		{"string outside obs", `return nll("x")`, "string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.source)
			if err == nil {
				t.Fatalf("expected error for %q", tt.source)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestBuild_DuplicateAssignment(t *testing.T) {
	source := `mu = param(5.0)
mu = param(6.0)
return mu`

	if _, err := Build(source); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}
