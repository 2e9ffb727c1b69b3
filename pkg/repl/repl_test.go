package repl

import (
	"strings"
	"testing"
)

func TestSession_AccumulateAndCompile(t *testing.T) {
	s := New()

	lines := []string{
		`x = obs("x")`,
		`mu = param(5.0)`,
		`sigma = param(2.0)`,
		`g = gauss(x, mu, sigma)`,
	}
	for _, line := range lines {
		out, err := s.Eval(line)
		if err != nil {
			t.Fatalf("Eval(%q): %v", line, err)
		}
		if out != "" {
			t.Errorf("statement lines should produce no output, got %q", out)
		}
	}
	if s.Pending() != 4 {
		t.Fatalf("expected 4 pending statements, got %d", s.Pending())
	}

	out, err := s.Eval("return nll(g)")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "double model_eval(") {
		t.Errorf("expected generated source, got %q", out)
	}
	if s.Pending() != 0 {
		t.Errorf("buffer should be cleared after compile, got %d pending", s.Pending())
	}
}

func TestSession_EventsCommand(t *testing.T) {
	s := New()

	if _, err := s.Eval(":events 250"); err != nil {
		t.Fatalf("Eval(:events): %v", err)
	}

	for _, line := range []string{`x = obs("x")`, `c = param(-0.5)`, `e = expo(x, c)`} {
		if _, err := s.Eval(line); err != nil {
			t.Fatalf("Eval(%q): %v", line, err)
		}
	}
	out, err := s.Eval("return nll(e)")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "< 250;") {
		t.Errorf("loop bound should follow :events, got:\n%s", out)
	}
}

func TestSession_FuncCommand(t *testing.T) {
	s := New()

	if _, err := s.Eval(":func my_model"); err != nil {
		t.Fatalf("Eval(:func): %v", err)
	}
	if _, err := s.Eval("a = param(1.0)"); err != nil {
		t.Fatal("Eval failed")
	}
	out, err := s.Eval("return a")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "double my_model(") {
		t.Errorf("function name should follow :func, got:\n%s", out)
	}
}

func TestSession_ListAndClear(t *testing.T) {
	s := New()

	out, err := s.Eval(":list")
	if err != nil {
		t.Fatalf("Eval(:list): %v", err)
	}
	if !strings.Contains(out, "no pending") {
		t.Errorf("empty buffer list should say so, got %q", out)
	}

	if _, err := s.Eval("mu = param(5.0)"); err != nil {
		t.Fatal("Eval failed")
	}
	out, err = s.Eval(":list")
	if err != nil {
		t.Fatalf("Eval(:list): %v", err)
	}
	if !strings.Contains(out, "mu = param(5.0)") {
		t.Errorf("list should show pending statements, got %q", out)
	}

	out, err = s.Eval(":clear")
	if err != nil {
		t.Fatalf("Eval(:clear): %v", err)
	}
	if !strings.Contains(out, "dropped 1") {
		t.Errorf("clear should report the dropped count, got %q", out)
	}
	if s.Pending() != 0 {
		t.Errorf("buffer should be empty after :clear, got %d", s.Pending())
	}
}

func TestSession_CompileErrorKeepsSessionUsable(t *testing.T) {
	s := New()

	if _, err := s.Eval("return undefined_var"); err == nil {
		t.Fatal("expected compile error")
	}
	if s.Pending() != 0 {
		t.Errorf("failed return line should be dropped, got %d pending", s.Pending())
	}

	if _, err := s.Eval("a = param(1.0)"); err != nil {
		t.Fatalf("session should recover after an error: %v", err)
	}
	out, err := s.Eval("return a")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "return params[0];") {
		t.Errorf("unexpected source after recovery:\n%s", out)
	}
}

func TestSession_CompileErrorKeepsStatements(t *testing.T) {
	s := New()

	for _, line := range []string{`x = obs("x")`, `c = param(-0.5)`, `e = expo(x, c)`} {
		if _, err := s.Eval(line); err != nil {
			t.Fatalf("Eval(%q): %v", line, err)
		}
	}

	// A bad return must not throw away the model entered so far.
	if _, err := s.Eval("return nll(typo)"); err == nil {
		t.Fatal("expected compile error")
	}
	if s.Pending() != 3 {
		t.Fatalf("statements should survive a failed return, got %d pending", s.Pending())
	}

	out, err := s.Eval("return nll(e)")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "fitc_expo_pdf(") {
		t.Errorf("corrected return should compile the buffered model:\n%s", out)
	}
}

func TestSession_ReturnMatchedAsWholeWord(t *testing.T) {
	s := New()

	// An identifier that merely starts with "return" is a statement, not
	// a trigger.
	if _, err := s.Eval(`x = obs("x")`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if _, err := s.Eval("c = param(-0.5)"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	out, err := s.Eval("returned = expo(x, c)")
	if err != nil {
		t.Fatalf("Eval(returned assignment): %v", err)
	}
	if out != "" {
		t.Errorf("assignment should not compile, got %q", out)
	}
	if s.Pending() != 3 {
		t.Fatalf("expected 3 pending statements, got %d", s.Pending())
	}

	out, err = s.Eval("return nll(returned)")
	if err != nil {
		t.Fatalf("Eval(return): %v", err)
	}
	if !strings.Contains(out, "fitc_expo_pdf(") {
		t.Errorf("unexpected source:\n%s", out)
	}
}

func TestSession_BadCommands(t *testing.T) {
	s := New()

	tests := []string{":events", ":events zero", ":events -5", ":func", ":bogus"}
	for _, cmd := range tests {
		if _, err := s.Eval(cmd); err == nil {
			t.Errorf("expected error for %q", cmd)
		}
	}
}

func TestSession_HelpAndBlankLines(t *testing.T) {
	s := New()

	out, err := s.Eval(":help")
	if err != nil {
		t.Fatalf("Eval(:help): %v", err)
	}
	if !strings.Contains(out, ":events") {
		t.Errorf("help should document commands, got %q", out)
	}

	out, err = s.Eval("   ")
	if err != nil || out != "" {
		t.Errorf("blank line should be a no-op, got %q, %v", out, err)
	}
	if s.Pending() != 0 {
		t.Errorf("blank line should not be buffered")
	}
}
