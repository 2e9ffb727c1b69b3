// Package repl implements the interactive fitc session logic. The
// session is line-driven and independent of the terminal frontend, so
// tests can feed it directly.
package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/irisgriv/fitc/pkg/gen"
)

// Session accumulates model statements until a return statement arrives,
// then compiles the model and reports the generated source. Session
// commands start with ':'.
type Session struct {
	lines  []string
	events int
	fn     string
}

// New creates a session generating single-event functions named with the
// gen default until told otherwise.
func New() *Session {
	return &Session{
		events: 1,
		fn:     gen.DefaultFuncName,
	}
}

// Pending returns the number of statements waiting for a return.
func (s *Session) Pending() int { return len(s.lines) }

// Eval processes one input line and returns the text to show the user.
// A return statement triggers compilation of everything entered since
// the last compile; the buffer is cleared on success and kept, minus the
// return line, on failure so the session state survives a typo.
func (s *Session) Eval(line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", nil
	}

	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	s.lines = append(s.lines, line)
	if trimmed != "return" && !strings.HasPrefix(trimmed, "return ") {
		return "", nil
	}

	res, err := gen.Generate(strings.Join(s.lines, "\n"),
		gen.WithFuncName(s.fn),
		gen.WithEvents(s.events),
	)
	if err != nil {
		// Keep the statements entered so far; only the failed return
		// line is dropped.
		s.lines = s.lines[:len(s.lines)-1]
		return "", err
	}
	s.lines = nil
	return res.Source, nil
}

func (s *Session) command(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":help":
		return helpText, nil

	case ":list":
		if len(s.lines) == 0 {
			return "no pending statements\n", nil
		}
		return strings.Join(s.lines, "\n") + "\n", nil

	case ":clear":
		n := len(s.lines)
		s.lines = nil
		return fmt.Sprintf("dropped %d statement(s)\n", n), nil

	case ":events":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: :events <count>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return "", fmt.Errorf("event count must be a positive integer, got %q", fields[1])
		}
		s.events = n
		return fmt.Sprintf("event count set to %d\n", n), nil

	case ":func":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: :func <name>")
		}
		s.fn = fields[1]
		return fmt.Sprintf("function name set to %s\n", fields[1]), nil

	default:
		return "", fmt.Errorf("unknown command %s; type :help", fields[0])
	}
}

const helpText = `fitc REPL commands:
  :help            show this help
  :list            show pending model statements
  :clear           drop pending model statements
  :events <count>  set the event count for generated loops
  :func <name>     set the generated function name

Enter model statements line by line; a return statement compiles the
model and prints the generated source.
`
