package squash

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// argKind discriminates the closed set of argument variants BuildCall
// accepts.
type argKind uint8

const (
	argFloat argKind = iota
	argInt
	argRef
	argListRef
	argRaw
)

// Arg is one argument of a generated function call. Construct values with
// Float, Int, Ref, ListRef or Raw.
type Arg struct {
	kind argKind
	f    float64
	i    int
	node Node
	list List
	raw  string
}

// Float wraps a floating-point literal argument.
func Float(v float64) Arg { return Arg{kind: argFloat, f: v} }

// Int wraps an integer literal argument.
func Int(v int) Arg { return Arg{kind: argInt, i: v} }

// Ref wraps a node; its recorded result expression is passed.
func Ref(n Node) Arg { return Arg{kind: argRef, node: n} }

// ListRef wraps a node collection, materialized as an array variable.
func ListRef(l List) Arg { return Arg{kind: argListRef, list: l} }

// Raw passes the string through unchanged.
func Raw(s string) Arg { return Arg{kind: argRaw, raw: s} }

// BuildCall composes the call expression fn(arg1, arg2, ...). It only
// produces text; nothing is evaluated.
func (c *Context) BuildCall(fn string, args ...Arg) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := c.buildArg(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fn + "(" + strings.Join(parts, ", ") + ")", nil
}

func (c *Context) buildArg(a Arg) (string, error) {
	switch a.kind {
	case argFloat:
		return FormatFloat(a.f), nil
	case argInt:
		return strconv.Itoa(a.i), nil
	case argRef:
		return c.Result(a.node)
	case argListRef:
		return c.SaveListAsArray(a.list, "")
	case argRaw:
		return a.raw, nil
	default:
		return "", fmt.Errorf("unknown argument kind: %d", a.kind)
	}
}

// FormatFloat renders v as a C double literal. Infinities map to the
// INFINITY macro so emitted code stays compilable.
func FormatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "INFINITY"
	}
	if math.IsInf(v, -1) {
		return "-INFINITY"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
