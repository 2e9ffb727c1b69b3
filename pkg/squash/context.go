// Package squash flattens statistical model graphs into loop-fused
// procedural code. A Context accumulates generated statements while the
// caller visits the graph in dependency order; loop scopes returned by
// BeginLoop manage fused event loops and the hoisting of loop-invariant
// declarations in front of them.
package squash

import (
	"errors"
	"fmt"
	"strings"
)

// Contract violation errors. Every one of these indicates caller misuse
// rather than a recoverable runtime condition.
var (
	// ErrNotFound reports a result lookup for a node that was never
	// recorded; dependencies must be visited before their dependents.
	ErrNotFound = errors.New("no recorded result for node")

	// ErrScopeLeak reports a loop scope closed twice, closed out of
	// nesting order, or still open at assembly time.
	ErrScopeLeak = errors.New("loop scope leak")

	// ErrNameCollision reports an explicitly requested variable name that
	// is already taken. Explicit names are rejected, never renamed.
	ErrNameCollision = errors.New("variable name already in use")
)

// Node is the handle the context uses to identify graph nodes. DependsOn
// reports whether the node's value depends, directly or transitively, on
// the node identified by the given symbol; BeginLoop uses it to decide
// which observables a loop binds.
type Node interface {
	Sym() *Symbol
	DependsOn(*Symbol) bool
}

// List is an ordered node collection with a stable identity. Two lists
// with equal contents but distinct IDs are distinct for caching purposes.
type List interface {
	ID() uint64
	Nodes() []Node
}

// Context holds all state for one squashing run. It is not safe for
// concurrent use; construct one per compilation and discard it after
// AssembleCode.
type Context struct {
	table *SymbolTable

	results     map[*Symbol]string
	outputSizes map[*Symbol]int
	vecObs      map[*Symbol]int

	globalScope strings.Builder
	code        string

	// Declarations generated inside a loop that belong in front of it.
	// Spliced into code at splicePtr when the outermost loop closes.
	tempScope string
	splicePtr int

	loopLevel  int
	tmpVarIdx  int
	loopVarIdx int

	listNames map[uint64]string
	usedNames map[string]bool
}

// NewContext creates a context for one compilation run. The size table
// maps node symbols to the vector length they evaluate to and is read-only
// from here on; symbols absent from it count as scalar.
func NewContext(table *SymbolTable, sizes map[*Symbol]int) *Context {
	c := &Context{
		table:       table,
		results:     make(map[*Symbol]string),
		outputSizes: make(map[*Symbol]int, len(sizes)),
		vecObs:      make(map[*Symbol]int),
		splicePtr:   -1,
		listNames:   make(map[uint64]string),
		usedNames:   make(map[string]bool),
	}
	for sym, size := range sizes {
		c.outputSizes[sym] = size
	}
	return c
}

// OutputSize returns the vector length n evaluates to: the size of the
// observable it depends on, or 1 for reducers and scalars.
func (c *Context) OutputSize(n Node) int {
	return c.sizeOf(n.Sym())
}

func (c *Context) sizeOf(sym *Symbol) int {
	if size, ok := c.outputSizes[sym]; ok {
		return size
	}
	return 1
}

// AddResult records the code expression that represents n's value.
// Compound expressions are first assigned to a fresh temporary so they are
// computed once no matter how many later call sites reference them; bare
// identifiers and literals are recorded as-is.
func (c *Context) AddResult(n Node, expr string) error {
	value := expr
	if !isSimpleExpr(expr) {
		name, err := c.SaveAsTemp(n, expr, "")
		if err != nil {
			return err
		}
		value = name
	}
	c.results[n.Sym()] = value
	return nil
}

// AddResultByName records expr for the node named key without temp
// materialization. This is the string-key path used to prebind inputs
// such as parameter slots before translation starts.
func (c *Context) AddResultByName(key, expr string) {
	c.results[c.table.Intern(key)] = expr
}

// Result returns the expression recorded for n. A miss means the caller
// visited a dependent before its dependency, which is fatal.
func (c *Context) Result(n Node) (string, error) {
	if expr, ok := c.results[n.Sym()]; ok {
		return expr, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, n.Sym().Name())
}

// NewTempName allocates a variable name unique within this run.
func (c *Context) NewTempName() string {
	for {
		name := fmt.Sprintf("t%d", c.tmpVarIdx)
		c.tmpVarIdx++
		if !c.usedNames[name] {
			c.usedNames[name] = true
			return name
		}
	}
}

// SaveAsTemp assigns expr to a variable and emits the declaration,
// returning the variable name. A scalar result produced while a loop is
// open cannot depend on the loop index, so its declaration goes to the
// temp scope and is spliced in front of the outermost loop when it
// closes; everything else lands in the code body at the current position.
// If name is empty a fresh temp name is allocated; a colliding explicit
// name is rejected with ErrNameCollision.
func (c *Context) SaveAsTemp(n Node, expr, name string) (string, error) {
	if name == "" {
		name = c.NewTempName()
	} else if c.usedNames[name] {
		return "", fmt.Errorf("%w: %s", ErrNameCollision, name)
	} else {
		c.usedNames[name] = true
	}

	decl := "const double " + name + " = " + expr + ";\n"
	if c.OutputSize(n) == 1 && c.loopLevel > 0 {
		c.tempScope += decl
	} else {
		c.code += decl
	}
	return name, nil
}

// AddToCodeBody appends a statement to the squashed code body.
func (c *Context) AddToCodeBody(in string) {
	c.code += in
}

// AddToGlobalScope appends a statement to the block placed before the
// rest of the code body, such as accumulator declarations.
func (c *Context) AddToGlobalScope(s string) {
	c.globalScope.WriteString(s)
}

// AddVecObs registers the node named key as a raw observable column with
// the given base offset into the flattened data buffer. Its result is not
// a fixed string; every loop that depends on it rebinds it to an access
// indexed by that loop's index variable.
func (c *Context) AddVecObs(key string, offset int) {
	c.vecObs[c.table.Intern(key)] = offset
}

// SaveListAsArray emits an array initializer holding every member's
// recorded result, in collection order, and returns the array name.
// Repeated calls with the same collection identity return the cached name
// without emitting a second statement.
func (c *Context) SaveListAsArray(l List, name string) (string, error) {
	if cached, ok := c.listNames[l.ID()]; ok {
		return cached, nil
	}
	if name == "" {
		name = c.NewTempName()
	} else if c.usedNames[name] {
		return "", fmt.Errorf("%w: %s", ErrNameCollision, name)
	} else {
		c.usedNames[name] = true
	}

	nodes := l.Nodes()
	elems := make([]string, len(nodes))
	for i, n := range nodes {
		expr, err := c.Result(n)
		if err != nil {
			return "", err
		}
		elems[i] = expr
	}
	c.code += fmt.Sprintf("double %s[%d] = {%s};\n", name, len(nodes), strings.Join(elems, ", "))
	c.listNames[l.ID()] = name
	return name, nil
}

// AssembleCode concatenates the global scope, the code body and a final
// return statement built from returnExpr. Every loop scope must be closed
// by now; an open one means a scope handle leaked.
func (c *Context) AssembleCode(returnExpr string) (string, error) {
	if c.loopLevel != 0 {
		return "", fmt.Errorf("%w: %d loop scope(s) still open", ErrScopeLeak, c.loopLevel)
	}
	return c.globalScope.String() + c.code + "return " + returnExpr + ";\n", nil
}

// isSimpleExpr reports whether expr is a bare identifier, a numeric
// literal, or an indexed identifier such as params[3]. Such expressions
// are free to re-evaluate and skip temp materialization.
func isSimpleExpr(expr string) bool {
	if expr == "" {
		return false
	}
	depth := 0
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9', ch == '_', ch == '.':
		case ch == '-' || ch == '+':
			// Only a leading sign or an exponent sign keeps a literal simple.
			if i != 0 && expr[i-1] != 'e' && expr[i-1] != 'E' {
				return false
			}
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth < 0 {
				return false
			}
		default:
			return false
		}
	}
	return depth == 0
}
