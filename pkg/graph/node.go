// Package graph defines the computation graph of a statistical model and
// the driver that squashes it into flat procedural code. Nodes represent
// scalar or vector-valued subexpressions: fixed constants, fit parameters,
// raw observable columns, pointwise arithmetic, probability densities and
// the likelihood reducer that owns the generated event loop.
package graph

import (
	"fmt"

	"github.com/irisgriv/fitc/pkg/squash"
)

// Node is one unit of the model graph. Every node has a stable, unique
// name that doubles as its identity handle in the squash context.
type Node interface {
	Name() string
	Sym() *squash.Symbol
	Children() []Node
	DependsOn(*squash.Symbol) bool

	// Translate records the node's code expression with the context.
	// Dependencies are translated on demand through the translator.
	Translate(tr *Translator) error
}

// base carries the identity and child set shared by every node type.
type base struct {
	name string
	sym  *squash.Symbol
	kids []Node
}

func (b *base) Name() string        { return b.name }
func (b *base) Sym() *squash.Symbol { return b.sym }
func (b *base) Children() []Node    { return b.kids }

// DependsOn reports whether the node is, or transitively uses, the node
// identified by sym.
func (b *base) DependsOn(sym *squash.Symbol) bool {
	if b.sym == sym {
		return true
	}
	for _, k := range b.kids {
		if k.DependsOn(sym) {
			return true
		}
	}
	return false
}

// Const is a fixed numeric value.
type Const struct {
	base
	Value float64
}

func (n *Const) Translate(tr *Translator) error {
	return tr.Ctx().AddResult(n, squash.FormatFloat(n.Value))
}

// Param is a fit parameter. Its result is prebound to a params slot
// before translation starts, so translating it is a no-op.
type Param struct {
	base
	Init float64
}

func (n *Param) Translate(*Translator) error { return nil }

// Obs is a raw observable column. It has no fixed result expression:
// every loop that depends on it rebinds it to a buffer access indexed by
// that loop's index variable.
type Obs struct {
	base
	Column string
}

func (n *Obs) Translate(*Translator) error { return nil }

// BinOp combines two nodes pointwise with one of + - * /.
type BinOp struct {
	base
	Op   string
	L, R Node
}

func (n *BinOp) Translate(tr *Translator) error {
	l, err := tr.Expr(n.L)
	if err != nil {
		return err
	}
	r, err := tr.Expr(n.R)
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, fmt.Sprintf("(%s %s %s)", l, n.Op, r))
}

// Neg negates a node pointwise.
type Neg struct {
	base
	X Node
}

func (n *Neg) Translate(tr *Translator) error {
	x, err := tr.Expr(n.X)
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, fmt.Sprintf("(-%s)", x))
}
