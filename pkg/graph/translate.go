package graph

import (
	"strings"

	"github.com/irisgriv/fitc/pkg/squash"
)

// Translator drives one squashing run, translating each node exactly once
// on demand. Translation happens wherever the context's insertion point
// currently is, so nodes first reached inside a loop body are emitted
// there rather than pre-computed outside it.
type Translator struct {
	ctx       *squash.Context
	visited   map[*squash.Symbol]bool
	helpers   map[string]bool
	helperSrc []string
}

// NewTranslator creates a translator over one squash context.
func NewTranslator(ctx *squash.Context) *Translator {
	return &Translator{
		ctx:     ctx,
		visited: make(map[*squash.Symbol]bool),
		helpers: make(map[string]bool),
	}
}

// Ctx returns the underlying squash context.
func (tr *Translator) Ctx() *squash.Context { return tr.ctx }

// Expr returns the code expression for n, translating it first if it has
// not been visited during this run.
func (tr *Translator) Expr(n Node) (string, error) {
	if !tr.visited[n.Sym()] {
		tr.visited[n.Sym()] = true
		if err := n.Translate(tr); err != nil {
			return "", err
		}
	}
	return tr.ctx.Result(n)
}

// UseHelper registers a helper function definition required by the
// generated code. Each distinct name is collected once.
func (tr *Translator) UseHelper(name, src string) {
	if tr.helpers[name] {
		return
	}
	tr.helpers[name] = true
	tr.helperSrc = append(tr.helperSrc, src)
}

// HelperSource returns the collected helper definitions in first-use
// order.
func (tr *Translator) HelperSource() string {
	return strings.Join(tr.helperSrc, "\n")
}
