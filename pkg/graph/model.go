package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irisgriv/fitc/pkg/squash"
)

// Model is a complete computation graph: a root node plus the ordered
// parameters and observables it was built from. Parameter order fixes the
// params slot layout of the generated function; observable order fixes
// the column layout of the obs buffer.
type Model struct {
	table  *squash.SymbolTable
	root   Node
	params []*Param
	obs    []*Obs
	byName map[string]Node
	anon   int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		table:  squash.NewSymbolTable(),
		byName: make(map[string]Node),
	}
}

// SetRoot fixes the node whose value the generated function returns.
func (m *Model) SetRoot(n Node) { m.root = n }

// Root returns the model's root node, nil if none was set.
func (m *Model) Root() Node { return m.root }

// Params returns the fit parameters in slot order.
func (m *Model) Params() []*Param { return m.params }

// Observables returns the observable column names in buffer order.
func (m *Model) Observables() []string {
	names := make([]string, len(m.obs))
	for i, o := range m.obs {
		names[i] = o.Column
	}
	return names
}

func (m *Model) autoName(kind string) string {
	m.anon++
	return fmt.Sprintf("_%s%d", kind, m.anon)
}

func (m *Model) newBase(name, kind string, kids ...Node) (base, error) {
	if name == "" {
		name = m.autoName(kind)
	}
	if _, ok := m.byName[name]; ok {
		return base{}, fmt.Errorf("duplicate node name: %s", name)
	}
	return base{name: name, sym: m.table.Intern(name), kids: kids}, nil
}

func (m *Model) add(n Node) {
	m.byName[n.Name()] = n
}

// Const creates a fixed numeric value node.
func (m *Model) Const(name string, v float64) (*Const, error) {
	b, err := m.newBase(name, "const")
	if err != nil {
		return nil, err
	}
	n := &Const{base: b, Value: v}
	m.add(n)
	return n, nil
}

// Param creates a fit parameter and assigns it the next params slot.
func (m *Model) Param(name string, init float64) (*Param, error) {
	b, err := m.newBase(name, "param")
	if err != nil {
		return nil, err
	}
	n := &Param{base: b, Init: init}
	m.add(n)
	m.params = append(m.params, n)
	return n, nil
}

// Obs creates, or returns the existing node for, the observable column.
func (m *Model) Obs(column string) (*Obs, error) {
	if existing, ok := m.byName[column]; ok {
		if o, ok := existing.(*Obs); ok {
			return o, nil
		}
		return nil, fmt.Errorf("name %s already used by a non-observable node", column)
	}
	b, err := m.newBase(column, "obs")
	if err != nil {
		return nil, err
	}
	n := &Obs{base: b, Column: column}
	m.add(n)
	m.obs = append(m.obs, n)
	return n, nil
}

// BinOp creates a pointwise arithmetic node; op is one of + - * /.
func (m *Model) BinOp(name, op string, l, r Node) (*BinOp, error) {
	switch op {
	case "+", "-", "*", "/":
	default:
		return nil, fmt.Errorf("unsupported operator: %q", op)
	}
	b, err := m.newBase(name, "op", l, r)
	if err != nil {
		return nil, err
	}
	n := &BinOp{base: b, Op: op, L: l, R: r}
	m.add(n)
	return n, nil
}

// Neg creates a pointwise negation node.
func (m *Model) Neg(name string, x Node) (*Neg, error) {
	b, err := m.newBase(name, "neg", x)
	if err != nil {
		return nil, err
	}
	n := &Neg{base: b, X: x}
	m.add(n)
	return n, nil
}

// Gauss creates a gaussian density node.
func (m *Model) Gauss(name string, x, mean, sigma Node) (*Gauss, error) {
	b, err := m.newBase(name, "gauss", x, mean, sigma)
	if err != nil {
		return nil, err
	}
	n := &Gauss{base: b, X: x, Mean: mean, Sigma: sigma}
	m.add(n)
	return n, nil
}

// Expo creates an exponential density node.
func (m *Model) Expo(name string, x, c Node) (*Expo, error) {
	b, err := m.newBase(name, "expo", x, c)
	if err != nil {
		return nil, err
	}
	n := &Expo{base: b, X: x, C: c}
	m.add(n)
	return n, nil
}

// Poisson creates a poisson probability node.
func (m *Model) Poisson(name string, x, mean Node) (*Poisson, error) {
	b, err := m.newBase(name, "poisson", x, mean)
	if err != nil {
		return nil, err
	}
	n := &Poisson{base: b, X: x, Mean: mean}
	m.add(n)
	return n, nil
}

// Mixture creates a coefficient-weighted sum of component densities.
// coefs and pdfs must pair up one to one.
func (m *Model) Mixture(name string, coefs, pdfs []Node) (*Mixture, error) {
	if len(coefs) != len(pdfs) {
		return nil, fmt.Errorf("mixture needs matching coefficient and component counts, got %d and %d",
			len(coefs), len(pdfs))
	}
	if len(pdfs) == 0 {
		return nil, errors.New("mixture needs at least one component")
	}
	kids := make([]Node, 0, len(coefs)+len(pdfs))
	kids = append(kids, coefs...)
	kids = append(kids, pdfs...)
	b, err := m.newBase(name, "mix", kids...)
	if err != nil {
		return nil, err
	}
	n := &Mixture{base: b, Coefs: NewNodeList(coefs...), Pdfs: NewNodeList(pdfs...)}
	m.add(n)
	return n, nil
}

// Prod multiplies independent densities.
func (m *Model) Prod(name string, factors ...Node) (*Prod, error) {
	if len(factors) < 2 {
		return nil, errors.New("prod needs at least two factors")
	}
	b, err := m.newBase(name, "prod", factors...)
	if err != nil {
		return nil, err
	}
	n := &Prod{base: b, Factors: NewNodeList(factors...)}
	m.add(n)
	return n, nil
}

// NLL creates the negative log likelihood reducer over a density.
func (m *Model) NLL(name string, pdf Node) (*NLL, error) {
	b, err := m.newBase(name, "nll", pdf)
	if err != nil {
		return nil, err
	}
	n := &NLL{base: b, Pdf: pdf}
	m.add(n)
	return n, nil
}

// Squash compiles the model body for the given number of events. Each
// observable column occupies a contiguous block of the obs buffer, with
// column i starting at offset i*events.
func (m *Model) Squash(events int) (string, error) {
	body, _, err := m.squash(events)
	return body, err
}

func (m *Model) squash(events int) (body, helpers string, err error) {
	if m.root == nil {
		return "", "", errors.New("model has no root node")
	}
	if events < 1 {
		return "", "", fmt.Errorf("event count must be at least 1, got %d", events)
	}
	if hasUnreducedObs(m.root) {
		return "", "", errors.New("model root must be scalar: reduce event-dependent densities with nll(...)")
	}

	ctx := squash.NewContext(m.table, Sizes(m.root, events))
	for i, p := range m.params {
		ctx.AddResultByName(p.Name(), fmt.Sprintf("params[%d]", i))
	}
	for i, o := range m.obs {
		ctx.AddVecObs(o.Name(), i*events)
	}

	tr := NewTranslator(ctx)
	expr, err := tr.Expr(m.root)
	if err != nil {
		return "", "", err
	}
	body, err = ctx.AssembleCode(expr)
	if err != nil {
		return "", "", err
	}
	return body, tr.HelperSource(), nil
}

// hasUnreducedObs reports whether n reaches an observable without passing
// through a reducer. Such a node is vector-valued: the generated function
// returns one double, so it cannot be the root.
func hasUnreducedObs(n Node) bool {
	switch n.(type) {
	case *NLL:
		return false
	case *Obs:
		return true
	}
	for _, k := range n.Children() {
		if hasUnreducedObs(k) {
			return true
		}
	}
	return false
}

// GenerateFunction wraps the squashed body in a standalone C function
// with signature double <name>(double const* params, double const* obs),
// preceded by the helper definitions the model uses.
func (m *Model) GenerateFunction(name string, events int) (string, error) {
	body, helpers, err := m.squash(events)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("#include <math.h>\n\n")
	if helpers != "" {
		b.WriteString(helpers)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "double %s(double const* params, double const* obs) {\n", name)
	b.WriteString(body)
	b.WriteString("}\n")
	return b.String(), nil
}
