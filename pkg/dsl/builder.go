package dsl

import (
	"fmt"

	"github.com/irisgriv/fitc/pkg/graph"
)

// Builder lowers a parsed program into a model graph.
type Builder struct {
	model *graph.Model
	vars  map[string]graph.Node
}

// Build parses source and constructs the model graph it describes. The
// program must end with a return statement fixing the model's root.
func Build(source string) (*graph.Model, error) {
	tokens := NewLexer(source).Tokenize()
	program, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}

	b := &Builder{
		model: graph.NewModel(),
		vars:  make(map[string]graph.Node),
	}
	return b.build(program)
}

func (b *Builder) build(program *Program) (*graph.Model, error) {
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *AssignStmt:
			node, err := b.buildExpr(s.Value, s.Name)
			if err != nil {
				return nil, err
			}
			b.vars[s.Name] = node

		case *ReturnStmt:
			node, err := b.buildExpr(s.Value, "")
			if err != nil {
				return nil, err
			}
			b.model.SetRoot(node)

		default:
			return nil, fmt.Errorf("unsupported statement type: %T", stmt)
		}
	}

	if b.model.Root() == nil {
		return nil, fmt.Errorf("model needs a return statement")
	}
	return b.model, nil
}

// buildExpr constructs the graph node for e. name is the assignment
// target when the expression is the whole right-hand side of an
// assignment, empty otherwise; anonymous subexpressions get synthesized
// names from the model.
func (b *Builder) buildExpr(e Expr, name string) (graph.Node, error) {
	switch ex := e.(type) {
	case *IntLit:
		return b.model.Const(name, float64(ex.Value))

	case *FloatLit:
		return b.model.Const(name, ex.Value)

	case *Ident:
		node, ok := b.vars[ex.Name]
		if !ok {
			return nil, fmt.Errorf("undefined variable: %s", ex.Name)
		}
		return node, nil

	case *BinaryExpr:
		left, err := b.buildExpr(ex.Left, "")
		if err != nil {
			return nil, err
		}
		right, err := b.buildExpr(ex.Right, "")
		if err != nil {
			return nil, err
		}
		return b.model.BinOp(name, ex.Op.String(), left, right)

	case *UnaryExpr:
		right, err := b.buildExpr(ex.Right, "")
		if err != nil {
			return nil, err
		}
		return b.model.Neg(name, right)

	case *CallExpr:
		return b.buildCall(ex, name)

	case *StringLit:
		return nil, fmt.Errorf("string literal %q is only valid as an obs() argument", ex.Value)

	default:
		return nil, fmt.Errorf("unsupported expression type: %T", e)
	}
}

func (b *Builder) buildCall(e *CallExpr, name string) (graph.Node, error) {
	switch e.Func {
	case "param":
		if name == "" {
			return nil, fmt.Errorf("param(...) must be assigned to a name")
		}
		init, err := numericArg(e, 0)
		if err != nil {
			return nil, err
		}
		return b.model.Param(name, init)

	case "obs":
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("obs expects 1 argument, got %d", len(e.Args))
		}
		str, ok := e.Args[0].(*StringLit)
		if !ok {
			return nil, fmt.Errorf("obs expects a quoted column name")
		}
		return b.model.Obs(str.Value)

	case "gauss":
		args, err := b.nodeArgs(e, 3)
		if err != nil {
			return nil, err
		}
		return b.model.Gauss(name, args[0], args[1], args[2])

	case "expo":
		args, err := b.nodeArgs(e, 2)
		if err != nil {
			return nil, err
		}
		return b.model.Expo(name, args[0], args[1])

	case "poisson":
		args, err := b.nodeArgs(e, 2)
		if err != nil {
			return nil, err
		}
		return b.model.Poisson(name, args[0], args[1])

	case "mix":
		if len(e.Args) < 4 || len(e.Args)%2 != 0 {
			return nil, fmt.Errorf("mix expects coefficient/component pairs, got %d arguments", len(e.Args))
		}
		var coefs, pdfs []graph.Node
		for i := 0; i < len(e.Args); i += 2 {
			coef, err := b.buildExpr(e.Args[i], "")
			if err != nil {
				return nil, err
			}
			pdf, err := b.buildExpr(e.Args[i+1], "")
			if err != nil {
				return nil, err
			}
			coefs = append(coefs, coef)
			pdfs = append(pdfs, pdf)
		}
		return b.model.Mixture(name, coefs, pdfs)

	case "prod":
		if len(e.Args) < 2 {
			return nil, fmt.Errorf("prod expects at least 2 arguments, got %d", len(e.Args))
		}
		factors, err := b.nodeArgs(e, len(e.Args))
		if err != nil {
			return nil, err
		}
		return b.model.Prod(name, factors...)

	case "nll":
		args, err := b.nodeArgs(e, 1)
		if err != nil {
			return nil, err
		}
		return b.model.NLL(name, args[0])

	default:
		return nil, fmt.Errorf("unknown function: %s", e.Func)
	}
}

// nodeArgs builds exactly count argument nodes for the call.
func (b *Builder) nodeArgs(e *CallExpr, count int) ([]graph.Node, error) {
	if len(e.Args) != count {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", e.Func, count, len(e.Args))
	}
	nodes := make([]graph.Node, count)
	for i, arg := range e.Args {
		node, err := b.buildExpr(arg, "")
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}

// numericArg extracts a literal numeric argument.
func numericArg(e *CallExpr, i int) (float64, error) {
	if i >= len(e.Args) {
		return 0, fmt.Errorf("%s expects a numeric argument at position %d", e.Func, i+1)
	}
	switch a := e.Args[i].(type) {
	case *IntLit:
		return float64(a.Value), nil
	case *FloatLit:
		return a.Value, nil
	case *UnaryExpr:
		v, err := numericArg(&CallExpr{Func: e.Func, Args: []Expr{a.Right}}, 0)
		if err != nil {
			return 0, err
		}
		return -v, nil
	default:
		return 0, fmt.Errorf("%s expects a numeric literal argument, got %T", e.Func, a)
	}
}
