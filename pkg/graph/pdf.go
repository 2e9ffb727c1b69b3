package graph

import (
	"github.com/irisgriv/fitc/pkg/squash"
)

// Helper definitions emitted once per generated file, in front of the
// model function, for each PDF kind the model uses.
const (
	gaussHelperSrc = `static inline double fitc_gauss_pdf(double x, double mu, double sigma) {
    const double arg = (x - mu) / sigma;
    return exp(-0.5 * arg * arg) / (sigma * sqrt(2.0 * M_PI));
}
`

	expoHelperSrc = `static inline double fitc_expo_pdf(double x, double c) {
    return exp(c * x);
}
`

	poissonHelperSrc = `static inline double fitc_poisson_pmf(double x, double mean) {
    return exp(x * log(mean) - mean - lgamma(x + 1.0));
}
`

	mixtureHelperSrc = `static inline double fitc_mixture(double const* coefs, double const* pdfs, int n) {
    double sum = 0.0;
    for (int i = 0; i < n; i++) {
        sum += coefs[i] * pdfs[i];
    }
    return sum;
}
`

	prodHelperSrc = `static inline double fitc_prod(double const* factors, int n) {
    double prod = 1.0;
    for (int i = 0; i < n; i++) {
        prod *= factors[i];
    }
    return prod;
}
`
)

// Gauss is a gaussian density over one observable.
type Gauss struct {
	base
	X, Mean, Sigma Node
}

func (n *Gauss) Translate(tr *Translator) error {
	for _, k := range n.kids {
		if _, err := tr.Expr(k); err != nil {
			return err
		}
	}
	tr.UseHelper("gauss", gaussHelperSrc)
	call, err := tr.Ctx().BuildCall("fitc_gauss_pdf",
		squash.Ref(n.X), squash.Ref(n.Mean), squash.Ref(n.Sigma))
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, call)
}

// Expo is an exponential density with slope c.
type Expo struct {
	base
	X, C Node
}

func (n *Expo) Translate(tr *Translator) error {
	for _, k := range n.kids {
		if _, err := tr.Expr(k); err != nil {
			return err
		}
	}
	tr.UseHelper("expo", expoHelperSrc)
	call, err := tr.Ctx().BuildCall("fitc_expo_pdf", squash.Ref(n.X), squash.Ref(n.C))
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, call)
}

// Poisson is a poisson probability mass over one observable.
type Poisson struct {
	base
	X, Mean Node
}

func (n *Poisson) Translate(tr *Translator) error {
	for _, k := range n.kids {
		if _, err := tr.Expr(k); err != nil {
			return err
		}
	}
	tr.UseHelper("poisson", poissonHelperSrc)
	call, err := tr.Ctx().BuildCall("fitc_poisson_pmf", squash.Ref(n.X), squash.Ref(n.Mean))
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, call)
}

// Mixture is a coefficient-weighted sum of component densities. The
// coefficient and component results are materialized as two arrays.
type Mixture struct {
	base
	Coefs, Pdfs *NodeList
}

func (n *Mixture) Translate(tr *Translator) error {
	for _, k := range n.kids {
		if _, err := tr.Expr(k); err != nil {
			return err
		}
	}
	tr.UseHelper("mixture", mixtureHelperSrc)
	call, err := tr.Ctx().BuildCall("fitc_mixture",
		squash.ListRef(n.Coefs), squash.ListRef(n.Pdfs), squash.Int(n.Pdfs.Len()))
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, call)
}

// Prod multiplies independent densities.
type Prod struct {
	base
	Factors *NodeList
}

func (n *Prod) Translate(tr *Translator) error {
	for _, k := range n.kids {
		if _, err := tr.Expr(k); err != nil {
			return err
		}
	}
	tr.UseHelper("prod", prodHelperSrc)
	call, err := tr.Ctx().BuildCall("fitc_prod",
		squash.ListRef(n.Factors), squash.Int(n.Factors.Len()))
	if err != nil {
		return err
	}
	return tr.Ctx().AddResult(n, call)
}

// NLL reduces a density to the negative log likelihood summed over all
// events. It owns the generated event loop: the PDF subtree is translated
// inside the loop so vector observables resolve against its index.
type NLL struct {
	base
	Pdf Node
}

func (n *NLL) Translate(tr *Translator) (err error) {
	ctx := tr.Ctx()
	acc := ctx.NewTempName()
	ctx.AddToGlobalScope("double " + acc + " = 0.0;\n")

	scope := ctx.BeginLoop(n)
	defer func() {
		if endErr := scope.End(); err == nil {
			err = endErr
		}
	}()

	pdf, err := tr.Expr(n.Pdf)
	if err != nil {
		return err
	}
	ctx.AddToCodeBody(acc + " += -log(" + pdf + ");\n")
	return ctx.AddResult(n, acc)
}
