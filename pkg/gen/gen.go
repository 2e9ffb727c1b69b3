// Package gen is the embedding API for fitc: model source in, generated
// C source out.
//
// Basic usage:
//
//	res, err := gen.Generate(`
//	    x = obs("x")
//	    mu = param(5.0)
//	    sigma = param(2.0)
//	    g = gauss(x, mu, sigma)
//	    return nll(g)
//	`, gen.WithEvents(1000))
//
// With a loaded data table:
//
//	df, err := loader.Load("data.csv")
//	res, err := gen.Generate(src, gen.WithFrame(df))
package gen

import (
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/irisgriv/fitc/pkg/dsl"
	"github.com/irisgriv/fitc/pkg/loader"
)

// DefaultFuncName names the generated function when no option overrides
// it.
const DefaultFuncName = "model_eval"

// Options configures generation.
type Options struct {
	// FuncName names the generated C function.
	FuncName string

	// Events sets the event count when no data frame is bound.
	Events int

	// Frame binds a data table; its observable columns are flattened in
	// model order and its row count overrides Events.
	Frame *dataframe.DataFrame
}

// Option is a functional option for Generate.
type Option func(*Options)

// WithFuncName overrides the generated function name.
func WithFuncName(name string) Option {
	return func(o *Options) { o.FuncName = name }
}

// WithEvents sets the event count the generated loop runs over.
func WithEvents(n int) Option {
	return func(o *Options) { o.Events = n }
}

// WithFrame binds a loaded data table to the model's observables.
func WithFrame(df *dataframe.DataFrame) Option {
	return func(o *Options) { o.Frame = df }
}

// ParamSpec describes one fit parameter of a generated function.
type ParamSpec struct {
	Name string
	Init float64
}

// Result is a generated model function plus the metadata needed to call
// it: parameter slot order, observable column order and event count.
type Result struct {
	Source      string
	FuncName    string
	Params      []ParamSpec
	Observables []string
	Events      int

	// Data is the flattened observable buffer, set when a frame was
	// bound.
	Data *loader.ObsData
}

// Generate compiles model source into a standalone C function.
func Generate(source string, opts ...Option) (*Result, error) {
	o := Options{
		FuncName: DefaultFuncName,
		Events:   1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	model, err := dsl.Build(source)
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}

	res := &Result{
		FuncName:    o.FuncName,
		Observables: model.Observables(),
		Events:      o.Events,
	}
	for _, p := range model.Params() {
		res.Params = append(res.Params, ParamSpec{Name: p.Name(), Init: p.Init})
	}

	if o.Frame != nil && len(res.Observables) > 0 {
		data, err := loader.Flatten(o.Frame, model.Observables())
		if err != nil {
			return nil, fmt.Errorf("flattening observables: %w", err)
		}
		res.Data = data
		res.Events = data.Events
	}

	src, err := model.GenerateFunction(o.FuncName, res.Events)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", o.FuncName, err)
	}
	res.Source = src
	return res, nil
}
