// Package main provides the CLI entry point for fitc, the statistical
// model squash compiler.
//
// Usage:
//
//	fitc build model.fit -o model.c    # Generate C source from a model
//	fitc build model.fit -data d.csv   # Bind observable data
//	fitc dump model.fit                # Print generated source to stdout
//	fitc data d.csv -cols x,y          # Summarize flattened columns
//	fitc repl                          # Interactive session
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/irisgriv/fitc/pkg/config"
	"github.com/irisgriv/fitc/pkg/gen"
	"github.com/irisgriv/fitc/pkg/loader"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return printUsage()
	}

	cmd := args[0]

	switch cmd {
	case "build":
		return buildCommand(args[1:])
	case "dump":
		return dumpCommand(args[1:])
	case "data":
		return dataCommand(args[1:])
	case "repl":
		return replCommand(args[1:])
	case "version":
		fmt.Printf("fitc version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("  built:  %s\n", date)
		}
		return nil
	case "help", "-h", "--help":
		return printUsage()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// buildSettings is the merge of config file and flags for build/dump.
type buildSettings struct {
	modelPath string
	dataPath  string
	funcName  string
	output    string
	events    int
	verbose   bool
}

func parseBuildFlags(name string, args []string, needsOutput bool) (*buildSettings, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	dataPath := fs.String("data", "", "observable data file (csv, json or parquet)")
	funcName := fs.String("func", "", "generated function name")
	events := fs.Int("events", 0, "event count when no data file is given")
	cfgPath := fs.String("config", "", "YAML project file")
	verbose := fs.Bool("v", false, "verbose output")
	var output *string
	if needsOutput {
		output = fs.String("o", "", "output file (default: input with .c extension)")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	s := &buildSettings{verbose: *verbose}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		s.modelPath = cfg.Model
		s.dataPath = cfg.Data
		s.funcName = cfg.Func
		s.output = cfg.Output
		s.events = cfg.Events
	}

	if fs.NArg() > 0 {
		s.modelPath = fs.Arg(0)
	}
	if *dataPath != "" {
		s.dataPath = *dataPath
	}
	if *funcName != "" {
		s.funcName = *funcName
	}
	if *events > 0 {
		s.events = *events
	}
	if needsOutput && *output != "" {
		s.output = *output
	}

	if s.modelPath == "" {
		return nil, fmt.Errorf("usage: fitc %s <model.fit> [flags]", name)
	}
	if s.funcName == "" {
		s.funcName = gen.DefaultFuncName
	}
	if s.events < 1 {
		s.events = 1
	}
	if needsOutput && s.output == "" {
		ext := filepath.Ext(s.modelPath)
		s.output = strings.TrimSuffix(s.modelPath, ext) + ".c"
	}
	return s, nil
}

func generate(s *buildSettings) (*gen.Result, error) {
	source, err := os.ReadFile(s.modelPath)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	opts := []gen.Option{
		gen.WithFuncName(s.funcName),
		gen.WithEvents(s.events),
	}
	if s.dataPath != "" {
		df, err := loader.Load(s.dataPath)
		if err != nil {
			return nil, fmt.Errorf("loading data: %w", err)
		}
		opts = append(opts, gen.WithFrame(df))
	}

	return gen.Generate(string(source), opts...)
}

func buildCommand(args []string) error {
	s, err := parseBuildFlags("build", args, true)
	if err != nil {
		return err
	}

	if s.verbose {
		fmt.Printf("Compiling: %s -> %s\n", s.modelPath, s.output)
	}

	res, err := generate(s)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.output, []byte(res.Source), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if s.verbose {
		fmt.Printf("Generated %s with %d parameter(s), %d observable(s), %d event(s)\n",
			res.FuncName, len(res.Params), len(res.Observables), res.Events)
		for i, p := range res.Params {
			fmt.Printf("  params[%d] = %s (init %g)\n", i, p.Name, p.Init)
		}
	} else {
		fmt.Printf("Generated: %s\n", s.output)
	}
	return nil
}

func dumpCommand(args []string) error {
	s, err := parseBuildFlags("dump", args, false)
	if err != nil {
		return err
	}

	res, err := generate(s)
	if err != nil {
		return err
	}

	fmt.Print(res.Source)
	return nil
}

func dataCommand(args []string) error {
	fs := flag.NewFlagSet("data", flag.ExitOnError)
	cols := fs.String("cols", "", "comma-separated columns to flatten (default: all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: fitc data <file.{csv,json,parquet}> [-cols x,y]")
	}

	df, err := loader.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	var columns []string
	if *cols != "" {
		columns = strings.Split(*cols, ",")
	} else {
		for _, s := range df.Series {
			columns = append(columns, s.Name())
		}
	}

	data, err := loader.Flatten(df, columns)
	if err != nil {
		return err
	}

	fmt.Printf("%d event(s), %d column(s)\n", data.Events, len(data.Columns))
	for _, name := range data.Columns {
		values, _ := data.Column(name)
		min, max, mean := summarize(values)
		offset, _ := data.Offset(name)
		fmt.Printf("  %-12s offset=%-6d min=%-10.6g max=%-10.6g mean=%.6g\n",
			name, offset, min, max, mean)
	}
	return nil
}

func summarize(values []float64) (min, max, mean float64) {
	min, max = values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(len(values))
}

func printUsage() error {
	fmt.Println(`fitc - Statistical model squash compiler

Usage:
  fitc <command> [arguments]

Commands:
  build <model.fit>   Generate C source from a model description
  dump <model.fit>    Print generated source to stdout
  data <file>         Load observable data and print a column summary
  repl                Start interactive session
  version             Print version information
  help                Show this help message

Build Options:
  -o <file>           Output file (default: input with .c extension)
  -data <file>        Observable data file (csv, json or parquet)
  -func <name>        Generated function name
  -events <n>         Event count when no data file is given
  -config <file>      YAML project file (flags override its fields)
  -v                  Verbose output

Data Options:
  -cols x,y           Columns to flatten (default: all)

Examples:
  fitc build signal.fit -data events.csv -o signal.c
  fitc dump signal.fit -events 1000
  fitc data events.parquet -cols x,y
  fitc repl`)
	return nil
}
