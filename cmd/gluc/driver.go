package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/pipeline"
	"github.com/glu-lang/glu/internal/pipelinecfg"
	"github.com/glu-lang/glu/internal/source"
)

// Parse is the compiler's one external-contract seam: turning source text
// into a *ast.ModuleDecl is a parser's job, and no parser lives in this
// repo (spec.md §6 scopes parsing out as an independently-owned surface).
// A caller embedding this driver wires Parse in; left nil, check/build
// report CodeParserUnavailable instead of pretending to compile anything.
var Parse func(path string) (*ast.ModuleDecl, error)

func runCheck(args []string) int {
	return run(args, false)
}

func runBuild(args []string) int {
	return run(args, true)
}

func run(args []string, emitLLIR bool) int {
	fs := flag.NewFlagSet("gluc", flag.ContinueOnError)
	pipelineFlag := fs.String("pipeline", "", "path to a pipeline configuration YAML file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gluc <check|build> [-pipeline FILE] <source-file>")
		return 2
	}
	return compile(fs.Arg(0), *pipelineFlag, emitLLIR)
}

func compile(path, cfgPath string, emitLLIR bool) int {
	sink := diag.NewSink()
	cache := source.NewCache()

	if Parse == nil {
		sink.Fatalf(diag.CodeParserUnavailable, "driver", source.Pos{},
			"no parser is wired into this build of gluc; cannot compile %s", path)
		printDiagnostics(os.Stderr, sink, cache)
		return 1
	}

	mod, err := Parse(path)
	if err != nil {
		sink.Fatalf(diag.CodeParserUnavailable, "driver", source.Pos{}, "parsing %s: %v", path, err)
		printDiagnostics(os.Stderr, sink, cache)
		return 1
	}

	var cfg *pipelinecfg.Config
	if cfgPath != "" {
		cfg, err = pipelinecfg.Load(cfgPath)
		if err != nil {
			sink.Fatalf(diag.CodeParserUnavailable, "driver", source.Pos{}, "loading pipeline config: %v", err)
			printDiagnostics(os.Stderr, sink, cache)
			return 1
		}
	}

	result := pipeline.Compile(mod, cfg, sink)
	printDiagnostics(os.Stderr, sink, cache)
	if sink.HasErrors() {
		return 1
	}
	if emitLLIR && result != nil {
		fmt.Println(result.LLIR)
	}
	return 0
}
