package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/passes"
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// runREPL drives a tiny GIL pass-manager shell: there is no textual GIL
// parser to read a module back in (the printer in internal/gil is
// write-only, spec.md §3), so the REPL works over a single in-memory demo
// module and lets the pass pipeline be inspected and toggled interactively.
//
// Grounded on the teacher's cmd/ailang REPL (peterh/liner for history and
// line editing around a fixed command set).
func runREPL(args []string) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	mod := demoModule()
	mgr := passes.NewManager()
	mgr.Out = os.Stdout

	fmt.Println("gluc gil-repl: :print  :run  :enable <pass>  :disable <pass>  :quit")
	for {
		text, err := line.Prompt("gil> ")
		if err != nil {
			return
		}
		line.AppendHistory(text)

		cmd, arg := splitCommand(strings.TrimSpace(text))
		switch cmd {
		case ":quit", ":q":
			return
		case ":print":
			fmt.Println(gil.Print(mod))
		case ":run":
			sink := diag.NewSink()
			mgr.Run(mod, sink)
			for _, d := range sink.Diagnostics() {
				fmt.Println(d.String())
			}
		case ":enable":
			setPassEnabled(mgr, arg, true)
		case ":disable":
			setPassEnabled(mgr, arg, false)
		case "":
			// ignore blank input
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		}
	}
}

func splitCommand(text string) (cmd, arg string) {
	parts := strings.SplitN(text, " ", 2)
	cmd = parts[0]
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func setPassEnabled(mgr *passes.Manager, name string, enabled bool) {
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: :enable <pass-name>")
		return
	}
	cfg := mgr.Config[name]
	cfg.Enabled = enabled
	mgr.Config[name] = cfg
}

// demoModule builds a trivial `main` function returning Void, which
// void-main rewrites to an Int32-returning function when the pipeline runs.
func demoModule() *gil.Module {
	fnTy := &types.Function{ReturnType: &types.Void{}}
	fn := gil.NewFunction("main", fnTy)
	fn.Pos = source.Pos{File: "<gil-repl>", Line: 1, Column: 1}

	entry := fn.NewBlock("entry")
	b := gil.NewBuilder(fn)
	b.SetBlock(entry)
	b.Ret(nil)

	return &gil.Module{Name: "repl", Functions: []*gil.Function{fn}}
}
