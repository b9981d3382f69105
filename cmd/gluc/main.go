// Command gluc is the compiler driver: it dispatches to the check/build/
// gil-repl subcommands and owns the diagnostic pretty-printer every
// subcommand renders through (spec.md §6/§7).
//
// Grounded on the teacher's cmd/ailang/main.go (flag-based subcommand
// dispatch, colored terminal output via fatih/color).
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "version":
		fmt.Println("gluc", version)
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "build":
		os.Exit(runBuild(os.Args[2:]))
	case "gil-repl":
		runREPL(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gluc <version|check|build|gil-repl> ...")
}
