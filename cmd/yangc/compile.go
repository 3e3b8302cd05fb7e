package main

import (
	"fmt"
	"os"

	"github.com/golangyang/yangc"
)

func (c *cli) cmdCompile(args []string) int {
	if len(args) == 0 {
		printError("compile: no input files")
		return exitError
	}

	ctx, compileErr := c.compileFiles(args)
	if ctx == nil {
		printError("%v", compileErr)
		return exitError
	}
	defer ctx.Free()

	if compileErr != nil {
		printError("%v", compileErr)
	}
	strict := printDiagnostics(ctx)

	count := 0
	for range ctx.Modules() {
		count++
	}
	fmt.Printf("compiled %d module(s)\n", count)

	switch {
	case compileErr != nil:
		return exitError
	case strict:
		return exitStrictViolation
	}
	return exitOK
}

// compileFiles turns the file arguments into inputs and compiles them in
// order. A nil context means nothing could even start.
func (c *cli) compileFiles(paths []string) (*yangc.Context, error) {
	opts, err := c.buildOptions()
	if err != nil {
		return nil, err
	}

	var inputs []*yangc.Input
	for _, path := range paths {
		in, err := yangc.InPath(path)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		inputs = append(inputs, in)
	}
	return yangc.Compile(inputs, opts...)
}

// printDiagnostics writes reportable diagnostics to stderr and reports
// whether any crossed the fail threshold.
func printDiagnostics(ctx *yangc.Context) bool {
	cfg := ctx.DiagnosticConfig()
	fail := false
	for _, d := range ctx.Diagnostics() {
		if cfg.ShouldFail(d.Severity) {
			fail = true
		}
		if cfg.ShouldReport(d.Code, d.Severity) {
			_, _ = fmt.Fprintln(os.Stderr, d.String())
		}
	}
	return fail
}
