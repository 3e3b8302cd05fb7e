// Command yangc compiles JSON-encoded schema parse trees and reports
// diagnostics.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/golangyang/yangc"
)

// Exit codes.
const (
	exitOK              = 0 // success
	exitError           = 1 // user error or compile failure
	exitStrictViolation = 2 // diagnostics at or below the fail threshold
)

const usage = `yangc - schema compiler and inspection tool

Usage:
  yangc <command> [options] [arguments]

Commands:
  compile Compile parse-tree files and report diagnostics
  dump    Compile and output the schema model as JSON
  version Show version

Common options:
  -c, --config FILE  Load diagnostic config from a YAML file
  -v, --verbose      Enable debug logging
  -vv                Enable trace logging (implies -v)
  -h, --help         Show help

Examples:
  yangc compile base.json app.json
  yangc compile -c strict.yaml app.json
  yangc dump app.json
`

type cli struct {
	verbose    int
	configPath string
	helpFlag   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				i++
				c.configPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			c.configPath = arg[len("--config="):]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "compile":
		return c.cmdCompile(cmdArgs)
	case "dump":
		return c.cmdDump(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = yangc.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// buildOptions assembles the shared compile options from the common flags.
func (c *cli) buildOptions() ([]yangc.Option, error) {
	var opts []yangc.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, yangc.WithLogger(logger))
	}
	if c.configPath != "" {
		f, err := os.Open(c.configPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		cfg, err := yangc.LoadDiagnosticConfig(f)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", c.configPath, err)
		}
		opts = append(opts, yangc.WithDiagnosticConfig(cfg))
	}
	return opts, nil
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("yangc %s\n", version)
}

func printError(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
