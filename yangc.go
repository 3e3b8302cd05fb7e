package yangc

import (
	"errors"
	"log/slog"

	"github.com/golangyang/yangc/schema"
)

// ErrNoInputs is returned when Compile is called with nothing to compile.
var ErrNoInputs = errors.New("no inputs provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-statement logging (path updates, node compilation).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures NewContext and Compile.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	diag    *schema.DiagnosticConfig
	plugins []PluginRegistration
}

// PluginRegistration binds a plugin descriptor to the extension it
// implements, identified by defining module, revision, and name. An
// empty revision applies to any revision of the module.
type PluginRegistration struct {
	Module     string
	Revision   string
	Name       string
	Descriptor *schema.PluginDescriptor
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDiagnosticConfig overrides the default diagnostic filtering.
func WithDiagnosticConfig(cfg schema.DiagnosticConfig) Option {
	return func(c *config) { c.diag = &cfg }
}

// WithPlugins registers extension plugins on the new context, in addition
// to the built-in ones.
func WithPlugins(regs ...PluginRegistration) Option {
	return func(c *config) { c.plugins = append(c.plugins, regs...) }
}

// NewContext creates a compile context with the given options applied and
// any supplied plugins registered.
func NewContext(opts ...Option) (*schema.Context, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var ctxOpts []schema.ContextOption
	if cfg.logger != nil {
		ctxOpts = append(ctxOpts, schema.WithLogger(cfg.logger))
	}
	if cfg.diag != nil {
		ctxOpts = append(ctxOpts, schema.WithDiagnosticConfig(*cfg.diag))
	}
	ctx := schema.NewContext(ctxOpts...)
	for _, reg := range cfg.plugins {
		if err := ctx.RegisterPlugin(reg.Module, reg.Revision, reg.Name, reg.Descriptor); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// Compile reads and compiles JSON parse trees in order. Imported modules
// must appear before their importers. The context is returned even when
// some modules fail, so callers can inspect diagnostics; the error joins
// all per-module failures.
//
// Example:
//
//	in, _ := yangc.InPath("example.json")
//	ctx, err := yangc.Compile([]*yangc.Input{in},
//	    yangc.WithLogger(slog.Default()),
//	)
func Compile(inputs []*Input, opts ...Option) (*schema.Context, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, in := range inputs {
		tree, err := ReadTree(in)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := ctx.CompileModule(tree, 0); err != nil {
			errs = append(errs, err)
		}
	}
	return ctx, errors.Join(errs...)
}
