package schema

import (
	"iter"
	"log/slog"

	"github.com/golangyang/yangc/internal/types"
	"github.com/golangyang/yangc/stmt"
)

// Context is the library-wide context. It owns the plugin registry and
// the compiled modules. Modules are compiled one at a time into the
// context; a module's imports must already be compiled when its own
// compilation starts.
//
// Once compiled, modules are immutable and safe for unsynchronized
// concurrent reads. The Context itself must not be used for concurrent
// compilations.
type Context struct {
	registry    *pluginRegistry
	modules     map[string]*Module
	moduleOrder []*Module // compile order, for reverse teardown
	diagConfig  DiagnosticConfig
	diagnostics []Diagnostic
	freed       bool

	types.Logger
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) { c.Logger = types.Logger{L: logger} }
}

// WithDiagnosticConfig sets the strictness and filtering configuration.
func WithDiagnosticConfig(cfg DiagnosticConfig) ContextOption {
	return func(c *Context) { c.diagConfig = cfg }
}

// NewContext creates a library context with the built-in plugins
// registered.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		registry:   newPluginRegistry(),
		modules:    make(map[string]*Module),
		diagConfig: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	registerBuiltinPlugins(c.registry)
	return c
}

// RegisterPlugin binds an extension of the given defining module to a
// plugin descriptor. An empty revision applies to any revision of the
// module. Registration fails with ErrVersionMismatch when the descriptor
// was built against a different extensions API version.
func (c *Context) RegisterPlugin(module, revision, name string, desc *PluginDescriptor) error {
	if c.freed {
		return ErrContextFreed
	}
	return c.registry.register(module, revision, name, desc)
}

// Module returns the compiled module with the given name, or nil.
func (c *Context) Module(name string) *Module {
	return c.modules[name]
}

// Modules returns an iterator over compiled modules in compile order.
func (c *Context) Modules() iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		for _, m := range c.moduleOrder {
			if !yield(m) {
				return
			}
		}
	}
}

// Diagnostics returns all diagnostics collected so far.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// DiagnosticConfig returns the active strictness and filtering configuration.
func (c *Context) DiagnosticConfig() DiagnosticConfig {
	return c.diagConfig
}

// emitDiagnostic records a diagnostic, filtered by the configured
// severity and code rules.
func (c *Context) emitDiagnostic(code string, severity Severity, module, path, message string) {
	if !c.diagConfig.ShouldReport(code, severity) {
		return
	}
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Module:   module,
		Path:     path,
	})
}

// Free tears down every compiled module in reverse compile order and
// invokes each extension instance's free behavior exactly once. The
// context must not be used afterwards.
func (c *Context) Free() {
	if c.freed {
		return
	}
	for i := len(c.moduleOrder) - 1; i >= 0; i-- {
		c.moduleOrder[i].free()
	}
	c.moduleOrder = nil
	c.modules = nil
	c.freed = true
}

// Module is one compiled module. It is immutable after compilation.
type Module struct {
	name         string
	namespace    string
	prefix       string
	revision     string
	organization string
	contact      string
	description  string
	reference    string

	imports  map[string]*Module // prefix -> imported compiled module
	typedefs map[string]*Typedef
	nodes    []*Node
	exts     []*ExtInstance // module-scoped extension instances

	// Parsed bodies retained for cross-module instantiation. A grouping
	// compiles at its uses site, which may be in another module.
	groupings      map[string]*stmt.Statement
	extDefs        map[string]*stmt.Statement
	parsedTypedefs map[string]*stmt.Statement

	// extOrder holds every extension instance compiled while this module
	// was compiled, in compile order. Teardown frees them in reverse.
	extOrder []*ExtInstance
}

func newModule(name string) *Module {
	return &Module{
		name:           name,
		imports:        make(map[string]*Module),
		typedefs:       make(map[string]*Typedef),
		groupings:      make(map[string]*stmt.Statement),
		extDefs:        make(map[string]*stmt.Statement),
		parsedTypedefs: make(map[string]*stmt.Statement),
	}
}

func (m *Module) Name() string         { return m.name }
func (m *Module) Namespace() string    { return m.namespace }
func (m *Module) Prefix() string       { return m.prefix }
func (m *Module) Revision() string     { return m.revision }
func (m *Module) Organization() string { return m.organization }
func (m *Module) Contact() string      { return m.contact }
func (m *Module) Description() string  { return m.description }
func (m *Module) Reference() string    { return m.reference }

// Nodes returns the module's top-level schema nodes in source order.
func (m *Module) Nodes() []*Node { return m.nodes }

// Node returns the top-level node with the given name, or nil.
func (m *Module) Node(name string) *Node {
	return findChild(m.nodes, name)
}

// Typedef returns the compiled typedef with the given name, or nil.
func (m *Module) Typedef(name string) *Typedef {
	return m.typedefs[name]
}

// Extensions returns the module-scoped compiled extension instances.
func (m *Module) Extensions() []*ExtInstance { return m.exts }

// moduleForPrefix resolves a prefix in the scope of this module. The
// empty prefix and the module's own prefix resolve to the module itself.
func (m *Module) moduleForPrefix(prefix string) *Module {
	if prefix == "" || prefix == m.prefix {
		return m
	}
	return m.imports[prefix]
}

// free releases this module's extension instances in reverse compile
// order, so later-compiled instances referencing earlier data go first.
func (m *Module) free() {
	for i := len(m.extOrder) - 1; i >= 0; i-- {
		m.extOrder[i].free()
	}
}

// Node is one compiled schema node.
type Node struct {
	kind     NodeKind
	name     string
	module   *Module
	parent   *Node
	children []*Node

	typ       *Type
	units     string
	dflt      string
	hasDflt   bool
	config    bool
	hasConfig bool
	mandatory bool
	musts     []*Must
	when      *When

	description string
	reference   string
	status      string
	exts        []*ExtInstance
}

func (n *Node) Kind() NodeKind      { return n.kind }
func (n *Node) Name() string        { return n.name }
func (n *Node) Module() *Module     { return n.module }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Children() []*Node   { return n.children }
func (n *Node) Type() *Type         { return n.typ }
func (n *Node) Units() string       { return n.units }
func (n *Node) Mandatory() bool     { return n.mandatory }
func (n *Node) Musts() []*Must      { return n.musts }
func (n *Node) When() *When         { return n.when }
func (n *Node) Description() string { return n.description }
func (n *Node) Reference() string   { return n.reference }
func (n *Node) Status() string      { return n.status }

// Default returns the node's default value and whether one is set.
func (n *Node) Default() (string, bool) { return n.dflt, n.hasDflt }

// Config returns the node's config value, walking up to the nearest
// ancestor that sets one. Defaults to true.
func (n *Node) Config() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.hasConfig {
			return cur.config
		}
	}
	return true
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	return findChild(n.children, name)
}

// Extensions returns the compiled extension instances attached to this node.
func (n *Node) Extensions() []*ExtInstance { return n.exts }

// Extension returns the attached extension instance with the given name,
// or nil. This is the read API for fetching plugin-private compiled data
// by owning node.
func (n *Node) Extension(name string) *ExtInstance {
	for _, e := range n.exts {
		if e.name == name {
			return e
		}
	}
	return nil
}

// Path renders the node's absolute schema path.
func (n *Node) Path() string {
	if n == nil {
		return "/"
	}
	var segs []string
	for cur := n; cur != nil; cur = cur.parent {
		segs = append(segs, cur.name)
	}
	var b []byte
	for i := len(segs) - 1; i >= 0; i-- {
		b = append(b, '/')
		b = append(b, segs[i]...)
	}
	return string(b)
}

func findChild(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.name == name {
			return n
		}
	}
	return nil
}

// Must is a compiled must constraint. Evaluation of the expression is the
// validator's concern; compilation only records and defers it.
type Must struct {
	expr   string
	errMsg string
	desc   string
	ref    string
}

func (m *Must) Expression() string   { return m.expr }
func (m *Must) ErrorMessage() string { return m.errMsg }
func (m *Must) Description() string  { return m.desc }
func (m *Must) Reference() string    { return m.ref }

// When is a compiled when condition.
type When struct {
	expr string
}

func (w *When) Expression() string { return w.expr }
