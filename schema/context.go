package schema

import (
	"log/slog"

	"github.com/golangyang/yangc/internal/types"
)

// CompileOptions are flags altering compilation strictness.
type CompileOptions uint32

const (
	// CompileGroupingIsolated compiles a grouping outside any
	// instantiation. Deferred leafref and expression entries cannot be
	// resolved in isolation and are skipped by the drain pass.
	CompileGroupingIsolated CompileOptions = 1 << iota
)

// CompileContext is the per-module compilation state. It is created by
// Context.CompileModule, threaded through the whole compilation of one
// module, and discarded afterwards. It is exclusively owned by the
// compiling goroutine and carries no synchronization.
//
// Extension plugins receive the CompileContext in their Compile behavior
// and may use UpdatePath and CompileExtensionInstance.
type CompileContext struct {
	ctx *Context

	// mod is the module being compiled: instantiated content is placed
	// into it. modDef is the module whose namespace the content under
	// compilation is defined in; it is swapped while compiling a
	// grouping body defined in another module and restored on exit.
	mod    *Module
	modDef *Module

	groupings refGuard // groupings currently being expanded
	tpdfChain refGuard // typedef base-type chain

	unres []unresEntry      // leafref targets and must/when expressions
	dflts []deferredDefault // incomplete default values

	path pathTracker
	opts CompileOptions

	types.Logger
}

func newCompileContext(ctx *Context, mod *Module, opts CompileOptions) *CompileContext {
	return &CompileContext{
		ctx:    ctx,
		mod:    mod,
		modDef: mod,
		path:   newPathTracker(),
		opts:   opts,
		Logger: ctx.Logger,
	}
}

// Context returns the owning library-wide context.
func (cc *CompileContext) Context() *Context { return cc.ctx }

// Module returns the module under compilation.
func (cc *CompileContext) Module() *Module { return cc.mod }

// Options returns the compile option flags.
func (cc *CompileContext) Options() CompileOptions { return cc.opts }

// Path renders the current diagnostic path.
func (cc *CompileContext) Path() string { return cc.path.render() }

// UpdatePath updates the diagnostic path. An empty name removes the most
// recently pushed segment; a name of the form "{keyword}" pushes a
// compound placeholder which the next concrete push completes to
// "{keyword='name'}". Removing a completed compound segment takes two
// calls with an empty name.
func (cc *CompileContext) UpdatePath(prefix, name string) {
	cc.path.update(prefix, name)
	if cc.TraceEnabled() {
		cc.Trace("path update", slog.String("path", cc.path.render()))
	}
}

// errorf builds a structural CompileError at the current path and emits
// the matching diagnostic.
func (cc *CompileContext) errorf(code string, category error, format string, args ...any) *CompileError {
	err := compileErrorf(code, cc.path.render(), category, format, args...)
	cc.ctx.emitDiagnostic(code, SeverityError, cc.mod.name, err.Path, err.Err.Error())
	return err
}

// qualify returns the guard identifier for a definition of the given
// module.
func qualify(mod *Module, name string) string {
	return mod.name + ":" + name
}

// enterGrouping guards against circular grouping expansion.
func (cc *CompileContext) enterGrouping(mod *Module, name string) error {
	id := qualify(mod, name)
	if !cc.groupings.enter(id) {
		return cc.errorf(types.DiagCircularGrouping, ErrCircularReference,
			"grouping %q expands itself: %v", name, cc.groupings.chain(id))
	}
	return nil
}

func (cc *CompileContext) leaveGrouping(mod *Module, name string) {
	cc.groupings.leave(qualify(mod, name))
}

// enterTypedef guards against circular typedef base-type chains.
func (cc *CompileContext) enterTypedef(mod *Module, name string) error {
	id := qualify(mod, name)
	if !cc.tpdfChain.enter(id) {
		return cc.errorf(types.DiagCircularTypedef, ErrCircularReference,
			"typedef %q derives from itself: %v", name, cc.tpdfChain.chain(id))
	}
	return nil
}

func (cc *CompileContext) leaveTypedef(mod *Module, name string) {
	cc.tpdfChain.leave(qualify(mod, name))
}

// guardsEmpty reports whether both reference guards are fully unwound.
// They must be after compilation ends, on both success and error paths.
func (cc *CompileContext) guardsEmpty() bool {
	return cc.groupings.empty() && cc.tpdfChain.empty()
}

// splitPrefix splits "prefix:name" into its parts; the prefix is empty
// when absent.
func splitPrefix(s string) (prefix, name string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}

// definitionModule resolves the module a prefixed reference points at, in
// the scope of the current definition module.
func (cc *CompileContext) definitionModule(prefix string) (*Module, error) {
	m := cc.modDef.moduleForPrefix(prefix)
	if m == nil {
		return nil, cc.errorf(types.DiagModuleNotFound, ErrInvalidArgument,
			"no module imported with prefix %q", prefix)
	}
	return m, nil
}
