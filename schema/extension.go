package schema

import (
	"fmt"
	"log/slog"

	"github.com/golangyang/yangc/internal/types"
	"github.com/golangyang/yangc/stmt"
)

// ExtState is the lifecycle state of a compiled extension instance.
// Validation does not transition the stored state: Validate may run
// concurrently for different data instances and must be read-only.
type ExtState int

const (
	StateDeclared ExtState = iota
	StateCompiling
	StateCompiled
	StateFreed
)

func (s ExtState) String() string {
	switch s {
	case StateDeclared:
		return "declared"
	case StateCompiling:
		return "compiling"
	case StateCompiled:
		return "compiled"
	case StateFreed:
		return "freed"
	default:
		return fmt.Sprintf("ExtState(%d)", int(s))
	}
}

// ExtInstance is a compiled use of a vendor extension. The generic parts
// (name, argument, parent) are filled by the compiler before the plugin's
// compile behavior runs; the plugin adds its private data via SetData.
type ExtInstance struct {
	name       string
	argument   string
	module     string // defining module
	revision   string
	parentKind ParentKind
	parent     any // *Module, *Node, *Typedef, *Type, or *EnumValue
	desc       *PluginDescriptor
	parsed     *stmt.ExtInstance
	data       any
	state      ExtState
}

func (e *ExtInstance) Name() string           { return e.name }
func (e *ExtInstance) Argument() string       { return e.argument }
func (e *ExtInstance) DefiningModule() string { return e.module }
func (e *ExtInstance) ParentKind() ParentKind { return e.parentKind }
func (e *ExtInstance) Parent() any            { return e.parent }
func (e *ExtInstance) State() ExtState        { return e.state }

// Descriptor returns the plugin descriptor handling this instance.
func (e *ExtInstance) Descriptor() *PluginDescriptor { return e.desc }

// Data returns the plugin-private compiled data.
func (e *ExtInstance) Data() any { return e.data }

// SetData stores the plugin-private compiled data. It is legal only
// while the instance is being compiled; the compiled form is immutable
// afterwards.
func (e *ExtInstance) SetData(data any) error {
	if e.state != StateCompiling {
		return fmt.Errorf("%w: extension data is immutable in state %s",
			ErrInvalidExtensionData, e.state)
	}
	e.data = data
	return nil
}

// free invokes the plugin's free behavior. Runs at most once; calling it
// on an already freed instance is a no-op.
func (e *ExtInstance) free() {
	if e.state == StateFreed {
		return
	}
	if e.desc != nil && e.desc.Plugin != nil && e.state == StateCompiled {
		e.desc.Plugin.Free(e)
	}
	e.state = StateFreed
}

// CompileExtensionInstance compiles the substatements of an extension
// instance against the plugin's descriptor table. Plugins call this from
// their Compile behavior; the table's destination slots receive the
// compiled children.
func (cc *CompileContext) CompileExtensionInstance(pext *stmt.ExtInstance, substmts []SubstmtDescriptor) error {
	return cc.compileSubstatements(nil, substmts, pext.Children)
}

// compileExtInstances compiles every extension-instance use attached to
// one statement, in source order.
func (cc *CompileContext) compileExtInstances(pexts []*stmt.ExtInstance, pkind ParentKind, parent any) ([]*ExtInstance, error) {
	var out []*ExtInstance
	for _, pext := range pexts {
		inst, err := cc.compileExtInstance(pext, pkind, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// compileExtInstance runs the Declared -> Compiling -> Compiled part of
// the lifecycle for one extension use. A compile failure aborts the
// enclosing module.
func (cc *CompileContext) compileExtInstance(pext *stmt.ExtInstance, pkind ParentKind, parent any) (*ExtInstance, error) {
	cc.UpdatePath("", "{extension}")
	cc.UpdatePath("", pext.Module+":"+pext.Name)
	defer func() {
		cc.UpdatePath("", "")
		cc.UpdatePath("", "")
	}()

	revision := pext.Revision
	if def := cc.ctx.modules[pext.Module]; def != nil {
		if revision == "" {
			revision = def.revision
		}
		if def.extDefs[pext.Name] == nil {
			return nil, cc.errorf(types.DiagUnknownExtension, ErrUnknownExtension,
				"module %q does not define extension %q", pext.Module, pext.Name)
		}
	}

	desc := cc.ctx.registry.lookup(pext.Module, revision, pext.Name)
	if desc == nil {
		return nil, cc.errorf(types.DiagUnknownExtension, ErrUnknownExtension,
			"no plugin registered for extension %s:%s", pext.Module, pext.Name)
	}

	inst := &ExtInstance{
		name:       pext.Name,
		argument:   pext.Arg,
		module:     pext.Module,
		revision:   revision,
		parentKind: pkind,
		parent:     parent,
		desc:       desc,
		parsed:     pext,
		state:      StateDeclared,
	}

	inst.state = StateCompiling
	if err := desc.Plugin.Compile(cc, pext, inst); err != nil {
		ce := &CompileError{
			Code: types.DiagExtensionData,
			Path: cc.path.render(),
			Err:  fmt.Errorf("%w: %s:%s: %w", ErrInvalidExtensionData, pext.Module, pext.Name, err),
		}
		cc.ctx.emitDiagnostic(ce.Code, SeverityError, cc.mod.name, ce.Path, ce.Err.Error())
		return nil, ce
	}
	inst.state = StateCompiled

	cc.mod.extOrder = append(cc.mod.extOrder, inst)

	if cc.TraceEnabled() {
		cc.Trace("compiled extension instance",
			slog.String("extension", pext.Module+":"+pext.Name),
			slog.String("plugin", desc.ID))
	}
	return inst, nil
}
