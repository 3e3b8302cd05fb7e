package schema

import (
	"fmt"
	"log/slog"

	"github.com/golangyang/yangc/internal/types"
	"github.com/golangyang/yangc/stmt"
)

// CompileModule compiles one parsed module into the context. Modules the
// parsed tree imports must already be compiled; compiling modules with
// mutually dependent imports is a hard error, not a deadlock.
//
// On any structural or resolution error the module is not published into
// the context and the returned error wraps the matching category
// sentinel. Diagnostics collected along the way remain available via
// Diagnostics().
func (c *Context) CompileModule(parsed *stmt.Statement, opts CompileOptions) (*Module, error) {
	if c.freed {
		return nil, ErrContextFreed
	}
	if parsed == nil || parsed.Kind != stmt.KindModule {
		return nil, fmt.Errorf("%w: expected a module statement", ErrInvalidArgument)
	}
	name := parsed.Arg
	if name == "" {
		return nil, fmt.Errorf("%w: module has no name", ErrInvalidArgument)
	}
	if c.modules[name] != nil {
		return nil, fmt.Errorf("%w: module %q already compiled", ErrInvalidArgument, name)
	}

	mod := newModule(name)
	cc := newCompileContext(c, mod, opts)

	c.Log(slog.LevelDebug, "compiling module",
		slog.String("module", name), slog.Uint64("options", uint64(opts)))

	// An aborted module is never published, so Context.Free would skip
	// its extension instances; they still free exactly once, here.
	if err := cc.compileModuleBody(parsed); err != nil {
		mod.free()
		return nil, err
	}
	if err := cc.drain(); err != nil {
		mod.free()
		return nil, err
	}
	if !cc.guardsEmpty() {
		mod.free()
		return nil, fmt.Errorf("internal: reference guards not unwound after compiling %q", name)
	}

	c.modules[name] = mod
	c.moduleOrder = append(c.moduleOrder, mod)

	c.Log(slog.LevelInfo, "compiled module",
		slog.String("module", name),
		slog.Int("nodes", len(mod.nodes)),
		slog.Int("typedefs", len(mod.typedefs)),
		slog.Int("extensions", len(mod.extOrder)))
	return mod, nil
}

// compileModuleBody runs the structural pass over one module statement.
func (cc *CompileContext) compileModuleBody(parsed *stmt.Statement) error {
	if err := cc.prescan(parsed); err != nil {
		return err
	}

	mod := cc.mod
	var revisions []string
	table := []SubstmtDescriptor{
		{stmt.KindNamespace, CardinalityMandatory, &mod.namespace},
		{stmt.KindPrefix, CardinalityMandatory, &mod.prefix},
		{stmt.KindImport, CardinalityAny, nil},   // resolved by prescan
		{stmt.KindRevision, CardinalityAny, &revisions},
		{stmt.KindOrganization, CardinalityOptional, &mod.organization},
		{stmt.KindContact, CardinalityOptional, &mod.contact},
		{stmt.KindExtension, CardinalityAny, nil}, // collected by prescan
		{stmt.KindTypedef, CardinalityAny, nil},   // collected by prescan
		{stmt.KindGrouping, CardinalityAny, nil},  // collected by prescan
		{stmt.KindContainer, CardinalityAny, &mod.nodes},
		{stmt.KindLeaf, CardinalityAny, &mod.nodes},
		{stmt.KindLeafList, CardinalityAny, &mod.nodes},
		{stmt.KindUses, CardinalityAny, &mod.nodes},
		{stmt.KindDescription, CardinalityOptional, &mod.description},
		{stmt.KindReference, CardinalityOptional, &mod.reference},
	}
	if err := cc.compileSubstatements(nil, table, parsed.Children); err != nil {
		return err
	}
	if len(revisions) > 0 {
		mod.revision = revisions[0]
	}

	exts, err := cc.compileExtInstances(parsed.Exts, ParentModule, mod)
	if err != nil {
		return err
	}
	mod.exts = exts

	// Typedefs not referenced by the body still compile, in source order,
	// so broken definitions surface and cross-module references hit a
	// fully populated cache later.
	for ts := range parsed.ChildrenOf(stmt.KindTypedef) {
		if _, err := cc.resolveTypedef(mod, ts.Arg); err != nil {
			return err
		}
	}
	return nil
}

// prescan resolves imports and collects parsed groupings, typedefs, and
// extension definitions before the body compiles, so forward references
// within the module work regardless of source order.
func (cc *CompileContext) prescan(parsed *stmt.Statement) error {
	mod := cc.mod
	for _, child := range parsed.Children {
		switch child.Kind {
		case stmt.KindImport:
			dep := cc.ctx.modules[child.Arg]
			if dep == nil {
				return cc.errorf(types.DiagModuleNotFound, ErrInvalidArgument,
					"import %q: module not compiled in this context", child.Arg)
			}
			prefix := child.ChildArg(stmt.KindPrefix)
			if prefix == "" {
				return cc.errorf(types.DiagCardinalityMissing, ErrCardinality,
					"import %q has no prefix", child.Arg)
			}
			mod.imports[prefix] = dep
		case stmt.KindGrouping:
			mod.groupings[child.Arg] = child
		case stmt.KindTypedef:
			mod.parsedTypedefs[child.Arg] = child
		case stmt.KindExtension:
			mod.extDefs[child.Arg] = child
		}
	}
	return nil
}

// compileNode compiles one data-node statement.
func (cc *CompileContext) compileNode(s *stmt.Statement, parent *Node) (*Node, error) {
	node := &Node{name: s.Arg, module: cc.mod, parent: parent}

	// Qualify the path segment with the module name when crossing a
	// module boundary (or at the top level).
	prefix := ""
	if parent == nil || parent.module != node.module {
		prefix = node.module.name
	}
	cc.UpdatePath(prefix, s.Arg)
	defer cc.UpdatePath("", "")

	var table []SubstmtDescriptor
	switch s.Kind {
	case stmt.KindContainer:
		node.kind = NodeContainer
		table = []SubstmtDescriptor{
			{stmt.KindContainer, CardinalityAny, &node.children},
			{stmt.KindLeaf, CardinalityAny, &node.children},
			{stmt.KindLeafList, CardinalityAny, &node.children},
			{stmt.KindUses, CardinalityAny, &node.children},
			{stmt.KindConfig, CardinalityOptional, &node.config},
			{stmt.KindMust, CardinalityAny, &node.musts},
			{stmt.KindWhen, CardinalityOptional, &node.when},
			{stmt.KindStatus, CardinalityOptional, &node.status},
			{stmt.KindDescription, CardinalityOptional, &node.description},
			{stmt.KindReference, CardinalityOptional, &node.reference},
		}
	case stmt.KindLeaf:
		node.kind = NodeLeaf
		table = []SubstmtDescriptor{
			{stmt.KindType, CardinalityMandatory, &node.typ},
			{stmt.KindDefault, CardinalityOptional, &node.dflt},
			{stmt.KindUnits, CardinalityOptional, &node.units},
			{stmt.KindConfig, CardinalityOptional, &node.config},
			{stmt.KindMandatory, CardinalityOptional, &node.mandatory},
			{stmt.KindMust, CardinalityAny, &node.musts},
			{stmt.KindWhen, CardinalityOptional, &node.when},
			{stmt.KindStatus, CardinalityOptional, &node.status},
			{stmt.KindDescription, CardinalityOptional, &node.description},
			{stmt.KindReference, CardinalityOptional, &node.reference},
		}
	case stmt.KindLeafList:
		node.kind = NodeLeafList
		table = []SubstmtDescriptor{
			{stmt.KindType, CardinalityMandatory, &node.typ},
			{stmt.KindUnits, CardinalityOptional, &node.units},
			{stmt.KindConfig, CardinalityOptional, &node.config},
			{stmt.KindMust, CardinalityAny, &node.musts},
			{stmt.KindWhen, CardinalityOptional, &node.when},
			{stmt.KindStatus, CardinalityOptional, &node.status},
			{stmt.KindDescription, CardinalityOptional, &node.description},
			{stmt.KindReference, CardinalityOptional, &node.reference},
		}
	default:
		return nil, cc.errorf(types.DiagUnsupportedStmt, ErrUnsupportedStatement,
			"%q does not compile to a schema node", s.Kind)
	}

	if err := cc.compileSubstatements(node, table, s.Children); err != nil {
		return nil, err
	}

	node.hasConfig = s.Child(stmt.KindConfig) != nil
	node.hasDflt = s.Child(stmt.KindDefault) != nil

	if node.typ != nil && node.typ.base == BaseLeafref {
		cc.deferLeafref(node, node.typ.leafrefPath)
	}
	switch {
	case node.hasDflt:
		cc.deferDefault(node, nil, node.typ, node.dflt)
	case node.typ != nil && node.typ.typedef != nil:
		// inherited typedef default was checked when the typedef compiled
		if d, ok := node.typ.typedef.Default(); ok {
			node.dflt, node.hasDflt = d, true
		}
	}

	exts, err := cc.compileExtInstances(s.Exts, ParentNode, node)
	if err != nil {
		return nil, err
	}
	node.exts = exts

	if cc.TraceEnabled() {
		cc.Trace("compiled node",
			slog.String("name", node.name),
			slog.String("kind", node.kind.String()))
	}
	return node, nil
}

// compileUses expands a grouping into the destination children. The
// definition module switches to the grouping's module for the duration
// of the expansion; instantiated nodes still belong to the module under
// compilation.
func (cc *CompileContext) compileUses(s *stmt.Statement, parent *Node, dest *[]*Node) error {
	prefix, name := splitPrefix(s.Arg)
	defMod, err := cc.definitionModule(prefix)
	if err != nil {
		return err
	}
	grp := defMod.groupings[name]
	if grp == nil {
		return cc.errorf(types.DiagGroupingNotFound, ErrInvalidArgument,
			"grouping %q not found in module %q", name, defMod.name)
	}

	cc.UpdatePath("", "{uses}")
	cc.UpdatePath("", name)
	defer func() {
		cc.UpdatePath("", "")
		cc.UpdatePath("", "")
	}()

	if err := cc.enterGrouping(defMod, name); err != nil {
		return err
	}
	defer cc.leaveGrouping(defMod, name)

	prevDef := cc.modDef
	cc.modDef = defMod
	defer func() { cc.modDef = prevDef }()

	table := []SubstmtDescriptor{
		{stmt.KindContainer, CardinalityAny, dest},
		{stmt.KindLeaf, CardinalityAny, dest},
		{stmt.KindLeafList, CardinalityAny, dest},
		{stmt.KindUses, CardinalityAny, dest},
		{stmt.KindStatus, CardinalityOptional, nil},
		{stmt.KindDescription, CardinalityOptional, nil},
		{stmt.KindReference, CardinalityOptional, nil},
	}
	return cc.compileSubstatements(parent, table, grp.Children)
}

// compileMust compiles one must constraint and registers its expression
// for the deferred check.
func (cc *CompileContext) compileMust(parent *Node, s *stmt.Statement) (*Must, error) {
	m := &Must{expr: s.Arg}
	table := []SubstmtDescriptor{
		{stmt.KindErrorMessage, CardinalityOptional, &m.errMsg},
		{stmt.KindDescription, CardinalityOptional, &m.desc},
		{stmt.KindReference, CardinalityOptional, &m.ref},
	}
	if err := cc.compileSubstatements(parent, table, s.Children); err != nil {
		return nil, err
	}
	cc.deferExpr(unresMust, parent, s.Arg)
	return m, nil
}

// compileWhen compiles one when condition and registers its expression
// for the deferred check.
func (cc *CompileContext) compileWhen(parent *Node, s *stmt.Statement) (*When, error) {
	w := &When{expr: s.Arg}
	table := []SubstmtDescriptor{
		{stmt.KindDescription, CardinalityOptional, nil},
		{stmt.KindReference, CardinalityOptional, nil},
	}
	if err := cc.compileSubstatements(parent, table, s.Children); err != nil {
		return nil, err
	}
	cc.deferExpr(unresWhen, parent, s.Arg)
	return w, nil
}

// compileType compiles a type statement: a built-in type, an inline
// enumeration or leafref, or a typedef reference resolved through the
// typedef-chain guard.
func (cc *CompileContext) compileType(s *stmt.Statement, parent *Node) (*Type, error) {
	prefix, name := splitPrefix(s.Arg)

	if prefix == "" {
		if bt := builtinType(name); bt != nil {
			if len(s.Children) > 0 {
				return nil, cc.errorf(types.DiagUnsupportedStmt, ErrUnsupportedStatement,
					"type %q takes no substatements", name)
			}
			return cc.typeWithExts(bt, s)
		}
		switch name {
		case "enumeration":
			t, err := cc.compileEnumeration(s, parent)
			if err != nil {
				return nil, err
			}
			return cc.typeWithExts(t, s)
		case "leafref":
			t := &Type{name: name, base: BaseLeafref}
			table := []SubstmtDescriptor{
				{stmt.KindPath, CardinalityMandatory, &t.leafrefPath},
			}
			if err := cc.compileSubstatements(parent, table, s.Children); err != nil {
				return nil, err
			}
			return cc.typeWithExts(t, s)
		}
	}

	defMod, err := cc.definitionModule(prefix)
	if err != nil {
		return nil, err
	}
	td, err := cc.resolveTypedef(defMod, name)
	if err != nil {
		return nil, err
	}
	use := td.typ
	if use.base == BaseLeafref {
		// every use site resolves its own target; writing it into the
		// typedef's shared type would leak one use's resolution into all
		// the others (and into the published defining module)
		cp := *use
		cp.target = nil
		use = &cp
	}
	return cc.typeWithExts(use, s)
}

// typeWithExts attaches use-site extension instances to a type, copying
// shared types so the attachment never leaks into other uses.
func (cc *CompileContext) typeWithExts(t *Type, s *stmt.Statement) (*Type, error) {
	if len(s.Exts) == 0 {
		return t, nil
	}
	use := *t
	use.exts = nil
	exts, err := cc.compileExtInstances(s.Exts, ParentType, &use)
	if err != nil {
		return nil, err
	}
	use.exts = exts
	return &use, nil
}

// compileEnumeration compiles an inline enumeration type. Values without
// an explicit value statement auto-assign one past the highest assigned
// so far.
func (cc *CompileContext) compileEnumeration(s *stmt.Statement, parent *Node) (*Type, error) {
	t := &Type{name: "enumeration", base: BaseEnumeration}

	next := int64(0)
	for _, child := range s.Children {
		if child.Kind != stmt.KindEnum {
			return nil, cc.errorf(types.DiagUnsupportedStmt, ErrUnsupportedStatement,
				"substatement %q is not allowed in enumeration", child.Kind)
		}
		if t.Enum(child.Arg) != nil {
			return nil, cc.errorf(types.DiagInvalidArgument, ErrInvalidArgument,
				"duplicate enum label %q", child.Arg)
		}
		value := next
		table := []SubstmtDescriptor{
			{stmt.KindValue, CardinalityOptional, &value},
			{stmt.KindStatus, CardinalityOptional, nil},
			{stmt.KindDescription, CardinalityOptional, nil},
			{stmt.KindReference, CardinalityOptional, nil},
		}
		if err := cc.compileSubstatements(parent, table, child.Children); err != nil {
			return nil, err
		}
		ev := &EnumValue{Label: child.Arg, Value: value}
		exts, err := cc.compileExtInstances(child.Exts, ParentTypeEnum, ev)
		if err != nil {
			return nil, err
		}
		ev.Exts = exts
		t.enums = append(t.enums, ev)
		if value >= next {
			next = value + 1
		}
	}
	if len(t.enums) == 0 {
		return nil, cc.errorf(types.DiagCardinalityMissing, ErrCardinality,
			"enumeration needs at least one enum")
	}
	return t, nil
}

// resolveTypedef returns the compiled typedef with the given name in the
// given module, compiling it on first reference. Typedefs of imported
// modules were compiled eagerly with their module, so the cache already
// holds them and published modules are never mutated here.
func (cc *CompileContext) resolveTypedef(mod *Module, name string) (*Typedef, error) {
	if td := mod.typedefs[name]; td != nil {
		return td, nil
	}
	parsed := mod.parsedTypedefs[name]
	if parsed == nil {
		return nil, cc.errorf(types.DiagTypedefNotFound, ErrInvalidArgument,
			"typedef %q not found in module %q", name, mod.name)
	}
	return cc.compileTypedef(mod, parsed)
}

// compileTypedef compiles one typedef, guarding the base-type chain
// against circular derivation.
func (cc *CompileContext) compileTypedef(mod *Module, s *stmt.Statement) (*Typedef, error) {
	name := s.Arg

	cc.UpdatePath("", "{typedef}")
	cc.UpdatePath("", name)
	defer func() {
		cc.UpdatePath("", "")
		cc.UpdatePath("", "")
	}()

	if err := cc.enterTypedef(mod, name); err != nil {
		return nil, err
	}
	defer cc.leaveTypedef(mod, name)

	// the typedef's own type resolves in its defining module's scope
	prevDef := cc.modDef
	cc.modDef = mod
	defer func() { cc.modDef = prevDef }()

	td := &Typedef{name: name, module: mod}
	var base *Type
	table := []SubstmtDescriptor{
		{stmt.KindType, CardinalityMandatory, &base},
		{stmt.KindDefault, CardinalityOptional, &td.dflt},
		{stmt.KindUnits, CardinalityOptional, &td.units},
		{stmt.KindStatus, CardinalityOptional, &td.status},
		{stmt.KindDescription, CardinalityOptional, &td.description},
		{stmt.KindReference, CardinalityOptional, &td.reference},
	}
	if err := cc.compileSubstatements(nil, table, s.Children); err != nil {
		return nil, err
	}

	derived := *base
	derived.name = name
	derived.typedef = td
	td.typ = &derived

	td.hasDflt = s.Child(stmt.KindDefault) != nil
	if td.hasDflt {
		cc.deferDefault(nil, td, td.typ, td.dflt)
	}

	exts, err := cc.compileExtInstances(s.Exts, ParentTypedef, td)
	if err != nil {
		return nil, err
	}
	td.exts = exts

	mod.typedefs[name] = td
	return td, nil
}
