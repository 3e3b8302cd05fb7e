package schema

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/golangyang/yangc/internal/types"
)

// unresKind classifies a deferred resolution obligation.
type unresKind int

const (
	unresLeafref unresKind = iota
	unresMust
	unresWhen
)

func (k unresKind) String() string {
	switch k {
	case unresLeafref:
		return "leafref"
	case unresMust:
		return "must"
	case unresWhen:
		return "when"
	default:
		return "unknown"
	}
}

func (k unresKind) diagCode() string {
	if k == unresLeafref {
		return types.DiagLeafrefUnresolved
	}
	return types.DiagXPathUnresolved
}

// unresEntry is one deferred leafref target or expression. The path is
// rendered at defer time so the eventual error points at the statement
// that created the obligation, not at wherever the drain pass runs. The
// scope is the definition module at defer time: content instantiated
// from a cross-module grouping resolves prefixes against the grouping's
// module, not the using module.
type unresEntry struct {
	kind  unresKind
	node  *Node   // owner; start point for relative leafref paths
	scope *Module // definition module at defer time
	expr  string  // leafref path or constraint expression
	path  string  // diagnostic path at defer time
}

// deferredDefault is an incomplete default value. Defaults cannot be
// checked inline when the type's resolution itself is deferred (leafref)
// or when a typedef's default is inherited.
type deferredDefault struct {
	node  *Node    // leaf carrying the default, nil for typedef defaults
	tpdf  *Typedef // typedef carrying the default, nil for leaf defaults
	scope *Module  // definition module at defer time
	typ   *Type
	value string
	path  string
}

// deferLeafref records a leafref target to resolve after the structural
// pass.
func (cc *CompileContext) deferLeafref(node *Node, target string) {
	cc.unres = append(cc.unres, unresEntry{
		kind:  unresLeafref,
		node:  node,
		scope: pathScope(cc.modDef, node.typ),
		expr:  target,
		path:  cc.path.render(),
	})
	if cc.TraceEnabled() {
		cc.Trace("deferred leafref", slog.String("target", target))
	}
}

// deferExpr records a must/when expression for the deferred check.
func (cc *CompileContext) deferExpr(kind unresKind, node *Node, expr string) {
	cc.unres = append(cc.unres, unresEntry{
		kind:  kind,
		node:  node,
		scope: cc.modDef,
		expr:  expr,
		path:  cc.path.render(),
	})
}

// pathScope picks the module a leafref path's prefixes resolve in: a
// typedef-derived path was written in the typedef's module, an inline
// path in the current definition module.
func pathScope(modDef *Module, typ *Type) *Module {
	if typ != nil && typ.base == BaseLeafref && typ.typedef != nil {
		return typ.typedef.module
	}
	return modDef
}

// deferDefault records an incomplete default value.
func (cc *CompileContext) deferDefault(node *Node, tpdf *Typedef, typ *Type, value string) {
	cc.dflts = append(cc.dflts, deferredDefault{
		node:  node,
		tpdf:  tpdf,
		scope: pathScope(cc.modDef, typ),
		typ:   typ,
		value: value,
		path:  cc.path.render(),
	})
}

// drain resolves every deferred entry after the structural pass. All
// failures are accumulated so one compilation attempt reports every
// outstanding reference, not just the first. Entries are never silently
// dropped: each either resolves or becomes a reported error.
func (cc *CompileContext) drain() error {
	var errs []error

	skipRefs := cc.opts&CompileGroupingIsolated != 0

	for i := range cc.unres {
		e := &cc.unres[i]
		if skipRefs {
			continue
		}
		var err error
		switch e.kind {
		case unresLeafref:
			err = cc.resolveLeafref(e)
		case unresMust, unresWhen:
			err = checkExpression(e.expr)
		}
		if err != nil {
			ce := &CompileError{
				Code: e.kind.diagCode(),
				Path: e.path,
				Err:  errors.Join(ErrUnresolvedTarget, err),
			}
			cc.ctx.emitDiagnostic(ce.Code, SeverityError, cc.mod.name, e.path, err.Error())
			errs = append(errs, ce)
		}
	}
	cc.unres = nil

	for i := range cc.dflts {
		d := &cc.dflts[i]
		if err := cc.resolveDefault(d); err != nil {
			ce := &CompileError{
				Code: types.DiagDefaultInvalid,
				Path: d.path,
				Err:  errors.Join(ErrUnresolvedTarget, err),
			}
			cc.ctx.emitDiagnostic(ce.Code, SeverityError, cc.mod.name, d.path, err.Error())
			errs = append(errs, ce)
		}
	}
	cc.dflts = nil

	return errors.Join(errs...)
}

// resolveLeafref resolves a leafref target path to a schema node and
// records it on the owner's type.
func (cc *CompileContext) resolveLeafref(e *unresEntry) error {
	target, err := cc.resolveSchemaPath(e.scope, e.node, e.expr)
	if err != nil {
		return err
	}
	if target.kind != NodeLeaf && target.kind != NodeLeafList {
		return errors.New("leafref target " + e.expr + " is not a leaf or leaf-list")
	}
	if target == e.node {
		return errors.New("leafref target " + e.expr + " refers to itself")
	}
	if e.node != nil && e.node.typ != nil && e.node.typ.base == BaseLeafref {
		e.node.typ.target = target
	}
	return nil
}

// resolveSchemaPath walks a target path of the form "/pfx:a/b" or
// "../c/d" from the given node. Prefixes resolve in the import scope of
// the module the path was written in; an unprefixed step stays in the
// current target module.
func (cc *CompileContext) resolveSchemaPath(scope *Module, owner *Node, path string) (*Node, error) {
	if path == "" {
		return nil, errors.New("empty target path")
	}

	if scope == nil {
		scope = cc.mod
		if owner != nil {
			scope = owner.module
		}
	}

	// relative paths walk from the owner itself; every ".." step ascends
	var cur *Node
	rel := !strings.HasPrefix(path, "/")
	if rel {
		if owner == nil {
			return nil, errors.New("relative path " + path + " has no context node")
		}
		cur = owner
	}

	for _, step := range strings.Split(strings.Trim(path, "/"), "/") {
		if step == "" {
			return nil, errors.New("malformed target path " + path)
		}
		if step == ".." {
			if !rel || cur == nil {
				return nil, errors.New("target path " + path + " escapes the schema tree")
			}
			cur = cur.parent
			continue
		}
		prefix, name := splitPrefix(step)
		mod := scope.moduleForPrefix(prefix)
		if mod == nil {
			return nil, errors.New("unknown prefix in target path " + path)
		}
		var next *Node
		if cur == nil {
			next = mod.Node(name)
		} else {
			next = cur.Child(name)
		}
		if next == nil {
			return nil, errors.New("target " + path + " does not exist (no node " + name + ")")
		}
		cur = next
	}
	if cur == nil {
		return nil, errors.New("target " + path + " does not exist")
	}
	return cur, nil
}

// resolveDefault checks a deferred default value against its now-final
// type. Leafref defaults check against the resolved target's type.
func (cc *CompileContext) resolveDefault(d *deferredDefault) error {
	typ := d.typ
	if typ != nil && typ.base == BaseLeafref {
		if cc.opts&CompileGroupingIsolated != 0 {
			return nil
		}
		target, err := cc.resolveSchemaPath(d.scope, d.node, typ.leafrefPath)
		if err != nil {
			return err
		}
		typ = target.typ
	}
	if typ == nil {
		return errors.New("default value has no type to check against")
	}
	return typ.checkValue(d.value)
}

// checkExpression performs the syntactic part of expression validation.
// Actual evaluation belongs to the data validator; compilation only
// guarantees the expression is registerable.
func checkExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("empty expression")
	}
	depth := 0
	inQuote := byte(0)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inQuote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return errors.New("unbalanced brackets in expression")
			}
		}
	}
	if inQuote != 0 {
		return errors.New("unterminated literal in expression")
	}
	if depth != 0 {
		return errors.New("unbalanced brackets in expression")
	}
	return nil
}
