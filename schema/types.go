package schema

import (
	"fmt"
	"strconv"
)

// Type is a compiled type. Built-in types are shared singletons; typedef
// references share the typedef's compiled type unless use-site extension
// instances force a copy.
type Type struct {
	name        string // typedef name, or built-in keyword
	base        BaseType
	enums       []*EnumValue
	leafrefPath string
	target      *Node    // resolved leafref target, set by the drain pass
	typedef     *Typedef // provenance, nil for built-ins and inline types
	exts        []*ExtInstance
}

func (t *Type) Name() string        { return t.name }
func (t *Type) Base() BaseType      { return t.base }
func (t *Type) Enums() []*EnumValue { return t.enums }

// LeafrefPath returns the target path for leafref types.
func (t *Type) LeafrefPath() string { return t.leafrefPath }

// LeafrefTarget returns the resolved target node for leafref types, or
// nil when the type is not a leafref or was compiled in isolation.
func (t *Type) LeafrefTarget() *Node { return t.target }

// Typedef returns the typedef this type was derived from, or nil.
func (t *Type) Typedef() *Typedef { return t.typedef }

// Extensions returns extension instances attached to the type use.
func (t *Type) Extensions() []*ExtInstance { return t.exts }

// Enum returns the enum value with the given label, or nil.
func (t *Type) Enum(label string) *EnumValue {
	for _, ev := range t.enums {
		if ev.Label == label {
			return ev
		}
	}
	return nil
}

// EnumValue is a labeled value of an enumeration type. Exts carries
// extension instances scoped to this value; treat as read-only.
type EnumValue struct {
	Label string
	Value int64
	Exts  []*ExtInstance
}

// Typedef is a compiled derived-type definition.
type Typedef struct {
	name        string
	module      *Module
	typ         *Type
	units       string
	dflt        string
	hasDflt     bool
	description string
	reference   string
	status      string
	exts        []*ExtInstance
}

func (t *Typedef) Name() string        { return t.name }
func (t *Typedef) Module() *Module     { return t.module }
func (t *Typedef) Type() *Type         { return t.typ }
func (t *Typedef) Units() string       { return t.units }
func (t *Typedef) Description() string { return t.description }

// Default returns the typedef's default value and whether one is set.
func (t *Typedef) Default() (string, bool) { return t.dflt, t.hasDflt }

// Extensions returns extension instances attached to the typedef.
func (t *Typedef) Extensions() []*ExtInstance { return t.exts }

// builtinType returns the shared Type for a built-in keyword, or nil.
// Enumeration and leafref are not shared: each use compiles its own
// enums or path.
func builtinType(name string) *Type {
	base, ok := baseTypeByName[name]
	if !ok {
		return nil
	}
	switch base {
	case BaseEnumeration, BaseLeafref:
		return nil
	}
	return sharedBuiltins[base]
}

var sharedBuiltins = func() map[BaseType]*Type {
	m := make(map[BaseType]*Type, len(baseTypeNames))
	for base, name := range baseTypeNames {
		m[base] = &Type{name: name, base: base}
	}
	return m
}()

// intBits returns the bit size for integer base types, or 0.
func intBits(b BaseType) int {
	switch b {
	case BaseInt8, BaseUint8:
		return 8
	case BaseInt16, BaseUint16:
		return 16
	case BaseInt32, BaseUint32:
		return 32
	case BaseInt64, BaseUint64:
		return 64
	default:
		return 0
	}
}

func isSigned(b BaseType) bool {
	switch b {
	case BaseInt8, BaseInt16, BaseInt32, BaseInt64:
		return true
	default:
		return false
	}
}

// checkValue verifies that a literal is a legal value of the type. For
// leafref types the target must have been resolved first; the check then
// applies to the target's type.
func (t *Type) checkValue(value string) error {
	switch t.base {
	case BaseString:
		return nil
	case BaseBoolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("%q is not a boolean", value)
		}
		return nil
	case BaseEmpty:
		return fmt.Errorf("type empty cannot carry a value")
	case BaseEnumeration:
		if t.Enum(value) == nil {
			return fmt.Errorf("%q is not an enum label of %s", value, t.name)
		}
		return nil
	case BaseLeafref:
		// checked against the resolved target type during drain
		return nil
	default:
		bits := intBits(t.base)
		if bits == 0 {
			return fmt.Errorf("cannot check value of type %s", t.base)
		}
		var err error
		if isSigned(t.base) {
			_, err = strconv.ParseInt(value, 10, bits)
		} else {
			_, err = strconv.ParseUint(value, 10, bits)
		}
		if err != nil {
			return fmt.Errorf("%q is not a valid %s", value, t.base)
		}
		return nil
	}
}
