// Package schema provides compilation of parsed schema trees into an
// immutable compiled schema, including the extension plugin lifecycle.
package schema

import "fmt"

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue compiling
	SeveritySevere  Severity = 1 // Semantics changed to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // reject anything non-compliant
	StrictnessNormal     StrictnessLevel = 3 // default, warn on issues
	StrictnessPermissive StrictnessLevel = 5 // accept most real-world modules
	StrictnessSilent     StrictnessLevel = 6 // accept everything, minimal output
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", int(l))
	}
}

// NodeKind identifies what a compiled schema node represents.
type NodeKind int

const (
	NodeUnknown NodeKind = iota
	NodeContainer
	NodeLeaf
	NodeLeafList
)

func (k NodeKind) String() string {
	switch k {
	case NodeContainer:
		return "container"
	case NodeLeaf:
		return "leaf"
	case NodeLeafList:
		return "leaf-list"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// BaseType identifies the fundamental built-in type of a compiled type.
type BaseType int

const (
	BaseUnknown BaseType = iota
	BaseString
	BaseBoolean
	BaseEmpty
	BaseInt8
	BaseInt16
	BaseInt32
	BaseInt64
	BaseUint8
	BaseUint16
	BaseUint32
	BaseUint64
	BaseEnumeration
	BaseLeafref
)

var baseTypeNames = map[BaseType]string{
	BaseString:      "string",
	BaseBoolean:     "boolean",
	BaseEmpty:       "empty",
	BaseInt8:        "int8",
	BaseInt16:       "int16",
	BaseInt32:       "int32",
	BaseInt64:       "int64",
	BaseUint8:       "uint8",
	BaseUint16:      "uint16",
	BaseUint32:      "uint32",
	BaseUint64:      "uint64",
	BaseEnumeration: "enumeration",
	BaseLeafref:     "leafref",
}

func (b BaseType) String() string {
	if name, ok := baseTypeNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BaseType(%d)", int(b))
}

// baseTypeByName is the reverse of baseTypeNames.
var baseTypeByName = func() map[string]BaseType {
	m := make(map[string]BaseType, len(baseTypeNames))
	for b, name := range baseTypeNames {
		m[name] = b
	}
	return m
}()

// ParentKind identifies the statement a compiled extension instance is
// attached to. It decides when the plugin's Validate behavior applies.
type ParentKind int

const (
	ParentModule   ParentKind = iota // module or submodule
	ParentNode                       // schema data node
	ParentTypedef                    // typedef
	ParentType                       // type inside a leaf or typedef
	ParentTypeEnum                   // enumeration value
	ParentTypeBit                    // bit value
)

func (p ParentKind) String() string {
	switch p {
	case ParentModule:
		return "module"
	case ParentNode:
		return "node"
	case ParentTypedef:
		return "typedef"
	case ParentType:
		return "type"
	case ParentTypeEnum:
		return "enum"
	case ParentTypeBit:
		return "bit"
	default:
		return fmt.Sprintf("ParentKind(%d)", int(p))
	}
}
