// Package yangc compiles schema-language parse trees into an immutable,
// queryable schema model with pluggable extension support.
package yangc

import "github.com/golangyang/yangc/schema"

// Type aliases for public API - all types come from the schema subpackage.

// Context holds compiled modules, registered plugins, and diagnostics.
type Context = schema.Context

// Module is a compiled module.
type Module = schema.Module

// Node is a compiled schema data node.
type Node = schema.Node

// Type is a compiled type (builtin, enumeration, leafref, or typedef-derived).
type Type = schema.Type

// Typedef is a compiled derived-type definition.
type Typedef = schema.Typedef

// EnumValue is one labeled value of an enumeration type.
type EnumValue = schema.EnumValue

// Must is a compiled must constraint.
type Must = schema.Must

// When is a compiled when condition.
type When = schema.When

// ExtInstance is a compiled extension instance with its lifecycle state.
type ExtInstance = schema.ExtInstance

// ExtState tracks an extension instance through its lifecycle.
type ExtState = schema.ExtState

// Plugin implements compile/validate/free behavior for an extension.
type Plugin = schema.Plugin

// PluginDescriptor registers a Plugin for a named extension.
type PluginDescriptor = schema.PluginDescriptor

// SubstmtDescriptor describes one allowed substatement for the generic
// substatement compiler.
type SubstmtDescriptor = schema.SubstmtDescriptor

// Cardinality constrains how many times a substatement may appear.
type Cardinality = schema.Cardinality

// CompileContext carries per-module compile state, exposed to plugins.
type CompileContext = schema.CompileContext

// CompileOptions adjust a single CompileModule call.
type CompileOptions = schema.CompileOptions

// DataNode is a minimal data instance for extension validation.
type DataNode = schema.DataNode

// Diagnostic represents a compile or resolution issue.
type Diagnostic = schema.Diagnostic

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = schema.DiagnosticConfig

// Severity for diagnostics.
type Severity = schema.Severity

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel = schema.StrictnessLevel

// NodeKind identifies what a schema node represents.
type NodeKind = schema.NodeKind

// BaseType identifies the fundamental builtin type.
type BaseType = schema.BaseType

// ParentKind identifies the kind of construct an extension is attached to.
type ParentKind = schema.ParentKind

// CompileError carries a diagnostic code and schema path with the cause.
type CompileError = schema.CompileError

// AnnotationData is the compiled payload of the built-in annotation plugin.
type AnnotationData = schema.AnnotationData

// APIVersion is the extension plugin API version this library implements.
const APIVersion = schema.APIVersion

// CompileOptions flags.
const (
	CompileGroupingIsolated = schema.CompileGroupingIsolated
)

// ExtState constants.
const (
	StateDeclared  = schema.StateDeclared
	StateCompiling = schema.StateCompiling
	StateCompiled  = schema.StateCompiled
	StateFreed     = schema.StateFreed
)

// Cardinality constants.
const (
	CardinalityOptional  = schema.CardinalityOptional
	CardinalityMandatory = schema.CardinalityMandatory
	CardinalitySome      = schema.CardinalitySome
	CardinalityAny       = schema.CardinalityAny
)

// NodeKind constants.
const (
	NodeUnknown   = schema.NodeUnknown
	NodeContainer = schema.NodeContainer
	NodeLeaf      = schema.NodeLeaf
	NodeLeafList  = schema.NodeLeafList
)

// BaseType constants.
const (
	BaseString      = schema.BaseString
	BaseBoolean     = schema.BaseBoolean
	BaseEmpty       = schema.BaseEmpty
	BaseInt8        = schema.BaseInt8
	BaseInt16       = schema.BaseInt16
	BaseInt32       = schema.BaseInt32
	BaseInt64       = schema.BaseInt64
	BaseUint8       = schema.BaseUint8
	BaseUint16      = schema.BaseUint16
	BaseUint32      = schema.BaseUint32
	BaseUint64      = schema.BaseUint64
	BaseEnumeration = schema.BaseEnumeration
	BaseLeafref     = schema.BaseLeafref
)

// ParentKind constants.
const (
	ParentModule   = schema.ParentModule
	ParentNode     = schema.ParentNode
	ParentTypedef  = schema.ParentTypedef
	ParentType     = schema.ParentType
	ParentTypeEnum = schema.ParentTypeEnum
	ParentTypeBit  = schema.ParentTypeBit
)

// Severity constants (lower = more severe).
const (
	SeverityFatal   = schema.SeverityFatal   // 0: Cannot continue compiling
	SeveritySevere  = schema.SeveritySevere  // 1: Semantics changed to continue
	SeverityError   = schema.SeverityError   // 2: Should correct
	SeverityMinor   = schema.SeverityMinor   // 3: Minor issue
	SeverityStyle   = schema.SeverityStyle   // 4: Style recommendation
	SeverityWarning = schema.SeverityWarning // 5: Might be correct
	SeverityInfo    = schema.SeverityInfo    // 6: Informational
)

// StrictnessLevel constants.
const (
	StrictnessStrict     = schema.StrictnessStrict
	StrictnessNormal     = schema.StrictnessNormal
	StrictnessPermissive = schema.StrictnessPermissive
	StrictnessSilent     = schema.StrictnessSilent
)

// Sentinel error categories.
var (
	ErrCircularReference    = schema.ErrCircularReference
	ErrCardinality          = schema.ErrCardinality
	ErrUnsupportedStatement = schema.ErrUnsupportedStatement
	ErrDuplicateDescriptor  = schema.ErrDuplicateDescriptor
	ErrInvalidArgument      = schema.ErrInvalidArgument
	ErrUnknownExtension     = schema.ErrUnknownExtension
	ErrUnresolvedTarget     = schema.ErrUnresolvedTarget
	ErrInvalidExtensionData = schema.ErrInvalidExtensionData
	ErrValidation           = schema.ErrValidation
	ErrVersionMismatch      = schema.ErrVersionMismatch
	ErrContextFreed         = schema.ErrContextFreed
)

// Config constructors.
var (
	DefaultConfig        = schema.DefaultConfig
	StrictConfig         = schema.StrictConfig
	LoadDiagnosticConfig = schema.LoadDiagnosticConfig
)

// ValidateExtensions runs every extension validate behavior scoped to a
// schema node against one data instance.
var ValidateExtensions = schema.ValidateExtensions
