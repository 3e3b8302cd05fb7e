package types

// Diagnostic codes emitted by the schema compiler and the data validator.
// Centralizing these prevents silent breakage from typos in string literals.

// Structural compile diagnostic codes.
const (
	DiagCircularGrouping    = "circular-grouping"
	DiagCircularTypedef     = "circular-typedef"
	DiagCardinalityMissing  = "cardinality-missing"
	DiagCardinalityTooMany  = "cardinality-too-many"
	DiagDuplicateDescriptor = "duplicate-descriptor"
	DiagUnsupportedStmt     = "unsupported-statement"
	DiagInvalidArgument     = "invalid-argument"
	DiagModuleNotFound      = "module-not-found"
	DiagGroupingNotFound    = "grouping-not-found"
	DiagTypedefNotFound     = "typedef-not-found"
)

// Deferred resolution diagnostic codes.
const (
	DiagLeafrefUnresolved = "leafref-unresolved"
	DiagXPathUnresolved   = "xpath-unresolved"
	DiagDefaultInvalid    = "default-invalid"
)

// Extension plugin diagnostic codes.
const (
	DiagUnknownExtension = "unknown-extension"
	DiagExtensionData    = "extension-data"
	DiagVersionMismatch  = "plugin-version-mismatch"
	DiagExtValidation    = "extension-validation"
)

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Structural compile
		{Code: DiagCircularGrouping, Phase: "compile"},
		{Code: DiagCircularTypedef, Phase: "compile"},
		{Code: DiagCardinalityMissing, Phase: "compile"},
		{Code: DiagCardinalityTooMany, Phase: "compile"},
		{Code: DiagDuplicateDescriptor, Phase: "compile"},
		{Code: DiagUnsupportedStmt, Phase: "compile"},
		{Code: DiagInvalidArgument, Phase: "compile"},
		{Code: DiagModuleNotFound, Phase: "compile"},
		{Code: DiagGroupingNotFound, Phase: "compile"},
		{Code: DiagTypedefNotFound, Phase: "compile"},
		// Deferred resolution
		{Code: DiagLeafrefUnresolved, Phase: "resolve"},
		{Code: DiagXPathUnresolved, Phase: "resolve"},
		{Code: DiagDefaultInvalid, Phase: "resolve"},
		// Extension plugins
		{Code: DiagUnknownExtension, Phase: "plugin"},
		{Code: DiagExtensionData, Phase: "plugin"},
		{Code: DiagVersionMismatch, Phase: "plugin"},
		{Code: DiagExtValidation, Phase: "validate"},
	}
}

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}
