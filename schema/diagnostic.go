package schema

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Diagnostic represents an issue found during compilation or validation.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"` // e.g., "circular-grouping", "leafref-unresolved"
	Message  string   `json:"message"`
	Module   string   `json:"module,omitempty"` // module under compilation
	Path     string   `json:"path,omitempty"`   // schema path at the point of failure
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] module: path: message" with location parts omitted
// when empty.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if d.Module != "" {
		b.WriteString(d.Module)
		b.WriteString(": ")
	}
	if d.Path != "" {
		b.WriteString(d.Path)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel `yaml:"level"`

	// FailAt sets the severity threshold for failure.
	// If any diagnostic has severity <= FailAt, compilation fails.
	// Default (0) means fail on Fatal only.
	FailAt Severity `yaml:"fail-at"`

	// Overrides change severity for specific diagnostic codes.
	// Use to upgrade/downgrade specific checks.
	Overrides map[string]Severity `yaml:"overrides"`

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "cardinality-*").
	Ignore []string `yaml:"ignore"`
}

// DefaultConfig returns the default diagnostic configuration (Normal strictness).
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeveritySevere,
	}
}

// StrictConfig returns a strict configuration for compliance checking.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeveritySevere,
	}
}

// LoadDiagnosticConfig reads a DiagnosticConfig from YAML.
//
// Example:
//
//	level: 3
//	fail-at: 1
//	ignore: ["cardinality-*"]
func LoadDiagnosticConfig(r io.Reader) (DiagnosticConfig, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return DiagnosticConfig{}, fmt.Errorf("decode diagnostic config: %w", err)
	}
	return cfg, nil
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration.
//
// Lower severity numbers are more severe (Fatal=0, Info=6).
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	for _, pattern := range c.Ignore {
		if matchGlob(pattern, code) {
			return false
		}
	}

	if override, ok := c.Overrides[code]; ok {
		sev = override
	}

	// Silent mode suppresses all reporting
	if c.Level >= StrictnessSilent {
		return false
	}

	// Strict mode reports all diagnostics
	if c.Level == StrictnessStrict {
		return true
	}

	return int(sev) <= int(c.Level)
}

// ShouldFail returns true if a diagnostic with the given severity should
// cause compilation to fail.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// matchGlob performs simple glob matching with * wildcard.
func matchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}

	// Handle trailing wildcard
	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(s) >= len(prefix) && s[:len(prefix)] == prefix
	}

	// Handle leading wildcard
	if len(pattern) > 0 && pattern[0] == '*' {
		suffix := pattern[1:]
		return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
	}

	return pattern == s
}
