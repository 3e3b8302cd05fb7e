// Package stmt defines the parsed statement tree consumed by the schema
// compiler.
//
// The tree is produced by an external parser. Each statement carries a
// kind tag, an optional argument, a source span, an ordered sequence of
// child statements, and an ordered sequence of extension-instance uses.
// The compiler never mutates a statement tree; the same tree can be
// compiled by several contexts.
package stmt

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Kind identifies a statement keyword.
//
// Values follow the canonical substatement order of the modeling language.
// Substatement descriptor tables are expected to list their entries from
// lower to higher Kind values.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindModule
	KindNamespace
	KindPrefix
	KindImport
	KindRevision
	KindOrganization
	KindContact
	KindExtension
	KindArgument
	KindTypedef
	KindType
	KindPath
	KindEnum
	KindValue
	KindBit
	KindPosition
	KindGrouping
	KindContainer
	KindLeaf
	KindLeafList
	KindUses
	KindDefault
	KindUnits
	KindConfig
	KindMandatory
	KindMust
	KindWhen
	KindErrorMessage
	KindStatus
	KindDescription
	KindReference
	kindMax // sentinel, keep last
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindModule:       "module",
	KindNamespace:    "namespace",
	KindPrefix:       "prefix",
	KindImport:       "import",
	KindRevision:     "revision",
	KindOrganization: "organization",
	KindContact:      "contact",
	KindExtension:    "extension",
	KindArgument:     "argument",
	KindTypedef:      "typedef",
	KindType:         "type",
	KindPath:         "path",
	KindEnum:         "enum",
	KindValue:        "value",
	KindBit:          "bit",
	KindPosition:     "position",
	KindGrouping:     "grouping",
	KindContainer:    "container",
	KindLeaf:         "leaf",
	KindLeafList:     "leaf-list",
	KindUses:         "uses",
	KindDefault:      "default",
	KindUnits:        "units",
	KindConfig:       "config",
	KindMandatory:    "mandatory",
	KindMust:         "must",
	KindWhen:         "when",
	KindErrorMessage: "error-message",
	KindStatus:       "status",
	KindDescription:  "description",
	KindReference:    "reference",
}

// kindByName is the reverse of kindNames, built once at init.
var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) == KindInvalid {
			continue
		}
		m[name] = Kind(k)
	}
	return m
}()

// String returns the statement keyword.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// KindFromName returns the Kind for a statement keyword.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// IsDataNode returns true for kinds that compile into schema nodes.
func (k Kind) IsDataNode() bool {
	switch k {
	case KindContainer, KindLeaf, KindLeafList:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the kind as its keyword string.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k == KindInvalid || int(k) >= int(kindMax) {
		return nil, fmt.Errorf("cannot marshal statement kind %d", uint16(k))
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a keyword string into the kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, ok := KindFromName(name)
	if !ok {
		return fmt.Errorf("unknown statement keyword %q", name)
	}
	*k = kind
	return nil
}
