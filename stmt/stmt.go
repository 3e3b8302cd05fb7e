package stmt

import (
	"iter"

	"github.com/golangyang/yangc/internal/types"
)

// Statement is one node of the parse tree.
type Statement struct {
	Kind     Kind           `json:"kind"`
	Arg      string         `json:"arg,omitempty"`
	Span     types.Span     `json:"span,omitempty"`
	Children []*Statement   `json:"children,omitempty"`
	Exts     []*ExtInstance `json:"extensions,omitempty"`
}

// ExtInstance is a parsed use of a vendor extension.
//
// Module names the module defining the extension; Revision is that
// module's revision if the parser resolved one (empty otherwise).
type ExtInstance struct {
	Module   string       `json:"module"`
	Revision string       `json:"revision,omitempty"`
	Name     string       `json:"name"`
	Arg      string       `json:"arg,omitempty"`
	Span     types.Span   `json:"span,omitempty"`
	Children []*Statement `json:"children,omitempty"`
}

// New returns a statement with the given kind and argument.
func New(kind Kind, arg string, children ...*Statement) *Statement {
	return &Statement{Kind: kind, Arg: arg, Children: children}
}

// Child returns the first child of the given kind, or nil.
func (s *Statement) Child(kind Kind) *Statement {
	for _, c := range s.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildArg returns the argument of the first child of the given kind,
// or the empty string when absent.
func (s *Statement) ChildArg(kind Kind) string {
	if c := s.Child(kind); c != nil {
		return c.Arg
	}
	return ""
}

// ChildrenOf returns an iterator over the children of the given kind,
// in source order.
func (s *Statement) ChildrenOf(kind Kind) iter.Seq[*Statement] {
	return func(yield func(*Statement) bool) {
		for _, c := range s.Children {
			if c.Kind == kind {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// WithExt appends an extension-instance use and returns s for chaining.
func (s *Statement) WithExt(ext *ExtInstance) *Statement {
	s.Exts = append(s.Exts, ext)
	return s
}
