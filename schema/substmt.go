package schema

import (
	"fmt"
	"strconv"

	"github.com/golangyang/yangc/internal/types"
	"github.com/golangyang/yangc/stmt"
)

// Cardinality is the allowed occurrence count class of a substatement.
type Cardinality int

const (
	CardinalityOptional  Cardinality = iota // 0..1
	CardinalityMandatory                    // 1
	CardinalitySome                         // 1..n
	CardinalityAny                          // 0..n
)

func (c Cardinality) String() string {
	switch c {
	case CardinalityOptional:
		return "0..1"
	case CardinalityMandatory:
		return "1"
	case CardinalitySome:
		return "1..n"
	case CardinalityAny:
		return "0..n"
	default:
		return fmt.Sprintf("Cardinality(%d)", int(c))
	}
}

// single reports whether at most one occurrence is allowed.
func (c Cardinality) single() bool {
	return c == CardinalityOptional || c == CardinalityMandatory
}

// required reports whether at least one occurrence is required.
func (c Cardinality) required() bool {
	return c == CardinalityMandatory || c == CardinalitySome
}

// SubstmtDescriptor declares one legal substatement of a statement: its
// kind, how many times it may occur, and where the compiled result is
// stored. Order the entries of a table from lower to higher Kind values
// (the canonical statement order); a table must list each kind at most
// once.
//
// Storage is a pointer to the destination slot. Supported slot types:
//
//	*string, *[]string      argument text
//	*bool                   "true"/"false" arguments (config, mandatory)
//	*int64                  integer arguments (value)
//	**Type                  compiled type
//	*[]*Must, **When        compiled constraints (deferred expressions)
//	*[]*Node                compiled child schema nodes; uses expand here
//	*[]*Typedef             compiled typedefs
//	nil                     validated and discarded
type SubstmtDescriptor struct {
	Stmt        stmt.Kind
	Cardinality Cardinality
	Storage     any
}

// checkTable rejects tables that list the same statement kind twice.
// Detected before any child is consumed.
func (cc *CompileContext) checkTable(table []SubstmtDescriptor) error {
	seen := make(map[stmt.Kind]bool, len(table))
	for _, d := range table {
		if seen[d.Stmt] {
			return cc.errorf(types.DiagDuplicateDescriptor, ErrDuplicateDescriptor,
				"substatement table lists %q twice", d.Stmt)
		}
		seen[d.Stmt] = true
	}
	return nil
}

// compileSubstatements consumes a statement's children in source order,
// validates them against the descriptor table, and stores each compiled
// child into its descriptor's destination.
//
// parent is the schema node owning the children, nil at module level and
// for extension instances not attached to a node.
func (cc *CompileContext) compileSubstatements(parent *Node, table []SubstmtDescriptor, children []*stmt.Statement) error {
	if err := cc.checkTable(table); err != nil {
		return err
	}

	counts := make([]int, len(table))
	for _, child := range children {
		idx := -1
		for i := range table {
			if table[i].Stmt == child.Kind {
				idx = i
				break
			}
		}
		if idx < 0 {
			return cc.errorf(types.DiagUnsupportedStmt, ErrUnsupportedStatement,
				"substatement %q is not allowed here", child.Kind)
		}
		counts[idx]++
		if err := cc.storeSubstmt(parent, &table[idx], child); err != nil {
			return err
		}
	}

	for i := range table {
		d := &table[i]
		if d.Cardinality.required() && counts[i] == 0 {
			return cc.errorf(types.DiagCardinalityMissing, ErrCardinality,
				"missing required substatement %q", d.Stmt)
		}
		if d.Cardinality.single() && counts[i] > 1 {
			return cc.errorf(types.DiagCardinalityTooMany, ErrCardinality,
				"substatement %q used %d times, allowed once", d.Stmt, counts[i])
		}
	}
	return nil
}

// storeSubstmt compiles one matched child and writes the result into the
// descriptor's destination slot.
func (cc *CompileContext) storeSubstmt(parent *Node, desc *SubstmtDescriptor, child *stmt.Statement) error {
	switch st := desc.Storage.(type) {
	case nil:
		return nil

	case *string:
		*st = child.Arg
		return nil

	case *[]string:
		*st = append(*st, child.Arg)
		return nil

	case *bool:
		switch child.Arg {
		case "true":
			*st = true
		case "false":
			*st = false
		default:
			return cc.errorf(types.DiagInvalidArgument, ErrInvalidArgument,
				"%q expects true or false, got %q", child.Kind, child.Arg)
		}
		return nil

	case *int64:
		v, err := strconv.ParseInt(child.Arg, 10, 64)
		if err != nil {
			return cc.errorf(types.DiagInvalidArgument, ErrInvalidArgument,
				"%q expects an integer, got %q", child.Kind, child.Arg)
		}
		*st = v
		return nil

	case **Type:
		t, err := cc.compileType(child, parent)
		if err != nil {
			return err
		}
		*st = t
		return nil

	case *[]*Must:
		m, err := cc.compileMust(parent, child)
		if err != nil {
			return err
		}
		*st = append(*st, m)
		return nil

	case **When:
		w, err := cc.compileWhen(parent, child)
		if err != nil {
			return err
		}
		*st = w
		return nil

	case *[]*Node:
		if child.Kind == stmt.KindUses {
			return cc.compileUses(child, parent, st)
		}
		n, err := cc.compileNode(child, parent)
		if err != nil {
			return err
		}
		*st = append(*st, n)
		return nil

	case *[]*Typedef:
		td, err := cc.compileTypedef(cc.modDef, child)
		if err != nil {
			return err
		}
		*st = append(*st, td)
		return nil

	default:
		return fmt.Errorf("internal: unsupported storage %T for %q", desc.Storage, desc.Stmt)
	}
}
