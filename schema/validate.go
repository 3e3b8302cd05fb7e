package schema

import (
	"errors"
	"fmt"
)

// DataNode is a minimal data instance used by extension validation. The
// data tree itself is produced elsewhere; this core only dispatches the
// registered validate behaviors over it.
type DataNode struct {
	Schema   *Node
	Value    string
	Children []*DataNode
}

// ValidateData walks a data tree and invokes every applicable extension
// validate behavior. Failures are local to the offending data instance:
// sibling instances still validate and the compiled schema stays valid.
// All failures are aggregated into the returned error.
//
// Validation is read-only over the compiled schema and may be called
// concurrently for different data trees; no diagnostics are recorded on
// the context here.
func (c *Context) ValidateData(root *DataNode) error {
	if c.freed {
		return ErrContextFreed
	}
	if root == nil {
		return nil
	}
	var errs []error
	c.validateTree(root, &errs)
	return errors.Join(errs...)
}

func (c *Context) validateTree(d *DataNode, errs *[]error) {
	if err := ValidateExtensions(d.Schema, d); err != nil {
		*errs = append(*errs, err)
	}
	for _, child := range d.Children {
		c.validateTree(child, errs)
	}
}

// ValidateExtensions invokes the validate behavior of every extension
// instance scoped to the given schema node for one data instance: the
// node's own extensions, the extensions of its type and of the typedef
// the type derives from, and the extensions of the matching enumeration
// value. The aggregated error wraps ErrValidation.
func ValidateExtensions(n *Node, d *DataNode) error {
	if n == nil || d == nil {
		return nil
	}
	var errs []error
	run := func(inst *ExtInstance) {
		if inst.state != StateCompiled {
			errs = append(errs, fmt.Errorf("%w: extension %s is %s, not compiled",
				ErrValidation, inst.name, inst.state))
			return
		}
		if err := inst.desc.Plugin.Validate(inst, d); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: extension %s: %w",
				ErrValidation, n.Path(), inst.name, err))
		}
	}

	for _, inst := range n.exts {
		run(inst)
	}
	if t := n.typ; t != nil {
		for _, inst := range t.exts {
			run(inst)
		}
		if td := t.typedef; td != nil {
			for _, inst := range td.exts {
				run(inst)
			}
		}
		if t.base == BaseEnumeration {
			if ev := t.Enum(d.Value); ev != nil {
				for _, inst := range ev.Exts {
					run(inst)
				}
			}
		}
	}
	return errors.Join(errs...)
}
