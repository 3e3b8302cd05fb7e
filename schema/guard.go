package schema

import "slices"

// refGuard is an ordered set used as a push/pop stack to detect circular
// references. Identifiers are qualified as "module:name" so same-named
// definitions in different modules never collide.
//
// Every successful enter must be matched by exactly one leave, including
// on error paths; the guard must be empty when a top-level compile
// finishes.
type refGuard struct {
	ids []string
}

// enter inserts id and returns true, or returns false if id is already
// present (a circular reference).
func (g *refGuard) enter(id string) bool {
	if slices.Contains(g.ids, id) {
		return false
	}
	g.ids = append(g.ids, id)
	return true
}

// leave removes the most recent occurrence of id. Removing an id that is
// not present is a no-op.
func (g *refGuard) leave(id string) {
	for i := len(g.ids) - 1; i >= 0; i-- {
		if g.ids[i] == id {
			g.ids = append(g.ids[:i], g.ids[i+1:]...)
			return
		}
	}
}

// empty reports whether the guard holds no entries.
func (g *refGuard) empty() bool {
	return len(g.ids) == 0
}

// chain returns the current entries in insertion order followed by id,
// for circular-reference error messages.
func (g *refGuard) chain(id string) []string {
	out := make([]string, 0, len(g.ids)+1)
	out = append(out, g.ids...)
	return append(out, id)
}
