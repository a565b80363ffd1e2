package narrow

import (
	"surge/internal/source"
	"surge/internal/types"
)

// propertyAtPath walks a chain of property names through nested object
// types, returning the leaf property's type.
func (n *Narrower) propertyAtPath(t types.TypeID, path []source.StringID) (types.TypeID, bool) {
	cur := t
	for _, name := range path {
		prop, ok := n.in.LookupProperty(cur, name)
		if !ok {
			return types.NoTypeID, false
		}
		cur = prop.Type
	}
	return cur, true
}

// applyDiscriminant keeps object members whose property at path is
// compatible with value on the true branch, drops them on the false
// branch; a member lacking the path entirely (not an object, or missing
// the discriminant property) is left untouched on the false branch since
// the guard says nothing about it, matching the spec's "unchanged" column
// for discriminants whose target doesn't apply.
func (n *Narrower) applyDiscriminant(declared types.TypeID, path []source.StringID, value types.TypeID, sense bool) types.TypeID {
	return n.filter(declared, func(m types.TypeID) bool {
		leaf, ok := n.propertyAtPath(m, path)
		if !ok {
			return !sense
		}
		matches := n.rel.Assignable(value, leaf) || n.rel.Assignable(leaf, value)
		if sense {
			return matches
		}
		return !matches
	})
}
