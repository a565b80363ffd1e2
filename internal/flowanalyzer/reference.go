package flowanalyzer

import (
	"strconv"
	"strings"

	"surge/internal/ast"
	"surge/internal/source"
)

// Reference identifies the binding a flow query narrows: a bare identifier
// (`x`) or a property-access chain rooted at one (`x.tag`, `x.a.b`). Two
// references are the same binding if their paths match segment for
// segment; this sidesteps needing a symbol table here, at the cost of not
// distinguishing shadowed identifiers with the same spelling in different
// scopes (the caller, which does have symbol info, is expected to only
// query within one scope's reach).
type Reference struct {
	Path []source.StringID
}

// ReferenceOf walks an identifier/member-access chain back to its root,
// returning the path root-first. Anything else (a call, an index access, a
// literal) isn't a trackable reference.
func ReferenceOf(exprs *ast.Exprs, id ast.ExprID) (Reference, bool) {
	var path []source.StringID
	cur := id
	for {
		if ident, ok := exprs.Ident(cur); ok {
			path = append([]source.StringID{ident.Name}, path...)
			return Reference{Path: path}, true
		}
		if mem, ok := exprs.Member(cur); ok {
			path = append([]source.StringID{mem.Field}, path...)
			cur = mem.Target
			continue
		}
		return Reference{}, false
	}
}

// Equal reports whether r and o name the same binding path.
func (r Reference) Equal(o Reference) bool {
	if len(r.Path) != len(o.Path) {
		return false
	}
	for i := range r.Path {
		if r.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

// Root returns the single-segment reference for r's first path element,
// used when a discriminant guard is extracted from a member-access
// comparison (`shape.kind === "circle"` narrows `shape`, not `shape.kind`).
func (r Reference) Root() Reference {
	if len(r.Path) == 0 {
		return r
	}
	return Reference{Path: r.Path[:1]}
}

func (r Reference) key() string {
	var b strings.Builder
	for i, s := range r.Path {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(s), 10))
	}
	return b.String()
}
