package relations

import (
	"strconv"
	"strings"

	"surge/internal/types"
)

// templateMatchesLiteral reports whether every string matching the
// template-literal pattern s includes the one string literal t denotes
// (i.e. t is a member of s's pattern language). Only string literals can
// match; other literal kinds never satisfy a template-literal pattern.
func (r *Relations) templateMatchesLiteral(s, t types.TypeID) bool {
	if r.in.Kind(t) != types.KindLiteralString {
		return false
	}
	if r.strings == nil {
		return false
	}
	tInfo, _ := r.in.LiteralInfo(t)
	text, ok := r.strings.Lookup(tInfo.Str)
	if !ok {
		return false
	}
	sInfo, ok := r.in.TemplateLiteralInfo(s)
	if !ok {
		return false
	}
	return r.matchSpans(sInfo.Spans, text)
}

// matchSpans backtracks over the span sequence, consuming prefixes of text
// that satisfy each literal segment and each hole's grammar.
func (r *Relations) matchSpans(spans []types.TemplateSpan, text string) bool {
	if len(spans) == 0 {
		return text == ""
	}
	span := spans[0]
	rest := spans[1:]
	if span.Hole == types.NoTypeID {
		lit, ok := r.strings.Lookup(span.Text)
		if !ok || !strings.HasPrefix(text, lit) {
			return false
		}
		return r.matchSpans(rest, text[len(lit):])
	}
	for _, cut := range r.holeCuts(span.Hole, text) {
		if r.matchSpans(rest, text[cut:]) {
			return true
		}
	}
	return false
}

// holeCuts returns every prefix length of text that is a valid match for
// the hole's grammar, tried longest-first so a greedy `${string}` still
// backtracks correctly against a following literal segment.
func (r *Relations) holeCuts(hole types.TypeID, text string) []int {
	b := r.in.Builtins()
	switch hole {
	case b.String:
		cuts := make([]int, len(text)+1)
		for i := range cuts {
			cuts[i] = len(text) - i
		}
		return cuts
	case b.Number, b.BigInt:
		n := numericPrefixLen(text, hole == b.BigInt)
		if n == 0 {
			return nil
		}
		cuts := make([]int, 0, n)
		for i := n; i > 0; i-- {
			cuts = append(cuts, i)
		}
		return cuts
	case b.Boolean:
		var cuts []int
		if strings.HasPrefix(text, "true") {
			cuts = append(cuts, 4)
		}
		if strings.HasPrefix(text, "false") {
			cuts = append(cuts, 5)
		}
		return cuts
	}
	switch r.in.Kind(hole) {
	case types.KindLiteralString:
		info, _ := r.in.LiteralInfo(hole)
		lit, ok := r.strings.Lookup(info.Str)
		if ok && strings.HasPrefix(text, lit) {
			return []int{len(lit)}
		}
		return nil
	case types.KindUnion:
		info, _ := r.in.UnionInfo(hole)
		var cuts []int
		for _, member := range info.Members {
			cuts = append(cuts, r.holeCuts(member, text)...)
		}
		return cuts
	}
	return nil
}

func numericPrefixLen(text string, bigintOnly bool) int {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	start := i
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	if bigintOnly {
		return i
	}
	if i < len(text) && text[i] == '.' {
		j := i + 1
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			j++
		}
		if j > i+1 {
			if _, err := strconv.ParseFloat(text[:j], 64); err == nil {
				return j
			}
		}
	}
	return i
}

// templateMatchesTemplate handles the common practical case: s and t have
// the same span count and agree on every literal segment, so s <: t
// reduces to a hole-by-hole subtype check. A differing span count could
// still be a valid match (e.g. `${string}` accepts anything `a-${string}`
// produces) but needs full regex-containment reasoning; TODO: fall back to
// sampling or an explicit containment solver for that case instead of
// rejecting it outright.
func (r *Relations) templateMatchesTemplate(s, t types.TypeID) bool {
	sInfo, ok := r.in.TemplateLiteralInfo(s)
	if !ok {
		return false
	}
	tInfo, ok := r.in.TemplateLiteralInfo(t)
	if !ok {
		return false
	}
	if len(sInfo.Spans) != len(tInfo.Spans) {
		return false
	}
	assume := make(assumption)
	for i, sspan := range sInfo.Spans {
		tspan := tInfo.Spans[i]
		if sspan.Hole == types.NoTypeID || tspan.Hole == types.NoTypeID {
			if sspan.Hole != types.NoTypeID || tspan.Hole != types.NoTypeID {
				return false
			}
			if sspan.Text != tspan.Text {
				return false
			}
			continue
		}
		if !r.subtypeWith(sspan.Hole, tspan.Hole, assume) {
			return false
		}
	}
	return true
}
