package types

import "surge/internal/source"

// TemplateSpan alternates literal text (Text valid, Hole == NoTypeID) and
// substitution holes (Hole valid, Text zero value) in source order, e.g.
// `` `prefix-${T}-suffix` `` is [{Text:"prefix-"}, {Hole:T}, {Text:"-suffix"}].
type TemplateSpan struct {
	Text source.StringID
	Hole TypeID
}

// TemplateLiteralInfo stores a template-literal type's span sequence.
type TemplateLiteralInfo struct {
	Spans []TemplateSpan
}

// RegisterTemplateLiteral interns a template-literal type from its span
// sequence.
func (in *Interner) RegisterTemplateLiteral(spans []TemplateSpan) TypeID {
	cloned := make([]TemplateSpan, len(spans))
	copy(cloned, spans)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindTemplateLiteral || int(tt.Payload) >= len(in.templateLiterals) {
			continue
		}
		if templateSpansEqual(in.templateLiterals[tt.Payload].Spans, cloned) {
			return id
		}
	}
	in.templateLiterals = append(in.templateLiterals, TemplateLiteralInfo{Spans: cloned})
	return in.internRaw(Type{Kind: KindTemplateLiteral, Payload: safeSlot(len(in.templateLiterals) - 1)})
}

// TemplateLiteralInfo returns metadata for a template-literal TypeID.
func (in *Interner) TemplateLiteralInfo(id TypeID) (TemplateLiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTemplateLiteral || int(tt.Payload) >= len(in.templateLiterals) {
		return TemplateLiteralInfo{}, false
	}
	return in.templateLiterals[tt.Payload], true
}

func templateSpansEqual(a, b []TemplateSpan) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
