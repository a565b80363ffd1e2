package types

import "surge/internal/source"

// ParamInfo describes one call-signature parameter.
type ParamInfo struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Rest     bool
}

// SignatureInfo describes one overload signature of a callable or
// constructable type.
type SignatureInfo struct {
	TypeParams []TypeID // TypeID of KindTypeParameter entries scoped to this signature
	Params     []ParamInfo
	Return     TypeID
}

// CallableInfo stores the (possibly overloaded) signature list of a
// function or constructor type. Construct distinguishes `new (...) => T`
// constructable types from plain `(...) => T` callables; both share this
// side table since their shape is identical.
type CallableInfo struct {
	Signatures []SignatureInfo
	Construct  bool
}

// RegisterCallable interns a callable (or, when construct is true,
// constructable) type from its overload signature list.
func (in *Interner) RegisterCallable(signatures []SignatureInfo, construct bool) TypeID {
	cloned := cloneSignatures(signatures)
	kind := KindCallable
	if construct {
		kind = KindConstructable
	}
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != kind || int(tt.Payload) >= len(in.callables) {
			continue
		}
		if signaturesEqual(in.callables[tt.Payload].Signatures, cloned) {
			return id
		}
	}
	in.callables = append(in.callables, CallableInfo{Signatures: cloned, Construct: construct})
	return in.internRaw(Type{Kind: kind, Payload: safeSlot(len(in.callables) - 1)})
}

// CallableInfo returns metadata for a callable/constructable TypeID.
func (in *Interner) CallableInfo(id TypeID) (CallableInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindCallable && tt.Kind != KindConstructable) || int(tt.Payload) >= len(in.callables) {
		return CallableInfo{}, false
	}
	return in.callables[tt.Payload], true
}

func cloneSignatures(sigs []SignatureInfo) []SignatureInfo {
	if len(sigs) == 0 {
		return nil
	}
	out := make([]SignatureInfo, len(sigs))
	for i, s := range sigs {
		out[i] = SignatureInfo{
			TypeParams: cloneTypeArgs(s.TypeParams),
			Params:     cloneParams(s.Params),
			Return:     s.Return,
		}
	}
	return out
}

func cloneParams(params []ParamInfo) []ParamInfo {
	if len(params) == 0 {
		return nil
	}
	out := make([]ParamInfo, len(params))
	copy(out, params)
	return out
}

func signaturesEqual(a, b []SignatureInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Return != b[i].Return {
			return false
		}
		if !tidSliceEqual(a[i].TypeParams, b[i].TypeParams) {
			return false
		}
		if len(a[i].Params) != len(b[i].Params) {
			return false
		}
		for j := range a[i].Params {
			if a[i].Params[j] != b[i].Params[j] {
				return false
			}
		}
	}
	return true
}
