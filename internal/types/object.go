package types

import "surge/internal/source"

// PropertyInfo describes one member of an object type. IsMethod marks a
// member declared with method syntax (`m(): void` rather than `m: () =>
// void`); the two are structurally identical but the relation layer
// applies bivariant parameter checking only to the method form, matching
// TypeScript's own historical leniency there.
type PropertyInfo struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Readonly bool
	IsMethod bool
}

// IndexKeyKind distinguishes string and number index signatures.
type IndexKeyKind uint8

const (
	IndexKeyString IndexKeyKind = iota
	IndexKeyNumber
)

// IndexSignatureInfo describes `[key: string]: T` / `[key: number]: T`.
type IndexSignatureInfo struct {
	Kind  IndexKeyKind
	Value TypeID
}

// ObjectInfo stores the property and index-signature shape of an object
// type. Def is set when the object is the instance shape of a named class
// or interface declaration, so error messages and display can recover the
// declared name instead of printing the full structural expansion.
type ObjectInfo struct {
	Def        DefID
	Properties []PropertyInfo
	Indexes    []IndexSignatureInfo
}

// RegisterObject interns an object type from its property list, optional
// index signatures, and an optional owning declaration.
func (in *Interner) RegisterObject(def DefID, props []PropertyInfo, indexes []IndexSignatureInfo) TypeID {
	info := ObjectInfo{
		Def:        def,
		Properties: cloneProps(props),
		Indexes:    cloneIndexes(indexes),
	}
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
			continue
		}
		if objectInfoEqual(in.objects[tt.Payload], info) {
			return id
		}
	}
	in.objects = append(in.objects, info)
	return in.internRaw(Type{Kind: KindObject, Payload: safeSlot(len(in.objects) - 1)})
}

// ObjectInfo returns metadata for an object TypeID.
func (in *Interner) ObjectInfo(id TypeID) (ObjectInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
		return ObjectInfo{}, false
	}
	return in.objects[tt.Payload], true
}

// LookupProperty returns the property named by name on an object type,
// if present directly (does not walk base types; the relation layer
// composes base-type property lookup on top of this).
func (in *Interner) LookupProperty(id TypeID, name source.StringID) (PropertyInfo, bool) {
	info, ok := in.ObjectInfo(id)
	if !ok {
		return PropertyInfo{}, false
	}
	for _, p := range info.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyInfo{}, false
}

func cloneProps(props []PropertyInfo) []PropertyInfo {
	if len(props) == 0 {
		return nil
	}
	out := make([]PropertyInfo, len(props))
	copy(out, props)
	return out
}

func cloneIndexes(idx []IndexSignatureInfo) []IndexSignatureInfo {
	if len(idx) == 0 {
		return nil
	}
	out := make([]IndexSignatureInfo, len(idx))
	copy(out, idx)
	return out
}

func objectInfoEqual(a, b ObjectInfo) bool {
	if a.Def != b.Def || len(a.Properties) != len(b.Properties) || len(a.Indexes) != len(b.Indexes) {
		return false
	}
	for i := range a.Properties {
		if a.Properties[i] != b.Properties[i] {
			return false
		}
	}
	for i := range a.Indexes {
		if a.Indexes[i] != b.Indexes[i] {
			return false
		}
	}
	return true
}
