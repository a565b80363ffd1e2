package types

import "sort"

// UnionInfo stores the canonicalized member list of a union type.
type UnionInfo struct {
	Members []TypeID
}

// MakeUnion builds the canonical union of the given members: nested unions
// are flattened, duplicates removed, `any` absorbs the whole union, `never`
// members are dropped (an all-never union collapses to never), and a
// single surviving member is returned unwrapped rather than as a
// one-element union. Member order does not affect the resulting TypeID:
// members are sorted by TypeID before interning so `A | B` and `B | A`
// always produce the same union type.
func (in *Interner) MakeUnion(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenUnion(members, &flat)

	if len(flat) == 0 {
		return in.builtins.Never
	}

	seen := make(map[TypeID]struct{}, len(flat))
	deduped := flat[:0:0]
	hasAny := false
	allNever := true
	for _, m := range flat {
		if m == in.builtins.Any {
			hasAny = true
		}
		if m != in.builtins.Never {
			allNever = false
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		deduped = append(deduped, m)
	}
	if hasAny {
		return in.builtins.Any
	}
	if allNever {
		return in.builtins.Never
	}

	kept := deduped[:0]
	for _, m := range deduped {
		if m == in.builtins.Never {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 1 {
		return kept[0]
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })

	return in.registerUnionRaw(kept)
}

func (in *Interner) flattenUnion(members []TypeID, out *[]TypeID) {
	for _, m := range members {
		tt, ok := in.Lookup(m)
		if ok && tt.Kind == KindUnion {
			if info, ok := in.UnionInfo(m); ok {
				in.flattenUnion(info.Members, out)
				continue
			}
		}
		*out = append(*out, m)
	}
}

func (in *Interner) registerUnionRaw(members []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
			continue
		}
		if tidSliceEqual(in.unions[tt.Payload].Members, members) {
			return id
		}
	}
	in.unions = append(in.unions, UnionInfo{Members: cloneTypeArgs(members)})
	return in.internRaw(Type{Kind: KindUnion, Payload: safeSlot(len(in.unions) - 1)})
}

// UnionInfo returns metadata for a union TypeID.
func (in *Interner) UnionInfo(id TypeID) (UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return UnionInfo{}, false
	}
	return in.unions[tt.Payload], true
}

func tidSliceEqual(a, b []TypeID) bool {
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
