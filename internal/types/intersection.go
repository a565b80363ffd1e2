package types

import "sort"

// IntersectionInfo stores the canonicalized member list of an intersection.
type IntersectionInfo struct {
	Members []TypeID
}

// MakeIntersection builds the canonical intersection of the given members,
// flattening nested intersections and deduplicating the same way MakeUnion
// does. `never` absorbs the whole intersection (nothing can satisfy it);
// `any`/`unknown` members that are redundant given another member are left
// for the relation layer to simplify, intersection only handles structural
// flattening and dedup here.
func (in *Interner) MakeIntersection(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenIntersection(members, &flat)

	if len(flat) == 0 {
		return in.builtins.Unknown
	}

	seen := make(map[TypeID]struct{}, len(flat))
	deduped := flat[:0:0]
	for _, m := range flat {
		if m == in.builtins.Never {
			return in.builtins.Never
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		deduped = append(deduped, m)
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i] < deduped[j] })

	return in.registerIntersectionRaw(deduped)
}

func (in *Interner) flattenIntersection(members []TypeID, out *[]TypeID) {
	for _, m := range members {
		if info, ok := in.IntersectionInfo(m); ok {
			in.flattenIntersection(info.Members, out)
			continue
		}
		*out = append(*out, m)
	}
}

func (in *Interner) registerIntersectionRaw(members []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindIntersection || int(tt.Payload) >= len(in.intersections) {
			continue
		}
		if tidSliceEqual(in.intersections[tt.Payload].Members, members) {
			return id
		}
	}
	in.intersections = append(in.intersections, IntersectionInfo{Members: cloneTypeArgs(members)})
	return in.internRaw(Type{Kind: KindIntersection, Payload: safeSlot(len(in.intersections) - 1)})
}

// IntersectionInfo returns metadata for an intersection TypeID.
func (in *Interner) IntersectionInfo(id TypeID) (IntersectionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindIntersection || int(tt.Payload) >= len(in.intersections) {
		return IntersectionInfo{}, false
	}
	return in.intersections[tt.Payload], true
}
