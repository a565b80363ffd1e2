package types

// MakeLazy interns a deferred reference to a named declaration (class,
// interface, type alias, or enum) by DefID. Resolving a lazy type to its
// underlying shape is the definition store's job (internal/defs), not the
// interner's: the interner only needs Def to be stable and hashable so
// `Lazy(Foo)` always produces the same TypeID no matter how many times the
// checker encounters the name `Foo`.
func (in *Interner) MakeLazy(def DefID) TypeID {
	return in.Intern(Type{Kind: KindLazy, Def: def})
}

// LazyDef returns the DefID a lazy type refers to.
func (in *Interner) LazyDef(id TypeID) (DefID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLazy {
		return NoDefID, false
	}
	return tt.Def, true
}

// ApplicationInfo describes a generic instantiation: a named declaration
// applied to concrete type arguments, e.g. `Box<string>`.
type ApplicationInfo struct {
	Base DefID
	Args []TypeID
}

// MakeApplication interns `base<args...>`. Applying a generic declaration
// to the same arguments twice (in any two files) always returns the same
// TypeID, which is what lets the relation cache key purely on TypeID pairs.
func (in *Interner) MakeApplication(base DefID, args []TypeID) TypeID {
	cloned := cloneTypeArgs(args)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindApplication || int(tt.Payload) >= len(in.applications) {
			continue
		}
		info := in.applications[tt.Payload]
		if info.Base == base && tidSliceEqual(info.Args, cloned) {
			return id
		}
	}
	in.applications = append(in.applications, ApplicationInfo{Base: base, Args: cloned})
	return in.internRaw(Type{Kind: KindApplication, Payload: safeSlot(len(in.applications) - 1)})
}

// ApplicationInfo returns metadata for an application TypeID.
func (in *Interner) ApplicationInfo(id TypeID) (ApplicationInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindApplication || int(tt.Payload) >= len(in.applications) {
		return ApplicationInfo{}, false
	}
	return in.applications[tt.Payload], true
}
