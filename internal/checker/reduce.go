package checker

import (
	"surge/internal/types"
)

// reduceType is installed as the relation engine's Evaluator
// (Relations.SetEvaluator): it reduces the type-level constructs that
// carry deferred computation — Lazy declaration references, generic
// Application instantiations, Mapped and Conditional types, and
// IndexedAccess/KeyOf operations — into the concrete shape the subtype/
// assignability algorithm can compare structurally. Types already in
// concrete form (object, array, tuple, callable, primitive, union,
// intersection with concrete members) pass through unchanged.
func (cs *CheckerState) reduceType(id types.TypeID) types.TypeID {
	tt, ok := cs.Types.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case types.KindLazy:
		def, ok := cs.Types.LazyDef(id)
		if !ok {
			return id
		}
		if cs.aliasInProgress[def] {
			return cs.Types.Builtins().Any
		}
		body := cs.Defs.Body(def)
		if body == types.NoTypeID {
			return id
		}
		cs.aliasInProgress[def] = true
		reduced := cs.reduceType(body)
		delete(cs.aliasInProgress, def)
		return reduced

	case types.KindApplication:
		info, ok := cs.Types.ApplicationInfo(id)
		if !ok {
			return id
		}
		body := cs.Defs.Body(info.Base)
		if body == types.NoTypeID {
			return id
		}
		params := cs.defTypeParams[info.Base]
		substituted := cs.substitute(body, params, info.Args)
		return cs.reduceType(substituted)

	case types.KindMapped:
		return cs.reduceMapped(id)

	case types.KindConditional:
		return cs.reduceConditional(id)

	case types.KindIndexedAccess:
		return cs.reduceIndexedAccess(id)

	case types.KindKeyOf:
		return cs.reduceKeyOf(id)

	default:
		return id
	}
}

// substitute replaces every occurrence of a type parameter in params with
// the corresponding concrete type in args, walking shape recursively.
// Parameters and args are matched positionally; a params slice longer than
// args (missing type argument, defaulted away) substitutes `any` for the
// remainder, soundly matching tsc's own defaulting behavior for an
// incomplete instantiation.
func (cs *CheckerState) substitute(body types.TypeID, params []types.TypeID, args []types.TypeID) types.TypeID {
	if len(params) == 0 {
		return body
	}
	env := make(map[types.TypeID]types.TypeID, len(params))
	for i, p := range params {
		if i < len(args) {
			env[p] = args[i]
		} else {
			env[p] = cs.Types.Builtins().Any
		}
	}
	return cs.substituteWalk(body, env, make(map[types.TypeID]bool))
}

func (cs *CheckerState) substituteWalk(id types.TypeID, env map[types.TypeID]types.TypeID, seen map[types.TypeID]bool) types.TypeID {
	if repl, ok := env[id]; ok {
		return repl
	}
	if seen[id] {
		return id
	}
	tt, ok := cs.Types.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case types.KindArray:
		elem, _ := cs.Types.ArrayElem(id)
		return cs.Types.MakeArray(cs.substituteWalk(elem, env, seen), tt.Flags&types.FlagReadonly != 0)
	case types.KindUnion:
		info, _ := cs.Types.UnionInfo(id)
		members := make([]types.TypeID, len(info.Members))
		for i, m := range info.Members {
			members[i] = cs.substituteWalk(m, env, seen)
		}
		return cs.Types.MakeUnion(members)
	case types.KindIntersection:
		info, _ := cs.Types.IntersectionInfo(id)
		members := make([]types.TypeID, len(info.Members))
		for i, m := range info.Members {
			members[i] = cs.substituteWalk(m, env, seen)
		}
		return cs.Types.MakeIntersection(members)
	case types.KindObject:
		info, _ := cs.Types.ObjectInfo(id)
		props := make([]types.PropertyInfo, len(info.Properties))
		for i, p := range info.Properties {
			p.Type = cs.substituteWalk(p.Type, env, seen)
			props[i] = p
		}
		indexes := make([]types.IndexSignatureInfo, len(info.Indexes))
		for i, ix := range info.Indexes {
			ix.Value = cs.substituteWalk(ix.Value, env, seen)
			indexes[i] = ix
		}
		return cs.Types.RegisterObject(info.Def, props, indexes)
	case types.KindTuple:
		info, _ := cs.Types.TupleInfo(id)
		elems := make([]types.TupleElemInfo, len(info.Elems))
		for i, e := range info.Elems {
			e.Type = cs.substituteWalk(e.Type, env, seen)
			elems[i] = e
		}
		return cs.Types.RegisterTuple(elems, tt.Flags&types.FlagReadonly != 0)
	case types.KindCallable, types.KindConstructable:
		info, _ := cs.Types.CallableInfo(id)
		sigs := make([]types.SignatureInfo, len(info.Signatures))
		for i, sig := range info.Signatures {
			ps := make([]types.ParamInfo, len(sig.Params))
			for j, p := range sig.Params {
				p.Type = cs.substituteWalk(p.Type, env, seen)
				ps[j] = p
			}
			sigs[i] = types.SignatureInfo{TypeParams: sig.TypeParams, Params: ps, Return: cs.substituteWalk(sig.Return, env, seen)}
		}
		return cs.Types.RegisterCallable(sigs, tt.Kind == types.KindConstructable)
	case types.KindApplication:
		info, _ := cs.Types.ApplicationInfo(id)
		args := make([]types.TypeID, len(info.Args))
		for i, a := range info.Args {
			args[i] = cs.substituteWalk(a, env, seen)
		}
		return cs.Types.MakeApplication(info.Base, args)
	case types.KindIndexedAccess:
		obj, idx, _ := cs.Types.IndexedAccessParts(id)
		return cs.Types.MakeIndexedAccess(cs.substituteWalk(obj, env, seen), cs.substituteWalk(idx, env, seen))
	case types.KindKeyOf:
		operand, _ := cs.Types.KeyOfOperand(id)
		return cs.Types.MakeKeyOf(cs.substituteWalk(operand, env, seen))
	default:
		return id
	}
}

// reduceMapped evaluates a mapped type over its constraint (a keyof type,
// typically) into a concrete object shape: `{ [K in keyof T]: U }`. When
// the constraint doesn't reduce to something enumerable (a plain type
// parameter with no resolvable key set), the mapped type is left as-is —
// the relation engine's own Subtype/Assignable calls fall back to
// structural comparison against whatever shape does reduce.
func (cs *CheckerState) reduceMapped(id types.TypeID) types.TypeID {
	info, ok := cs.Types.MappedInfo(id)
	if !ok {
		return id
	}
	keys, ok := cs.enumerateKeys(cs.reduceType(info.Constraint))
	if !ok {
		return id
	}
	props := make([]types.PropertyInfo, 0, len(keys))
	for _, k := range keys {
		env := map[types.TypeID]types.TypeID{info.TypeParam: k}
		valueType := cs.substituteWalk(info.Value, env, make(map[types.TypeID]bool))
		name, _ := cs.Types.LiteralInfo(k)
		props = append(props, types.PropertyInfo{
			Name:     name.Str,
			Type:     valueType,
			Optional: info.OptionalMod == types.ModifierPlus,
			Readonly: info.ReadonlyMod == types.ModifierPlus,
		})
	}
	return cs.Types.RegisterObject(types.NoDefID, props, nil)
}

// enumerateKeys returns the literal-string key set a keyof-shaped
// constraint denotes, if it can be fully enumerated (a keyof-of-object, or
// a union of string literals).
func (cs *CheckerState) enumerateKeys(constraint types.TypeID) ([]types.TypeID, bool) {
	tt, ok := cs.Types.Lookup(constraint)
	if !ok {
		return nil, false
	}
	switch tt.Kind {
	case types.KindKeyOf:
		operand, _ := cs.Types.KeyOfOperand(constraint)
		obj := cs.reduceType(operand)
		objInfo, ok := cs.Types.ObjectInfo(obj)
		if !ok {
			return nil, false
		}
		keys := make([]types.TypeID, 0, len(objInfo.Properties))
		for _, p := range objInfo.Properties {
			keys = append(keys, cs.Types.RegisterLiteralString(p.Name))
		}
		return keys, true
	case types.KindUnion:
		info, _ := cs.Types.UnionInfo(constraint)
		keys := make([]types.TypeID, 0, len(info.Members))
		for _, m := range info.Members {
			if cs.Types.Kind(m) != types.KindLiteralString {
				return nil, false
			}
			keys = append(keys, m)
		}
		return keys, true
	case types.KindLiteralString:
		return []types.TypeID{constraint}, true
	default:
		return nil, false
	}
}

// reduceConditional evaluates `Check extends Extends ? True : False` using
// the relation engine's own subtype check. Recursive re-entry into
// Subtype is safe: Relations.subtypeWith's coinductive assumption map
// guards against this conditional itself appearing in Check/Extends.
func (cs *CheckerState) reduceConditional(id types.TypeID) types.TypeID {
	info, ok := cs.Types.ConditionalInfo(id)
	if !ok {
		return id
	}
	check := cs.reduceType(info.Check)
	extends := cs.reduceType(info.Extends)
	if cs.Rel.Subtype(check, extends) {
		return cs.reduceType(info.True)
	}
	return cs.reduceType(info.False)
}

func (cs *CheckerState) reduceIndexedAccess(id types.TypeID) types.TypeID {
	object, index, ok := cs.Types.IndexedAccessParts(id)
	if !ok {
		return id
	}
	obj := cs.reduceType(object)
	idx := cs.reduceType(index)

	if cs.Types.Kind(idx) == types.KindUnion {
		info, _ := cs.Types.UnionInfo(idx)
		members := make([]types.TypeID, 0, len(info.Members))
		for _, m := range info.Members {
			members = append(members, cs.reduceIndexedAccess(cs.Types.MakeIndexedAccess(obj, m)))
		}
		return cs.Types.MakeUnion(members)
	}

	if cs.Types.Kind(idx) == types.KindLiteralString {
		litInfo, _ := cs.Types.LiteralInfo(idx)
		if prop, ok := cs.Types.LookupProperty(obj, litInfo.Str); ok {
			return prop.Type
		}
	}
	if cs.Types.Kind(obj) == types.KindArray && cs.Types.Kind(idx) == types.KindNumber {
		if elem, ok := cs.Types.ArrayElem(obj); ok {
			return elem
		}
	}
	if cs.Types.Kind(obj) == types.KindTuple {
		if litInfo, ok := cs.Types.LiteralInfo(idx); ok && cs.Types.Kind(idx) == types.KindLiteralNumber {
			tupleInfo, _ := cs.Types.TupleInfo(obj)
			i := int(litInfo.Num)
			if i >= 0 && i < len(tupleInfo.Elems) {
				return tupleInfo.Elems[i].Type
			}
		}
	}
	return cs.Types.Builtins().Any
}

func (cs *CheckerState) reduceKeyOf(id types.TypeID) types.TypeID {
	operand, ok := cs.Types.KeyOfOperand(id)
	if !ok {
		return id
	}
	obj := cs.reduceType(operand)
	objInfo, ok := cs.Types.ObjectInfo(obj)
	if !ok {
		return id
	}
	members := make([]types.TypeID, 0, len(objInfo.Properties))
	for _, p := range objInfo.Properties {
		members = append(members, cs.Types.RegisterLiteralString(p.Name))
	}
	for _, ix := range objInfo.Indexes {
		if ix.Kind == types.IndexKeyString {
			members = append(members, cs.Types.Builtins().String)
		} else {
			members = append(members, cs.Types.Builtins().Number)
		}
	}
	return cs.Types.MakeUnion(members)
}
