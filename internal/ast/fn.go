package ast

import "surge/internal/source"

// FnModifier is a bitset of function/method modifiers.
type FnModifier uint16

const (
	FnAsync FnModifier = 1 << iota
	FnGenerator
	FnStatic
	FnAbstract
	FnPublic
	FnPrivate
	FnProtected
	FnReadonly
	FnOverride
	FnOptional // method/property has a `?`
	FnGetter
	FnSetter
)

// Param is a function/method parameter: `name: Type = default`, possibly a
// `...rest` parameter.
type Param struct {
	Name     source.StringID
	Type     TypeID
	Default  ExprID // NoExprID if absent
	Rest     bool
	Optional bool
	Span     source.Span
}

// TypeParamDecl is a generic type parameter: `T extends C = D`.
type TypeParamDecl struct {
	Name       source.StringID
	Constraint TypeID // NoTypeID if absent
	Default    TypeID // NoTypeID if absent
	Span       source.Span
}

// paramRange / typeParamRange record a contiguous run of allocations in the
// shared Params/TypeParams arenas, avoiding a slice-per-node allocation.
type paramRange struct {
	start ParamID
	count uint32
}

type typeParamRange struct {
	start TypeParamID
	count uint32
}

func (i *Items) allocParams(params []Param) paramRange {
	if len(params) == 0 {
		return paramRange{}
	}
	var start ParamID
	for idx, p := range params {
		id := ParamID(i.Params.Allocate(p))
		if idx == 0 {
			start = id
		}
	}
	return paramRange{start: start, count: uint32(len(params))}
}

func (i *Items) allocTypeParams(tps []TypeParamDecl) typeParamRange {
	if len(tps) == 0 {
		return typeParamRange{}
	}
	var start TypeParamID
	for idx, tp := range tps {
		id := TypeParamID(i.TypeParams.Allocate(tp))
		if idx == 0 {
			start = id
		}
	}
	return typeParamRange{start: start, count: uint32(len(tps))}
}

// ParamIDs returns the IDs of a contiguous param range.
func (i *Items) ParamIDs(r paramRange) []ParamID {
	if r.count == 0 {
		return nil
	}
	ids := make([]ParamID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = ParamID(uint32(r.start) + j)
	}
	return ids
}

// TypeParamIDs returns the IDs of a contiguous type-param range.
func (i *Items) TypeParamIDs(r typeParamRange) []TypeParamID {
	if r.count == 0 {
		return nil
	}
	ids := make([]TypeParamID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = TypeParamID(uint32(r.start) + j)
	}
	return ids
}

// Param returns the parameter with the given ID.
func (i *Items) Param(id ParamID) *Param { return i.Params.Get(uint32(id)) }

// TypeParam returns the type parameter with the given ID.
func (i *Items) TypeParam(id TypeParamID) *TypeParamDecl { return i.TypeParams.Get(uint32(id)) }

// FunctionDeclItem is the payload of an ItemFunctionDecl.
type FunctionDeclItem struct {
	Name       source.StringID
	TypeParams typeParamRange
	Params     paramRange
	ReturnType TypeID // NoTypeID if inferred
	Body       StmtID // NoStmtID for an ambient/overload signature
	Modifiers  FnModifier
	Span       source.Span
}

func (i *Items) Function(id ItemID) (*FunctionDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFunctionDecl {
		return nil, false
	}
	return i.Functions.Get(uint32(item.Payload)), true
}

// NewFunction creates a new function-declaration item. fnModifiers carries
// function-level modifiers (async/generator/...); itemModifiers carries
// declaration-level modifiers (exported/ambient/...).
func (i *Items) NewFunction(
	name source.StringID,
	typeParams []TypeParamDecl,
	params []Param,
	returnType TypeID,
	body StmtID,
	fnModifiers FnModifier,
	itemModifiers ItemModifier,
	span source.Span,
) ItemID {
	payload := i.Functions.Allocate(FunctionDeclItem{
		Name:       name,
		TypeParams: i.allocTypeParams(typeParams),
		Params:     i.allocParams(params),
		ReturnType: returnType,
		Body:       body,
		Modifiers:  fnModifiers,
		Span:       span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemFunctionDecl, Modifiers: itemModifiers, Span: span, Payload: PayloadID(payload)}))
}
