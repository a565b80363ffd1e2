package ast

import "surge/internal/source"

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprPrivateIdent
	ExprNumericLit
	ExprBigIntLit
	ExprStringLit
	ExprBoolLit
	ExprNullLit
	ExprUndefinedLit
	ExprTemplateLit
	ExprArrayLit
	ExprObjectLit
	ExprFunctionExpr
	ExprArrowFunction
	ExprClassExpr
	ExprThis
	ExprSuper
	ExprUnary
	ExprUpdate
	ExprBinary
	ExprLogical
	ExprAssignment
	ExprConditional
	ExprCall
	ExprNew
	ExprMember
	ExprIndexAccess
	ExprSpread
	ExprAs
	ExprSatisfies
	ExprNonNull
	ExprParen
	ExprSequence
)

// Expr is an expression node. Its concrete data lives in one of the Exprs
// side-table arenas, selected by Kind and addressed by Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates arithmetic, bitwise, relational and equality
// operators (every binary operator except the short-circuiting `&&`, `||`,
// `??`, which narrowing treats specially and which therefore get their own
// ExprLogical kind).
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinExp // **
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinUShr // >>>
	BinEq   // ==
	BinNotEq
	BinStrictEq // ===
	BinStrictNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinInstanceOf
	BinIn
)

// LogicalOp enumerates the short-circuiting logical operators.
type LogicalOp uint8

const (
	LogAnd LogicalOp = iota // &&
	LogOr                   // ||
	LogNullish              // ??
)

// UnaryOp enumerates prefix unary operators.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot    // !
	UnaryBitNot // ~
	UnaryTypeof
	UnaryVoid
	UnaryDelete
)

// UpdateOp enumerates the increment/decrement operators.
type UpdateOp uint8

const (
	UpdateIncrement UpdateOp = iota
	UpdateDecrement
)

// AssignOp enumerates assignment operators, including the TS4.0+ logical
// assignment operators.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignExp
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
	AssignUShr
	AssignLogicalAnd // &&=
	AssignLogicalOr  // ||=
	AssignNullish    // ??=
)

// IdentData is the payload of an ExprIdent.
type IdentData struct {
	Name source.StringID
}

// PrivateIdentData is the payload of an ExprPrivateIdent (`#name`),
// referenced only as the right-hand operand of `in` (`#x in obj`) or as a
// class-member access (`this.#x`).
type PrivateIdentData struct {
	Name source.StringID
}

// LiteralData is the payload of a numeric/bigint/string/bool literal. The
// raw source text is kept (via the string interner) so the checker can
// parse it into the exact numeric/string value its semantics need.
type LiteralData struct {
	Raw source.StringID
}

// TemplateSpan is one `${expr}` hole in a template literal.
type TemplateSpan struct {
	Expr ExprID
	Span source.Span
}

// TemplateLitData is the payload of an ExprTemplateLit: a sequence of
// literal text "quasis" (len(Quasis) == len(Exprs)+1) interleaved with
// substitution expressions.
type TemplateLitData struct {
	Quasis []source.StringID
	Exprs  []TemplateSpan
	Tag    ExprID // NoExprID unless this is a tagged template
}

// ArrayLitData is the payload of an ExprArrayLit. A nil element ExprID
// marks a hole (`[1, , 3]`); an ExprSpread element represents `...rest`.
type ArrayLitData struct {
	Elements []ExprID
}

// ObjectPropKind enumerates the kinds of an object-literal property.
type ObjectPropKind uint8

const (
	ObjectPropKeyValue ObjectPropKind = iota
	ObjectPropShorthand
	ObjectPropMethod
	ObjectPropGetter
	ObjectPropSetter
	ObjectPropSpread
)

// ObjectProp is one property of an object literal.
type ObjectProp struct {
	Kind      ObjectPropKind
	Key       source.StringID // NoStringID for a computed key or a spread
	Computed  bool
	KeyExpr   ExprID // set when Computed is true
	Value     ExprID // property value, method body wrapped as ExprFunctionExpr, or spread operand
	Span      source.Span
}

// ObjectLitData is the payload of an ExprObjectLit.
type ObjectLitData struct {
	Props []ObjectProp
}

// FunctionExprData is the payload of an ExprFunctionExpr (`function
// [name](params) { body }`) and, with Arrow set, an ExprArrowFunction.
type FunctionExprData struct {
	Name       source.StringID // NoStringID for an anonymous function expression
	TypeParams typeParamRange
	Params     paramRange
	ReturnType TypeID
	Body       StmtID // block body
	ExprBody   ExprID // NoExprID unless this is a concise-body arrow (`x => x+1`)
	Modifiers  FnModifier
}

// ClassExprData is the payload of an ExprClassExpr, reusing the same shape
// as a class declaration.
type ClassExprData struct {
	Decl ClassDeclItem
}

// UnaryData is the payload of an ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// UpdateData is the payload of an ExprUpdate (`x++`, `--x`).
type UpdateData struct {
	Op      UpdateOp
	Operand ExprID
	Prefix  bool
}

// BinaryData is the payload of an ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// LogicalData is the payload of an ExprLogical.
type LogicalData struct {
	Op    LogicalOp
	Left  ExprID
	Right ExprID
}

// AssignmentData is the payload of an ExprAssignment.
type AssignmentData struct {
	Op     AssignOp
	Target ExprID // identifier, member, index, or destructuring pattern
	Value  ExprID
}

// ConditionalData is the payload of an ExprConditional (`cond ? t : f`).
type ConditionalData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// CallData is the payload of an ExprCall, covering both ordinary and
// optional-chained (`f?.()`) calls, including predicate-typed calls (the
// checker, not the AST, determines whether a call target has a type
// predicate signature).
type CallData struct {
	Callee     ExprID
	TypeArgs   []TypeID
	Args       []ExprID
	Optional   bool // `?.()`
}

// NewData is the payload of an ExprNew.
type NewData struct {
	Callee   ExprID
	TypeArgs []TypeID
	Args     []ExprID
	HasArgs  bool // distinguishes `new C` from `new C()`
}

// MemberData is the payload of an ExprMember (`a.b`, `a?.b`, `a.#b`).
type MemberData struct {
	Target   ExprID
	Field    source.StringID
	Private  bool
	Optional bool // `?.`
}

// IndexAccessData is the payload of an ExprIndexAccess (`a[b]`, `a?.[b]`).
type IndexAccessData struct {
	Target   ExprID
	Index    ExprID
	Optional bool
}

// SpreadData is the payload of an ExprSpread (`...expr`) used in call
// arguments or array literals.
type SpreadData struct {
	Value ExprID
}

// AsData is the payload of an ExprAs (`expr as T`, and the legacy
// `<T>expr` prefix-cast form).
type AsData struct {
	Value ExprID
	Type  TypeID
	Const bool // `expr as const`
}

// SatisfiesData is the payload of an ExprSatisfies (`expr satisfies T`).
type SatisfiesData struct {
	Value ExprID
	Type  TypeID
}

// NonNullData is the payload of an ExprNonNull (`expr!`).
type NonNullData struct {
	Value ExprID
}

// ParenData is the payload of an ExprParen.
type ParenData struct {
	Inner ExprID
}

// SequenceData is the payload of an ExprSequence (the comma operator).
type SequenceData struct {
	Exprs []ExprID
}

// Exprs manages allocation of expressions and their associated payload data.
type Exprs struct {
	Arena        *Arena[Expr]
	Idents        *Arena[IdentData]
	PrivateIdents *Arena[PrivateIdentData]
	Literals      *Arena[LiteralData]
	Templates    *Arena[TemplateLitData]
	Arrays       *Arena[ArrayLitData]
	Objects      *Arena[ObjectLitData]
	Functions    *Arena[FunctionExprData]
	Classes      *Arena[ClassExprData]
	Unaries      *Arena[UnaryData]
	Updates      *Arena[UpdateData]
	Binaries     *Arena[BinaryData]
	Logicals     *Arena[LogicalData]
	Assignments  *Arena[AssignmentData]
	Conditionals *Arena[ConditionalData]
	Calls        *Arena[CallData]
	News         *Arena[NewData]
	Members      *Arena[MemberData]
	IndexAccess  *Arena[IndexAccessData]
	Spreads      *Arena[SpreadData]
	Ases         *Arena[AsData]
	SatisfiesOps *Arena[SatisfiesData]
	NonNulls     *Arena[NonNullData]
	Parens       *Arena[ParenData]
	Sequences    *Arena[SequenceData]

	// Shared building blocks, mirroring Items so that function/arrow
	// expressions can reuse Param/TypeParamDecl allocation helpers.
	Params     *Arena[Param]
	TypeParams *Arena[TypeParamDecl]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using
// capHint as the initial capacity. If capHint is 0, a default capacity of
// 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Idents:        NewArena[IdentData](capHint),
		PrivateIdents: NewArena[PrivateIdentData](capHint),
		Literals:      NewArena[LiteralData](capHint),
		Templates:    NewArena[TemplateLitData](capHint),
		Arrays:       NewArena[ArrayLitData](capHint),
		Objects:      NewArena[ObjectLitData](capHint),
		Functions:    NewArena[FunctionExprData](capHint),
		Classes:      NewArena[ClassExprData](capHint),
		Unaries:      NewArena[UnaryData](capHint),
		Updates:      NewArena[UpdateData](capHint),
		Binaries:     NewArena[BinaryData](capHint),
		Logicals:     NewArena[LogicalData](capHint),
		Assignments:  NewArena[AssignmentData](capHint),
		Conditionals: NewArena[ConditionalData](capHint),
		Calls:        NewArena[CallData](capHint),
		News:         NewArena[NewData](capHint),
		Members:      NewArena[MemberData](capHint),
		IndexAccess:  NewArena[IndexAccessData](capHint),
		Spreads:      NewArena[SpreadData](capHint),
		Ases:         NewArena[AsData](capHint),
		SatisfiesOps: NewArena[SatisfiesData](capHint),
		NonNulls:     NewArena[NonNullData](capHint),
		Parens:       NewArena[ParenData](capHint),
		Sequences:    NewArena[SequenceData](capHint),
		Params:       NewArena[Param](capHint),
		TypeParams:   NewArena[TypeParamDecl](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) allocParams(params []Param) paramRange {
	if len(params) == 0 {
		return paramRange{}
	}
	var start ParamID
	for idx, p := range params {
		id := ParamID(e.Params.Allocate(p))
		if idx == 0 {
			start = id
		}
	}
	return paramRange{start: start, count: uint32(len(params))}
}

func (e *Exprs) allocTypeParams(tps []TypeParamDecl) typeParamRange {
	if len(tps) == 0 {
		return typeParamRange{}
	}
	var start TypeParamID
	for idx, tp := range tps {
		id := TypeParamID(e.TypeParams.Allocate(tp))
		if idx == 0 {
			start = id
		}
	}
	return typeParamRange{start: start, count: uint32(len(tps))}
}

// ParamIDs returns the IDs of a contiguous param range allocated via this Exprs.
func (e *Exprs) ParamIDs(r paramRange) []ParamID {
	if r.count == 0 {
		return nil
	}
	ids := make([]ParamID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = ParamID(uint32(r.start) + j)
	}
	return ids
}

// Param returns the parameter with the given ID, allocated via this Exprs.
func (e *Exprs) Param(id ParamID) *Param { return e.Params.Get(uint32(id)) }

// TypeParamIDs returns the IDs of a contiguous type-param range allocated via this Exprs.
func (e *Exprs) TypeParamIDs(r typeParamRange) []TypeParamID {
	if r.count == 0 {
		return nil
	}
	ids := make([]TypeParamID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = TypeParamID(uint32(r.start) + j)
	}
	return ids
}

// TypeParam returns the type parameter with the given ID, allocated via this Exprs.
func (e *Exprs) TypeParam(id TypeParamID) *TypeParamDecl { return e.TypeParams.Get(uint32(id)) }

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(IdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewPrivateIdent(span source.Span, name source.StringID) ExprID {
	payload := e.PrivateIdents.Allocate(PrivateIdentData{Name: name})
	return e.new(ExprPrivateIdent, span, PayloadID(payload))
}

func (e *Exprs) PrivateIdent(id ExprID) (*PrivateIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPrivateIdent {
		return nil, false
	}
	return e.PrivateIdents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) newLiteral(kind ExprKind, span source.Span, raw source.StringID) ExprID {
	payload := e.Literals.Allocate(LiteralData{Raw: raw})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) NewNumericLit(span source.Span, raw source.StringID) ExprID {
	return e.newLiteral(ExprNumericLit, span, raw)
}

func (e *Exprs) NewBigIntLit(span source.Span, raw source.StringID) ExprID {
	return e.newLiteral(ExprBigIntLit, span, raw)
}

func (e *Exprs) NewStringLit(span source.Span, raw source.StringID) ExprID {
	return e.newLiteral(ExprStringLit, span, raw)
}

func (e *Exprs) NewBoolLit(span source.Span, raw source.StringID) ExprID {
	return e.newLiteral(ExprBoolLit, span, raw)
}

func (e *Exprs) NewNullLit(span source.Span) ExprID {
	return e.new(ExprNullLit, span, NoPayloadID)
}

func (e *Exprs) NewUndefinedLit(span source.Span) ExprID {
	return e.new(ExprUndefinedLit, span, NoPayloadID)
}

func (e *Exprs) Literal(id ExprID) (*LiteralData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprNumericLit, ExprBigIntLit, ExprStringLit, ExprBoolLit:
		return e.Literals.Get(uint32(expr.Payload)), true
	default:
		return nil, false
	}
}

func (e *Exprs) NewTemplateLit(span source.Span, quasis []source.StringID, exprs []TemplateSpan, tag ExprID) ExprID {
	payload := e.Templates.Allocate(TemplateLitData{
		Quasis: append([]source.StringID(nil), quasis...),
		Exprs:  append([]TemplateSpan(nil), exprs...),
		Tag:    tag,
	})
	return e.new(ExprTemplateLit, span, PayloadID(payload))
}

func (e *Exprs) TemplateLit(id ExprID) (*TemplateLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTemplateLit {
		return nil, false
	}
	return e.Templates.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewArrayLit(span source.Span, elements []ExprID) ExprID {
	payload := e.Arrays.Allocate(ArrayLitData{Elements: append([]ExprID(nil), elements...)})
	return e.new(ExprArrayLit, span, PayloadID(payload))
}

func (e *Exprs) ArrayLit(id ExprID) (*ArrayLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrayLit {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewObjectLit(span source.Span, props []ObjectProp) ExprID {
	payload := e.Objects.Allocate(ObjectLitData{Props: append([]ObjectProp(nil), props...)})
	return e.new(ExprObjectLit, span, PayloadID(payload))
}

func (e *Exprs) ObjectLit(id ExprID) (*ObjectLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObjectLit {
		return nil, false
	}
	return e.Objects.Get(uint32(expr.Payload)), true
}

func (e *Exprs) newFunctionLike(kind ExprKind, span source.Span, name source.StringID, typeParams []TypeParamDecl, params []Param, returnType TypeID, body StmtID, exprBody ExprID, modifiers FnModifier) ExprID {
	payload := e.Functions.Allocate(FunctionExprData{
		Name:       name,
		TypeParams: e.allocTypeParams(typeParams),
		Params:     e.allocParams(params),
		ReturnType: returnType,
		Body:       body,
		ExprBody:   exprBody,
		Modifiers:  modifiers,
	})
	return e.new(kind, span, PayloadID(payload))
}

// NewFunctionExpr creates a new function expression.
func (e *Exprs) NewFunctionExpr(span source.Span, name source.StringID, typeParams []TypeParamDecl, params []Param, returnType TypeID, body StmtID, modifiers FnModifier) ExprID {
	return e.newFunctionLike(ExprFunctionExpr, span, name, typeParams, params, returnType, body, NoExprID, modifiers)
}

// NewArrowFunction creates a new arrow function, either block-bodied
// (exprBody == NoExprID) or concise-bodied (body == NoStmtID).
func (e *Exprs) NewArrowFunction(span source.Span, typeParams []TypeParamDecl, params []Param, returnType TypeID, body StmtID, exprBody ExprID, modifiers FnModifier) ExprID {
	return e.newFunctionLike(ExprArrowFunction, span, source.NoStringID, typeParams, params, returnType, body, exprBody, modifiers)
}

func (e *Exprs) FunctionExpr(id ExprID) (*FunctionExprData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprFunctionExpr && expr.Kind != ExprArrowFunction) {
		return nil, false
	}
	return e.Functions.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewClassExpr(span source.Span, decl ClassDeclItem) ExprID {
	payload := e.Classes.Allocate(ClassExprData{Decl: decl})
	return e.new(ExprClassExpr, span, PayloadID(payload))
}

func (e *Exprs) ClassExpr(id ExprID) (*ClassExprData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClassExpr {
		return nil, false
	}
	return e.Classes.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewThis(span source.Span) ExprID  { return e.new(ExprThis, span, NoPayloadID) }
func (e *Exprs) NewSuper(span source.Span) ExprID { return e.new(ExprSuper, span, NoPayloadID) }

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(UnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUpdate(span source.Span, op UpdateOp, operand ExprID, prefix bool) ExprID {
	payload := e.Updates.Allocate(UpdateData{Op: op, Operand: operand, Prefix: prefix})
	return e.new(ExprUpdate, span, PayloadID(payload))
}

func (e *Exprs) Update(id ExprID) (*UpdateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUpdate {
		return nil, false
	}
	return e.Updates.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLogical(span source.Span, op LogicalOp, left, right ExprID) ExprID {
	payload := e.Logicals.Allocate(LogicalData{Op: op, Left: left, Right: right})
	return e.new(ExprLogical, span, PayloadID(payload))
}

func (e *Exprs) Logical(id ExprID) (*LogicalData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLogical {
		return nil, false
	}
	return e.Logicals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAssignment(span source.Span, op AssignOp, target, value ExprID) ExprID {
	payload := e.Assignments.Allocate(AssignmentData{Op: op, Target: target, Value: value})
	return e.new(ExprAssignment, span, PayloadID(payload))
}

func (e *Exprs) Assignment(id ExprID) (*AssignmentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssignment {
		return nil, false
	}
	return e.Assignments.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewConditional(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Conditionals.Allocate(ConditionalData{Cond: cond, Then: then, Else: els})
	return e.new(ExprConditional, span, PayloadID(payload))
}

func (e *Exprs) Conditional(id ExprID) (*ConditionalData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConditional {
		return nil, false
	}
	return e.Conditionals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, typeArgs []TypeID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(CallData{
		Callee:   callee,
		TypeArgs: append([]TypeID(nil), typeArgs...),
		Args:     append([]ExprID(nil), args...),
		Optional: optional,
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewNew(span source.Span, callee ExprID, typeArgs []TypeID, args []ExprID, hasArgs bool) ExprID {
	payload := e.News.Allocate(NewData{
		Callee:   callee,
		TypeArgs: append([]TypeID(nil), typeArgs...),
		Args:     append([]ExprID(nil), args...),
		HasArgs:  hasArgs,
	})
	return e.new(ExprNew, span, PayloadID(payload))
}

func (e *Exprs) New(id ExprID) (*NewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID, private, optional bool) ExprID {
	payload := e.Members.Allocate(MemberData{Target: target, Field: field, Private: private, Optional: optional})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*MemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndexAccess(span source.Span, target, index ExprID, optional bool) ExprID {
	payload := e.IndexAccess.Allocate(IndexAccessData{Target: target, Index: index, Optional: optional})
	return e.new(ExprIndexAccess, span, PayloadID(payload))
}

func (e *Exprs) IndexAccess(id ExprID) (*IndexAccessData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndexAccess {
		return nil, false
	}
	return e.IndexAccess.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSpread(span source.Span, value ExprID) ExprID {
	payload := e.Spreads.Allocate(SpreadData{Value: value})
	return e.new(ExprSpread, span, PayloadID(payload))
}

func (e *Exprs) Spread(id ExprID) (*SpreadData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSpread {
		return nil, false
	}
	return e.Spreads.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAs(span source.Span, value ExprID, typ TypeID, isConst bool) ExprID {
	payload := e.Ases.Allocate(AsData{Value: value, Type: typ, Const: isConst})
	return e.new(ExprAs, span, PayloadID(payload))
}

func (e *Exprs) As(id ExprID) (*AsData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAs {
		return nil, false
	}
	return e.Ases.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSatisfies(span source.Span, value ExprID, typ TypeID) ExprID {
	payload := e.SatisfiesOps.Allocate(SatisfiesData{Value: value, Type: typ})
	return e.new(ExprSatisfies, span, PayloadID(payload))
}

func (e *Exprs) Satisfies(id ExprID) (*SatisfiesData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSatisfies {
		return nil, false
	}
	return e.SatisfiesOps.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewNonNull(span source.Span, value ExprID) ExprID {
	payload := e.NonNulls.Allocate(NonNullData{Value: value})
	return e.new(ExprNonNull, span, PayloadID(payload))
}

func (e *Exprs) NonNull(id ExprID) (*NonNullData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNonNull {
		return nil, false
	}
	return e.NonNulls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ParenData{Inner: inner})
	return e.new(ExprParen, span, PayloadID(payload))
}

func (e *Exprs) Paren(id ExprID) (*ParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSequence(span source.Span, exprs []ExprID) ExprID {
	payload := e.Sequences.Allocate(SequenceData{Exprs: append([]ExprID(nil), exprs...)})
	return e.new(ExprSequence, span, PayloadID(payload))
}

func (e *Exprs) Sequence(id ExprID) (*SequenceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSequence {
		return nil, false
	}
	return e.Sequences.Get(uint32(expr.Payload)), true
}
