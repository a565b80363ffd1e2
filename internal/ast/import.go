package ast

import "surge/internal/source"

// ImportSpec is one named binding in an import clause: `name` or
// `name as alias`.
type ImportSpec struct {
	Name     source.StringID
	Alias    source.StringID // NoStringID if unaliased
	TypeOnly bool            // `import { type T } from "m"`
	Span     source.Span
}

// ImportDeclItem is the payload of an ItemImportDecl. It covers every TS
// import form:
//
//	import "m"                        // side-effect only
//	import d from "m"                 // Default set
//	import * as ns from "m"           // NamespaceAs set
//	import d, * as ns from "m"        // Default and NamespaceAs set
//	import { a, b as c } from "m"     // Named set
//	import d, { a, b } from "m"       // Default and Named set
//	import type { T } from "m"        // TypeOnly set
type ImportDeclItem struct {
	Module       source.StringID
	Default      source.StringID // NoStringID if absent
	NamespaceAs  source.StringID // NoStringID if absent
	Named        []ImportSpec
	TypeOnly     bool
	Span         source.Span
}

// Import returns the ImportDeclItem for the given ItemID, or nil/false if
// id does not refer to an import declaration.
func (i *Items) Import(id ItemID) (*ImportDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemImportDecl {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

// NewImport creates a new import-declaration item.
func (i *Items) NewImport(
	module source.StringID,
	def source.StringID,
	namespaceAs source.StringID,
	named []ImportSpec,
	typeOnly bool,
	span source.Span,
) ItemID {
	payload := i.Imports.Allocate(ImportDeclItem{
		Module:      module,
		Default:     def,
		NamespaceAs: namespaceAs,
		Named:       append([]ImportSpec(nil), named...),
		TypeOnly:    typeOnly,
		Span:        span,
	})
	return i.New(ItemImportDecl, span, PayloadID(payload))
}

// ExportSpec is one named binding in an export clause: `name` or
// `name as alias`.
type ExportSpec struct {
	Name     source.StringID
	Alias    source.StringID // NoStringID if unaliased
	TypeOnly bool
	Span     source.Span
}

// ExportDeclItem is the payload of an ItemExportDecl. It covers the
// re-export and bare-export forms that are not expressed as a modifier on
// the underlying declaration:
//
//	export { a, b as c }                  // Named, Module == NoStringID
//	export { a, b as c } from "m"         // Named, Module set (re-export)
//	export * from "m"                     // IsStar, Module set
//	export * as ns from "m"               // IsStar, StarAs set, Module set
//	export default expr                   // Default set
//	export default function f() {}        // DefaultItem set
//
// `export const x = 1`, `export class C {}` and similar are represented as
// the underlying ItemVarDecl/ItemClassDecl/... with ItemExported set in its
// own Modifiers, not as an ExportDeclItem.
type ExportDeclItem struct {
	Module      source.StringID // NoStringID unless this is a re-export
	Named       []ExportSpec
	IsStar      bool
	StarAs      source.StringID // NoStringID unless `export * as ns`
	Default     ExprID          // NoExprID unless `export default <expr>`
	DefaultItem ItemID          // NoItemID unless `export default <decl>`
	Span        source.Span
}

// Export returns the ExportDeclItem for the given ItemID, or nil/false if
// id does not refer to an export declaration.
func (i *Items) Export(id ItemID) (*ExportDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemExportDecl {
		return nil, false
	}
	return i.Exports.Get(uint32(item.Payload)), true
}

// NewExportNamed creates a new named (and possibly re-exporting) export
// declaration: `export { a, b as c } [from "m"]`.
func (i *Items) NewExportNamed(module source.StringID, named []ExportSpec, span source.Span) ItemID {
	payload := i.Exports.Allocate(ExportDeclItem{
		Module: module,
		Named:  append([]ExportSpec(nil), named...),
		Span:   span,
	})
	return i.New(ItemExportDecl, span, PayloadID(payload))
}

// NewExportStar creates a new `export * from "m"` or `export * as ns from
// "m"` declaration.
func (i *Items) NewExportStar(module source.StringID, as source.StringID, span source.Span) ItemID {
	payload := i.Exports.Allocate(ExportDeclItem{
		Module: module,
		IsStar: true,
		StarAs: as,
		Span:   span,
	})
	return i.New(ItemExportDecl, span, PayloadID(payload))
}

// NewExportDefaultExpr creates a new `export default <expr>` declaration.
func (i *Items) NewExportDefaultExpr(expr ExprID, span source.Span) ItemID {
	payload := i.Exports.Allocate(ExportDeclItem{Default: expr, Span: span})
	return i.New(ItemExportDecl, span, PayloadID(payload))
}

// NewExportDefaultItem creates a new `export default function f() {}` /
// `export default class C {}` declaration, wrapping an already-built
// function/class declaration item.
func (i *Items) NewExportDefaultItem(decl ItemID, span source.Span) ItemID {
	payload := i.Exports.Allocate(ExportDeclItem{DefaultItem: decl, Span: span})
	return i.New(ItemExportDecl, span, PayloadID(payload))
}
