package ast

type (
	// FileID identifies a source file.
	FileID uint32
	// ItemID identifies a top-level declaration.
	ItemID uint32
	// StmtID identifies a statement.
	StmtID uint32
	// ExprID identifies an expression.
	ExprID uint32
	// TypeID identifies a type-syntax node.
	TypeID uint32
	// ParamID identifies a function or method parameter.
	ParamID uint32
	// TypeParamID identifies a generic type parameter declaration.
	TypeParamID uint32
	// ClassMemberID identifies a member of a class body.
	ClassMemberID uint32
	// ObjectMemberID identifies a property of an object literal or a member
	// of an interface/object-type-literal body.
	ObjectMemberID uint32
	// ImportSpecID identifies one named import binding.
	ImportSpecID uint32
	// ExportSpecID identifies one named export binding.
	ExportSpecID uint32
	// EnumMemberID identifies a member of an enum declaration.
	EnumMemberID uint32
	// PayloadID identifies a payload in one of the per-kind side-table
	// arenas; its meaning is relative to the Kind of the owning node.
	PayloadID uint32
)

const (
	NoFileID          FileID         = 0
	NoItemID          ItemID         = 0
	NoStmtID          StmtID         = 0
	NoExprID          ExprID         = 0
	NoTypeID          TypeID         = 0
	NoParamID         ParamID        = 0
	NoTypeParamID     TypeParamID    = 0
	NoClassMemberID   ClassMemberID  = 0
	NoObjectMemberID  ObjectMemberID = 0
	NoImportSpecID    ImportSpecID   = 0
	NoExportSpecID    ExportSpecID   = 0
	NoEnumMemberID    EnumMemberID   = 0
	NoPayloadID       PayloadID      = 0
)

func (id FileID) IsValid() bool         { return id != NoFileID }
func (id ItemID) IsValid() bool         { return id != NoItemID }
func (id StmtID) IsValid() bool         { return id != NoStmtID }
func (id ExprID) IsValid() bool         { return id != NoExprID }
func (id TypeID) IsValid() bool         { return id != NoTypeID }
func (id ParamID) IsValid() bool        { return id != NoParamID }
func (id TypeParamID) IsValid() bool    { return id != NoTypeParamID }
func (id ClassMemberID) IsValid() bool  { return id != NoClassMemberID }
func (id ObjectMemberID) IsValid() bool { return id != NoObjectMemberID }
func (id ImportSpecID) IsValid() bool   { return id != NoImportSpecID }
func (id ExportSpecID) IsValid() bool   { return id != NoExportSpecID }
func (id EnumMemberID) IsValid() bool   { return id != NoEnumMemberID }
func (id PayloadID) IsValid() bool      { return id != NoPayloadID }
