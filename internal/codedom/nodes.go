package codedom

// Node is one unit of a generated tree: a declaration, a statement, or an
// expression. Declarations own their statements, statements own their
// expressions; only TypeRef values are shared (interned) across subtrees.
type Node interface {
	node()
}

// Decl is a member-level declaration.
type Decl interface {
	Node
	decl()
	DocLines() []string
	SetDoc(lines []string)
}

// Stmt is an imperative statement.
type Stmt interface {
	Node
	stmt()
}

// Expr is a value-producing expression.
type Expr interface {
	Node
	expr()
}

// MemberAttributes is the visibility / modifier bitmask carried by every
// declaration.
type MemberAttributes uint16

const (
	Private MemberAttributes = 1 << iota
	Family                   // protected
	Public
	Static
	Override
	Virtual
	Abstract
	Final
)

func (a MemberAttributes) Has(flag MemberAttributes) bool { return a&flag != 0 }

// docHolder carries compiled documentation lines for a declaration. The doc
// package attaches them; renderers only read.
type docHolder struct {
	doc []string
}

func (d *docHolder) DocLines() []string    { return d.doc }
func (d *docHolder) SetDoc(lines []string) { d.doc = lines }

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

// TypeDecl declares a class, struct, interface, enum or nested type.
type TypeDecl struct {
	docHolder
	Name        string
	Kind        TypeKind
	Attributes  MemberAttributes
	BaseTypes   []*TypeRef
	Members     []Decl
	CustomAttrs []*AttributeUse
}

// DelegateDecl declares a delegate type (a named callable signature).
type DelegateDecl struct {
	docHolder
	Name       string
	Attributes MemberAttributes
	Return     *TypeRef
	Params     []*ParamDecl
}

type FieldDecl struct {
	docHolder
	Name       string
	Type       *TypeRef
	Attributes MemberAttributes
	Init       Expr
}

// PropertyDecl declares a property; with Params it is an indexer.
type PropertyDecl struct {
	docHolder
	Name       string
	Type       *TypeRef
	Attributes MemberAttributes
	Params     []*ParamDecl
	Get        []Stmt
	Set        []Stmt
	HasGet     bool
	HasSet     bool
}

type MethodDecl struct {
	docHolder
	Name       string
	Attributes MemberAttributes
	Return     *TypeRef
	Params     []*ParamDecl
	Body       []Stmt
}

type ConstructorDecl struct {
	docHolder
	Attributes MemberAttributes
	Params     []*ParamDecl
	// BaseArgs / ChainArgs feed the base(...) or this(...) initializer.
	BaseArgs  []Expr
	ChainArgs []Expr
	HasChain  bool
	Body      []Stmt
}

type EventDecl struct {
	docHolder
	Name       string
	Type       *TypeRef
	Attributes MemberAttributes
}

// EnumMemberDecl declares one member of an enum type.
type EnumMemberDecl struct {
	docHolder
	Name  string
	Value Expr
}

// ParamDecl declares one parameter of a method, constructor or delegate.
type ParamDecl struct {
	Name     string
	Type     *TypeRef
	Variadic bool
}

// AttributeUse is one custom-attribute application on a declaration.
type AttributeUse struct {
	Type *TypeRef
	Args []AttributeArg
}

// AttributeArg is a (possibly named) attribute argument.
type AttributeArg struct {
	Name  string
	Value Expr
}

func (*TypeDecl) node()        {}
func (*DelegateDecl) node()    {}
func (*FieldDecl) node()       {}
func (*PropertyDecl) node()    {}
func (*MethodDecl) node()      {}
func (*ConstructorDecl) node() {}
func (*EventDecl) node()       {}
func (*EnumMemberDecl) node()  {}

func (*TypeDecl) decl()        {}
func (*DelegateDecl) decl()    {}
func (*FieldDecl) decl()       {}
func (*PropertyDecl) decl()    {}
func (*MethodDecl) decl()      {}
func (*ConstructorDecl) decl() {}
func (*EventDecl) decl()       {}
func (*EnumMemberDecl) decl()  {}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

type VarDeclStmt struct {
	Name string
	Type *TypeRef
	Init Expr
}

type AssignStmt struct {
	Left  Expr
	Right Expr
}

type ExprStmt struct {
	X Expr
}

type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

type TryFinallyStmt struct {
	Try     []Stmt
	Finally []Stmt
}

// ForStmt is the single-condition loop shape used by the iteration expander.
// Init and Post may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Stmt
	Body []Stmt
}

type ReturnStmt struct {
	Result Expr // nil for bare return
}

type ThrowStmt struct {
	X Expr
}

func (*VarDeclStmt) node()    {}
func (*AssignStmt) node()     {}
func (*ExprStmt) node()       {}
func (*IfStmt) node()         {}
func (*TryFinallyStmt) node() {}
func (*ForStmt) node()        {}
func (*ReturnStmt) node()     {}
func (*ThrowStmt) node()      {}

func (*VarDeclStmt) stmt()    {}
func (*AssignStmt) stmt()     {}
func (*ExprStmt) stmt()       {}
func (*IfStmt) stmt()         {}
func (*TryFinallyStmt) stmt() {}
func (*ForStmt) stmt()        {}
func (*ReturnStmt) stmt()     {}
func (*ThrowStmt) stmt()      {}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

type BinaryOp int

const (
	OpEq BinaryOp = iota + 1
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpBitOr
)

type UnaryOp int

const (
	OpNot UnaryOp = iota + 1
)

// LiteralExpr holds a literal; a nil Value renders as the null literal.
type LiteralExpr struct {
	Value any
}

type VarRefExpr struct {
	Name string
}

// ArgRefExpr references a parameter of the enclosing member.
type ArgRefExpr struct {
	Name string
}

type FieldRefExpr struct {
	Target Expr // nil for implicit
	Name   string
}

type PropertyRefExpr struct {
	Target Expr
	Name   string
}

type EventRefExpr struct {
	Target Expr
	Name   string
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

// InvokeExpr calls a named method on Target (nil Target for implicit).
type InvokeExpr struct {
	Target Expr
	Method string
	Args   []Expr
}

// DelegateInvokeExpr invokes a delegate-valued expression directly.
type DelegateInvokeExpr struct {
	Target Expr
	Args   []Expr
}

type NewExpr struct {
	Type *TypeRef
	Args []Expr
}

type NewArrayExpr struct {
	Elem  *TypeRef
	Size  Expr
	Items []Expr
}

type CastExpr struct {
	Type *TypeRef
	X    Expr
}

type TypeOfExpr struct {
	Type *TypeRef
}

// IsExpr tests whether X is an instance of Type.
type IsExpr struct {
	X    Expr
	Type *TypeRef
}

type ThisExpr struct{}

type BaseExpr struct{}

// TypeRefExpr references a type as an expression (static member access).
type TypeRefExpr struct {
	Type *TypeRef
}

type IndexExpr struct {
	Target Expr
	Index  Expr
}

func (*LiteralExpr) node()        {}
func (*VarRefExpr) node()         {}
func (*ArgRefExpr) node()         {}
func (*FieldRefExpr) node()       {}
func (*PropertyRefExpr) node()    {}
func (*EventRefExpr) node()       {}
func (*BinaryExpr) node()         {}
func (*UnaryExpr) node()          {}
func (*InvokeExpr) node()         {}
func (*DelegateInvokeExpr) node() {}
func (*NewExpr) node()            {}
func (*NewArrayExpr) node()       {}
func (*CastExpr) node()           {}
func (*TypeOfExpr) node()         {}
func (*IsExpr) node()             {}
func (*ThisExpr) node()           {}
func (*BaseExpr) node()           {}
func (*TypeRefExpr) node()        {}
func (*IndexExpr) node()          {}

func (*LiteralExpr) expr()        {}
func (*VarRefExpr) expr()         {}
func (*ArgRefExpr) expr()         {}
func (*FieldRefExpr) expr()       {}
func (*PropertyRefExpr) expr()    {}
func (*EventRefExpr) expr()       {}
func (*BinaryExpr) expr()         {}
func (*UnaryExpr) expr()          {}
func (*InvokeExpr) expr()         {}
func (*DelegateInvokeExpr) expr() {}
func (*NewExpr) expr()            {}
func (*NewArrayExpr) expr()       {}
func (*CastExpr) expr()           {}
func (*TypeOfExpr) expr()         {}
func (*IsExpr) expr()             {}
func (*ThisExpr) expr()           {}
func (*BaseExpr) expr()           {}
func (*TypeRefExpr) expr()        {}
func (*IndexExpr) expr()          {}
