package codedom

// Factory constructors for the node catalog. High-level generators and
// expanders compose trees exclusively through these.

func NewClass(name string, attrs MemberAttributes) *TypeDecl {
	return &TypeDecl{Name: name, Kind: KindClass, Attributes: attrs}
}

func NewEnum(name string, attrs MemberAttributes) *TypeDecl {
	return &TypeDecl{Name: name, Kind: KindEnum, Attributes: attrs}
}

func NewDelegate(name string, attrs MemberAttributes, ret *TypeRef, params ...*ParamDecl) *DelegateDecl {
	return &DelegateDecl{Name: name, Attributes: attrs, Return: ret, Params: params}
}

func NewField(name string, typ *TypeRef, attrs MemberAttributes) *FieldDecl {
	return &FieldDecl{Name: name, Type: typ, Attributes: attrs}
}

func NewProperty(name string, typ *TypeRef, attrs MemberAttributes) *PropertyDecl {
	return &PropertyDecl{Name: name, Type: typ, Attributes: attrs}
}

func NewMethod(name string, attrs MemberAttributes, ret *TypeRef, params ...*ParamDecl) *MethodDecl {
	return &MethodDecl{Name: name, Attributes: attrs, Return: ret, Params: params}
}

func NewConstructor(attrs MemberAttributes, params ...*ParamDecl) *ConstructorDecl {
	return &ConstructorDecl{Attributes: attrs, Params: params}
}

func NewEvent(name string, typ *TypeRef, attrs MemberAttributes) *EventDecl {
	return &EventDecl{Name: name, Type: typ, Attributes: attrs}
}

func Param(name string, typ *TypeRef) *ParamDecl {
	return &ParamDecl{Name: name, Type: typ}
}

func VariadicParam(name string, typ *TypeRef) *ParamDecl {
	return &ParamDecl{Name: name, Type: typ, Variadic: true}
}

// --- statements --------------------------------------------------------------

func DeclareVar(name string, typ *TypeRef, init Expr) *VarDeclStmt {
	return &VarDeclStmt{Name: name, Type: typ, Init: init}
}

func Assign(left, right Expr) *AssignStmt { return &AssignStmt{Left: left, Right: right} }

func Do(x Expr) *ExprStmt { return &ExprStmt{X: x} }

func If(cond Expr, then ...Stmt) *IfStmt { return &IfStmt{Cond: cond, Then: then} }

func IfElse(cond Expr, then, els []Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func TryFinally(try, finally []Stmt) *TryFinallyStmt {
	return &TryFinallyStmt{Try: try, Finally: finally}
}

func For(init Stmt, cond Expr, post Stmt, body ...Stmt) *ForStmt {
	return &ForStmt{Init: init, Cond: cond, Post: post, Body: body}
}

func Return(result Expr) *ReturnStmt { return &ReturnStmt{Result: result} }

func Throw(x Expr) *ThrowStmt { return &ThrowStmt{X: x} }

// --- expressions -------------------------------------------------------------

func Lit(v any) *LiteralExpr { return &LiteralExpr{Value: v} }

// Null is the null literal.
func Null() *LiteralExpr { return &LiteralExpr{Value: nil} }

func Var(name string) *VarRefExpr { return &VarRefExpr{Name: name} }

func Arg(name string) *ArgRefExpr { return &ArgRefExpr{Name: name} }

func Field(target Expr, name string) *FieldRefExpr {
	return &FieldRefExpr{Target: target, Name: name}
}

func Property(target Expr, name string) *PropertyRefExpr {
	return &PropertyRefExpr{Target: target, Name: name}
}

func Event(target Expr, name string) *EventRefExpr {
	return &EventRefExpr{Target: target, Name: name}
}

func Binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func Not(x Expr) *UnaryExpr { return &UnaryExpr{Op: OpNot, X: x} }

func Invoke(target Expr, method string, args ...Expr) *InvokeExpr {
	return &InvokeExpr{Target: target, Method: method, Args: args}
}

func InvokeDelegate(target Expr, args ...Expr) *DelegateInvokeExpr {
	return &DelegateInvokeExpr{Target: target, Args: args}
}

func New(typ *TypeRef, args ...Expr) *NewExpr { return &NewExpr{Type: typ, Args: args} }

func NewArray(elem *TypeRef, size Expr) *NewArrayExpr {
	return &NewArrayExpr{Elem: elem, Size: size}
}

func Cast(typ *TypeRef, x Expr) *CastExpr { return &CastExpr{Type: typ, X: x} }

func TypeOf(typ *TypeRef) *TypeOfExpr { return &TypeOfExpr{Type: typ} }

func Is(x Expr, typ *TypeRef) *IsExpr { return &IsExpr{X: x, Type: typ} }

func This() *ThisExpr { return &ThisExpr{} }

func Base() *BaseExpr { return &BaseExpr{} }

func TypeExpr(typ *TypeRef) *TypeRefExpr { return &TypeRefExpr{Type: typ} }

func Index(target, index Expr) *IndexExpr { return &IndexExpr{Target: target, Index: index} }

// NotNull builds the canonical `x != null` guard.
func NotNull(x Expr) *BinaryExpr { return Binary(OpNeq, x, Null()) }
