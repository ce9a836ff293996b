// Package render walks a codedom tree and prints it as source text in the
// target imperative language. It is a pure, deterministic tree-to-text pass;
// all decisions about tree shape belong upstream.
package render

import (
	"fmt"
	"strings"

	"github.com/cmmoran/patternweave/internal/codedom"
)

// Decls renders a sequence of top-level declarations separated by blank
// lines.
func Decls(decls []codedom.Decl) string {
	w := &writer{}
	for i, d := range decls {
		if i > 0 {
			w.blank()
		}
		w.decl(d)
	}
	return w.String()
}

// Decl renders a single declaration.
func Decl(d codedom.Decl) string {
	w := &writer{}
	w.decl(d)
	return w.String()
}

// Stmts renders a statement sequence at zero indentation.
func Stmts(stmts []codedom.Stmt) string {
	w := &writer{}
	for _, s := range stmts {
		w.stmt(s)
	}
	return w.String()
}

type writer struct {
	b      strings.Builder
	indent int
	// owner is the enclosing type name; constructors render under it.
	owner string
}

func (w *writer) String() string { return w.b.String() }

func (w *writer) line(format string, args ...any) {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("    ")
	}
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) blank() { w.b.WriteByte('\n') }

func (w *writer) docs(d codedom.Decl) {
	for _, l := range d.DocLines() {
		w.line("/// %s", l)
	}
}

func (w *writer) attrs(uses []*codedom.AttributeUse) {
	for _, u := range uses {
		name := strings.TrimSuffix(u.Type.Name, "Attribute")
		if len(u.Args) == 0 {
			w.line("[%s()]", name)
			continue
		}
		parts := make([]string, len(u.Args))
		for i, a := range u.Args {
			if a.Name != "" {
				parts[i] = a.Name + "=" + expr(a.Value)
			} else {
				parts[i] = expr(a.Value)
			}
		}
		w.line("[%s(%s)]", name, strings.Join(parts, ", "))
	}
}

func modifiers(a codedom.MemberAttributes) string {
	var out []string
	switch {
	case a.Has(codedom.Public):
		out = append(out, "public")
	case a.Has(codedom.Family):
		out = append(out, "protected")
	case a.Has(codedom.Private):
		out = append(out, "private")
	}
	if a.Has(codedom.Static) {
		out = append(out, "static")
	}
	if a.Has(codedom.Final) {
		out = append(out, "sealed")
	}
	if a.Has(codedom.Abstract) {
		out = append(out, "abstract")
	}
	if a.Has(codedom.Virtual) {
		out = append(out, "virtual")
	}
	if a.Has(codedom.Override) {
		out = append(out, "override")
	}
	return strings.Join(out, " ")
}

func (w *writer) decl(d codedom.Decl) {
	switch v := d.(type) {
	case *codedom.TypeDecl:
		w.typeDecl(v)
	case *codedom.DelegateDecl:
		w.docs(v)
		w.line("%s delegate %s %s(%s);", modifiers(v.Attributes), typeName(v.Return), v.Name, params(v.Params))
	case *codedom.FieldDecl:
		w.docs(v)
		if v.Init != nil {
			w.line("%s %s %s = %s;", modifiers(v.Attributes), typeName(v.Type), v.Name, expr(v.Init))
		} else {
			w.line("%s %s %s;", modifiers(v.Attributes), typeName(v.Type), v.Name)
		}
	case *codedom.PropertyDecl:
		w.property(v)
	case *codedom.MethodDecl:
		w.docs(v)
		w.line("%s %s %s(%s)", modifiers(v.Attributes), typeName(v.Return), v.Name, params(v.Params))
		w.block(v.Body)
	case *codedom.ConstructorDecl:
		w.ctor(v)
	case *codedom.EventDecl:
		w.docs(v)
		w.line("%s event %s %s;", modifiers(v.Attributes), typeName(v.Type), v.Name)
	case *codedom.EnumMemberDecl:
		w.docs(v)
		w.line("%s = %s,", v.Name, expr(v.Value))
	}
}

func (w *writer) typeDecl(v *codedom.TypeDecl) {
	w.docs(v)
	w.attrs(v.CustomAttrs)

	keyword := "class"
	if v.Kind == codedom.KindEnum {
		keyword = "enum"
	} else if v.Kind == codedom.KindStruct {
		keyword = "struct"
	}
	header := fmt.Sprintf("%s %s %s", modifiers(v.Attributes), keyword, v.Name)
	if len(v.BaseTypes) > 0 {
		names := make([]string, len(v.BaseTypes))
		for i, b := range v.BaseTypes {
			names[i] = typeName(b)
		}
		header += " : " + strings.Join(names, ", ")
	}
	w.line("%s", header)
	w.line("{")
	w.indent++
	prevOwner := w.owner
	w.owner = v.Name
	for i, m := range v.Members {
		if i > 0 {
			w.blank()
		}
		w.decl(m)
	}
	w.owner = prevOwner
	w.indent--
	w.line("}")
}

func (w *writer) property(v *codedom.PropertyDecl) {
	w.docs(v)
	if len(v.Params) > 0 {
		w.line("%s %s this[%s]", modifiers(v.Attributes), typeName(v.Type), params(v.Params))
	} else {
		w.line("%s %s %s", modifiers(v.Attributes), typeName(v.Type), v.Name)
	}
	w.line("{")
	w.indent++
	if v.HasGet {
		w.line("get")
		w.block(v.Get)
	}
	if v.HasSet {
		w.line("set")
		w.block(v.Set)
	}
	w.indent--
	w.line("}")
}

func (w *writer) ctor(v *codedom.ConstructorDecl) {
	w.docs(v)
	head := fmt.Sprintf("%s %s(%s)", modifiers(v.Attributes), w.owner, params(v.Params))
	if v.Attributes.Has(codedom.Static) {
		// static initializers take no modifiers and no chain
		head = fmt.Sprintf("static %s()", w.owner)
	}
	switch {
	case len(v.BaseArgs) > 0:
		head += " : base(" + exprList(v.BaseArgs) + ")"
	case v.HasChain:
		head += " : this(" + exprList(v.ChainArgs) + ")"
	}
	w.line("%s", head)
	w.block(v.Body)
}

func (w *writer) block(stmts []codedom.Stmt) {
	w.line("{")
	w.indent++
	for _, s := range stmts {
		w.stmt(s)
	}
	w.indent--
	w.line("}")
}

func (w *writer) stmt(s codedom.Stmt) {
	switch v := s.(type) {
	case *codedom.VarDeclStmt:
		if v.Init != nil {
			w.line("%s %s = %s;", typeName(v.Type), v.Name, expr(v.Init))
		} else {
			w.line("%s %s;", typeName(v.Type), v.Name)
		}
	case *codedom.AssignStmt:
		w.line("%s = %s;", expr(v.Left), expr(v.Right))
	case *codedom.ExprStmt:
		w.line("%s;", expr(v.X))
	case *codedom.IfStmt:
		w.line("if (%s)", expr(v.Cond))
		w.block(v.Then)
		if len(v.Else) > 0 {
			w.line("else")
			w.block(v.Else)
		}
	case *codedom.TryFinallyStmt:
		w.line("try")
		w.block(v.Try)
		w.line("finally")
		w.block(v.Finally)
	case *codedom.ForStmt:
		init, post := "", ""
		if v.Init != nil {
			init = strings.TrimSuffix(strings.TrimSpace(Stmts([]codedom.Stmt{v.Init})), ";")
		}
		if v.Post != nil {
			post = strings.TrimSuffix(strings.TrimSpace(Stmts([]codedom.Stmt{v.Post})), ";")
		}
		w.line("for (%s; %s; %s)", init, expr(v.Cond), post)
		w.block(v.Body)
	case *codedom.ReturnStmt:
		if v.Result != nil {
			w.line("return %s;", expr(v.Result))
		} else {
			w.line("return;")
		}
	case *codedom.ThrowStmt:
		w.line("throw %s;", expr(v.X))
	}
}

func params(ps []*codedom.ParamDecl) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		if p.Variadic {
			parts[i] = "params " + typeName(p.Type) + " " + p.Name
		} else {
			parts[i] = typeName(p.Type) + " " + p.Name
		}
	}
	return strings.Join(parts, ", ")
}

func typeName(t *codedom.TypeRef) string {
	if t == nil {
		return "void"
	}
	return t.Name
}

var binaryOps = map[codedom.BinaryOp]string{
	codedom.OpEq:    "==",
	codedom.OpNeq:   "!=",
	codedom.OpLt:    "<",
	codedom.OpLte:   "<=",
	codedom.OpGt:    ">",
	codedom.OpGte:   ">=",
	codedom.OpAnd:   "&&",
	codedom.OpOr:    "||",
	codedom.OpAdd:   "+",
	codedom.OpSub:   "-",
	codedom.OpBitOr: "|",
}

func expr(e codedom.Expr) string {
	switch v := e.(type) {
	case *codedom.LiteralExpr:
		return literal(v.Value)
	case *codedom.VarRefExpr:
		return v.Name
	case *codedom.ArgRefExpr:
		return v.Name
	case *codedom.FieldRefExpr:
		return member(v.Target, v.Name)
	case *codedom.PropertyRefExpr:
		return member(v.Target, v.Name)
	case *codedom.EventRefExpr:
		return member(v.Target, v.Name)
	case *codedom.BinaryExpr:
		return "(" + expr(v.Left) + " " + binaryOps[v.Op] + " " + expr(v.Right) + ")"
	case *codedom.UnaryExpr:
		return "!(" + expr(v.X) + ")"
	case *codedom.InvokeExpr:
		return member(v.Target, v.Method) + "(" + exprList(v.Args) + ")"
	case *codedom.DelegateInvokeExpr:
		return expr(v.Target) + "(" + exprList(v.Args) + ")"
	case *codedom.NewExpr:
		return "new " + typeName(v.Type) + "(" + exprList(v.Args) + ")"
	case *codedom.NewArrayExpr:
		return "new " + typeName(v.Elem) + "[" + expr(v.Size) + "]"
	case *codedom.CastExpr:
		return "((" + typeName(v.Type) + ")(" + expr(v.X) + "))"
	case *codedom.TypeOfExpr:
		return "typeof(" + typeName(v.Type) + ")"
	case *codedom.IsExpr:
		return "(" + expr(v.X) + " is " + typeName(v.Type) + ")"
	case *codedom.ThisExpr:
		return "this"
	case *codedom.BaseExpr:
		return "base"
	case *codedom.TypeRefExpr:
		return typeName(v.Type)
	case *codedom.IndexExpr:
		return expr(v.Target) + "[" + expr(v.Index) + "]"
	}
	return ""
}

func member(target codedom.Expr, name string) string {
	if target == nil {
		return name
	}
	return expr(target) + "." + name
}

func exprList(es []codedom.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = expr(e)
	}
	return strings.Join(parts, ", ")
}

func literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
