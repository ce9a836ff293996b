package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

var (
	typeObjectDisposed = codedom.Register("ObjectDisposedException", codedom.KindClass)
	typeGC             = codedom.Register("GC", codedom.KindClass)
)

// Disposable expands the disposable mixin for an owning type: a disposed
// flag, the public release method with an idempotence guard, the protected
// virtual core the owner extends, and a throw-if-disposed assertion helper.
type Disposable struct {
	commentable
	owner *codedom.TypeRef

	Field    *codedom.FieldDecl
	Dispose  *codedom.MethodDecl
	Core     *codedom.MethodDecl
	CheckNot *codedom.MethodDecl
}

func NewDisposable(owner *codedom.TypeRef) (*Disposable, error) {
	if owner == nil {
		return nil, &expand.InvalidArgumentError{Name: "owner", Reason: "nil owning type"}
	}
	d := &Disposable{owner: owner}
	d.build()
	d.initComments(d.rebuildComments, "disposed")
	return d, nil
}

func (d *Disposable) build() {
	// Fresh reference nodes per splice site; declarations must not share
	// mutable sub-trees.
	disposed := func() codedom.Expr { return codedom.Field(codedom.This(), "disposed") }

	d.Field = codedom.NewField("disposed", codedom.TypeBool, codedom.Private)
	d.Field.Init = codedom.Lit(false)

	dispose := codedom.NewMethod("Dispose", codedom.Public, codedom.TypeVoid)
	dispose.Body = []codedom.Stmt{
		codedom.If(
			expand.Negate(disposed()),
			codedom.Do(codedom.Invoke(codedom.This(), "Dispose", codedom.Lit(true))),
			codedom.Assign(disposed(), codedom.Lit(true)),
			codedom.Do(codedom.Invoke(codedom.TypeExpr(typeGC), "SuppressFinalize", codedom.This())),
		),
	}
	d.Dispose = dispose

	core := codedom.NewMethod("Dispose", codedom.Family|codedom.Virtual, codedom.TypeVoid,
		codedom.Param("disposing", codedom.TypeBool))
	d.Core = core

	check := codedom.NewMethod("CheckNotDisposed", codedom.Family, codedom.TypeVoid)
	check.Body = []codedom.Stmt{
		codedom.If(
			expand.Truth(disposed()),
			codedom.Throw(codedom.New(typeObjectDisposed, codedom.Lit(d.owner.Name))),
		),
	}
	d.CheckNot = check
}

// Attach adds the mixin members to the owning declaration and marks it
// disposable.
func (d *Disposable) Attach(decl *codedom.TypeDecl) {
	decl.BaseTypes = append(decl.BaseTypes, codedom.TypeIDisposable)
	decl.Members = append(decl.Members, d.Members()...)
}

func (d *Disposable) Members() []codedom.Decl {
	return []codedom.Decl{d.Field, d.Dispose, d.Core, d.CheckNot}
}

func (d *Disposable) rebuildComments(set *doc.Set) {
	set.Add(d.Field,
		doc.Summary{Text: d.narrative("disposed", "True once the instance has been disposed.")},
	)
	set.Add(d.Dispose,
		doc.Summary{Text: sentence("Releases the resources held by this", d.owner.Name, "; repeated calls are ignored")},
	)
	set.Add(d.Core,
		doc.Summary{Text: "Releases resources; override to free owned state."},
		doc.Param{Name: "disposing", Text: "True when called from Dispose rather than a finalizer."},
	)
	set.Add(d.CheckNot,
		doc.Summary{Text: "Throws when the instance has already been disposed."},
		doc.Exception{Type: "ObjectDisposedException", Text: "The instance is disposed."},
	)
}
