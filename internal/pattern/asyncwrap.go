package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

var typeInvalidOperation = codedom.Register("InvalidOperationException", codedom.KindClass)

// AsyncOperation wraps a synchronous target method in the begin/end
// asynchronous idiom: a private delegate mirroring the target's signature, a
// lazily created delegate instance, a begin method taking a completion
// callback, a begin overload without one, and an end method that forwards to
// the delegate's completion call.
type AsyncOperation struct {
	commentable
	method string
	ret    *codedom.TypeRef
	params []FieldSpec
	owner  *codedom.TypeRef
	scope  Scope

	Delegate *codedom.DelegateDecl
	Field    *codedom.FieldDecl
	Begin    *codedom.MethodDecl
	BeginCue *codedom.MethodDecl // overload without callback/state
	End      *codedom.MethodDecl
}

// NewAsyncOperation wraps methodName(params) ret on owner. A void target
// uses codedom.TypeVoid as ret.
func NewAsyncOperation(methodName string, ret *codedom.TypeRef, params []FieldSpec, owner *codedom.TypeRef, scope Scope) (*AsyncOperation, error) {
	if methodName == "" {
		return nil, &expand.InvalidArgumentError{Name: "methodName", Reason: "empty method name"}
	}
	if ret == nil {
		return nil, &expand.InvalidArgumentError{Name: "ret", Reason: "nil return type; use void explicitly"}
	}
	if owner == nil {
		return nil, &expand.InvalidArgumentError{Name: "owner", Reason: "nil owning type"}
	}
	for _, p := range params {
		if p.Name == "" || p.Type == nil {
			return nil, &expand.InvalidArgumentError{Name: "params", Reason: "parameter with empty name or nil type"}
		}
	}

	a := &AsyncOperation{
		method: upperFirst(methodName),
		ret:    ret,
		params: params,
		owner:  owner,
		scope:  scope,
	}
	a.build()
	a.initComments(a.rebuildComments, a.fieldName())
	return a, nil
}

func (a *AsyncOperation) delegateName() string { return a.method + "Delegate" }
func (a *AsyncOperation) fieldName() string    { return lowerFirst(a.method) + "Delegate" }

func (a *AsyncOperation) paramDecls() []*codedom.ParamDecl {
	out := make([]*codedom.ParamDecl, len(a.params))
	for i, p := range a.params {
		out[i] = codedom.Param(p.Name, p.Type)
	}
	return out
}

func (a *AsyncOperation) argRefs() []codedom.Expr {
	out := make([]codedom.Expr, len(a.params))
	for i, p := range a.params {
		out[i] = codedom.Arg(p.Name)
	}
	return out
}

func (a *AsyncOperation) build() {
	delegateType := codedom.Type(a.delegateName())
	// Fresh reference nodes per splice site; declarations must not share
	// mutable sub-trees.
	fieldRef := func() codedom.Expr { return codedom.Field(Self(a.scope, a.owner), a.fieldName()) }

	a.Delegate = codedom.NewDelegate(a.delegateName(), codedom.Private, a.ret, a.paramDecls()...)

	a.Field = codedom.NewField(a.fieldName(), delegateType, codedom.Private|staticFlag(a.scope))

	begin := codedom.NewMethod("Begin"+a.method, codedom.Public|staticFlag(a.scope), codedom.TypeIAsyncResult,
		append(a.paramDecls(),
			codedom.Param("callback", codedom.TypeAsyncCallback),
			codedom.Param("state", codedom.TypeObject))...)
	begin.Body = []codedom.Stmt{
		codedom.If(
			codedom.Binary(codedom.OpEq, fieldRef(), codedom.Null()),
			codedom.Assign(fieldRef(), codedom.New(delegateType,
				codedom.Field(Self(a.scope, a.owner), a.method))),
		),
		codedom.Return(codedom.Invoke(fieldRef(), "BeginInvoke",
			append(a.argRefs(), codedom.Arg("callback"), codedom.Arg("state"))...)),
	}
	a.Begin = begin

	cue := codedom.NewMethod("Begin"+a.method, codedom.Public|staticFlag(a.scope), codedom.TypeIAsyncResult,
		a.paramDecls()...)
	cue.Body = []codedom.Stmt{
		codedom.Return(codedom.Invoke(Self(a.scope, a.owner), "Begin"+a.method,
			append(a.argRefs(), codedom.Null(), codedom.Null())...)),
	}
	a.BeginCue = cue

	end := codedom.NewMethod("End"+a.method, codedom.Public|staticFlag(a.scope), a.ret,
		codedom.Param("asyncResult", codedom.TypeIAsyncResult))
	completion := codedom.Invoke(fieldRef(), "EndInvoke", codedom.Arg("asyncResult"))
	var tail codedom.Stmt
	if a.ret == codedom.TypeVoid {
		tail = codedom.Do(completion)
	} else {
		tail = codedom.Return(completion)
	}
	end.Body = []codedom.Stmt{
		codedom.If(
			codedom.Binary(codedom.OpEq, fieldRef(), codedom.Null()),
			codedom.Throw(codedom.New(typeInvalidOperation,
				codedom.Lit("End"+a.method+" called before Begin"+a.method))),
		),
		tail,
	}
	a.End = end
}

// Members returns the generated declarations in order: delegate, field,
// begin, begin overload, end.
func (a *AsyncOperation) Members() []codedom.Decl {
	return []codedom.Decl{a.Delegate, a.Field, a.Begin, a.BeginCue, a.End}
}

func (a *AsyncOperation) rebuildComments(set *doc.Set) {
	set.Add(a.Delegate,
		doc.Summary{Text: sentence("Mirrors the signature of", a.method, "for asynchronous invocation")},
	)
	set.Add(a.Field,
		doc.Summary{Text: a.narrative(a.fieldName(), sentence("Delegate bound to", a.method, "; created on first Begin"+a.method, "call"))},
	)
	set.Add(a.Begin,
		doc.Summary{Text: sentence("Starts", a.method, "asynchronously")},
		doc.Param{Name: "callback", Text: "Invoked when the operation completes; may be null."},
		doc.Param{Name: "state", Text: "Caller state passed through to the callback."},
		doc.Returns{Text: sentence("A handle to pass to End" + a.method)},
	)
	set.Add(a.BeginCue,
		doc.Summary{Text: sentence("Starts", a.method, "asynchronously without a completion callback")},
		doc.Returns{Text: sentence("A handle to pass to End" + a.method)},
	)
	endEntries := []doc.Entry{
		doc.Summary{Text: sentence("Completes an asynchronous", a.method, "call, blocking until it finishes")},
		doc.Param{Name: "asyncResult", Text: sentence("The handle returned by Begin" + a.method)},
		doc.Exception{Type: typeInvalidOperation.Name, Text: sentence("No Begin" + a.method, "call preceded this call")},
	}
	if a.ret != codedom.TypeVoid {
		endEntries = append(endEntries, doc.Returns{Text: sentence("The", a.method, "result")})
	}
	set.Add(a.End, endEntries...)
}
