package expand

import (
	"github.com/cmmoran/patternweave/internal/codedom"
)

// ResourceCategory tells the scoped-resource expander whether the resource
// can be null.
type ResourceCategory int

const (
	// ResourceReference resources may be null; release is guarded.
	ResourceReference ResourceCategory = iota
	// ResourceValue resources can never be null; release is unconditional.
	ResourceValue
)

// Using expands the scoped-resource idiom: declare a holder for the resource
// expression, splice body into a try block, and release in finally. The
// holder gets a synthetic name so repeated expansions in one member never
// collide.
func Using(names *Names, resource codedom.Expr, typ *codedom.TypeRef, category ResourceCategory, body ...codedom.Stmt) ([]codedom.Stmt, error) {
	if resource == nil {
		return nil, &InvalidArgumentError{Name: "resource", Reason: "nil resource expression"}
	}
	if typ == nil {
		return nil, &InvalidArgumentError{Name: "typ", Reason: "nil resource type"}
	}

	holder := names.Next("resource")
	out := []codedom.Stmt{
		codedom.DeclareVar(holder, typ, resource),
	}
	out = append(out, wrapRelease(holder, category, body))
	return out, nil
}

// UsingVar wraps an already-declared resource variable: no new declaration
// is emitted, only the try/finally.
func UsingVar(varName string, category ResourceCategory, body ...codedom.Stmt) ([]codedom.Stmt, error) {
	if varName == "" {
		return nil, &InvalidArgumentError{Name: "varName", Reason: "empty resource variable name"}
	}
	return []codedom.Stmt{wrapRelease(varName, category, body)}, nil
}

func wrapRelease(holder string, category ResourceCategory, body []codedom.Stmt) codedom.Stmt {
	release := codedom.Do(codedom.Invoke(codedom.Var(holder), "Dispose"))

	var finally []codedom.Stmt
	if category == ResourceValue {
		finally = []codedom.Stmt{release}
	} else {
		finally = []codedom.Stmt{
			codedom.If(codedom.NotNull(codedom.Var(holder)), release),
		}
	}
	return codedom.TryFinally(body, finally)
}
