package expand

import (
	"github.com/cmmoran/patternweave/internal/codedom"
)

var typeMonitor = codedom.Register("System.Threading.Monitor", codedom.KindClass)

// Lock expands the mutual-exclusion idiom. The guarded expression is cached
// in a synthetic local first so acquire and release always operate on the
// same object identity, even when the expression is a property read.
func Lock(names *Names, target codedom.Expr, body ...codedom.Stmt) ([]codedom.Stmt, error) {
	if target == nil {
		return nil, &InvalidArgumentError{Name: "target", Reason: "nil synchronization expression"}
	}

	holder := names.Next("syncTemp")
	return []codedom.Stmt{
		codedom.DeclareVar(holder, codedom.TypeObject, target),
		codedom.Do(codedom.Invoke(codedom.TypeExpr(typeMonitor), "Enter", codedom.Var(holder))),
		codedom.TryFinally(body, []codedom.Stmt{
			codedom.Do(codedom.Invoke(codedom.TypeExpr(typeMonitor), "Exit", codedom.Var(holder))),
		}),
	}, nil
}
