package expand

import (
	"github.com/cmmoran/patternweave/internal/codedom"
)

// Truth normalizes an arbitrary expression into an explicit boolean
// comparison. Comparisons and logical operators pass through untouched;
// anything else becomes `x == true`.
func Truth(x codedom.Expr) codedom.Expr {
	if b, ok := x.(*codedom.BinaryExpr); ok && isBoolean(b.Op) {
		return x
	}
	return codedom.Binary(codedom.OpEq, x, codedom.Lit(true))
}

// Negate builds the logical negation of x. Comparisons are inverted by
// flipping the operator; other expressions become `x == false`.
func Negate(x codedom.Expr) codedom.Expr {
	if b, ok := x.(*codedom.BinaryExpr); ok {
		if inv, ok := inverted[b.Op]; ok {
			return codedom.Binary(inv, b.Left, b.Right)
		}
	}
	if u, ok := x.(*codedom.UnaryExpr); ok && u.Op == codedom.OpNot {
		return Truth(u.X)
	}
	return codedom.Binary(codedom.OpEq, x, codedom.Lit(false))
}

var inverted = map[codedom.BinaryOp]codedom.BinaryOp{
	codedom.OpEq:  codedom.OpNeq,
	codedom.OpNeq: codedom.OpEq,
	codedom.OpLt:  codedom.OpGte,
	codedom.OpGte: codedom.OpLt,
	codedom.OpGt:  codedom.OpLte,
	codedom.OpLte: codedom.OpGt,
}

func isBoolean(op codedom.BinaryOp) bool {
	switch op {
	case codedom.OpEq, codedom.OpNeq, codedom.OpLt, codedom.OpLte,
		codedom.OpGt, codedom.OpGte, codedom.OpAnd, codedom.OpOr:
		return true
	}
	return false
}
