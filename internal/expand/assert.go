package expand

import (
	"github.com/cmmoran/patternweave/internal/codedom"
)

// Argument assertion expanders. Each produces a one-shot
// `if (<violated>) throw <specific error>` fragment; none share state.

var (
	typeArgNull        = codedom.Register("ArgumentNullException", codedom.KindClass)
	typeArgException   = codedom.Register("ArgumentException", codedom.KindClass)
	typeArgOutOfRange  = codedom.Register("ArgumentOutOfRangeException", codedom.KindClass)
	typeInvalidEnumArg = codedom.Register("InvalidEnumArgumentException", codedom.KindClass)
	typeEnum           = codedom.Register("Enum", codedom.KindClass)
)

// AssertNotNull throws when the named argument is null.
func AssertNotNull(argName string) codedom.Stmt {
	return codedom.If(
		codedom.Binary(codedom.OpEq, codedom.Arg(argName), codedom.Null()),
		codedom.Throw(codedom.New(typeArgNull, codedom.Lit(argName))),
	)
}

// AssertNotEmpty throws when a string argument is null or empty.
func AssertNotEmpty(argName string) codedom.Stmt {
	return codedom.If(
		codedom.Binary(codedom.OpOr,
			codedom.Binary(codedom.OpEq, codedom.Arg(argName), codedom.Null()),
			codedom.Binary(codedom.OpEq,
				codedom.Property(codedom.Arg(argName), "Length"),
				codedom.Lit(0)),
		),
		codedom.Throw(codedom.New(typeArgException,
			codedom.Lit("argument must not be null or empty"), codedom.Lit(argName))),
	)
}

// AssertInRange throws when the named numeric argument falls outside the
// inclusive [lower, upper] range.
func AssertInRange(argName string, lower, upper codedom.Expr) codedom.Stmt {
	return codedom.If(
		codedom.Binary(codedom.OpOr,
			codedom.Binary(codedom.OpLt, codedom.Arg(argName), lower),
			codedom.Binary(codedom.OpGt, codedom.Arg(argName), upper),
		),
		codedom.Throw(codedom.New(typeArgOutOfRange, codedom.Lit(argName))),
	)
}

// AssertNotInRange throws when the argument does fall inside the inclusive
// [lower, upper] range.
func AssertNotInRange(argName string, lower, upper codedom.Expr) codedom.Stmt {
	return codedom.If(
		codedom.Binary(codedom.OpAnd,
			codedom.Binary(codedom.OpGte, codedom.Arg(argName), lower),
			codedom.Binary(codedom.OpLte, codedom.Arg(argName), upper),
		),
		codedom.Throw(codedom.New(typeArgOutOfRange, codedom.Lit(argName))),
	)
}

// AssertIsInstance throws when the argument is not an instance of typ.
func AssertIsInstance(argName string, typ *codedom.TypeRef) codedom.Stmt {
	return codedom.If(
		codedom.Not(codedom.Is(codedom.Arg(argName), typ)),
		codedom.Throw(codedom.New(typeArgException,
			codedom.Lit("argument must be of type "+typ.Name), codedom.Lit(argName))),
	)
}

// AssertEnumDefined throws when the argument is not a declared member of the
// enum type.
func AssertEnumDefined(argName string, enumType *codedom.TypeRef) codedom.Stmt {
	return codedom.If(
		codedom.Not(codedom.Invoke(codedom.TypeExpr(typeEnum), "IsDefined",
			codedom.TypeOf(enumType), codedom.Arg(argName))),
		codedom.Throw(codedom.New(typeInvalidEnumArg, codedom.Lit(argName))),
	)
}
