package expand

import (
	"fmt"

	"github.com/cmmoran/patternweave/internal/codedom"
)

// EnumeratorClass is the four-way disposal classification of an enumerator's
// static type. It is computed once per expansion and matched exhaustively.
type EnumeratorClass int

const (
	// EnumeratorInterface: static type is an interface; disposability is
	// unknowable statically, so release is guarded by not-null AND an
	// is-disposable test.
	EnumeratorInterface EnumeratorClass = iota
	// EnumeratorDisposableValue: concrete value type implementing the
	// disposable capability; release is unconditional.
	EnumeratorDisposableValue
	// EnumeratorDisposableReference: concrete reference type implementing
	// the disposable capability; release is guarded by not-null only.
	EnumeratorDisposableReference
	// EnumeratorPlain: no disposable capability; no try/finally at all.
	EnumeratorPlain
)

// ClassifyEnumerator maps an enumerator type onto its disposal class. A type
// whose kind is unknown fits none of the four cases and is rejected rather
// than guessed at.
func ClassifyEnumerator(t *codedom.TypeRef) (EnumeratorClass, error) {
	if t == nil {
		return 0, &InvalidArgumentError{Name: "enumerator", Reason: "nil enumerator type"}
	}
	disposable := t.ImplementsInterface(codedom.TypeIDisposable.Name)
	switch t.Kind {
	case codedom.KindInterface:
		return EnumeratorInterface, nil
	case codedom.KindStruct:
		if disposable {
			return EnumeratorDisposableValue, nil
		}
		return EnumeratorPlain, nil
	case codedom.KindClass:
		if disposable {
			return EnumeratorDisposableReference, nil
		}
		return EnumeratorPlain, nil
	default:
		return 0, &ConfigError{Reason: fmt.Sprintf("enumerator type %q has no statically known shape", t.Name)}
	}
}

// ForEach expands the iteration idiom over collection using the host's plain
// enumerator interface as the enumerator's static type.
func ForEach(names *Names, elementName string, elementType *codedom.TypeRef, collection codedom.Expr, body ...codedom.Stmt) ([]codedom.Stmt, error) {
	return ForEachWith(names, elementName, elementType, codedom.TypeIEnumerator, collection, body...)
}

// ForEachWith expands the iteration idiom with an explicit enumerator type
// override: declare the enumerator, loop while advance returns true, declare
// the element inside the body by casting the enumerator's current value, and
// wrap in try/finally according to the enumerator's disposal class.
func ForEachWith(names *Names, elementName string, elementType, enumeratorType *codedom.TypeRef, collection codedom.Expr, body ...codedom.Stmt) ([]codedom.Stmt, error) {
	if elementName == "" {
		return nil, &InvalidArgumentError{Name: "elementName", Reason: "empty element name"}
	}
	if elementType == nil {
		return nil, &InvalidArgumentError{Name: "elementType", Reason: "nil element type"}
	}
	if collection == nil {
		return nil, &InvalidArgumentError{Name: "collection", Reason: "nil collection expression"}
	}
	class, err := ClassifyEnumerator(enumeratorType)
	if err != nil {
		return nil, err
	}

	en := names.Next("enumerator")
	decl := codedom.DeclareVar(en, enumeratorType, codedom.Invoke(collection, "GetEnumerator"))

	loopBody := make([]codedom.Stmt, 0, len(body)+1)
	loopBody = append(loopBody, codedom.DeclareVar(
		elementName,
		elementType,
		codedom.Cast(elementType, codedom.Property(codedom.Var(en), "Current")),
	))
	loopBody = append(loopBody, body...)

	loop := codedom.For(nil, codedom.Invoke(codedom.Var(en), "MoveNext"), nil, loopBody...)

	release := codedom.Do(codedom.Invoke(codedom.Var(en), "Dispose"))

	switch class {
	case EnumeratorInterface:
		guarded := codedom.Do(codedom.Invoke(
			codedom.Cast(codedom.TypeIDisposable, codedom.Var(en)), "Dispose"))
		return []codedom.Stmt{
			decl,
			codedom.TryFinally(
				[]codedom.Stmt{loop},
				[]codedom.Stmt{codedom.If(
					codedom.Binary(codedom.OpAnd,
						codedom.NotNull(codedom.Var(en)),
						codedom.Is(codedom.Var(en), codedom.TypeIDisposable),
					),
					guarded,
				)},
			),
		}, nil

	case EnumeratorDisposableValue:
		return []codedom.Stmt{
			decl,
			codedom.TryFinally([]codedom.Stmt{loop}, []codedom.Stmt{release}),
		}, nil

	case EnumeratorDisposableReference:
		return []codedom.Stmt{
			decl,
			codedom.TryFinally(
				[]codedom.Stmt{loop},
				[]codedom.Stmt{codedom.If(codedom.NotNull(codedom.Var(en)), release)},
			),
		}, nil

	default: // EnumeratorPlain
		return []codedom.Stmt{decl, loop}, nil
	}
}
