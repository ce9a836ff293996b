package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

// ProcessGuard expands the begin/end reentrancy-guard idiom: a counter
// field, a begin method that increments it, an end method that decrements
// only when positive (extra end calls are absorbed, the counter never goes
// negative), and a protected is-active predicate.
type ProcessGuard struct {
	commentable
	process string
	owner   *codedom.TypeRef
	scope   Scope

	Field     *codedom.FieldDecl
	Begin     *codedom.MethodDecl
	End       *codedom.MethodDecl
	Predicate *codedom.MethodDecl
}

// NewProcessGuard builds a guard for the named process, e.g. "Load" yields
// BeginLoad / EndLoad / IsLoading.
func NewProcessGuard(process, predicateName string, owner *codedom.TypeRef, scope Scope) (*ProcessGuard, error) {
	if process == "" {
		return nil, &expand.InvalidArgumentError{Name: "process", Reason: "empty process name"}
	}
	if owner == nil {
		return nil, &expand.InvalidArgumentError{Name: "owner", Reason: "nil owning type"}
	}
	if predicateName == "" {
		predicateName = "Is" + upperFirst(process) + "ing"
	}

	g := &ProcessGuard{process: upperFirst(process), owner: owner, scope: scope}
	g.build(predicateName)
	g.initComments(g.rebuildComments, g.counterName())
	return g, nil
}

func (g *ProcessGuard) counterName() string { return lowerFirst(g.process) + "Count" }

// counter builds a fresh reference to the counter field. Every splice site
// gets its own node; declarations never share mutable sub-trees.
func (g *ProcessGuard) counter() codedom.Expr {
	return codedom.Field(Self(g.scope, g.owner), g.counterName())
}

func (g *ProcessGuard) build(predicateName string) {
	g.Field = codedom.NewField(g.counterName(), codedom.TypeInt, codedom.Private|staticFlag(g.scope))
	g.Field.Init = codedom.Lit(0)

	begin := codedom.NewMethod("Begin"+g.process, codedom.Public|staticFlag(g.scope), codedom.TypeVoid)
	begin.Body = []codedom.Stmt{
		codedom.Assign(g.counter(), codedom.Binary(codedom.OpAdd, g.counter(), codedom.Lit(1))),
	}
	g.Begin = begin

	end := codedom.NewMethod("End"+g.process, codedom.Public|staticFlag(g.scope), codedom.TypeVoid)
	end.Body = []codedom.Stmt{
		codedom.If(
			codedom.Binary(codedom.OpGt, g.counter(), codedom.Lit(0)),
			codedom.Assign(g.counter(), codedom.Binary(codedom.OpSub, g.counter(), codedom.Lit(1))),
		),
	}
	g.End = end

	pred := codedom.NewMethod(predicateName, codedom.Family|staticFlag(g.scope), codedom.TypeBool)
	pred.Body = []codedom.Stmt{
		codedom.Return(codedom.Binary(codedom.OpNeq, g.counter(), codedom.Lit(0))),
	}
	g.Predicate = pred
}

func (g *ProcessGuard) Members() []codedom.Decl {
	return []codedom.Decl{g.Field, g.Begin, g.End, g.Predicate}
}

func (g *ProcessGuard) rebuildComments(set *doc.Set) {
	set.Add(g.Field,
		doc.Summary{Text: g.narrative(g.counterName(), sentence("Number of open Begin"+g.process, "phases"))},
	)
	set.Add(g.Begin,
		doc.Summary{Text: sentence("Enters", article(g.process), g.process, "phase; phases may nest")},
	)
	set.Add(g.End,
		doc.Summary{Text: sentence("Leaves the innermost", g.process, "phase; calls without a matching Begin"+g.process, "are ignored")},
	)
	set.Add(g.Predicate,
		doc.Summary{Text: sentence("Returns true while at least one", g.process, "phase is open")},
	)
}
