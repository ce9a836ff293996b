package pattern

import (
	"fmt"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/pkg/support"
)

var typeFlagsAttribute = codedom.Register("FlagsAttribute", codedom.KindClass)

// FlagsEnum expands a list of member names into a flags enumeration: member
// i carries the value 2^i. More than 64 names cannot be represented in the
// underlying storage and is rejected.
type FlagsEnum struct {
	commentable
	name  string
	decl  *codedom.TypeDecl
	flags []support.Flag
}

func NewFlagsEnum(name string, memberNames []string) (*FlagsEnum, error) {
	if name == "" {
		return nil, &expand.InvalidArgumentError{Name: "name", Reason: "empty enum name"}
	}
	if len(memberNames) > 64 {
		return nil, &expand.ConfigError{Reason: fmt.Sprintf("%d flag members requested; at most 64 are representable", len(memberNames))}
	}
	for _, m := range memberNames {
		if m == "" {
			return nil, &expand.InvalidArgumentError{Name: "memberNames", Reason: "empty member name"}
		}
	}

	e := &FlagsEnum{name: name}
	e.build(memberNames)
	e.initComments(e.rebuildComments)
	return e, nil
}

func (e *FlagsEnum) build(memberNames []string) {
	decl := codedom.NewEnum(e.name, codedom.Public)
	decl.CustomAttrs = []*codedom.AttributeUse{{Type: typeFlagsAttribute}}
	for i, m := range memberNames {
		v := uint64(1) << uint(i)
		decl.Members = append(decl.Members, &codedom.EnumMemberDecl{Name: m, Value: codedom.Lit(v)})
		e.flags = append(e.flags, support.Flag{Name: m, Value: v})
	}
	e.decl = decl
}

// Declaration returns the finished enum declaration.
func (e *FlagsEnum) Declaration() *codedom.TypeDecl { return e.decl }

// Flags returns the name/value table, usable with support.Decompose and
// support.Compose.
func (e *FlagsEnum) Flags() []support.Flag { return e.flags }

// Names decomposes value into member names of this enumeration.
func (e *FlagsEnum) Names(value uint64) ([]string, error) {
	names, err := support.Decompose(value, e.flags)
	if err != nil {
		return nil, &expand.ConfigError{Reason: err.Error()}
	}
	return names, nil
}

func (e *FlagsEnum) rebuildComments(set *doc.Set) {
	set.Add(e.decl,
		doc.Summary{Text: sentence("Bitwise-combinable", e.name, "values")},
	)
	for _, m := range e.decl.Members {
		em := m.(*codedom.EnumMemberDecl)
		set.Add(em, doc.Summary{Text: sentence("The", em.Name, "flag")})
	}
}
