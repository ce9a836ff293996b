// Package pattern holds the high-level generators. Each one expands an
// immutable descriptor into an ordered member list, exposes the generated
// sub-members individually, and owns the documentation for every symbol it
// creates.
package pattern

import (
	"strings"
	"unicode"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

// Scope selects the self-reference shape of generated members: Instance
// members reference this, Static members reference the owning type. Every
// self-reference in one generated subtree agrees with the Scope the subtree
// was generated under.
type Scope int

const (
	Instance Scope = iota
	Static
)

// Self returns the receiver expression for member access under scope.
func Self(scope Scope, owner *codedom.TypeRef) codedom.Expr {
	if scope == Static {
		return codedom.TypeExpr(owner)
	}
	return codedom.This()
}

// Sender returns the event-sender argument under scope. Static events carry
// no instance, so the sender degenerates to null.
func Sender(scope Scope) codedom.Expr {
	if scope == Static {
		return codedom.Null()
	}
	return codedom.This()
}

func staticFlag(scope Scope) codedom.MemberAttributes {
	if scope == Static {
		return codedom.Static
	}
	return 0
}

// lowerFirst lowercases the first rune of a name; generated backing fields
// and locals use this convention.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// commentable implements the shared documentation discipline: toggling the
// flag clears every owned comment set and, when enabling, regenerates it
// verbatim from the descriptor. Caller-furnished field narratives live in a
// separate cache so they survive off→on toggles.
type commentable struct {
	hasComments bool
	comments    *doc.Set
	narratives  map[string]string
	fields      map[string]bool
	rebuild     func(*doc.Set)
}

func (c *commentable) initComments(rebuild func(*doc.Set), fieldNames ...string) {
	c.comments = doc.NewSet()
	c.narratives = map[string]string{}
	c.fields = map[string]bool{}
	for _, n := range fieldNames {
		c.fields[n] = true
	}
	c.rebuild = rebuild
}

// HasComments reports whether documentation is currently generated.
func (c *commentable) HasComments() bool { return c.hasComments }

// SetHasComments clears all owned comments and, when enabling, regenerates
// them from scratch. Toggling twice is idempotent.
func (c *commentable) SetHasComments(v bool) {
	c.hasComments = v
	c.comments.Clear()
	if v {
		c.rebuild(c.comments)
		c.comments.Attach()
	}
}

// SetComment records a caller-furnished narrative for one declared field.
// The narrative is retained across documentation toggles. Unknown names are
// a configuration error.
func (c *commentable) SetComment(field, text string) error {
	if !c.fields[field] {
		return &expand.ConfigError{Reason: "no declared field named " + field}
	}
	c.narratives[field] = text
	if c.hasComments {
		c.SetHasComments(true)
	}
	return nil
}

// narrative returns the caller-furnished text for field, or fallback.
func (c *commentable) narrative(field, fallback string) string {
	if t, ok := c.narratives[field]; ok && t != "" {
		return t
	}
	return fallback
}

// article picks the indefinite article for a type name in synthesized text.
func article(name string) string {
	if name == "" {
		return "a"
	}
	switch unicode.ToLower([]rune(name)[0]) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

func sentence(parts ...string) string {
	s := strings.Join(parts, " ")
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
