// Package doc models structured documentation entries and compiles them into
// the host's XML documentation markup. The compiler is pure formatting; all
// decisions about what to say belong to the pattern generators.
package doc

import (
	"fmt"
	"strings"

	"github.com/cmmoran/patternweave/internal/codedom"
)

// Entry is one structured documentation element.
type Entry interface {
	compile() []string
}

type Summary struct {
	Text string
}

type Param struct {
	Name string
	Text string
}

type Returns struct {
	Text string
}

// Value documents a property's value.
type Value struct {
	Text string
}

type Exception struct {
	Type string
	Text string
}

type Remarks struct {
	Text string
}

// See is an inline cross-reference rendered inside a remarks block.
type See struct {
	Ref string
}

// List renders a bulleted list inside a remarks block.
type List struct {
	Items []string
}

func (s Summary) compile() []string {
	return wrapTag("summary", s.Text)
}

func (p Param) compile() []string {
	return []string{fmt.Sprintf(`<param name=%q>%s</param>`, p.Name, escape(p.Text))}
}

func (r Returns) compile() []string {
	return wrapTag("returns", r.Text)
}

func (v Value) compile() []string {
	return wrapTag("value", v.Text)
}

func (e Exception) compile() []string {
	return []string{fmt.Sprintf(`<exception cref=%q>%s</exception>`, e.Type, escape(e.Text))}
}

func (r Remarks) compile() []string {
	return wrapTag("remarks", r.Text)
}

func (s See) compile() []string {
	return []string{fmt.Sprintf(`<see cref=%q/>`, s.Ref)}
}

func (l List) compile() []string {
	out := make([]string, 0, len(l.Items)+2)
	out = append(out, `<list type="bullet">`)
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("<item><description>%s</description></item>", escape(it)))
	}
	out = append(out, "</list>")
	return out
}

// Compile renders entries to markup lines in entry order.
func Compile(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.compile()...)
	}
	return out
}

func wrapTag(tag, text string) []string {
	return []string{
		"<" + tag + ">",
		escape(text),
		"</" + tag + ">",
	}
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// Set maps generated declarations to their documentation entries. A generator
// owns one Set; toggling documentation clears and repopulates it wholesale,
// never patches it incrementally.
type Set struct {
	order   []codedom.Decl
	entries map[codedom.Decl][]Entry
}

func NewSet() *Set {
	return &Set{entries: map[codedom.Decl][]Entry{}}
}

// Add appends entries for decl, preserving first-seen declaration order.
func (s *Set) Add(decl codedom.Decl, entries ...Entry) {
	if _, ok := s.entries[decl]; !ok {
		s.order = append(s.order, decl)
	}
	s.entries[decl] = append(s.entries[decl], entries...)
}

// Clear drops every entry and detaches the compiled lines from each owned
// declaration.
func (s *Set) Clear() {
	for _, d := range s.order {
		d.SetDoc(nil)
	}
	s.order = nil
	s.entries = map[codedom.Decl][]Entry{}
}

// Attach compiles each declaration's entries and stores the markup lines on
// the declaration itself for the renderer to pick up.
func (s *Set) Attach() {
	for _, d := range s.order {
		d.SetDoc(Compile(s.entries[d]))
	}
}

// Entries returns the entries recorded for decl.
func (s *Set) Entries(decl codedom.Decl) []Entry {
	return s.entries[decl]
}
