// Package gogen lowers selected pattern descriptors straight to Go source.
// Idioms that have no Go spelling in the codedom tree (events, try/finally)
// are re-expressed natively: callbacks, sync.Once, error returns.
package gogen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/module"

	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/internal/pattern"
)

// DefaultSupportPath is where emitted code finds the runtime helpers.
const DefaultSupportPath = "github.com/cmmoran/patternweave/pkg/support"

// Options configure one emitted Go file.
type Options struct {
	Package     string
	SupportPath string
}

func (o *Options) Normalize() error {
	if o.Package == "" {
		o.Package = "patterns"
	}
	if o.SupportPath == "" {
		o.SupportPath = DefaultSupportPath
	}
	if err := module.CheckImportPath(o.SupportPath); err != nil {
		return fmt.Errorf("support import path: %w", err)
	}
	return nil
}

// File starts an output file for the configured package.
func File(o *Options) *jen.File {
	return jen.NewFile(o.Package)
}

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

// Singleton emits the lazy singleton idiom: package-level once+instance and
// an accessor. Go has no static initializer ordering to fight, so both load
// strategies collapse onto sync.Once.
func Singleton(f *jen.File, name string) error {
	if name == "" {
		return &expand.InvalidArgumentError{Name: "name", Reason: "empty type name"}
	}
	name = upperFirst(name)
	lower := lowerFirst(name)

	f.Commentf("%s is a process-wide singleton; use %sInstance to obtain it.", name, name)
	f.Type().Id(name).Struct()
	f.Var().Defs(
		jen.Id(lower+"Once").Qual("sync", "Once"),
		jen.Id(lower+"Instance").Op("*").Id(name),
	)
	f.Commentf("%sInstance returns the shared %s, constructing it on first use.", name, name)
	f.Func().Id(name+"Instance").Params().Op("*").Id(name).Block(
		jen.Id(lower+"Once").Dot("Do").Call(jen.Func().Params().Block(
			jen.Id(lower+"Instance").Op("=").Op("&").Id(name).Values(),
		)),
		jen.Return(jen.Id(lower+"Instance")),
	)
	return nil
}

// FlagsEnum emits a uint64 flags type, one shifted constant per member, and
// the flag table consumed by the support package's compose/decompose
// helpers. More than 64 members cannot be represented.
func FlagsEnum(f *jen.File, o *Options, name string, members []string) error {
	if name == "" {
		return &expand.InvalidArgumentError{Name: "name", Reason: "empty enum name"}
	}
	if len(members) > 64 {
		return &expand.ConfigError{Reason: fmt.Sprintf("%d flag members requested; at most 64 are representable", len(members))}
	}
	name = upperFirst(name)

	f.Commentf("%s is a set of bitwise-combinable flags.", name)
	f.Type().Id(name).Uint64()
	f.Const().DefsFunc(func(g *jen.Group) {
		for i, m := range members {
			if i == 0 {
				g.Id(upperFirst(m)).Id(name).Op("=").Lit(1).Op("<<").Id("iota")
			} else {
				g.Id(upperFirst(m))
			}
		}
	})
	f.Commentf("%sFlags lists every declared %s value for decomposition.", name, name)
	f.Var().Id(name + "Flags").Op("=").Index().Qual(o.SupportPath, "Flag").ValuesFunc(func(g *jen.Group) {
		for i, m := range members {
			g.Values(jen.Dict{
				jen.Id("Name"):  jen.Lit(upperFirst(m)),
				jen.Id("Value"): jen.Lit(1).Op("<<").Lit(i),
			})
		}
	})
	f.Commentf("String renders the flag set as a pipe-joined name list.")
	f.Func().Params(jen.Id("v").Id(name)).Id("String").Params().String().Block(
		jen.List(jen.Id("names"), jen.Id("err")).Op(":=").Qual(o.SupportPath, "Decompose").Call(
			jen.Uint64().Parens(jen.Id("v")), jen.Id(name+"Flags")),
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Return(jen.Qual("strconv", "FormatUint").Call(jen.Uint64().Parens(jen.Id("v")), jen.Lit(10))),
		),
		jen.Return(jen.Qual("strings", "Join").Call(jen.Id("names"), jen.Lit("|"))),
	)
	return nil
}

// ObservableProperty emits an owner struct with a backing field, getter,
// change-aware setter, and callback registration. The change notification is
// a plain func field; Go has no event members.
func ObservableProperty(f *jen.File, owner, prop, typ string) error {
	if owner == "" || prop == "" || typ == "" {
		return &expand.InvalidArgumentError{Name: "owner/prop/typ", Reason: "empty name"}
	}
	owner = upperFirst(owner)
	prop = upperFirst(prop)
	field := lowerFirst(prop)

	f.Commentf("%s exposes an observable %s property.", owner, prop)
	f.Type().Id(owner).Struct(
		jen.Id(field).Id(typ),
		jen.Id(field+"Changed").Func().Params(jen.Id("oldValue"), jen.Id("newValue").Id(typ)),
	)
	f.Commentf("%s returns the current value.", prop)
	f.Func().Params(jen.Id("o").Op("*").Id(owner)).Id(prop).Params().Id(typ).Block(
		jen.Return(jen.Id("o").Dot(field)),
	)
	f.Commentf("Set%s stores value and notifies the registered observer when it differs.", prop)
	f.Func().Params(jen.Id("o").Op("*").Id(owner)).Id("Set"+prop).Params(jen.Id("value").Id(typ)).Block(
		jen.If(jen.Id("value").Op("==").Id("o").Dot(field)).Block(jen.Return()),
		jen.Id("oldValue").Op(":=").Id("o").Dot(field),
		jen.Id("o").Dot(field).Op("=").Id("value"),
		jen.If(jen.Id("o").Dot(field+"Changed").Op("!=").Nil()).Block(
			jen.Id("o").Dot(field+"Changed").Call(jen.Id("oldValue"), jen.Id("value")),
		),
	)
	f.Commentf("On%sChanged registers the change observer; a nil fn unregisters it.", prop)
	f.Func().Params(jen.Id("o").Op("*").Id(owner)).Id("On"+prop+"Changed").Params(
		jen.Id("fn").Func().Params(jen.Id("oldValue"), jen.Id("newValue").Id(typ)),
	).Block(
		jen.Id("o").Dot(field + "Changed").Op("=").Id("fn"),
	)
	return nil
}

// collectionHook describes one emitted callback field.
type collectionHook struct {
	bit   pattern.EventCategory
	name  string
	shape string // "indexValue", "indexOldNew", "none"
}

var collectionHooks = []collectionHook{
	{pattern.EventClearing, "Clearing", "none"},
	{pattern.EventCleared, "Cleared", "none"},
	{pattern.EventInserting, "Inserting", "indexValue"},
	{pattern.EventInserted, "Inserted", "indexValue"},
	{pattern.EventRemoving, "Removing", "indexValue"},
	{pattern.EventRemoved, "Removed", "indexValue"},
	{pattern.EventSetting, "Setting", "indexOldNew"},
	{pattern.EventSet, "AfterSet", "indexOldNew"},
}

// TypedCollection emits a slice-backed typed collection. Lifecycle events
// become exported callback fields; the validate hook becomes an error
// return; load suppression links the support runtime's LoadGuard.
func TypedCollection(f *jen.File, o *Options, name, elem string, categories pattern.EventCategory, suppressLoad bool) error {
	if elem == "" {
		return &expand.InvalidArgumentError{Name: "elem", Reason: "empty element type"}
	}
	if name == "" {
		name = elem + "Collection"
	}
	name = upperFirst(name)
	recv := jen.Id("c").Op("*").Id(name)

	fields := []jen.Code{jen.Id("items").Index().Id(elem)}
	if suppressLoad {
		fields = append(fields, jen.Id("load").Qual(o.SupportPath, "LoadGuard"))
	}
	for _, h := range collectionHooks {
		if categories&h.bit == 0 {
			continue
		}
		fields = append(fields, jen.Id(h.name).Add(hookType(elem, h.shape)))
	}
	if categories&pattern.EventValidating != 0 {
		fields = append(fields, jen.Id("Validating").Func().Params(jen.Id("value").Id(elem)).Error())
	}

	f.Commentf("%s is a strongly typed collection of %s values.", name, elem)
	f.Type().Id(name).Struct(fields...)

	f.Commentf("New%s builds a collection pre-sized for items.", name)
	ctorBody := []jen.Code{
		jen.Id("c").Op(":=").Op("&").Id(name).Values(jen.Dict{
			jen.Id("items"): jen.Make(jen.Index().Id(elem), jen.Lit(0), jen.Len(jen.Id("items"))),
		}),
	}
	if suppressLoad {
		ctorBody = append(ctorBody, jen.Id("c").Dot("load").Dot("Begin").Call())
	}
	ctorBody = append(ctorBody,
		jen.If(jen.Err().Op(":=").Id("c").Dot("AddRange").Call(jen.Id("items").Op("...")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
	)
	if suppressLoad {
		ctorBody = append(ctorBody, jen.Id("c").Dot("load").Dot("End").Call())
	}
	ctorBody = append(ctorBody, jen.Return(jen.Id("c"), jen.Nil()))
	f.Func().Id("New"+name).Params(jen.Id("items").Op("...").Id(elem)).Params(jen.Op("*").Id(name), jen.Error()).Block(ctorBody...)

	f.Comment("Len reports the number of stored values.")
	f.Func().Params(recv).Id("Len").Params().Int().Block(
		jen.Return(jen.Len(jen.Id("c").Dot("items"))),
	)

	f.Comment("At returns the value stored at index.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("At").Params(jen.Id("index").Int()).Id(elem).Block(
		jen.Return(jen.Id("c").Dot("items").Index(jen.Id("index"))),
	)

	f.Comment("Add validates value and appends it.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Add").Params(jen.Id("value").Id(elem)).Error().Block(
		jen.Return(jen.Id("c").Dot("Insert").Call(jen.Len(jen.Id("c").Dot("items")), jen.Id("value"))),
	)

	f.Comment("AddRange appends every value in order, stopping at the first rejection.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("AddRange").Params(jen.Id("items").Op("...").Id(elem)).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("value")).Op(":=").Range().Id("items")).Block(
			jen.If(jen.Err().Op(":=").Id("c").Dot("Add").Call(jen.Id("value")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
		),
		jen.Return(jen.Nil()),
	)

	insertBody := []jen.Code{
		jen.If(jen.Id("index").Op("<").Lit(0).Op("||").Id("index").Op(">").Len(jen.Id("c").Dot("items"))).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("index %d out of range"), jen.Id("index"))),
		),
	}
	insertBody = append(insertBody, validateCall(categories)...)
	insertBody = append(insertBody, notify(categories, suppressLoad, pattern.EventInserting, "Inserting", jen.Id("index"), jen.Id("value"))...)
	insertBody = append(insertBody,
		jen.Id("c").Dot("items").Op("=").Append(jen.Id("c").Dot("items"), jen.Id("value")),
		jen.Copy(jen.Id("c").Dot("items").Index(jen.Id("index").Op("+").Lit(1), jen.Empty()), jen.Id("c").Dot("items").Index(jen.Id("index"), jen.Empty())),
		jen.Id("c").Dot("items").Index(jen.Id("index")).Op("=").Id("value"),
	)
	insertBody = append(insertBody, notify(categories, suppressLoad, pattern.EventInserted, "Inserted", jen.Id("index"), jen.Id("value"))...)
	insertBody = append(insertBody, jen.Return(jen.Nil()))
	f.Comment("Insert validates index and value, then places the value at index.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Insert").Params(jen.Id("index").Int(), jen.Id("value").Id(elem)).Error().Block(insertBody...)

	removeBody := []jen.Code{
		jen.Id("index").Op(":=").Id("c").Dot("IndexOf").Call(jen.Id("value")),
		jen.If(jen.Id("index").Op("<").Lit(0)).Block(jen.Return(jen.False())),
	}
	removeBody = append(removeBody, notify(categories, suppressLoad, pattern.EventRemoving, "Removing", jen.Id("index"), jen.Id("value"))...)
	removeBody = append(removeBody,
		jen.Id("c").Dot("items").Op("=").Append(
			jen.Id("c").Dot("items").Index(jen.Empty(), jen.Id("index")),
			jen.Id("c").Dot("items").Index(jen.Id("index").Op("+").Lit(1), jen.Empty()).Op("...")),
	)
	removeBody = append(removeBody, notify(categories, suppressLoad, pattern.EventRemoved, "Removed", jen.Id("index"), jen.Id("value"))...)
	removeBody = append(removeBody, jen.Return(jen.True()))
	f.Comment("Remove deletes the first occurrence of value.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Remove").Params(jen.Id("value").Id(elem)).Bool().Block(removeBody...)

	setBody := []jen.Code{
		jen.If(jen.Id("index").Op("<").Lit(0).Op("||").Id("index").Op(">=").Len(jen.Id("c").Dot("items"))).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("index %d out of range"), jen.Id("index"))),
		),
		jen.Id("oldValue").Op(":=").Id("c").Dot("items").Index(jen.Id("index")),
	}
	setBody = append(setBody, validateCall(categories)...)
	setBody = append(setBody, notify(categories, suppressLoad, pattern.EventSetting, "Setting", jen.Id("index"), jen.Id("oldValue"), jen.Id("value"))...)
	setBody = append(setBody, jen.Id("c").Dot("items").Index(jen.Id("index")).Op("=").Id("value"))
	setBody = append(setBody, notify(categories, suppressLoad, pattern.EventSet, "AfterSet", jen.Id("index"), jen.Id("oldValue"), jen.Id("value"))...)
	setBody = append(setBody, jen.Return(jen.Nil()))
	f.Comment("Set validates index and value, then replaces the element at index.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Set").Params(jen.Id("index").Int(), jen.Id("value").Id(elem)).Error().Block(setBody...)

	clearBody := []jen.Code{}
	clearBody = append(clearBody, notify(categories, suppressLoad, pattern.EventClearing, "Clearing")...)
	clearBody = append(clearBody, jen.Id("c").Dot("items").Op("=").Id("c").Dot("items").Index(jen.Empty(), jen.Lit(0)))
	clearBody = append(clearBody, notify(categories, suppressLoad, pattern.EventCleared, "Cleared")...)
	f.Comment("Clear removes every value.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Clear").Params().Block(clearBody...)

	f.Comment("Contains reports whether value is present.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("Contains").Params(jen.Id("value").Id(elem)).Bool().Block(
		jen.Return(jen.Id("c").Dot("IndexOf").Call(jen.Id("value")).Op(">=").Lit(0)),
	)

	f.Comment("IndexOf returns the position of value, or -1.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("IndexOf").Params(jen.Id("value").Id(elem)).Int().Block(
		jen.For(jen.List(jen.Id("i"), jen.Id("v")).Op(":=").Range().Id("c").Dot("items")).Block(
			jen.If(jen.Id("v").Op("==").Id("value")).Block(jen.Return(jen.Id("i"))),
		),
		jen.Return(jen.Lit(-1)),
	)

	f.Comment("ToArray copies the values into a fresh slice.")
	f.Func().Params(jen.Id("c").Op("*").Id(name)).Id("ToArray").Params().Index().Id(elem).Block(
		jen.Id("result").Op(":=").Make(jen.Index().Id(elem), jen.Len(jen.Id("c").Dot("items"))),
		jen.Copy(jen.Id("result"), jen.Id("c").Dot("items")),
		jen.Return(jen.Id("result")),
	)

	return nil
}

func hookType(elem, shape string) jen.Code {
	switch shape {
	case "indexValue":
		return jen.Func().Params(jen.Id("index").Int(), jen.Id("value").Id(elem))
	case "indexOldNew":
		return jen.Func().Params(jen.Id("index").Int(), jen.Id("oldValue"), jen.Id("newValue").Id(elem))
	default:
		return jen.Func().Params()
	}
}

// notify emits the guarded callback invocation for one category bit, or
// nothing when the bit is unset.
func notify(categories pattern.EventCategory, suppressLoad bool, bit pattern.EventCategory, name string, args ...jen.Code) []jen.Code {
	if categories&bit == 0 {
		return nil
	}
	cond := jen.Id("c").Dot(name).Op("!=").Nil()
	if suppressLoad {
		cond = jen.Op("!").Id("c").Dot("load").Dot("Active").Call().Op("&&").Add(cond)
	}
	return []jen.Code{
		jen.If(cond).Block(jen.Id("c").Dot(name).Call(args...)),
	}
}

// validateCall emits the validating-callback consultation shared by Insert
// and Set.
func validateCall(categories pattern.EventCategory) []jen.Code {
	if categories&pattern.EventValidating == 0 {
		return nil
	}
	return []jen.Code{
		jen.If(jen.Id("c").Dot("Validating").Op("!=").Nil()).Block(
			jen.If(jen.Err().Op(":=").Id("c").Dot("Validating").Call(jen.Id("value")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
		),
	}
}

// SupportNote appends a trailing comment naming the linked runtime.
func SupportNote(f *jen.File, o *Options) {
	f.Comment(strings.TrimSpace("Generated collections link " + o.SupportPath + "."))
}
