package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/pkg/support"
)

// FieldSpec describes one caller-supplied extra field on a generated type.
type FieldSpec struct {
	Name string
	Type *codedom.TypeRef
}

var (
	typeAttribute        = codedom.Register("Attribute", codedom.KindClass)
	typeAttributeUsage   = codedom.Register("AttributeUsageAttribute", codedom.KindClass)
	typeAttributeTargets = codedom.Register("AttributeTargets", codedom.KindEnum)
)

// attributeTargets mirrors the host's AttributeTargets flag constants; the
// usage declaration is re-derived from a raw mask against this table.
var attributeTargets = []support.Flag{
	{Name: "Assembly", Value: 1},
	{Name: "Module", Value: 2},
	{Name: "Class", Value: 4},
	{Name: "Struct", Value: 8},
	{Name: "Enum", Value: 16},
	{Name: "Constructor", Value: 32},
	{Name: "Method", Value: 64},
	{Name: "Property", Value: 128},
	{Name: "Field", Value: 256},
	{Name: "Event", Value: 512},
	{Name: "Interface", Value: 1024},
	{Name: "Parameter", Value: 2048},
	{Name: "Delegate", Value: 4096},
	{Name: "ReturnValue", Value: 8192},
	{Name: "GenericParameter", Value: 16384},
	{Name: "All", Value: 32767},
}

// TargetsMask folds named AttributeTargets values into their combined mask.
// Unknown names are a configuration error.
func TargetsMask(names ...string) (uint64, error) {
	mask, err := support.Compose(names, attributeTargets)
	if err != nil {
		return 0, &expand.ConfigError{Reason: err.Error()}
	}
	return mask, nil
}

// UsageExpr expands an AttributeTargets mask into an OR chain of named
// values, greedily matching the largest declared flags first. A mask with a
// residual no flag covers is a configuration error.
func UsageExpr(mask uint64) (codedom.Expr, error) {
	names, err := support.Decompose(mask, attributeTargets)
	if err != nil {
		return nil, &expand.ConfigError{Reason: err.Error()}
	}
	if len(names) == 0 {
		return nil, &expand.ConfigError{Reason: "empty attribute-usage mask"}
	}
	var out codedom.Expr = codedom.Field(codedom.TypeExpr(typeAttributeTargets), names[0])
	for _, n := range names[1:] {
		out = codedom.Binary(codedom.OpBitOr, out,
			codedom.Field(codedom.TypeExpr(typeAttributeTargets), n))
	}
	return out, nil
}

// CustomAttribute expands a name, usage mask and optional field list into an
// attribute declaration: the usage marking, one field+property pair per
// entry, a parameterless constructor, and a parameterized constructor when
// fields are supplied.
type CustomAttribute struct {
	commentable
	name   string
	fields []FieldSpec
	decl   *codedom.TypeDecl

	Fields      []*codedom.FieldDecl
	Properties  []*codedom.PropertyDecl
	Default     *codedom.ConstructorDecl
	Constructor *codedom.ConstructorDecl // nil without fields
}

func NewCustomAttribute(name string, usage uint64, fields ...FieldSpec) (*CustomAttribute, error) {
	if name == "" {
		return nil, &expand.InvalidArgumentError{Name: "name", Reason: "empty attribute name"}
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, &expand.InvalidArgumentError{Name: "fields", Reason: "empty field name"}
		}
		if f.Type == nil {
			return nil, &expand.InvalidArgumentError{Name: "fields", Reason: "nil field type for " + f.Name}
		}
	}
	usageArg, err := UsageExpr(usage)
	if err != nil {
		return nil, err
	}

	a := &CustomAttribute{name: upperFirst(name), fields: fields}
	a.build(usageArg)

	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = lowerFirst(f.Name)
	}
	a.initComments(a.rebuildComments, fieldNames...)
	return a, nil
}

func (a *CustomAttribute) typeName() string {
	const suffix = "Attribute"
	if len(a.name) >= len(suffix) && a.name[len(a.name)-len(suffix):] == suffix {
		return a.name
	}
	return a.name + suffix
}

func (a *CustomAttribute) build(usageArg codedom.Expr) {
	decl := codedom.NewClass(a.typeName(), codedom.Public|codedom.Final)
	decl.BaseTypes = []*codedom.TypeRef{typeAttribute}
	decl.CustomAttrs = []*codedom.AttributeUse{{
		Type: typeAttributeUsage,
		Args: []codedom.AttributeArg{{Value: usageArg}},
	}}

	for _, f := range a.fields {
		fd := codedom.NewField(lowerFirst(f.Name), f.Type, codedom.Private)
		a.Fields = append(a.Fields, fd)
		decl.Members = append(decl.Members, fd)
	}

	a.Default = codedom.NewConstructor(codedom.Public)
	decl.Members = append(decl.Members, a.Default)

	if len(a.fields) > 0 {
		params := make([]*codedom.ParamDecl, len(a.fields))
		body := make([]codedom.Stmt, len(a.fields))
		for i, f := range a.fields {
			params[i] = codedom.Param(lowerFirst(f.Name), f.Type)
			body[i] = codedom.Assign(
				codedom.Field(codedom.This(), lowerFirst(f.Name)),
				codedom.Arg(lowerFirst(f.Name)))
		}
		ctor := codedom.NewConstructor(codedom.Public, params...)
		ctor.Body = body
		a.Constructor = ctor
		decl.Members = append(decl.Members, ctor)
	}

	for _, f := range a.fields {
		p := codedom.NewProperty(upperFirst(f.Name), f.Type, codedom.Public)
		p.HasGet = true
		p.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), lowerFirst(f.Name)))}
		p.HasSet = true
		p.Set = []codedom.Stmt{codedom.Assign(
			codedom.Field(codedom.This(), lowerFirst(f.Name)), codedom.Arg("value"))}
		a.Properties = append(a.Properties, p)
		decl.Members = append(decl.Members, p)
	}

	a.decl = decl
}

// Declaration returns the finished attribute type.
func (a *CustomAttribute) Declaration() *codedom.TypeDecl { return a.decl }

func (a *CustomAttribute) rebuildComments(set *doc.Set) {
	set.Add(a.decl,
		doc.Summary{Text: sentence("Marks program elements with", a.typeName(), "metadata")},
	)
	for i, fd := range a.Fields {
		set.Add(fd, doc.Summary{Text: a.narrative(fd.Name,
			sentence("Backing storage for the", upperFirst(a.fields[i].Name), "property"))})
	}
	set.Add(a.Default, doc.Summary{Text: sentence("Initializes a new", a.typeName())})
	if a.Constructor != nil {
		entries := []doc.Entry{doc.Summary{Text: sentence("Initializes a new", a.typeName(), "with every field supplied")}}
		for _, f := range a.fields {
			entries = append(entries, doc.Param{Name: lowerFirst(f.Name),
				Text: sentence("The", upperFirst(f.Name), "value")})
		}
		set.Add(a.Constructor, entries...)
	}
	for i, p := range a.Properties {
		set.Add(p,
			doc.Summary{Text: sentence("Gets or sets the", upperFirst(a.fields[i].Name), "carried by this attribute")},
		)
	}
}
