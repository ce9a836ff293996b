package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

var (
	typeException         = codedom.Register("ApplicationException", codedom.KindClass)
	typeInnerException    = codedom.Register("Exception", codedom.KindClass)
	typeSerializableAttr  = codedom.Register("SerializableAttribute", codedom.KindClass)
	typeSerializationInfo = codedom.Register("SerializationInfo", codedom.KindClass)
	typeStreamingContext  = codedom.Register("StreamingContext", codedom.KindStruct)
)

// MarkSerializable applies the serializable mixin to a type declaration.
func MarkSerializable(decl *codedom.TypeDecl) {
	for _, a := range decl.CustomAttrs {
		if a.Type == typeSerializableAttr {
			return
		}
	}
	decl.CustomAttrs = append(decl.CustomAttrs, &codedom.AttributeUse{Type: typeSerializableAttr})
}

// CustomException expands a name plus optional extra fields into a
// serializable exception type: four constructors all assigning the same
// field set (parameterless, with-message, with-message-and-inner, and the
// protected deserialization constructor) plus the serialization-data
// population override.
type CustomException struct {
	commentable
	name   string
	fields []FieldSpec
	decl   *codedom.TypeDecl

	Fields        []*codedom.FieldDecl
	Properties    []*codedom.PropertyDecl
	Constructors  []*codedom.ConstructorDecl // plain, message, message+inner, deserialization
	GetObjectData *codedom.MethodDecl
}

func NewCustomException(name string, fields ...FieldSpec) (*CustomException, error) {
	if name == "" {
		return nil, &expand.InvalidArgumentError{Name: "name", Reason: "empty exception name"}
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, &expand.InvalidArgumentError{Name: "fields", Reason: "empty field name"}
		}
		if f.Type == nil {
			return nil, &expand.InvalidArgumentError{Name: "fields", Reason: "nil field type for " + f.Name}
		}
	}

	e := &CustomException{name: upperFirst(name), fields: fields}
	e.build()

	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = lowerFirst(f.Name)
	}
	e.initComments(e.rebuildComments, fieldNames...)
	return e, nil
}

func (e *CustomException) typeName() string {
	const suffix = "Exception"
	if len(e.name) >= len(suffix) && e.name[len(e.name)-len(suffix):] == suffix {
		return e.name
	}
	return e.name + suffix
}

// fieldParams returns the extra-field parameter list shared by the three
// public constructors.
func (e *CustomException) fieldParams() []*codedom.ParamDecl {
	out := make([]*codedom.ParamDecl, len(e.fields))
	for i, f := range e.fields {
		out[i] = codedom.Param(lowerFirst(f.Name), f.Type)
	}
	return out
}

// assignFields is the field-set assignment block every constructor shares.
func (e *CustomException) assignFields() []codedom.Stmt {
	out := make([]codedom.Stmt, len(e.fields))
	for i, f := range e.fields {
		out[i] = codedom.Assign(
			codedom.Field(codedom.This(), lowerFirst(f.Name)),
			codedom.Arg(lowerFirst(f.Name)))
	}
	return out
}

func (e *CustomException) build() {
	decl := codedom.NewClass(e.typeName(), codedom.Public)
	decl.BaseTypes = []*codedom.TypeRef{typeException}
	MarkSerializable(decl)

	for _, f := range e.fields {
		fd := codedom.NewField(lowerFirst(f.Name), f.Type, codedom.Private)
		e.Fields = append(e.Fields, fd)
		decl.Members = append(decl.Members, fd)
	}

	plain := codedom.NewConstructor(codedom.Public, e.fieldParams()...)
	plain.Body = e.assignFields()

	withMessage := codedom.NewConstructor(codedom.Public,
		append([]*codedom.ParamDecl{codedom.Param("message", codedom.TypeString)}, e.fieldParams()...)...)
	withMessage.BaseArgs = []codedom.Expr{codedom.Arg("message")}
	withMessage.Body = e.assignFields()

	withInner := codedom.NewConstructor(codedom.Public,
		append([]*codedom.ParamDecl{
			codedom.Param("message", codedom.TypeString),
			codedom.Param("innerException", typeInnerException),
		}, e.fieldParams()...)...)
	withInner.BaseArgs = []codedom.Expr{codedom.Arg("message"), codedom.Arg("innerException")}
	withInner.Body = e.assignFields()

	deser := codedom.NewConstructor(codedom.Family,
		codedom.Param("info", typeSerializationInfo),
		codedom.Param("context", typeStreamingContext))
	deser.BaseArgs = []codedom.Expr{codedom.Arg("info"), codedom.Arg("context")}
	for _, f := range e.fields {
		deser.Body = append(deser.Body, codedom.Assign(
			codedom.Field(codedom.This(), lowerFirst(f.Name)),
			codedom.Cast(f.Type, codedom.Invoke(codedom.Arg("info"), "GetValue",
				codedom.Lit(lowerFirst(f.Name)), codedom.TypeOf(f.Type)))))
	}

	e.Constructors = []*codedom.ConstructorDecl{plain, withMessage, withInner, deser}
	for _, c := range e.Constructors {
		decl.Members = append(decl.Members, c)
	}

	god := codedom.NewMethod("GetObjectData", codedom.Public|codedom.Override, codedom.TypeVoid,
		codedom.Param("info", typeSerializationInfo),
		codedom.Param("context", typeStreamingContext))
	god.Body = []codedom.Stmt{expand.AssertNotNull("info")}
	for _, f := range e.fields {
		god.Body = append(god.Body, codedom.Do(codedom.Invoke(codedom.Arg("info"), "AddValue",
			codedom.Lit(lowerFirst(f.Name)),
			codedom.Field(codedom.This(), lowerFirst(f.Name)))))
	}
	god.Body = append(god.Body, codedom.Do(codedom.Invoke(codedom.Base(), "GetObjectData",
		codedom.Arg("info"), codedom.Arg("context"))))
	e.GetObjectData = god
	decl.Members = append(decl.Members, god)

	for _, f := range e.fields {
		p := codedom.NewProperty(upperFirst(f.Name), f.Type, codedom.Public)
		p.HasGet = true
		p.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), lowerFirst(f.Name)))}
		e.Properties = append(e.Properties, p)
		decl.Members = append(decl.Members, p)
	}

	e.decl = decl
}

// Declaration returns the finished exception type.
func (e *CustomException) Declaration() *codedom.TypeDecl { return e.decl }

func (e *CustomException) rebuildComments(set *doc.Set) {
	set.Add(e.decl,
		doc.Summary{Text: sentence("The exception thrown for", e.name, "failures")},
	)
	for i, fd := range e.Fields {
		set.Add(fd, doc.Summary{Text: e.narrative(fd.Name,
			sentence("Backing storage for the", upperFirst(e.fields[i].Name), "property"))})
	}
	titles := []string{
		"Initializes a new " + e.typeName() + ".",
		"Initializes a new " + e.typeName() + " with a message.",
		"Initializes a new " + e.typeName() + " with a message and the causing exception.",
		"Initializes a new " + e.typeName() + " from serialized state.",
	}
	for i, c := range e.Constructors {
		entries := []doc.Entry{doc.Summary{Text: titles[i]}}
		for _, p := range c.Params {
			entries = append(entries, doc.Param{Name: p.Name, Text: sentence("The", p.Name, "value")})
		}
		set.Add(c, entries...)
	}
	set.Add(e.GetObjectData,
		doc.Summary{Text: "Populates the serialization store with the exception's extra state."},
		doc.Param{Name: "info", Text: "The serialization store."},
		doc.Param{Name: "context", Text: "The streaming context."},
		doc.Exception{Type: "ArgumentNullException", Text: "info is null."},
	)
	for i, p := range e.Properties {
		set.Add(p, doc.Summary{Text: sentence("Gets the", upperFirst(e.fields[i].Name), "recorded when the exception was raised")})
	}
}
