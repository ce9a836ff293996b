package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

// ObservableProperty expands a name/type/scope descriptor into the
// observable-property idiom: a change delegate, an event-args type carrying
// old and new values, a backing field, a get/set property whose setter fires
// only on a value-inequality, the change event, and its invoker.
//
// Members() always yields exactly six top-level declarations in this order:
// delegate, event-args type, field, property, event, invoker.
type ObservableProperty struct {
	commentable
	name  string
	typ   *codedom.TypeRef
	owner *codedom.TypeRef
	scope Scope

	Delegate *codedom.DelegateDecl
	Args     *codedom.TypeDecl
	Field    *codedom.FieldDecl
	Property *codedom.PropertyDecl
	Event    *codedom.EventDecl
	Invoker  *codedom.MethodDecl
}

func NewObservableProperty(name string, typ, owner *codedom.TypeRef, scope Scope) (*ObservableProperty, error) {
	if name == "" {
		return nil, &expand.InvalidArgumentError{Name: "name", Reason: "empty property name"}
	}
	if typ == nil {
		return nil, &expand.InvalidArgumentError{Name: "typ", Reason: "nil property type"}
	}
	if owner == nil {
		return nil, &expand.InvalidArgumentError{Name: "owner", Reason: "nil owning type"}
	}

	p := &ObservableProperty{
		name:  upperFirst(name),
		typ:   typ,
		owner: owner,
		scope: scope,
	}
	p.build()
	p.initComments(p.rebuildComments, p.fieldName())
	return p, nil
}

func (p *ObservableProperty) fieldName() string    { return lowerFirst(p.name) }
func (p *ObservableProperty) argsName() string     { return p.name + "ChangedEventArgs" }
func (p *ObservableProperty) delegateName() string { return p.name + "ChangedEventHandler" }
func (p *ObservableProperty) eventName() string    { return p.name + "Changed" }
func (p *ObservableProperty) invokerName() string  { return "On" + p.name + "Changed" }

func (p *ObservableProperty) build() {
	argsType := codedom.Type(p.argsName())
	handlerType := codedom.Type(p.delegateName())

	p.Delegate = codedom.NewDelegate(p.delegateName(), codedom.Public, codedom.TypeVoid,
		codedom.Param("sender", codedom.TypeObject),
		codedom.Param("e", argsType),
	)

	p.Args = p.buildArgsType(argsType)

	p.Field = codedom.NewField(p.fieldName(), p.typ, codedom.Private|staticFlag(p.scope))

	// Fresh reference nodes per splice site; declarations must not share
	// mutable sub-trees.
	fieldRef := func() codedom.Expr { return codedom.Field(Self(p.scope, p.owner), p.fieldName()) }
	eventRef := func() codedom.Expr { return codedom.Event(Self(p.scope, p.owner), p.eventName()) }

	prop := codedom.NewProperty(p.name, p.typ, codedom.Public|staticFlag(p.scope))
	prop.HasGet = true
	prop.Get = []codedom.Stmt{codedom.Return(fieldRef())}
	prop.HasSet = true
	// Fire only when the incoming value differs by content equality; identity
	// comparison would misfire for value-like types.
	prop.Set = []codedom.Stmt{
		codedom.If(
			expand.Negate(codedom.Invoke(codedom.Arg("value"), "Equals", fieldRef())),
			codedom.DeclareVar("oldValue", p.typ, fieldRef()),
			codedom.Assign(fieldRef(), codedom.Arg("value")),
			codedom.Do(codedom.Invoke(Self(p.scope, p.owner), p.invokerName(),
				codedom.New(argsType, codedom.Var("oldValue"), codedom.Arg("value")))),
		),
	}
	p.Property = prop

	p.Event = codedom.NewEvent(p.eventName(), handlerType, codedom.Public|staticFlag(p.scope))

	inv := codedom.NewMethod(p.invokerName(), codedom.Family|staticFlag(p.scope), codedom.TypeVoid,
		codedom.Param("e", argsType))
	inv.Body = []codedom.Stmt{
		codedom.If(
			codedom.NotNull(eventRef()),
			codedom.Do(codedom.InvokeDelegate(eventRef(), Sender(p.scope), codedom.Arg("e"))),
		),
	}
	p.Invoker = inv
}

// buildArgsType builds the event-args class: old/new fields, a constructor,
// and read-only accessors.
func (p *ObservableProperty) buildArgsType(self *codedom.TypeRef) *codedom.TypeDecl {
	decl := codedom.NewClass(p.argsName(), codedom.Public)
	decl.BaseTypes = []*codedom.TypeRef{codedom.TypeEventArgs}

	oldField := codedom.NewField("oldValue", p.typ, codedom.Private)
	newField := codedom.NewField("newValue", p.typ, codedom.Private)

	ctor := codedom.NewConstructor(codedom.Public,
		codedom.Param("oldValue", p.typ),
		codedom.Param("newValue", p.typ),
	)
	ctor.Body = []codedom.Stmt{
		codedom.Assign(codedom.Field(codedom.This(), "oldValue"), codedom.Arg("oldValue")),
		codedom.Assign(codedom.Field(codedom.This(), "newValue"), codedom.Arg("newValue")),
	}

	oldProp := codedom.NewProperty("OldValue", p.typ, codedom.Public)
	oldProp.HasGet = true
	oldProp.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), "oldValue"))}

	newProp := codedom.NewProperty("NewValue", p.typ, codedom.Public)
	newProp.HasGet = true
	newProp.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), "newValue"))}

	decl.Members = []codedom.Decl{oldField, newField, ctor, oldProp, newProp}
	return decl
}

// Members returns the six generated declarations in fixed order.
func (p *ObservableProperty) Members() []codedom.Decl {
	return []codedom.Decl{p.Delegate, p.Args, p.Field, p.Property, p.Event, p.Invoker}
}

func (p *ObservableProperty) rebuildComments(s *doc.Set) {
	s.Add(p.Delegate,
		doc.Summary{Text: sentence("Represents the method that handles the", p.eventName(), "event of", article(p.owner.Name), p.owner.Name)},
		doc.Param{Name: "sender", Text: "The source of the event."},
		doc.Param{Name: "e", Text: sentence("The", p.argsName(), "containing the old and new values")},
	)
	s.Add(p.Args,
		doc.Summary{Text: sentence("Provides data for the", p.eventName(), "event")},
	)
	s.Add(p.Field,
		doc.Summary{Text: p.narrative(p.fieldName(), sentence("Backing storage for the", p.name, "property"))},
	)
	s.Add(p.Property,
		doc.Summary{Text: sentence("Gets or sets the", p.name, "of this", p.owner.Name)},
		doc.Value{Text: sentence(upperFirst(article(p.typ.Name)), p.typ.Name, "value")},
		doc.Remarks{Text: sentence("Assigning an unequal value raises the", p.eventName(), "event")},
	)
	s.Add(p.Event,
		doc.Summary{Text: sentence("Occurs when the", p.name, "property changes")},
	)
	s.Add(p.Invoker,
		doc.Summary{Text: sentence("Raises the", p.eventName(), "event")},
		doc.Param{Name: "e", Text: sentence("The event data carrying the old and new", p.name, "values")},
	)
}
