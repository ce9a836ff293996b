package pattern

import (
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

var typeCollectionBase = codedom.Register("CollectionBase", codedom.KindClass)

// EventCategory selects which optional lifecycle events a typed collection
// exposes. Bits are independent; each set bit adds exactly one event field
// and one lifecycle-hook override, and the first bit of a group adds that
// group's delegate+event-args pair.
type EventCategory uint16

const (
	EventClearing EventCategory = 1 << iota
	EventCleared
	EventInserting
	EventInserted
	EventRemoving
	EventRemoved
	EventSetting
	EventSet
	EventValidating
)

// EventAll enables every lifecycle event.
const EventAll = EventClearing | EventCleared | EventInserting | EventInserted |
	EventRemoving | EventRemoved | EventSetting | EventSet | EventValidating

type argsShape int

const (
	shapeNone argsShape = iota
	shapeIndexValue
	shapeIndexOldNew
	shapeValue
)

// categoryDescriptor is one capability record; the member list is built by
// folding over this table, so adding a category is additive.
type categoryDescriptor struct {
	bit   EventCategory
	event string
	hook  string
	group string
	shape argsShape
}

var categoryTable = []categoryDescriptor{
	{EventClearing, "Clearing", "OnClear", "Clear", shapeNone},
	{EventCleared, "Cleared", "OnClearComplete", "Clear", shapeNone},
	{EventInserting, "Inserting", "OnInsert", "Insert", shapeIndexValue},
	{EventInserted, "Inserted", "OnInsertComplete", "Insert", shapeIndexValue},
	{EventRemoving, "Removing", "OnRemove", "Remove", shapeIndexValue},
	{EventRemoved, "Removed", "OnRemoveComplete", "Remove", shapeIndexValue},
	{EventSetting, "Setting", "OnSet", "Set", shapeIndexOldNew},
	{EventSet, "Set", "OnSetComplete", "Set", shapeIndexOldNew},
	{EventValidating, "Validating", "OnValidate", "Validate", shapeValue},
}

// EventPair is one group's delegate + event-args declaration pair. The clear
// group carries no payload and binds to the host's plain handler, so it has
// no pair.
type EventPair struct {
	Delegate *codedom.DelegateDecl
	Args     *codedom.TypeDecl
	argsType *codedom.TypeRef
}

// TypedCollection expands an element type plus an event-category set into a
// constrained collection: the always-present base member set, a begin/end
// load guard when load suppression is requested, and per set bit the event
// machinery.
type TypedCollection struct {
	commentable
	name         string
	elem         *codedom.TypeRef
	typ          *codedom.TypeRef
	categories   EventCategory
	suppressLoad bool
	names        *expand.Names

	decl     *codedom.TypeDecl
	guard    *ProcessGuard
	pairs    map[string]*EventPair
	Events   map[EventCategory]*codedom.EventDecl
	Hooks    map[EventCategory]*codedom.MethodDecl
	Validate *codedom.MethodDecl
	support  []codedom.Decl // pair declarations, in group order
}

// NewTypedCollection builds the collection generator. An empty name defaults
// to the pluralized element type name.
func NewTypedCollection(name string, elem *codedom.TypeRef, categories EventCategory, suppressLoad bool) (*TypedCollection, error) {
	if elem == nil {
		return nil, &expand.InvalidArgumentError{Name: "elem", Reason: "nil element type"}
	}
	if categories&^EventAll != 0 {
		return nil, &expand.ConfigError{Reason: "unknown event-category bits set"}
	}
	if name == "" {
		name = inflection.Plural(elem.Name)
	}

	c := &TypedCollection{
		name:         name,
		elem:         elem,
		typ:          codedom.Type(name),
		categories:   categories,
		suppressLoad: suppressLoad,
		names:        expand.NewNames(),
		pairs:        map[string]*EventPair{},
		Events:       map[EventCategory]*codedom.EventDecl{},
		Hooks:        map[EventCategory]*codedom.MethodDecl{},
	}
	if err := c.build(); err != nil {
		return nil, err
	}

	commentFields := []string{}
	if c.guard != nil {
		commentFields = append(commentFields, c.guard.counterName())
	}
	c.initComments(c.rebuildComments, commentFields...)
	return c, nil
}

func (c *TypedCollection) list() codedom.Expr  { return codedom.Property(codedom.This(), "List") }
func (c *TypedCollection) inner() codedom.Expr { return codedom.Property(codedom.This(), "InnerList") }

func (c *TypedCollection) build() error {
	decl := codedom.NewClass(c.name, codedom.Public)
	decl.BaseTypes = []*codedom.TypeRef{typeCollectionBase}
	c.decl = decl

	if c.suppressLoad {
		g, err := NewProcessGuard("Load", "IsLoading", c.typ, Instance)
		if err != nil {
			return err
		}
		c.guard = g
	}

	if err := c.buildBase(); err != nil {
		return err
	}

	if c.guard != nil {
		decl.Members = append(decl.Members, c.guard.Members()...)
	}

	c.buildEvents()
	c.buildValidate()
	return nil
}

// buildBase emits the always-present member set.
func (c *TypedCollection) buildBase() error {
	elemArray := codedom.ArrayOf(c.elem)
	decl := c.decl

	decl.Members = append(decl.Members, codedom.NewConstructor(codedom.Public))

	bulk, err := c.bulkCtor(elemArray, codedom.Property(codedom.Arg("items"), "Length"))
	if err != nil {
		return err
	}
	decl.Members = append(decl.Members, bulk)

	copyCtor, err := c.bulkCtor(c.typ, codedom.Property(codedom.Arg("items"), "Count"))
	if err != nil {
		return err
	}
	decl.Members = append(decl.Members, copyCtor)

	indexer := codedom.NewProperty("Item", c.elem, codedom.Public)
	indexer.Params = []*codedom.ParamDecl{codedom.Param("index", codedom.TypeInt)}
	indexer.HasGet = true
	indexer.Get = []codedom.Stmt{
		codedom.Return(codedom.Cast(c.elem, codedom.Index(c.list(), codedom.Arg("index")))),
	}
	indexer.HasSet = true
	indexer.Set = []codedom.Stmt{
		codedom.Assign(codedom.Index(c.list(), codedom.Arg("index")), codedom.Arg("value")),
	}
	decl.Members = append(decl.Members, indexer)

	add := codedom.NewMethod("Add", codedom.Public, codedom.TypeInt, codedom.Param("value", c.elem))
	add.Body = []codedom.Stmt{
		codedom.Return(codedom.Invoke(c.list(), "Add", codedom.Arg("value"))),
	}
	decl.Members = append(decl.Members, add)

	addArray, err := c.addRange(elemArray)
	if err != nil {
		return err
	}
	decl.Members = append(decl.Members, addArray)

	addColl, err := c.addRange(c.typ)
	if err != nil {
		return err
	}
	decl.Members = append(decl.Members, addColl)

	insert := codedom.NewMethod("Insert", codedom.Public, codedom.TypeVoid,
		codedom.Param("index", codedom.TypeInt), codedom.Param("value", c.elem))
	insert.Body = []codedom.Stmt{
		codedom.Do(codedom.Invoke(c.list(), "Insert", codedom.Arg("index"), codedom.Arg("value"))),
	}
	decl.Members = append(decl.Members, insert)

	remove := codedom.NewMethod("Remove", codedom.Public, codedom.TypeVoid, codedom.Param("value", c.elem))
	remove.Body = []codedom.Stmt{
		codedom.Do(codedom.Invoke(c.list(), "Remove", codedom.Arg("value"))),
	}
	decl.Members = append(decl.Members, remove)

	contains := codedom.NewMethod("Contains", codedom.Public, codedom.TypeBool, codedom.Param("value", c.elem))
	contains.Body = []codedom.Stmt{
		codedom.Return(codedom.Invoke(c.list(), "Contains", codedom.Arg("value"))),
	}
	decl.Members = append(decl.Members, contains)

	indexOf := codedom.NewMethod("IndexOf", codedom.Public, codedom.TypeInt, codedom.Param("value", c.elem))
	indexOf.Body = []codedom.Stmt{
		codedom.Return(codedom.Invoke(c.list(), "IndexOf", codedom.Arg("value"))),
	}
	decl.Members = append(decl.Members, indexOf)

	copyTo := codedom.NewMethod("CopyTo", codedom.Public, codedom.TypeVoid,
		codedom.Param("array", elemArray), codedom.Param("index", codedom.TypeInt))
	copyTo.Body = []codedom.Stmt{
		expand.AssertNotNull("array"),
		codedom.Do(codedom.Invoke(c.list(), "CopyTo", codedom.Arg("array"), codedom.Arg("index"))),
	}
	decl.Members = append(decl.Members, copyTo)

	toArray := codedom.NewMethod("ToArray", codedom.Public, elemArray)
	toArray.Body = []codedom.Stmt{
		codedom.DeclareVar("result", elemArray,
			codedom.NewArray(c.elem, codedom.Property(codedom.This(), "Count"))),
		codedom.Do(codedom.Invoke(c.inner(), "CopyTo", codedom.Var("result"), codedom.Lit(0))),
		codedom.Return(codedom.Var("result")),
	}
	decl.Members = append(decl.Members, toArray)

	syncRoot := codedom.NewProperty("SyncRoot", codedom.TypeObject, codedom.Public)
	syncRoot.HasGet = true
	syncRoot.Get = []codedom.Stmt{
		codedom.Return(codedom.Property(c.inner(), "SyncRoot")),
	}
	decl.Members = append(decl.Members, syncRoot)

	return nil
}

// bulkCtor builds the variadic-array and copy constructors: pre-size the
// backing store, then bulk-add, bracketed by the load guard when suppression
// is requested.
func (c *TypedCollection) bulkCtor(paramType *codedom.TypeRef, capacity codedom.Expr) (*codedom.ConstructorDecl, error) {
	var p *codedom.ParamDecl
	if paramType.IsArray() {
		p = codedom.VariadicParam("items", paramType)
	} else {
		p = codedom.Param("items", paramType)
	}
	ctor := codedom.NewConstructor(codedom.Public, p)
	ctor.Body = []codedom.Stmt{
		expand.AssertNotNull("items"),
		codedom.Assign(codedom.Property(c.inner(), "Capacity"), capacity),
	}
	if c.suppressLoad {
		ctor.Body = append(ctor.Body,
			codedom.Do(codedom.Invoke(codedom.This(), "BeginLoad")))
	}
	ctor.Body = append(ctor.Body,
		codedom.Do(codedom.Invoke(codedom.This(), "AddRange", codedom.Arg("items"))))
	if c.suppressLoad {
		ctor.Body = append(ctor.Body,
			codedom.Do(codedom.Invoke(codedom.This(), "EndLoad")))
	}
	return ctor, nil
}

// addRange builds AddRange over either the element array or the collection
// type, iterating through the iteration expander.
func (c *TypedCollection) addRange(paramType *codedom.TypeRef) (*codedom.MethodDecl, error) {
	m := codedom.NewMethod("AddRange", codedom.Public, codedom.TypeVoid,
		codedom.Param("items", paramType))
	loop, err := expand.ForEach(c.names, "entry", c.elem, codedom.Arg("items"),
		codedom.Do(codedom.Invoke(codedom.This(), "Add", codedom.Var("entry"))))
	if err != nil {
		return nil, err
	}
	m.Body = append([]codedom.Stmt{expand.AssertNotNull("items")}, loop...)
	return m, nil
}

// buildEvents folds over the category table, emitting each group's pair once
// and each set bit's event field and hook override. The validate hook is
// handled separately because it exists regardless of the bit.
func (c *TypedCollection) buildEvents() {
	for _, cat := range categoryTable {
		if cat.bit == EventValidating || c.categories&cat.bit == 0 {
			continue
		}
		pair := c.ensurePair(cat)

		handlerType := codedom.TypeEventHandler
		if pair != nil {
			handlerType = codedom.Type(c.elem.Name + cat.group + "EventHandler")
		}
		ev := codedom.NewEvent(cat.event, handlerType, codedom.Public)
		c.Events[cat.bit] = ev
		c.decl.Members = append(c.decl.Members, ev)

		hook := codedom.NewMethod(cat.hook, codedom.Family|codedom.Override, codedom.TypeVoid,
			hookParams(cat.shape)...)
		hook.Body = []codedom.Stmt{
			codedom.If(c.hookCond(cat.event),
				codedom.Do(codedom.InvokeDelegate(
					codedom.Event(codedom.This(), cat.event),
					codedom.This(), c.hookArgs(cat, pair)))),
		}
		c.Hooks[cat.bit] = hook
		c.decl.Members = append(c.decl.Members, hook)
	}
}

// buildValidate always emits the OnValidate override: the element-type
// assertion runs unconditionally, and the validate event machinery is added
// only when its bit is set.
func (c *TypedCollection) buildValidate() {
	cat := categoryTable[len(categoryTable)-1]

	hook := codedom.NewMethod(cat.hook, codedom.Family|codedom.Override, codedom.TypeVoid,
		hookParams(cat.shape)...)
	hook.Body = []codedom.Stmt{expand.AssertIsInstance("value", c.elem)}

	if c.categories&EventValidating != 0 {
		pair := c.ensurePair(cat)
		ev := codedom.NewEvent(cat.event, codedom.Type(c.elem.Name+cat.group+"EventHandler"), codedom.Public)
		c.Events[EventValidating] = ev
		c.decl.Members = append(c.decl.Members, ev)

		hook.Body = append(hook.Body,
			codedom.If(c.hookCond(cat.event),
				codedom.Do(codedom.InvokeDelegate(
					codedom.Event(codedom.This(), cat.event),
					codedom.This(), c.hookArgs(cat, pair)))))
		c.Hooks[EventValidating] = hook
	}

	c.Validate = hook
	c.decl.Members = append(c.decl.Members, hook)
}

// hookCond builds `[this.IsLoading() == false &&] Event != null`. The load
// term references the guard predicate; without load suppression it
// degenerates to the event null check alone.
func (c *TypedCollection) hookCond(event string) codedom.Expr {
	eventNotNull := codedom.NotNull(codedom.Event(codedom.This(), event))
	if !c.suppressLoad {
		return eventNotNull
	}
	return codedom.Binary(codedom.OpAnd,
		expand.Negate(codedom.Invoke(codedom.This(), "IsLoading")),
		eventNotNull)
}

func (c *TypedCollection) hookArgs(cat categoryDescriptor, pair *EventPair) codedom.Expr {
	switch cat.shape {
	case shapeIndexValue:
		return codedom.New(pair.argsType,
			codedom.Arg("index"), codedom.Cast(c.elem, codedom.Arg("value")))
	case shapeIndexOldNew:
		return codedom.New(pair.argsType,
			codedom.Arg("index"),
			codedom.Cast(c.elem, codedom.Arg("oldValue")),
			codedom.Cast(c.elem, codedom.Arg("newValue")))
	case shapeValue:
		return codedom.New(pair.argsType, codedom.Cast(c.elem, codedom.Arg("value")))
	default:
		return codedom.Property(codedom.TypeExpr(codedom.TypeEventArgs), "Empty")
	}
}

func hookParams(shape argsShape) []*codedom.ParamDecl {
	switch shape {
	case shapeIndexValue:
		return []*codedom.ParamDecl{
			codedom.Param("index", codedom.TypeInt),
			codedom.Param("value", codedom.TypeObject),
		}
	case shapeIndexOldNew:
		return []*codedom.ParamDecl{
			codedom.Param("index", codedom.TypeInt),
			codedom.Param("oldValue", codedom.TypeObject),
			codedom.Param("newValue", codedom.TypeObject),
		}
	case shapeValue:
		return []*codedom.ParamDecl{codedom.Param("value", codedom.TypeObject)}
	default:
		return nil
	}
}

// ensurePair emits the group's delegate+args pair on first use. The clear
// group has no payload and therefore no pair.
func (c *TypedCollection) ensurePair(cat categoryDescriptor) *EventPair {
	if cat.shape == shapeNone {
		return nil
	}
	if p, ok := c.pairs[cat.group]; ok {
		return p
	}

	argsName := c.elem.Name + cat.group + "EventArgs"
	argsType := codedom.Type(argsName)

	var fields []FieldSpec
	switch cat.shape {
	case shapeIndexValue:
		fields = []FieldSpec{{"index", codedom.TypeInt}, {"value", c.elem}}
	case shapeIndexOldNew:
		fields = []FieldSpec{{"index", codedom.TypeInt}, {"oldValue", c.elem}, {"newValue", c.elem}}
	case shapeValue:
		fields = []FieldSpec{{"value", c.elem}}
	}

	args := argsClass(argsName, fields)
	delegate := codedom.NewDelegate(c.elem.Name+cat.group+"EventHandler", codedom.Public, codedom.TypeVoid,
		codedom.Param("sender", codedom.TypeObject),
		codedom.Param("e", argsType))

	p := &EventPair{Delegate: delegate, Args: args, argsType: argsType}
	c.pairs[cat.group] = p
	c.support = append(c.support, delegate, args)
	return p
}

// argsClass builds an event-args type: private fields, a constructor, and
// read-only accessors.
func argsClass(name string, fields []FieldSpec) *codedom.TypeDecl {
	decl := codedom.NewClass(name, codedom.Public)
	decl.BaseTypes = []*codedom.TypeRef{codedom.TypeEventArgs}

	params := make([]*codedom.ParamDecl, len(fields))
	assigns := make([]codedom.Stmt, len(fields))
	for i, f := range fields {
		fd := codedom.NewField(f.Name, f.Type, codedom.Private)
		decl.Members = append(decl.Members, fd)
		params[i] = codedom.Param(f.Name, f.Type)
		assigns[i] = codedom.Assign(codedom.Field(codedom.This(), f.Name), codedom.Arg(f.Name))
	}

	ctor := codedom.NewConstructor(codedom.Public, params...)
	ctor.Body = assigns
	decl.Members = append(decl.Members, ctor)

	for _, f := range fields {
		p := codedom.NewProperty(upperFirst(f.Name), f.Type, codedom.Public)
		p.HasGet = true
		p.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), f.Name))}
		decl.Members = append(decl.Members, p)
	}
	return decl
}

// Declaration returns the collection type itself.
func (c *TypedCollection) Declaration() *codedom.TypeDecl { return c.decl }

// Pair returns the delegate+args pair emitted for a group ("Insert",
// "Remove", "Set", "Validate"), or nil.
func (c *TypedCollection) Pair(group string) *EventPair { return c.pairs[group] }

// Guard returns the embedded load guard, or nil when load suppression was
// not requested.
func (c *TypedCollection) Guard() *ProcessGuard { return c.guard }

// Members returns every top-level declaration: the event pairs in group
// order followed by the collection type.
func (c *TypedCollection) Members() []codedom.Decl {
	out := make([]codedom.Decl, 0, len(c.support)+1)
	out = append(out, c.support...)
	out = append(out, c.decl)
	return out
}

func (c *TypedCollection) rebuildComments(set *doc.Set) {
	set.Add(c.decl,
		doc.Summary{Text: sentence("A strongly typed collection of", c.elem.Name, "values")},
		doc.Remarks{Text: sentence("Backed by the host collection base; only", c.elem.Name, "instances pass validation")},
	)
	c.baseComments(set)
	for _, d := range c.support {
		switch v := d.(type) {
		case *codedom.DelegateDecl:
			set.Add(v,
				doc.Summary{Text: sentence("Handles", c.name, "lifecycle notifications carrying", v.Params[1].Type.Name)},
				doc.Param{Name: "sender", Text: sentence("The", c.name, "raising the event")},
				doc.Param{Name: "e", Text: sentence("The", v.Params[1].Type.Name, "describing the change")},
			)
		case *codedom.TypeDecl:
			set.Add(v, doc.Summary{Text: sentence("Event data for", c.name, "lifecycle notifications")})
			c.argsComments(set, v)
		}
	}
	for _, cat := range categoryTable {
		if ev, ok := c.Events[cat.bit]; ok {
			set.Add(ev, doc.Summary{Text: sentence("Occurs on the", cat.event, "phase of the collection lifecycle")})
		}
		if hook, ok := c.Hooks[cat.bit]; ok {
			set.Add(hook, doc.Summary{Text: sentence("Raises the", cat.event, "event unless a bulk load is active")})
		}
	}
	if c.Validate != nil {
		set.Add(c.Validate,
			doc.Summary{Text: sentence("Rejects values that are not", c.elem.Name, "instances")},
			doc.Exception{Type: "ArgumentException", Text: sentence("The value is not", article(c.elem.Name), c.elem.Name)},
		)
	}
	if c.guard != nil {
		set.Add(c.guard.Field, doc.Summary{Text: c.narrative(c.guard.counterName(), "Number of open bulk-load phases.")})
		set.Add(c.guard.Begin, doc.Summary{Text: "Suspends lifecycle events for a bulk load; loads may nest."})
		set.Add(c.guard.End, doc.Summary{Text: "Ends the innermost bulk load; unmatched calls are ignored."})
		set.Add(c.guard.Predicate, doc.Summary{Text: "Returns true while a bulk load is active."})
	}
}

// baseComments documents the always-present member set. Members owned by the
// guard or the event fold are documented by their own passes; only names from
// buildBase match here.
func (c *TypedCollection) baseComments(set *doc.Set) {
	for _, m := range c.decl.Members {
		switch v := m.(type) {
		case *codedom.ConstructorDecl:
			switch {
			case len(v.Params) == 0:
				set.Add(v, doc.Summary{Text: sentence("Initializes an empty", c.name)})
			case v.Params[0].Type.IsArray():
				set.Add(v,
					doc.Summary{Text: sentence("Initializes", article(c.name), c.name, "containing the given", c.elem.Name, "values")},
					doc.Param{Name: "items", Text: sentence("The initial", c.elem.Name, "values")},
				)
			default:
				set.Add(v,
					doc.Summary{Text: sentence("Initializes", article(c.name), c.name, "with the contents of another", c.name)},
					doc.Param{Name: "items", Text: sentence("The", c.name, "whose values are copied")},
				)
			}
		case *codedom.PropertyDecl:
			switch v.Name {
			case "Item":
				set.Add(v,
					doc.Summary{Text: sentence("Gets or sets the", c.elem.Name, "at the given index")},
					doc.Value{Text: sentence(upperFirst(article(c.elem.Name)), c.elem.Name, "value")},
				)
			case "SyncRoot":
				set.Add(v, doc.Summary{Text: "Gets an object usable to synchronize access to the collection."})
			}
		case *codedom.MethodDecl:
			c.baseMethodComments(set, v)
		}
	}
}

func (c *TypedCollection) baseMethodComments(set *doc.Set, m *codedom.MethodDecl) {
	switch m.Name {
	case "Add":
		set.Add(m,
			doc.Summary{Text: sentence("Appends", article(c.elem.Name), c.elem.Name, "to the collection")},
			doc.Param{Name: "value", Text: sentence("The", c.elem.Name, "to append")},
			doc.Returns{Text: "The index at which the value was added."},
		)
	case "AddRange":
		source := c.elem.Name + " array"
		if !m.Params[0].Type.IsArray() {
			source = c.name
		}
		set.Add(m,
			doc.Summary{Text: sentence("Appends every value in the given", source)},
			doc.Param{Name: "items", Text: sentence("The", m.Params[0].Type.Name, "whose values are appended")},
		)
	case "Insert":
		set.Add(m,
			doc.Summary{Text: sentence("Places", article(c.elem.Name), c.elem.Name, "at the given index")},
			doc.Param{Name: "index", Text: "The zero-based position for the value."},
			doc.Param{Name: "value", Text: sentence("The", c.elem.Name, "to place")},
		)
	case "Remove":
		set.Add(m,
			doc.Summary{Text: sentence("Removes the first occurrence of", article(c.elem.Name), c.elem.Name)},
			doc.Param{Name: "value", Text: sentence("The", c.elem.Name, "to remove")},
		)
	case "Contains":
		set.Add(m,
			doc.Summary{Text: sentence("Reports whether the collection holds the given", c.elem.Name)},
			doc.Param{Name: "value", Text: sentence("The", c.elem.Name, "to look for")},
			doc.Returns{Text: "true when the value is present; otherwise false."},
		)
	case "IndexOf":
		set.Add(m,
			doc.Summary{Text: sentence("Finds the position of the given", c.elem.Name)},
			doc.Param{Name: "value", Text: sentence("The", c.elem.Name, "to locate")},
			doc.Returns{Text: "The zero-based index of the value, or -1 when absent."},
		)
	case "CopyTo":
		set.Add(m,
			doc.Summary{Text: "Copies the collection into an array starting at the given offset."},
			doc.Param{Name: "array", Text: "The destination array."},
			doc.Param{Name: "index", Text: "The zero-based destination offset."},
		)
	case "ToArray":
		set.Add(m,
			doc.Summary{Text: sentence("Copies the collection into a new", c.elem.Name, "array")},
			doc.Returns{Text: sentence("A fresh array holding every value in order")},
		)
	}
}

// argsComments documents an event-args class: the capture constructor, its
// backing fields and the read-only accessors.
func (c *TypedCollection) argsComments(set *doc.Set, args *codedom.TypeDecl) {
	for _, m := range args.Members {
		switch v := m.(type) {
		case *codedom.FieldDecl:
			set.Add(v, doc.Summary{Text: sentence("Backing storage for the", upperFirst(v.Name), "accessor")})
		case *codedom.ConstructorDecl:
			entries := []doc.Entry{doc.Summary{Text: "Initializes the event data with the change payload."}}
			for _, p := range v.Params {
				entries = append(entries, doc.Param{Name: p.Name, Text: sentence("The", p.Name, "of the change")})
			}
			set.Add(v, entries...)
		case *codedom.PropertyDecl:
			set.Add(v,
				doc.Summary{Text: sentence("Gets the", v.Name, "of the change")},
				doc.Value{Text: sentence(upperFirst(article(v.Type.Name)), v.Type.Name, "value")},
			)
		}
	}
}
