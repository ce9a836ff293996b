package pattern

import (
	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/doc"
	"github.com/cmmoran/patternweave/internal/expand"
)

// LoadStrategy selects between the two structurally distinct singleton
// expansions.
type LoadStrategy int

const (
	// Eager constructs the instance at type-initialization time.
	Eager LoadStrategy = iota
	// Lazy defers construction until a private nested holder type is first
	// touched.
	Lazy
)

// Singleton expands a type name plus load strategy into the singleton idiom.
// Both variants end with a private parameterless constructor that blocks
// external instantiation.
type Singleton struct {
	commentable
	typ      *codedom.TypeRef
	strategy LoadStrategy

	Field *codedom.FieldDecl
	// TypeInitializer is the empty static constructor that suppresses
	// aggressive pre-initialization of the instance field.
	TypeInitializer *codedom.ConstructorDecl
	Accessor        *codedom.PropertyDecl
	// Holder is the private nested type carrying the eager-shaped field in
	// the lazy variant; nil when eager.
	Holder      *codedom.TypeDecl
	Constructor *codedom.ConstructorDecl
}

func NewSingleton(typeName string, strategy LoadStrategy) (*Singleton, error) {
	if typeName == "" {
		return nil, &expand.InvalidArgumentError{Name: "typeName", Reason: "empty type name"}
	}

	s := &Singleton{typ: codedom.Type(typeName), strategy: strategy}
	s.build()
	s.initComments(s.rebuildComments, "instance")
	return s, nil
}

func (s *Singleton) build() {
	switch s.strategy {
	case Eager:
		s.Field, s.TypeInitializer, s.Accessor = eagerShape(s.typ, s.typ)
	case Lazy:
		holderType := codedom.Type(s.typ.Name + "Holder")
		field, init, accessor := eagerShape(s.typ, holderType)
		holder := codedom.NewClass(holderType.Name, codedom.Private)
		holder.Members = []codedom.Decl{field, init, accessor}
		s.Holder = holder
		s.Field = field
		s.TypeInitializer = init

		outer := codedom.NewProperty("Instance", s.typ, codedom.Public|codedom.Static)
		outer.HasGet = true
		outer.Get = []codedom.Stmt{
			codedom.Return(codedom.Property(codedom.TypeExpr(holderType), "Instance")),
		}
		s.Accessor = outer
	}

	s.Constructor = codedom.NewConstructor(codedom.Private)
}

// eagerShape builds the static field initialized inline, the empty static
// initializer, and the direct accessor. holder is the type the members live
// on, which differs from the instance type only in the lazy variant.
func eagerShape(instance, holder *codedom.TypeRef) (*codedom.FieldDecl, *codedom.ConstructorDecl, *codedom.PropertyDecl) {
	field := codedom.NewField("instance", instance, codedom.Private|codedom.Static)
	field.Init = codedom.New(instance)

	init := codedom.NewConstructor(codedom.Static)

	accessor := codedom.NewProperty("Instance", instance, codedom.Public|codedom.Static)
	accessor.HasGet = true
	accessor.Get = []codedom.Stmt{
		codedom.Return(codedom.Field(codedom.TypeExpr(holder), "instance")),
	}
	return field, init, accessor
}

// Members returns the generated declarations in order. The lazy variant
// nests the eager shape inside the holder type.
func (s *Singleton) Members() []codedom.Decl {
	if s.strategy == Lazy {
		return []codedom.Decl{s.Holder, s.Accessor, s.Constructor}
	}
	return []codedom.Decl{s.Field, s.TypeInitializer, s.Accessor, s.Constructor}
}

func (s *Singleton) rebuildComments(set *doc.Set) {
	set.Add(s.Field,
		doc.Summary{Text: s.narrative("instance", sentence("The single shared", s.typ.Name, "instance"))},
	)
	set.Add(s.TypeInitializer,
		doc.Summary{Text: "Explicit type initializer; prevents the field from being initialized before first use of the type."},
	)
	set.Add(s.Accessor,
		doc.Summary{Text: sentence("Gets the single shared instance of", s.typ.Name)},
		doc.Value{Text: sentence("The", s.typ.Name, "instance")},
	)
	if s.Holder != nil {
		set.Add(s.Holder,
			doc.Summary{Text: sentence("Holds the", s.typ.Name, "instance; construction is deferred until this type is first touched")},
		)
	}
	set.Add(s.Constructor,
		doc.Summary{Text: sentence("Prevents external instantiation of", s.typ.Name)},
	)
}
