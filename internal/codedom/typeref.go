package codedom

import (
	"sync"
)

type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindClass             // reference type
	KindStruct            // value type
	KindInterface
	KindEnum
	KindDelegate
)

// TypeRef is an immutable, value-like type descriptor. Named references are
// interned process-wide so repeated lookups share one value; array references
// are derived and not interned.
type TypeRef struct {
	Name       string
	Kind       TypeKind
	Elem       *TypeRef // non-nil for array references
	Implements []string // declared capability interfaces, by name
}

// IsArray reports whether the reference describes an array type.
func (t *TypeRef) IsArray() bool { return t.Elem != nil }

// ImplementsInterface reports whether name is among the declared capabilities.
func (t *TypeRef) ImplementsInterface(name string) bool {
	for _, n := range t.Implements {
		if n == name {
			return true
		}
	}
	return false
}

var (
	internMu sync.Mutex
	interned = map[string]*TypeRef{}
)

// Type returns the interned reference for name, creating an unknown-kind
// entry on first lookup.
func Type(name string) *TypeRef {
	internMu.Lock()
	defer internMu.Unlock()
	if t, ok := interned[name]; ok {
		return t
	}
	t := &TypeRef{Name: name}
	interned[name] = t
	return t
}

// Register interns name with its kind and capability set. Re-registering
// replaces the stored value; the replacement is referentially interchangeable
// so last-writer-wins is acceptable.
func Register(name string, kind TypeKind, implements ...string) *TypeRef {
	internMu.Lock()
	defer internMu.Unlock()
	t := &TypeRef{Name: name, Kind: kind, Implements: implements}
	interned[name] = t
	return t
}

// ArrayOf returns an array reference over elem.
func ArrayOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Name: elem.Name + "[]", Elem: elem}
}

// Well-known host types referenced by the generators.
var (
	TypeVoid          = Register("void", KindStruct)
	TypeObject        = Register("object", KindClass)
	TypeString        = Register("string", KindClass)
	TypeBool          = Register("bool", KindStruct)
	TypeInt           = Register("int", KindStruct)
	TypeLong          = Register("long", KindStruct)
	TypeEventArgs     = Register("EventArgs", KindClass)
	TypeEventHandler  = Register("EventHandler", KindDelegate)
	TypeIDisposable   = Register("IDisposable", KindInterface)
	TypeIEnumerator   = Register("IEnumerator", KindInterface)
	TypeIAsyncResult  = Register("IAsyncResult", KindInterface)
	TypeAsyncCallback = Register("AsyncCallback", KindDelegate)
)
