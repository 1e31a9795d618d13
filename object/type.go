package object

import "fmt"

// Field declares one instance field: a name and the default value new
// instances start with.
type Field struct {
	Name    string
	Default Value
}

// Type is a concrete implementing type: a position in a single-inheritance
// chain rooted at an Interface, with its own fields, method implementations
// and optional destructor.
type Type struct {
	name  string
	iface *Interface
	base  *Type // nil when rooted directly at the interface

	fields  []Field            // declared by this type only
	methods map[int]MethodFunc // vtable slot -> local implementation
	dtor    DestructorFunc     // nil if this type declares no destructor
	cloneFn CloneFunc          // nil for field-wise copy

	offset   int // starting slot index for this type's fields
	numSlots int // total slots including inherited
	vtable   *VTable
}

// TypeOption configures a type under construction.
type TypeOption func(*typeSpec)

type typeSpec struct {
	fields  []Field
	methods map[string]MethodFunc
	order   []string // method declaration order, for deterministic errors
	dtor    DestructorFunc
	cloneFn CloneFunc
}

// WithField declares an instance field with a default value.
func WithField(name string, def Value) TypeOption {
	return func(s *typeSpec) {
		s.fields = append(s.fields, Field{Name: name, Default: def})
	}
}

// WithMethod supplies the implementation for an interface method.
func WithMethod(name string, fn MethodFunc) TypeOption {
	return func(s *typeSpec) {
		if _, dup := s.methods[name]; !dup {
			s.order = append(s.order, name)
		}
		s.methods[name] = fn
	}
}

// WithDestructor declares a destructor for this chain position. Destructors
// run outermost-derived first during handle destruction.
func WithDestructor(fn DestructorFunc) TypeOption {
	return func(s *typeSpec) { s.dtor = fn }
}

// WithCloneFunc overrides the default field-wise copy used by Handle.Clone.
func WithCloneFunc(fn CloneFunc) TypeOption {
	return func(s *typeSpec) { s.cloneFn = fn }
}

// NewType defines a concrete type rooted directly at the interface.
func (in *Interface) NewType(name string, opts ...TypeOption) (*Type, error) {
	return makeType(in, nil, name, opts)
}

// Derive defines a concrete type whose base is another concrete type.
// Single inheritance only: the one base is the argument; chains of any
// depth are built by deriving repeatedly.
func Derive(base *Type, name string, opts ...TypeOption) (*Type, error) {
	if base == nil {
		return nil, &DefinitionError{Subject: name, Reason: "nil base type"}
	}
	return makeType(base.iface, base, name, opts)
}

func makeType(in *Interface, base *Type, name string, opts []TypeOption) (*Type, error) {
	if name == "" {
		return nil, &DefinitionError{Subject: "<type>", Reason: "empty type name"}
	}

	spec := &typeSpec{methods: make(map[string]MethodFunc)}
	for _, opt := range opts {
		opt(spec)
	}

	t := &Type{
		name:    name,
		iface:   in,
		base:    base,
		fields:  spec.fields,
		methods: make(map[int]MethodFunc, len(spec.methods)),
		dtor:    spec.dtor,
		cloneFn: spec.cloneFn,
	}

	// Field layout: this type's fields follow all inherited slots.
	if base != nil {
		t.offset = base.numSlots
	}
	t.numSlots = t.offset + len(t.fields)

	// Reject duplicate fields within the type itself, then against every
	// ancestor. Collisions are construction-time errors: no instance of a
	// colliding type can ever exist.
	seen := make(map[string]bool, len(t.fields))
	for _, f := range t.fields {
		if f.Name == "" {
			return nil, &DefinitionError{Subject: name, Reason: "empty field name"}
		}
		if seen[f.Name] {
			return nil, &DefinitionError{
				Subject: name,
				Reason:  fmt.Sprintf("duplicate field %q", f.Name),
			}
		}
		seen[f.Name] = true

		for anc := base; anc != nil; anc = anc.base {
			if anc.declaresField(f.Name) {
				return nil, &FieldCollisionError{Type: name, Ancestor: anc.name, Field: f.Name}
			}
		}
	}

	// Every implemented method must be declared by the interface.
	for _, mname := range spec.order {
		slot := in.Slot(mname)
		if slot < 0 {
			return nil, &UnknownMethodError{Interface: in.name, Method: mname}
		}
		t.methods[slot] = spec.methods[mname]
	}

	t.vtable = buildVTable(t)
	return t, nil
}

// MustDerive is like Derive but panics on a malformed definition.
func MustDerive(base *Type, name string, opts ...TypeOption) *Type {
	t, err := Derive(base, name, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// MustType is like Interface.NewType but panics on a malformed definition.
func (in *Interface) MustType(name string, opts ...TypeOption) *Type {
	t, err := in.NewType(name, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Interface returns the interface this type implements.
func (t *Type) Interface() *Interface { return t.iface }

// Base returns the base type, or nil for interface-rooted types.
func (t *Type) Base() *Type { return t.base }

// VTable returns the dispatch table built for this type.
func (t *Type) VTable() *VTable { return t.vtable }

// NumSlots returns the total field slot count including inherited fields.
func (t *Type) NumSlots() int { return t.numSlots }

// declaresField reports whether this type (not ancestors) declares a field.
func (t *Type) declaresField(name string) bool {
	for _, f := range t.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// FieldIndex returns the slot index for a field by name, walking the chain
// derived-to-root. Returns -1 if no type in the chain declares it.
func (t *Type) FieldIndex(name string) int {
	for i, f := range t.fields {
		if f.Name == name {
			return t.offset + i
		}
	}
	if t.base != nil {
		return t.base.FieldIndex(name)
	}
	return -1
}

// AllFieldNames returns all field names including inherited ones, in slot
// order.
func (t *Type) AllFieldNames() []string {
	if t.base == nil {
		names := make([]string, len(t.fields))
		for i, f := range t.fields {
			names[i] = f.Name
		}
		return names
	}
	inherited := t.base.AllFieldNames()
	result := make([]string, len(inherited), t.numSlots)
	copy(result, inherited)
	for _, f := range t.fields {
		result = append(result, f.Name)
	}
	return result
}

// IsSubtypeOf returns true if t derives from other (or is the same type).
func (t *Type) IsSubtypeOf(other *Type) bool {
	for cur := t; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

// localMethod returns this type's own implementation for a slot, or nil.
func (t *Type) localMethod(slot int) MethodFunc {
	return t.methods[slot]
}

// LocalFields returns the fields declared by this type only, in declaration
// order.
func (t *Type) LocalFields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// LocalMethodNames returns the names of methods this type implements
// itself (not inherited), in slot order.
func (t *Type) LocalMethodNames() []string {
	names := make([]string, 0, len(t.methods))
	for slot := 0; slot < t.iface.NumMethods(); slot++ {
		if _, ok := t.methods[slot]; ok {
			names = append(names, t.iface.Sig(slot).Name)
		}
	}
	return names
}

// HasDestructor reports whether this chain position declares a destructor.
func (t *Type) HasDestructor() bool { return t.dtor != nil }

// HasCloneFunc reports whether this type declares a deep-clone override.
func (t *Type) HasCloneFunc() bool { return t.cloneFn != nil }
