package object

import (
	"errors"
	"fmt"
)

// Sentinel errors for ownership-mode and lifetime violations. These are
// recoverable: calling code may reasonably probe for them with errors.Is.
var (
	// ErrCannotDuplicate is returned when Clone or Share is called on a
	// handle whose ownership mode does not permit duplication.
	ErrCannotDuplicate = errors.New("cannot duplicate a non-owning interface")

	// ErrAlreadyDestroyed is returned when Destroy is called on a handle
	// whose storage has already been released.
	ErrAlreadyDestroyed = errors.New("handle already destroyed")
)

// UnresolvedMethodError reports an invocation of a vtable slot that no type
// in the inheritance chain implemented. This is the "pure virtual call"
// fault: always a programming error, never recoverable.
type UnresolvedMethodError struct {
	Interface string // interface name
	Type      string // concrete type name
	Method    string // unresolved method name
}

func (e *UnresolvedMethodError) Error() string {
	return fmt.Sprintf("pure virtual call: %s.%s is not implemented anywhere in the chain of %s",
		e.Interface, e.Method, e.Type)
}

// UnknownMethodError reports a call to a method name the interface
// descriptor does not declare.
type UnknownMethodError struct {
	Interface string
	Method    string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("interface %s does not declare method %q", e.Interface, e.Method)
}

// ArityError reports a call whose argument count does not match the
// declared method signature.
type ArityError struct {
	Interface string
	Method    string
	Want      int
	Got       int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s.%s expects %d argument(s), got %d",
		e.Interface, e.Method, e.Want, e.Got)
}

// FieldCollisionError reports a derived type declaring a field whose name
// already exists on an ancestor. Rejected at construction time, before any
// instance can be created.
type FieldCollisionError struct {
	Type     string // the type being defined
	Ancestor string // the ancestor that already declares the field
	Field    string
}

func (e *FieldCollisionError) Error() string {
	return fmt.Sprintf("type %s: field %q collides with ancestor %s", e.Type, e.Field, e.Ancestor)
}

// DefinitionError reports any other malformed interface or type definition
// (duplicate method names, negative arity, unknown method implementations).
type DefinitionError struct {
	Subject string // interface or type name
	Reason  string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition of %s: %s", e.Subject, e.Reason)
}
