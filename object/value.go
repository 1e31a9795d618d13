package object

import "reflect"

// Value is the dynamic value type used for method arguments, return values
// and instance fields. Any Go value may be stored; nil is a valid Value.
type Value = any

// MethodFunc is a concrete method implementation. It receives the instance
// the handle dispatched on and the call arguments in declaration order.
type MethodFunc func(self *Instance, args []Value) Value

// DestructorFunc is invoked during handle destruction. Destructors run
// outermost-derived first, then each ancestor's in turn.
type DestructorFunc func(self *Instance)

// CloneFunc copies type-specific state from src into dst. Types that need
// deep-copy semantics beyond a field-wise copy declare one via WithCloneFunc.
type CloneFunc func(src, dst *Instance)

// ValueEqual compares two dynamic values. Comparable kinds use ==; everything
// else falls back to reflect.DeepEqual.
func ValueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta := reflect.TypeOf(a)
	if ta == reflect.TypeOf(b) && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
