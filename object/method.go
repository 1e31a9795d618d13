package object

// Arity-specialized method constructors.
//
// MethodFunc receives its arguments as a slice; the wrappers below let
// implementations take fixed parameters instead, which reads better for the
// common 0-2 argument cases. The interface descriptor still checks arity at
// call time, so the wrappers can index their arguments directly.

// Method0Func is an implementation taking no arguments.
type Method0Func func(self *Instance) Value

// Method1Func is an implementation taking one argument.
type Method1Func func(self *Instance, arg Value) Value

// Method2Func is an implementation taking two arguments.
type Method2Func func(self *Instance, arg1, arg2 Value) Value

// Method3Func is an implementation taking three arguments.
type Method3Func func(self *Instance, arg1, arg2, arg3 Value) Value

// Method0 wraps a zero-argument implementation.
func Method0(fn Method0Func) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return fn(self)
	}
}

// Method1 wraps a one-argument implementation.
func Method1(fn Method1Func) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return fn(self, args[0])
	}
}

// Method2 wraps a two-argument implementation.
func Method2(fn Method2Func) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return fn(self, args[0], args[1])
	}
}

// Method3 wraps a three-argument implementation.
func Method3(fn Method3Func) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return fn(self, args[0], args[1], args[2])
	}
}

// Getter returns a method that reads one field, for the common accessor
// pattern.
func Getter(field string) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return self.MustGet(field)
	}
}

// Setter returns a one-argument method that stores into one field.
func Setter(field string) MethodFunc {
	return func(self *Instance, args []Value) Value {
		self.MustSet(field, args[0])
		return nil
	}
}

// Constant returns a method that ignores its arguments and always produces
// the same value.
func Constant(v Value) MethodFunc {
	return func(self *Instance, args []Value) Value {
		return v
	}
}
