package object

import "testing"

func TestArityWrappers(t *testing.T) {
	in := MustInterface("Calc",
		MethodSig{Name: "zero", NumArgs: 0, HasResult: true},
		MethodSig{Name: "double", NumArgs: 1, HasResult: true},
		MethodSig{Name: "add", NumArgs: 2, HasResult: true},
	)
	typ := in.MustType("CalcImpl",
		WithMethod("zero", Method0(func(self *Instance) Value {
			return 0
		})),
		WithMethod("double", Method1(func(self *Instance, arg Value) Value {
			return arg.(int) * 2
		})),
		WithMethod("add", Method2(func(self *Instance, a, b Value) Value {
			return a.(int) + b.(int)
		})),
	)

	h := Bind(NewInstance(typ))
	if v := h.MustCall("zero"); v != 0 {
		t.Errorf("zero = %v, want 0", v)
	}
	if v := h.MustCall("double", 21); v != 42 {
		t.Errorf("double(21) = %v, want 42", v)
	}
	if v := h.MustCall("add", 2, 3); v != 5 {
		t.Errorf("add(2, 3) = %v, want 5", v)
	}
}

func TestAccessorHelpers(t *testing.T) {
	in := MustInterface("Named",
		MethodSig{Name: "name", NumArgs: 0, HasResult: true},
		MethodSig{Name: "set_name", NumArgs: 1},
		MethodSig{Name: "kind", NumArgs: 0, HasResult: true},
	)
	typ := in.MustType("NamedImpl",
		WithField("name", "anonymous"),
		WithMethod("name", Getter("name")),
		WithMethod("set_name", Setter("name")),
		WithMethod("kind", Constant("named")),
	)

	h := Bind(NewInstance(typ))
	if v := h.MustCall("name"); v != "anonymous" {
		t.Errorf("name = %v, want anonymous", v)
	}

	h.MustCall("set_name", "zoe")
	if v := h.MustCall("name"); v != "zoe" {
		t.Errorf("name after set_name = %v, want zoe", v)
	}
	if v := h.MustCall("kind"); v != "named" {
		t.Errorf("kind = %v, want named", v)
	}
}
