package object

import "fmt"

// MethodSig describes one method declared by an interface: its name, the
// number of arguments it takes (excluding the receiver), and whether it
// produces a result.
type MethodSig struct {
	Name      string
	NumArgs   int
	HasResult bool
}

// Interface is an ordered set of method signatures. It is immutable once
// defined and shared by all implementing types.
type Interface struct {
	name      string
	sigs      []MethodSig
	selectors *SelectorTable // method name -> vtable slot, declaration order
}

// NewInterface defines an interface from an ordered set of method
// signatures. Duplicate method names and negative arities are rejected.
func NewInterface(name string, methods ...MethodSig) (*Interface, error) {
	if name == "" {
		return nil, &DefinitionError{Subject: "<interface>", Reason: "empty interface name"}
	}

	in := &Interface{
		name:      name,
		sigs:      make([]MethodSig, len(methods)),
		selectors: NewSelectorTable(),
	}
	copy(in.sigs, methods)

	for _, sig := range in.sigs {
		if sig.Name == "" {
			return nil, &DefinitionError{Subject: name, Reason: "empty method name"}
		}
		if sig.NumArgs < 0 {
			return nil, &DefinitionError{
				Subject: name,
				Reason:  fmt.Sprintf("method %q has negative arity %d", sig.Name, sig.NumArgs),
			}
		}
		if in.selectors.Lookup(sig.Name) != -1 {
			return nil, &DefinitionError{
				Subject: name,
				Reason:  fmt.Sprintf("duplicate method %q", sig.Name),
			}
		}
		in.selectors.Intern(sig.Name)
	}
	return in, nil
}

// MustInterface is like NewInterface but panics on a malformed descriptor.
// Useful for static initialization of well-known interfaces.
func MustInterface(name string, methods ...MethodSig) *Interface {
	in, err := NewInterface(name, methods...)
	if err != nil {
		panic(err)
	}
	return in
}

// Name returns the interface name.
func (in *Interface) Name() string { return in.name }

// NumMethods returns the number of declared methods.
func (in *Interface) NumMethods() int { return len(in.sigs) }

// Methods returns the declared signatures in declaration order.
func (in *Interface) Methods() []MethodSig {
	out := make([]MethodSig, len(in.sigs))
	copy(out, in.sigs)
	return out
}

// Slot returns the vtable slot for a method name, or -1 if the interface
// does not declare it.
func (in *Interface) Slot(name string) int {
	return in.selectors.Lookup(name)
}

// Sig returns the signature occupying a slot. Panics if the slot is out of
// range; slots only come from Slot, which validates the name.
func (in *Interface) Sig(slot int) MethodSig {
	return in.sigs[slot]
}
