package object

// ---------------------------------------------------------------------------
// Inheritance chain resolution
// ---------------------------------------------------------------------------

// Chain returns the ordered type sequence root -> ... -> derived for a
// concrete type. The same ordering drives the vtable override walk
// (root-to-derived) and, reversed, base-implementation navigation.
func Chain(t *Type) []*Type {
	depth := 0
	for cur := t; cur != nil; cur = cur.base {
		depth++
	}
	chain := make([]*Type, depth)
	for cur := t; cur != nil; cur = cur.base {
		depth--
		chain[depth] = cur
	}
	return chain
}

// FindImpl walks derived-to-root from start and returns the nearest type
// implementing the given slot, together with its implementation. Returns
// (nil, nil) when no type in the chain implements the slot.
func FindImpl(start *Type, slot int) (*Type, MethodFunc) {
	for cur := start; cur != nil; cur = cur.base {
		if fn := cur.localMethod(slot); fn != nil {
			return cur, fn
		}
	}
	return nil, nil
}

// CallBase invokes the nearest ancestor implementation of a method, starting
// the search strictly above from. This is the explicit call-through used
// when an override wants its predecessor's behavior; there are no implicit
// super-calls.
func CallBase(inst *Instance, from *Type, method string, args ...Value) (Value, error) {
	iface := from.iface
	slot := iface.Slot(method)
	if slot < 0 {
		return nil, &UnknownMethodError{Interface: iface.name, Method: method}
	}
	if sig := iface.Sig(slot); sig.NumArgs != len(args) {
		return nil, &ArityError{Interface: iface.name, Method: method, Want: sig.NumArgs, Got: len(args)}
	}

	impl, fn := FindImpl(from.base, slot)
	if impl == nil {
		return nil, &UnresolvedMethodError{
			Interface: iface.name,
			Type:      from.name,
			Method:    method,
		}
	}
	return fn(inst, args), nil
}
