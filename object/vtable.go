package object

// VTable holds the method dispatch table for a concrete type.
//
// Slots are indexed by the interface's selector IDs, so lookup is O(1)
// array indexing. The table is built once at type-construction time by
// walking the inheritance chain root-to-derived and letting more derived
// implementations overwrite earlier ones; it is then shared, never owned,
// by every handle over the type.
type VTable struct {
	typ   *Type
	iface *Interface

	slots []MethodFunc // nil slot = unresolved ("pure virtual")
	impls []*Type      // which chain position bound each slot, for diagnostics

	// Destructors declared anywhere in the chain, outermost-derived first.
	// Destruction always starts at the most derived declaration regardless
	// of where other overrides sit.
	dtors []DestructorFunc
}

// buildVTable resolves one dispatch table for a concrete type.
func buildVTable(t *Type) *VTable {
	n := t.iface.NumMethods()
	vt := &VTable{
		typ:   t,
		iface: t.iface,
		slots: make([]MethodFunc, n),
		impls: make([]*Type, n),
	}

	// Root-to-derived walk: later (more derived) writes win.
	for _, pos := range Chain(t) {
		for slot, fn := range pos.methods {
			vt.slots[slot] = fn
			vt.impls[slot] = pos
		}
	}

	// Destructor chaining starts at the top: collect derived-to-root.
	for cur := t; cur != nil; cur = cur.base {
		if cur.dtor != nil {
			vt.dtors = append(vt.dtors, cur.dtor)
		}
	}

	return vt
}

// Type returns the concrete type this vtable dispatches for.
func (vt *VTable) Type() *Type { return vt.typ }

// Interface returns the interface whose selectors index the table.
func (vt *VTable) Interface() *Interface { return vt.iface }

// Resolved reports whether a slot is bound to a concrete implementation.
func (vt *VTable) Resolved(slot int) bool {
	return slot >= 0 && slot < len(vt.slots) && vt.slots[slot] != nil
}

// Implementor returns the chain position that bound a slot, or nil for
// unresolved slots.
func (vt *VTable) Implementor(slot int) *Type {
	if slot < 0 || slot >= len(vt.impls) {
		return nil
	}
	return vt.impls[slot]
}

// Invoke dispatches a slot against an instance. An unresolved slot is the
// pure-virtual-call fault: always fatal, never silently a no-op.
func (vt *VTable) Invoke(inst *Instance, slot int, args []Value) (Value, error) {
	sig := vt.iface.Sig(slot)
	if sig.NumArgs != len(args) {
		return nil, &ArityError{
			Interface: vt.iface.name,
			Method:    sig.Name,
			Want:      sig.NumArgs,
			Got:       len(args),
		}
	}

	fn := vt.slots[slot]
	if fn == nil {
		err := &UnresolvedMethodError{
			Interface: vt.iface.name,
			Type:      vt.typ.name,
			Method:    sig.Name,
		}
		log.Errorf("%s", err.Error())
		return nil, err
	}
	return fn(inst, args), nil
}

// runDestructors executes the destructor chain, outermost derived first.
func (vt *VTable) runDestructors(inst *Instance) {
	for _, d := range vt.dtors {
		d(inst)
	}
}
