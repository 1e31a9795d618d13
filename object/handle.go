package object

import "fmt"

// OwnershipMode describes who is responsible for an instance's storage.
type OwnershipMode uint8

const (
	// Borrowed handles wrap caller-managed storage. Destroy runs the
	// destructor chain but never releases storage; Clone and Share are
	// rejected with ErrCannotDuplicate.
	Borrowed OwnershipMode = iota

	// Owned handles exclusively own their instance. Destroy runs the
	// destructor chain and releases the instance exactly once.
	Owned

	// Shared handles reference-count their instance. Share bumps the
	// count; Destroy decrements it and only runs destructors and releases
	// when the count reaches zero.
	Shared
)

// String returns the mode name.
func (m OwnershipMode) String() string {
	switch m {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	case Shared:
		return "shared"
	}
	return fmt.Sprintf("OwnershipMode(%d)", uint8(m))
}

// ownership is the shared lifetime record behind owned and shared handles.
// All aliases created by Share point at the same record, so the 1->0
// transition is observed exactly once.
//
// Not safe for concurrent use: the whole substrate assumes one logical
// thread of control.
type ownership struct {
	mode     OwnershipMode
	refs     int32 // Shared only
	released bool
}

// Handle is the fat-pointer interface value: a vtable reference paired with
// an opaque instance pointer and an ownership record. Handles are copyable
// by value; copying a Borrowed handle is safe aliasing, but copying a
// Shared handle without going through Share produces an under-counted
// alias and is a usage error.
type Handle struct {
	vt   *VTable
	inst *Instance
	own  *ownership // nil for Borrowed
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// Bind wraps caller-owned storage in a non-owning handle.
func Bind(inst *Instance) Handle {
	return Handle{vt: inst.typ.vtable, inst: inst}
}

// Own copies the instance into handle-owned storage. The copy is field-wise,
// matching the source value at the moment of the call.
func Own(inst *Instance) Handle {
	dst := NewInstance(inst.typ)
	dst.copyFrom(inst)
	return Handle{
		vt:   inst.typ.vtable,
		inst: dst,
		own:  &ownership{mode: Owned},
	}
}

// Share copies the instance into reference-counted storage with an initial
// count of one. Further aliases come from Handle.Share.
func Share(inst *Instance) Handle {
	dst := NewInstance(inst.typ)
	dst.copyFrom(inst)
	return Handle{
		vt:   inst.typ.vtable,
		inst: dst,
		own:  &ownership{mode: Shared, refs: 1},
	}
}

// ---------------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------------

// Mode returns the handle's ownership mode.
func (h Handle) Mode() OwnershipMode {
	if h.own == nil {
		return Borrowed
	}
	return h.own.mode
}

// Type returns the concrete type behind the handle.
func (h Handle) Type() *Type { return h.inst.typ }

// Instance exposes the underlying storage. Mutating it through a Borrowed
// handle mutates the caller's value; that is the point of Bind.
func (h Handle) Instance() *Instance { return h.inst }

// RefCount returns the live reference count for Shared handles and zero
// for every other mode.
func (h Handle) RefCount() int32 {
	if h.own == nil || h.own.mode != Shared {
		return 0
	}
	return h.own.refs
}

// Destroyed reports whether the handle's storage has been released.
// Borrowed handles are never considered destroyed.
func (h Handle) Destroyed() bool {
	return h.own != nil && h.own.released
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

// Call dispatches a method by name through the vtable.
func (h Handle) Call(method string, args ...Value) (Value, error) {
	if h.Destroyed() {
		return nil, fmt.Errorf("call %q on %s handle of %s: %w",
			method, h.own.mode, h.inst.typ.name, ErrAlreadyDestroyed)
	}
	slot := h.vt.iface.Slot(method)
	if slot < 0 {
		return nil, &UnknownMethodError{Interface: h.vt.iface.name, Method: method}
	}
	return h.vt.Invoke(h.inst, slot, args)
}

// MustCall is like Call but panics on any dispatch fault. For call sites
// where a fault can only be a programming error.
func (h Handle) MustCall(method string, args ...Value) Value {
	v, err := h.Call(method, args...)
	if err != nil {
		panic(err)
	}
	return v
}

// ---------------------------------------------------------------------------
// Lifetime
// ---------------------------------------------------------------------------

// Share creates a counted alias of a Shared handle. Any other ownership
// mode is rejected with ErrCannotDuplicate.
func (h Handle) Share() (Handle, error) {
	if h.own == nil || h.own.mode != Shared {
		return Handle{}, fmt.Errorf("share %s handle of %s: %w",
			h.Mode(), h.inst.typ.name, ErrCannotDuplicate)
	}
	if h.own.released {
		return Handle{}, fmt.Errorf("share handle of %s: %w", h.inst.typ.name, ErrAlreadyDestroyed)
	}
	h.own.refs++
	return Handle{vt: h.vt, inst: h.inst, own: h.own}, nil
}

// Clone duplicates the underlying value into a new, independently Owned
// handle. The type's clone override is used when declared; otherwise the
// copy is field-wise. Cloning a Borrowed handle is always rejected.
func (h Handle) Clone() (Handle, error) {
	if h.own == nil {
		return Handle{}, fmt.Errorf("clone %s handle of %s: %w",
			Borrowed, h.inst.typ.name, ErrCannotDuplicate)
	}
	if h.own.released {
		return Handle{}, fmt.Errorf("clone handle of %s: %w", h.inst.typ.name, ErrAlreadyDestroyed)
	}

	dst := NewInstance(h.inst.typ)
	if h.inst.typ.cloneFn != nil {
		h.inst.typ.cloneFn(h.inst, dst)
	} else {
		dst.copyFrom(h.inst)
	}
	return Handle{
		vt:   h.vt,
		inst: dst,
		own:  &ownership{mode: Owned},
	}, nil
}

// Destroy invokes the destructor chain and releases storage per ownership
// mode. Owned storage is released exactly once; Shared storage is released
// exactly when the reference count transitions from one to zero; Borrowed
// storage is never released, only the destructor chain runs.
func (h Handle) Destroy() error {
	if h.own == nil {
		h.vt.runDestructors(h.inst)
		return nil
	}
	if h.own.released {
		return fmt.Errorf("destroy handle of %s: %w", h.inst.typ.name, ErrAlreadyDestroyed)
	}

	switch h.own.mode {
	case Owned:
		h.vt.runDestructors(h.inst)
		h.own.released = true
		log.Debugf("destroyed owned %s", h.inst.typ.name)

	case Shared:
		h.own.refs--
		if h.own.refs == 0 {
			h.vt.runDestructors(h.inst)
			h.own.released = true
			log.Debugf("destroyed shared %s at refcount zero", h.inst.typ.name)
		}
	}
	return nil
}
