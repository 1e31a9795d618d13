package object

import "fmt"

// Instance is the storage behind an interface handle: one flat slot array
// covering every field in the inheritance chain, root fields first. Slot
// positions come from Type.FieldIndex, never from memory layout.
type Instance struct {
	typ   *Type
	slots []Value
}

// NewInstance allocates an instance of a concrete type with every field set
// to its declared default.
func NewInstance(t *Type) *Instance {
	inst := &Instance{
		typ:   t,
		slots: make([]Value, t.numSlots),
	}
	for _, pos := range Chain(t) {
		for i, f := range pos.fields {
			inst.slots[pos.offset+i] = f.Default
		}
	}
	return inst
}

// Type returns the concrete type of the instance.
func (inst *Instance) Type() *Type { return inst.typ }

// Get returns a field value by name, resolving the slot through the chain.
func (inst *Instance) Get(name string) (Value, error) {
	idx := inst.typ.FieldIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("type %s has no field %q", inst.typ.name, name)
	}
	return inst.slots[idx], nil
}

// Set stores a field value by name.
func (inst *Instance) Set(name string, v Value) error {
	idx := inst.typ.FieldIndex(name)
	if idx < 0 {
		return fmt.Errorf("type %s has no field %q", inst.typ.name, name)
	}
	inst.slots[idx] = v
	return nil
}

// MustGet is like Get but panics on an unknown field. For method bodies,
// where a missing field is a programming error.
func (inst *Instance) MustGet(name string) Value {
	v, err := inst.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is like Set but panics on an unknown field.
func (inst *Instance) MustSet(name string, v Value) {
	if err := inst.Set(name, v); err != nil {
		panic(err)
	}
}

// copyFrom performs a field-wise copy from src. Both instances must share a
// type; callers guarantee this.
func (inst *Instance) copyFrom(src *Instance) {
	copy(inst.slots, src.slots)
}
