// Package registry holds named interface and type definitions and can
// snapshot their shape to a portable image: descriptors, chains and field
// layouts travel; method implementations are rebound by name at load time
// from a MethodProvider.
package registry

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/objkit/object"
)

var log = commonlog.GetLogger("objkit.registry")

// Registry is a named collection of interfaces and concrete types.
// Registration order is preserved: a type's base must be registered before
// the type itself, so snapshots can rebuild chains in one pass.
type Registry struct {
	ifaces     map[string]*object.Interface
	types      map[string]*object.Type
	ifaceOrder []string
	typeOrder  []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ifaces: make(map[string]*object.Interface),
		types:  make(map[string]*object.Type),
	}
}

// AddInterface registers an interface under its name.
func (r *Registry) AddInterface(in *object.Interface) error {
	name := in.Name()
	if _, dup := r.ifaces[name]; dup {
		return fmt.Errorf("registry: interface %q already registered", name)
	}
	r.ifaces[name] = in
	r.ifaceOrder = append(r.ifaceOrder, name)
	return nil
}

// AddType registers a concrete type. Its interface, and its base type if
// any, must already be registered.
func (r *Registry) AddType(t *object.Type) error {
	name := t.Name()
	if _, dup := r.types[name]; dup {
		return fmt.Errorf("registry: type %q already registered", name)
	}
	if _, ok := r.ifaces[t.Interface().Name()]; !ok {
		return fmt.Errorf("registry: type %q: interface %q not registered", name, t.Interface().Name())
	}
	if base := t.Base(); base != nil {
		if _, ok := r.types[base.Name()]; !ok {
			return fmt.Errorf("registry: type %q: base %q not registered", name, base.Name())
		}
	}
	r.types[name] = t
	r.typeOrder = append(r.typeOrder, name)
	log.Debugf("registered type %s (interface %s)", name, t.Interface().Name())
	return nil
}

// Interface returns a registered interface, or nil.
func (r *Registry) Interface(name string) *object.Interface { return r.ifaces[name] }

// Type returns a registered type, or nil.
func (r *Registry) Type(name string) *object.Type { return r.types[name] }

// InterfaceNames returns registered interface names in registration order.
func (r *Registry) InterfaceNames() []string {
	out := make([]string, len(r.ifaceOrder))
	copy(out, r.ifaceOrder)
	return out
}

// TypeNames returns registered type names in registration order.
func (r *Registry) TypeNames() []string {
	out := make([]string, len(r.typeOrder))
	copy(out, r.typeOrder)
	return out
}
