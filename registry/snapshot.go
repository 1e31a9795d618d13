package registry

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/chazu/objkit/object"
)

// Snapshot format: a canonical-CBOR image of a registry's shape. Function
// pointers cannot travel, so method implementations, destructors and clone
// overrides are recorded by name/flag and rebound from a MethodProvider at
// load time.

const (
	snapshotMagic   = "OBJK"
	snapshotVersion = 1
)

var (
	ErrInvalidMagic    = errors.New("invalid magic: not an objkit snapshot")
	ErrVersionMismatch = errors.New("snapshot version mismatch")
	ErrCorruptImage    = errors.New("corrupt snapshot data")
)

// Canonical mode keeps encoding deterministic; signed int decoding keeps
// integer defaults stable as int64 across a round trip.
var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("registry: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	dm, err := cbor.DecOptions{IntDec: cbor.IntDecConvertSigned}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("registry: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// MethodProvider supplies the code a snapshot cannot carry. Each query is
// made only for bindings the image actually records.
type MethodProvider interface {
	Method(typeName, method string) (object.MethodFunc, error)
	Destructor(typeName string) (object.DestructorFunc, error)
	CloneFunc(typeName string) (object.CloneFunc, error)
}

// FuncMap is a map-backed MethodProvider. Method keys are "Type.method".
type FuncMap struct {
	Methods     map[string]object.MethodFunc
	Destructors map[string]object.DestructorFunc
	Clones      map[string]object.CloneFunc
}

// Method implements MethodProvider.
func (f FuncMap) Method(typeName, method string) (object.MethodFunc, error) {
	key := typeName + "." + method
	fn, ok := f.Methods[key]
	if !ok {
		return nil, fmt.Errorf("no implementation provided for %s", key)
	}
	return fn, nil
}

// Destructor implements MethodProvider.
func (f FuncMap) Destructor(typeName string) (object.DestructorFunc, error) {
	fn, ok := f.Destructors[typeName]
	if !ok {
		return nil, fmt.Errorf("no destructor provided for %s", typeName)
	}
	return fn, nil
}

// CloneFunc implements MethodProvider.
func (f FuncMap) CloneFunc(typeName string) (object.CloneFunc, error) {
	fn, ok := f.Clones[typeName]
	if !ok {
		return nil, fmt.Errorf("no clone override provided for %s", typeName)
	}
	return fn, nil
}

// ---------------------------------------------------------------------------
// Image records
// ---------------------------------------------------------------------------

type sigRecord struct {
	Name      string `cbor:"name"`
	NumArgs   int    `cbor:"args"`
	HasResult bool   `cbor:"result"`
}

type ifaceRecord struct {
	Name    string      `cbor:"name"`
	Methods []sigRecord `cbor:"methods"`
}

type fieldRecord struct {
	Name    string `cbor:"name"`
	Default any    `cbor:"default,omitempty"`
}

type typeRecord struct {
	Name      string        `cbor:"name"`
	Interface string        `cbor:"interface"`
	Base      string        `cbor:"base,omitempty"`
	Fields    []fieldRecord `cbor:"fields,omitempty"`
	Methods   []string      `cbor:"methods,omitempty"`
	Dtor      bool          `cbor:"destructor,omitempty"`
	Clone     bool          `cbor:"clone,omitempty"`
}

type snapshotImage struct {
	Magic   string        `cbor:"magic"`
	Version uint32        `cbor:"version"`
	ID      string        `cbor:"id"`
	Ifaces  []ifaceRecord `cbor:"interfaces"`
	Types   []typeRecord  `cbor:"types"`
}

// ---------------------------------------------------------------------------
// Save / load
// ---------------------------------------------------------------------------

// Snapshot writes the registry's shape as a CBOR image.
func (r *Registry) Snapshot(w io.Writer) error {
	img := snapshotImage{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		ID:      uuid.New().String(),
	}

	for _, name := range r.ifaceOrder {
		in := r.ifaces[name]
		rec := ifaceRecord{Name: name}
		for _, sig := range in.Methods() {
			rec.Methods = append(rec.Methods, sigRecord{
				Name:      sig.Name,
				NumArgs:   sig.NumArgs,
				HasResult: sig.HasResult,
			})
		}
		img.Ifaces = append(img.Ifaces, rec)
	}

	// Registration order guarantees bases precede their derivatives.
	for _, name := range r.typeOrder {
		t := r.types[name]
		rec := typeRecord{
			Name:      name,
			Interface: t.Interface().Name(),
			Methods:   t.LocalMethodNames(),
			Dtor:      t.HasDestructor(),
			Clone:     t.HasCloneFunc(),
		}
		if base := t.Base(); base != nil {
			rec.Base = base.Name()
		}
		for _, f := range t.LocalFields() {
			rec.Fields = append(rec.Fields, fieldRecord{Name: f.Name, Default: f.Default})
		}
		img.Types = append(img.Types, rec)
	}

	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		return fmt.Errorf("registry: marshal snapshot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("registry: write snapshot: %w", err)
	}
	log.Debugf("snapshot %s: %d interface(s), %d type(s), %d bytes",
		img.ID[:8], len(img.Ifaces), len(img.Types), len(data))
	return nil
}

// Load rebuilds a registry from a snapshot image, rebinding method
// implementations, destructors and clone overrides from the provider.
func Load(rd io.Reader, provider MethodProvider) (*Registry, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("registry: read snapshot: %w", err)
	}

	var img snapshotImage
	if err := cborDecMode.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("registry: %w: %v", ErrCorruptImage, err)
	}
	if img.Magic != snapshotMagic {
		return nil, ErrInvalidMagic
	}
	if img.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: image has v%d, reader supports v%d",
			ErrVersionMismatch, img.Version, snapshotVersion)
	}

	reg := New()
	for _, rec := range img.Ifaces {
		sigs := make([]object.MethodSig, len(rec.Methods))
		for i, s := range rec.Methods {
			sigs[i] = object.MethodSig{Name: s.Name, NumArgs: s.NumArgs, HasResult: s.HasResult}
		}
		in, err := object.NewInterface(rec.Name, sigs...)
		if err != nil {
			return nil, fmt.Errorf("registry: rebuild interface %s: %w", rec.Name, err)
		}
		if err := reg.AddInterface(in); err != nil {
			return nil, err
		}
	}

	for _, rec := range img.Types {
		t, err := rebuildType(reg, rec, provider)
		if err != nil {
			return nil, err
		}
		if err := reg.AddType(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func rebuildType(reg *Registry, rec typeRecord, provider MethodProvider) (*object.Type, error) {
	in := reg.Interface(rec.Interface)
	if in == nil {
		return nil, fmt.Errorf("registry: type %s: %w: unknown interface %q",
			rec.Name, ErrCorruptImage, rec.Interface)
	}

	opts := make([]object.TypeOption, 0, len(rec.Fields)+len(rec.Methods)+2)
	for _, f := range rec.Fields {
		opts = append(opts, object.WithField(f.Name, f.Default))
	}
	for _, mname := range rec.Methods {
		fn, err := provider.Method(rec.Name, mname)
		if err != nil {
			return nil, fmt.Errorf("registry: type %s: %w", rec.Name, err)
		}
		opts = append(opts, object.WithMethod(mname, fn))
	}
	if rec.Dtor {
		fn, err := provider.Destructor(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("registry: type %s: %w", rec.Name, err)
		}
		opts = append(opts, object.WithDestructor(fn))
	}
	if rec.Clone {
		fn, err := provider.CloneFunc(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("registry: type %s: %w", rec.Name, err)
		}
		opts = append(opts, object.WithCloneFunc(fn))
	}

	if rec.Base == "" {
		return in.NewType(rec.Name, opts...)
	}
	base := reg.Type(rec.Base)
	if base == nil {
		return nil, fmt.Errorf("registry: type %s: %w: base %q not yet defined",
			rec.Name, ErrCorruptImage, rec.Base)
	}
	return object.Derive(base, rec.Name, opts...)
}
