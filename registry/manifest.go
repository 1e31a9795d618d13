package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/objkit/object"
)

// Manifest represents an objkit.toml file declaring interfaces and types to
// pre-register, so a project can keep its type shapes in configuration and
// bind implementations at startup.
type Manifest struct {
	Registry   RegistryConfig  `toml:"registry"`
	Interfaces []ManifestIface `toml:"interface"`
	Types      []ManifestType  `toml:"type"`

	// Dir is the directory containing the objkit.toml file (set at load time).
	Dir string `toml:"-"`
}

// RegistryConfig contains registry metadata.
type RegistryConfig struct {
	Name string `toml:"name"`
}

// ManifestIface declares one interface.
type ManifestIface struct {
	Name    string           `toml:"name"`
	Methods []ManifestMethod `toml:"method"`
}

// ManifestMethod declares one method signature.
type ManifestMethod struct {
	Name   string `toml:"name"`
	Args   int    `toml:"args"`
	Result bool   `toml:"result"`
}

// ManifestType declares one concrete type.
type ManifestType struct {
	Name       string          `toml:"name"`
	Interface  string          `toml:"interface"`
	Base       string          `toml:"base"`
	Fields     []ManifestField `toml:"field"`
	Methods    []string        `toml:"methods"`
	Destructor bool            `toml:"destructor"`
	Clone      bool            `toml:"clone"`
}

// ManifestField declares one field with its default value.
type ManifestField struct {
	Name    string `toml:"name"`
	Default any    `toml:"default"`
}

// LoadManifest parses an objkit.toml file from the given directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "objkit.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	m.Dir = dir
	return &m, nil
}

// Apply registers everything the manifest declares into reg, binding method
// implementations from the provider. Interfaces first, then types in
// declaration order; a type's base and interface must be declared before it.
func (m *Manifest) Apply(reg *Registry, provider MethodProvider) error {
	for _, mi := range m.Interfaces {
		sigs := make([]object.MethodSig, len(mi.Methods))
		for i, mm := range mi.Methods {
			sigs[i] = object.MethodSig{Name: mm.Name, NumArgs: mm.Args, HasResult: mm.Result}
		}
		in, err := object.NewInterface(mi.Name, sigs...)
		if err != nil {
			return fmt.Errorf("manifest interface %s: %w", mi.Name, err)
		}
		if err := reg.AddInterface(in); err != nil {
			return err
		}
	}

	for _, mt := range m.Types {
		rec := typeRecord{
			Name:      mt.Name,
			Interface: mt.Interface,
			Base:      mt.Base,
			Methods:   mt.Methods,
			Dtor:      mt.Destructor,
			Clone:     mt.Clone,
		}
		for _, f := range mt.Fields {
			rec.Fields = append(rec.Fields, fieldRecord{Name: f.Name, Default: f.Default})
		}
		t, err := rebuildType(reg, rec, provider)
		if err != nil {
			return fmt.Errorf("manifest type %s: %w", mt.Name, err)
		}
		if err := reg.AddType(t); err != nil {
			return err
		}
	}
	return nil
}
