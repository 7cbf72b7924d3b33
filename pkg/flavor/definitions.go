package flavor

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is a flavor expressed as data: a name, an optional base flavor
// to layer on, and lists of flags to enable or disable relative to the base.
type Definition struct {
	Name    string   `yaml:"name"`
	Base    string   `yaml:"base,omitempty"`
	Enable  []string `yaml:"enable,omitempty"`
	Disable []string `yaml:"disable,omitempty"`
}

// definitionFile is the on-disk shape of a flavor definition document.
type definitionFile struct {
	Flavors []Definition `yaml:"flavors"`
}

// ParseDefinitions decodes a YAML definition document. Unknown fields are
// rejected so typos surface at load time.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var file definitionFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse flavor definitions: %w", err)
	}

	return file.Flavors, nil
}

// Materialize resolves a definition against a registry: the base flavor's
// options are copied, then the enable and disable lists are applied in order.
// Unknown bases and unknown flag names are errors.
func (r *Registry) Materialize(def Definition) (Flavor, error) {
	if def.Name == "" {
		return Flavor{}, fmt.Errorf("flavor definition: missing name")
	}

	var opts Options
	if def.Base != "" {
		base, ok := r.Lookup(def.Base)
		if !ok {
			return Flavor{}, fmt.Errorf("flavor definition %q: unknown base %q", def.Name, def.Base)
		}
		opts = base.opts
	}

	for _, name := range def.Enable {
		if err := opts.Set(name, true); err != nil {
			return Flavor{}, fmt.Errorf("flavor definition %q: %w", def.Name, err)
		}
	}
	for _, name := range def.Disable {
		if err := opts.Set(name, false); err != nil {
			return Flavor{}, fmt.Errorf("flavor definition %q: %w", def.Name, err)
		}
	}

	return New(def.Name, opts), nil
}

// LoadDefinitions parses a YAML definition document and registers every
// flavor it defines. Definitions may use earlier definitions in the same
// document as bases.
func (r *Registry) LoadDefinitions(data []byte) error {
	defs, err := ParseDefinitions(data)
	if err != nil {
		return err
	}

	for _, def := range defs {
		f, err := r.Materialize(def)
		if err != nil {
			return err
		}
		if err := r.Register(f); err != nil {
			return err
		}
	}

	return nil
}

// ExportDefinitions serializes every registered flavor as a definition
// document. Flavors export with no base and an explicit enable list, so the
// output is self-contained.
func (r *Registry) ExportDefinitions() ([]byte, error) {
	file := definitionFile{}
	for _, f := range r.All() {
		file.Flavors = append(file.Flavors, Definition{
			Name:   f.name,
			Enable: f.opts.Enabled(),
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode flavor definitions: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}
