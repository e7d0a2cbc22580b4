package typegraph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"param-binder/diagnostic"
)

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a SchemaFile.
func Parse(data []byte) (*SchemaFile, error) {
	var sf SchemaFile

	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&sf)

	return &sf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sf *SchemaFile) {
	if sf.Version == "" {
		sf.Version = "1"
	}
}

// Marshal serializes a SchemaFile to YAML.
func Marshal(sf *SchemaFile) ([]byte, error) {
	return yaml.Marshal(sf)
}

// Build turns a schema file into a graph and validates it. Type expressions
// that do not parse are reported as diagnostics and the offending class or
// property is left out of the graph.
func Build(sf *SchemaFile) (*Graph, *diagnostic.Diagnostics) {
	graph := NewGraph()
	diags := &diagnostic.Diagnostics{}

	if sf == nil {
		diags.AddError("schema_is_nil", "schema file is nil", "", "")
		return graph, diags
	}

	for i := range sf.Classes {
		def := &sf.Classes[i]

		if def.Name == "" {
			diags.AddError("class_without_name", fmt.Sprintf("class #%d has no name", i), "", "")
			continue
		}

		var extends *Type

		if def.Extends != "" {
			t, err := ParseType(def.Extends, def.Params...)
			if err != nil {
				diags.AddError("invalid_extends", err.Error(), def.Name, "")
				continue
			}

			extends = t
		}

		props := make([]Property, 0, len(def.Properties))

		for _, pd := range def.Properties {
			t, err := ParseType(pd.Type, def.Params...)
			if err != nil {
				diags.AddError("invalid_property_type", err.Error(), def.Name, pd.Name)
				continue
			}

			props = append(props, Property{Name: pd.Name, Type: t, Validate: pd.Validate})
		}

		if err := graph.Add(NewClass(def.Name, def.Params, extends, props...)); err != nil {
			diags.AddError("duplicate_class", err.Error(), def.Name, "")
		}
	}

	diags.Merge(*Validate(graph))

	return graph, diags
}

// Load reads, builds and validates a schema file. Warnings are dropped; any
// error diagnostic fails the load.
func Load(path string) (*Graph, error) {
	sf, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	graph, diags := Build(sf)
	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return graph, nil
}
