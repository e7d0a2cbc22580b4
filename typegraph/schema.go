package typegraph

// SchemaFile represents the root of a YAML schema definition file.
type SchemaFile struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Classes lists the bean classes, parents may follow their children.
	Classes []ClassDef `yaml:"classes"`
}

// ClassDef declares one class.
type ClassDef struct {
	// Name of the class, e.g. "TestBean".
	Name string `yaml:"name"`

	// Params are the type parameter names, e.g. [K, V].
	Params []string `yaml:"params,omitempty"`

	// Extends is the parent instantiation written with this class's
	// parameters, e.g. "Base[V, K]".
	Extends string `yaml:"extends,omitempty"`

	// Properties declared on this class.
	Properties []PropertyDef `yaml:"properties,omitempty"`
}

// PropertyDef declares one property.
type PropertyDef struct {
	// Name of the property as used in request parameter names.
	Name string `yaml:"name"`

	// Type is a Go-syntax type expression, e.g. "map[int64]time.Time".
	Type string `yaml:"type"`

	// Validate is an optional validator tag, e.g. "min=1,max=10".
	Validate string `yaml:"validate,omitempty"`
}
