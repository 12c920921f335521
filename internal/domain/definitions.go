package domain

import (
	"github.com/go-openapi/spec"
)

// OrderedDefinitions is the top-level schema collection in document-declared
// order. Declaration and name allocation order follows this order, so the
// engine never iterates a bare Go map for anything that affects output.
type OrderedDefinitions struct {
	names   []string
	schemas map[string]spec.Schema
}

// NewOrderedDefinitions creates an empty ordered definition table.
func NewOrderedDefinitions() *OrderedDefinitions {
	return &OrderedDefinitions{
		schemas: make(map[string]spec.Schema),
	}
}

// Add appends a definition under its raw document name. Re-adding an existing
// name replaces the schema but keeps the original position.
func (d *OrderedDefinitions) Add(name string, schema spec.Schema) {
	if _, exists := d.schemas[name]; !exists {
		d.names = append(d.names, name)
	}
	d.schemas[name] = schema
}

// Get returns the schema for a raw name.
func (d *OrderedDefinitions) Get(name string) (spec.Schema, bool) {
	schema, ok := d.schemas[name]
	return schema, ok
}

// Has reports whether a raw name exists in the table.
func (d *OrderedDefinitions) Has(name string) bool {
	_, ok := d.schemas[name]
	return ok
}

// Names returns the raw names in document order. The returned slice is the
// internal one; callers must not mutate it.
func (d *OrderedDefinitions) Names() []string {
	return d.names
}

// Len returns the number of definitions.
func (d *OrderedDefinitions) Len() int {
	return len(d.names)
}
