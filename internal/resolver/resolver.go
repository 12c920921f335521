// Package resolver maps a schema node to a resolved target-language type
// reference. Resolution is stateless apart from a read-only lookup of
// declaration names; aggregate identity itself is synthesis context and is
// substituted later by the synthesizer.
package resolver

import (
	"strings"

	"github.com/go-openapi/spec"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
)

// NameTable resolves an already-resolved reference identifier (the raw
// definition name behind "#/definitions/<name>") to the canonical name of
// its synthesized declaration.
type NameTable interface {
	DeclaredName(ref string) (string, bool)
}

// Field carries the per-member context a resolution call needs.
type Field struct {
	// Required marks the member as present in the owning object's required
	// set. Elements of arrays and maps resolve with Required set.
	Required bool

	// InlineName is the declaration name synthesized for this node when it
	// is an inline enumeration, a discriminated union or an inline object;
	// empty when the node has no declaration of its own.
	InlineName string
}

// Resolver resolves schema nodes for one generation run.
type Resolver struct {
	opts  domain.Options
	names NameTable
}

// New creates a resolver over the run options and declaration name table.
func New(opts domain.Options, names NameTable) *Resolver {
	return &Resolver{opts: opts, names: names}
}

// Resolve maps a schema node to a type reference, wrapping it nullable when
// the node's kind flags include null, or when the member is optional and no
// default satisfies it.
func (r *Resolver) Resolve(node *spec.Schema, field Field) model.TypeRef {
	resolved := r.resolveCore(node, field)

	if r.isNullable(node, field) {
		resolved = model.Nullable(resolved)
	}

	return resolved
}

// Nullable reports whether a member of the given node and context must be
// wrapped nullable. Exposed for the synthesizer, which builds some member
// types itself when inline declarations are involved.
func (r *Resolver) Nullable(node *spec.Schema, field Field) bool {
	return r.isNullable(node, field)
}

func (r *Resolver) resolveCore(node *spec.Schema, field Field) model.TypeRef {
	if node == nil {
		return model.Primitive(model.PrimitiveObject)
	}

	// Named reference.
	if ref := RefName(node); ref != "" {
		if name, ok := r.names.DeclaredName(ref); ok {
			return model.Named(name)
		}
		return model.Primitive(model.PrimitiveObject)
	}

	// allOf with exactly one reference component is transparent at the type
	// level; the synthesizer turns it into an inheritance edge.
	if len(node.AllOf) > 0 {
		if ref, ok := singleRefComponent(node.AllOf); ok {
			if name, found := r.names.DeclaredName(ref); found {
				return model.Named(name)
			}
			return model.Primitive(model.PrimitiveObject)
		}
	}

	// Disjunction.
	if members := unionMembers(node); members != nil {
		if len(members) == 1 {
			return r.resolveCore(&members[0], field)
		}
		if node.Discriminator != "" && field.InlineName != "" {
			return model.Named(field.InlineName)
		}
		// No generic mechanism encodes an untagged union precisely.
		return model.Primitive(model.PrimitiveObject)
	}

	// Enumeration nodes reference their synthesized declaration. Enum lists
	// over other base kinds keep the raw primitive type.
	if len(node.Enum) > 0 && field.InlineName != "" {
		return model.Named(field.InlineName)
	}

	switch primaryType(node) {
	case "string":
		return model.Primitive(stringFormatKind(node.Format))
	case "integer":
		return model.Primitive(integerFormatKind(node.Format))
	case "number":
		return model.Primitive(numberFormatKind(node.Format))
	case "boolean":
		return model.Primitive(model.PrimitiveBool)
	case "array":
		var item *spec.Schema
		if node.Items != nil {
			item = node.Items.Schema
		}
		elem := r.Resolve(item, Field{Required: true})
		return model.Collection(elem, r.opts.MutableCollections)
	case "object":
		if len(node.Properties) == 0 && allowsAdditional(node) {
			return model.Map(r.mapValueType(node), r.opts.MutableCollections)
		}
		if field.InlineName != "" {
			return model.Named(field.InlineName)
		}
		// Aggregate identity requires synthesis context; the synthesizer
		// substitutes the named type.
		return model.Primitive(model.PrimitiveObject)
	default:
		return model.Primitive(model.PrimitiveObject)
	}
}

func (r *Resolver) mapValueType(node *spec.Schema) model.TypeRef {
	if node.AdditionalProperties != nil && node.AdditionalProperties.Schema != nil {
		return r.Resolve(node.AdditionalProperties.Schema, Field{Required: true})
	}
	return model.Primitive(model.PrimitiveObject)
}

func (r *Resolver) isNullable(node *spec.Schema, field Field) bool {
	if node != nil && hasNullFlag(node) {
		return true
	}
	if field.Required {
		return false
	}
	if r.opts.DefaultAsNonNullable && node != nil && node.Default != nil {
		return false
	}
	return true
}

// RefName extracts the raw definition name from a node's resolved reference,
// or returns the empty string when the node is not a reference.
func RefName(node *spec.Schema) string {
	if node == nil {
		return ""
	}
	pointer := node.Ref.String()
	if pointer == "" {
		return ""
	}
	const prefix = "#/definitions/"
	if strings.HasPrefix(pointer, prefix) {
		return pointer[len(prefix):]
	}
	if idx := strings.LastIndex(pointer, "/"); idx >= 0 {
		return pointer[idx+1:]
	}
	return pointer
}

// singleRefComponent reports the reference when exactly one allOf component
// is a reference.
func singleRefComponent(components []spec.Schema) (string, bool) {
	var (
		ref   string
		count int
	)
	for i := range components {
		if name := RefName(&components[i]); name != "" {
			ref = name
			count++
		}
	}
	return ref, count == 1
}

// unionMembers returns the oneOf members, falling back to anyOf, or nil when
// the node is not a disjunction.
func unionMembers(node *spec.Schema) []spec.Schema {
	if len(node.OneOf) > 0 {
		return node.OneOf
	}
	if len(node.AnyOf) > 0 {
		return node.AnyOf
	}
	return nil
}

// primaryType returns the node's first non-null kind flag, inferring object
// and array shapes for untyped nodes that declare properties or items.
func primaryType(node *spec.Schema) string {
	for _, t := range node.Type {
		if t != "null" {
			return t
		}
	}
	if len(node.Properties) > 0 || node.AdditionalProperties != nil {
		return "object"
	}
	if node.Items != nil {
		return "array"
	}
	return ""
}

func hasNullFlag(node *spec.Schema) bool {
	if node.Nullable {
		return true
	}
	for _, t := range node.Type {
		if t == "null" {
			return true
		}
	}
	return false
}

func allowsAdditional(node *spec.Schema) bool {
	ap := node.AdditionalProperties
	if ap == nil {
		return false
	}
	return ap.Schema != nil || ap.Allows
}

func stringFormatKind(format string) model.PrimitiveKind {
	switch format {
	case "date":
		return model.PrimitiveDate
	case "date-time":
		return model.PrimitiveDateTime
	case "time":
		return model.PrimitiveTime
	case "duration":
		return model.PrimitiveDuration
	case "uuid":
		return model.PrimitiveUUID
	case "uri", "url":
		return model.PrimitiveURI
	case "byte":
		return model.PrimitiveBytes
	case "binary":
		return model.PrimitiveStream
	default:
		return model.PrimitiveString
	}
}

func integerFormatKind(format string) model.PrimitiveKind {
	switch format {
	case "int64":
		return model.PrimitiveLong
	case "int16":
		return model.PrimitiveShort
	case "int8", "byte":
		return model.PrimitiveByte
	default:
		// int32 and unrecognized formats resolve to 32-bit signed.
		return model.PrimitiveInt
	}
}

func numberFormatKind(format string) model.PrimitiveKind {
	switch format {
	case "float":
		return model.PrimitiveFloat
	case "decimal":
		return model.PrimitiveDecimal
	default:
		// double and unrecognized formats resolve to 64-bit float.
		return model.PrimitiveDouble
	}
}
