// Package model defines the declaration set produced by the engine: the four
// declaration variants, the members they carry, and the resolved type
// references attached to members. The variants are a closed set so every
// consumer has to handle all four kinds.
package model

// PrimitiveKind identifies a target-language primitive or formatted type.
type PrimitiveKind string

const (
	PrimitiveString   PrimitiveKind = "string"
	PrimitiveBool     PrimitiveKind = "bool"
	PrimitiveInt      PrimitiveKind = "int"
	PrimitiveLong     PrimitiveKind = "long"
	PrimitiveShort    PrimitiveKind = "short"
	PrimitiveByte     PrimitiveKind = "byte"
	PrimitiveFloat    PrimitiveKind = "float"
	PrimitiveDouble   PrimitiveKind = "double"
	PrimitiveDecimal  PrimitiveKind = "decimal"
	PrimitiveDate     PrimitiveKind = "date"
	PrimitiveDateTime PrimitiveKind = "date-time"
	PrimitiveTime     PrimitiveKind = "time"
	PrimitiveDuration PrimitiveKind = "duration"
	PrimitiveUUID     PrimitiveKind = "uuid"
	PrimitiveURI      PrimitiveKind = "uri"
	PrimitiveBytes    PrimitiveKind = "bytes"
	PrimitiveStream   PrimitiveKind = "stream"
	// PrimitiveObject is the opaque fallback for shapes the engine cannot
	// represent precisely (untagged unions, broken composition cycles).
	PrimitiveObject PrimitiveKind = "object"
)

// csharpPrimitives maps primitive kinds to their C# spelling.
var csharpPrimitives = map[PrimitiveKind]string{
	PrimitiveString:   "string",
	PrimitiveBool:     "bool",
	PrimitiveInt:      "int",
	PrimitiveLong:     "long",
	PrimitiveShort:    "short",
	PrimitiveByte:     "byte",
	PrimitiveFloat:    "float",
	PrimitiveDouble:   "double",
	PrimitiveDecimal:  "decimal",
	PrimitiveDate:     "DateOnly",
	PrimitiveDateTime: "DateTimeOffset",
	PrimitiveTime:     "TimeOnly",
	PrimitiveDuration: "TimeSpan",
	PrimitiveUUID:     "Guid",
	PrimitiveURI:      "Uri",
	PrimitiveBytes:    "byte[]",
	PrimitiveStream:   "Stream",
	PrimitiveObject:   "object",
}

// TypeRefKind discriminates the shape of a TypeRef.
type TypeRefKind string

const (
	RefPrimitive  TypeRefKind = "primitive"
	RefCollection TypeRefKind = "collection"
	RefMap        TypeRefKind = "map"
	RefNamed      TypeRefKind = "named"
	RefNullable   TypeRefKind = "nullable"
)

// TypeRef is a resolved target-language type reference. Values are created
// fresh per resolution call and never shared mutably.
type TypeRef struct {
	Kind TypeRefKind `json:"kind"`

	// Primitive is set for RefPrimitive.
	Primitive PrimitiveKind `json:"primitive,omitempty"`

	// Elem is the element type for RefCollection and RefMap, and the inner
	// type for RefNullable.
	Elem *TypeRef `json:"elem,omitempty"`

	// Name is the referenced declaration's canonical name for RefNamed.
	Name string `json:"name,omitempty"`

	// Mutable selects the mutable collection form for RefCollection/RefMap.
	Mutable bool `json:"mutable,omitempty"`
}

// Primitive builds a primitive type reference.
func Primitive(kind PrimitiveKind) TypeRef {
	return TypeRef{Kind: RefPrimitive, Primitive: kind}
}

// Collection builds a collection type reference over an element type.
func Collection(elem TypeRef, mutable bool) TypeRef {
	return TypeRef{Kind: RefCollection, Elem: &elem, Mutable: mutable}
}

// Map builds a string-keyed map type reference over a value type.
func Map(value TypeRef, mutable bool) TypeRef {
	return TypeRef{Kind: RefMap, Elem: &value, Mutable: mutable}
}

// Named builds a reference to a synthesized declaration.
func Named(name string) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name}
}

// Nullable wraps a type reference nullable. Wrapping an already-nullable
// reference returns it unchanged.
func Nullable(inner TypeRef) TypeRef {
	if inner.Kind == RefNullable {
		return inner
	}
	return TypeRef{Kind: RefNullable, Elem: &inner}
}

// IsNullable reports whether the reference is wrapped nullable.
func (t TypeRef) IsNullable() bool {
	return t.Kind == RefNullable
}

// Unwrap returns the inner type of a nullable wrapper, or the reference
// itself when it is not nullable.
func (t TypeRef) Unwrap() TypeRef {
	if t.Kind == RefNullable && t.Elem != nil {
		return *t.Elem
	}
	return t
}

// String renders the C# spelling of the reference. The syntax emitter owns
// real rendering; this form is used in the manifest and in diagnostics.
func (t TypeRef) String() string {
	switch t.Kind {
	case RefPrimitive:
		if s, ok := csharpPrimitives[t.Primitive]; ok {
			return s
		}
		return "object"
	case RefCollection:
		if t.Mutable {
			return "List<" + t.Elem.String() + ">"
		}
		return "IReadOnlyList<" + t.Elem.String() + ">"
	case RefMap:
		if t.Mutable {
			return "Dictionary<string, " + t.Elem.String() + ">"
		}
		return "IReadOnlyDictionary<string, " + t.Elem.String() + ">"
	case RefNamed:
		return t.Name
	case RefNullable:
		return t.Elem.String() + "?"
	default:
		return "object"
	}
}
