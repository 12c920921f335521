package model

// Kind identifies a declaration variant.
type Kind string

const (
	KindAggregate   Kind = "aggregate"
	KindEnumeration Kind = "enumeration"
	KindUnion       Kind = "union"
	KindAlias       Kind = "alias"
)

// Declaration is one synthesized target-language declaration. Exactly four
// types implement it: Aggregate, Enumeration, Union and Alias.
type Declaration interface {
	// DeclarationName returns the canonical name assigned by the registry.
	DeclarationName() string
	// DeclarationKind returns the variant kind.
	DeclarationKind() Kind
}

// Member is one named member of an aggregate declaration.
type Member struct {
	// Name is the canonical member identifier.
	Name string `json:"name"`
	// WireName is the original schema key, kept for serialization fidelity.
	WireName string `json:"wireName"`
	// Type is the resolved member type.
	Type TypeRef `json:"type"`
	// Required marks the member mandatory.
	Required bool `json:"required"`
	// Default is the rendered default expression, empty when absent.
	Default string `json:"default,omitempty"`
	// Description is the schema description text, unformatted.
	Description string `json:"description,omitempty"`
}

// Aggregate is a named object type with ordered members and at most one base
// aggregate (single inheritance).
type Aggregate struct {
	Name        string   `json:"name"`
	Base        string   `json:"base,omitempty"`
	Description string   `json:"description,omitempty"`
	Members     []Member `json:"members"`
	// ExtensionData collects unmodeled input keys when the schema declares
	// both named properties and open additional properties. It is exempt
	// from per-key serialization mapping.
	ExtensionData *Member `json:"extensionData,omitempty"`
}

func (a *Aggregate) DeclarationName() string { return a.Name }
func (a *Aggregate) DeclarationKind() Kind   { return KindAggregate }

// EnumMember is one enumeration member with its original literal value.
type EnumMember struct {
	Name string `json:"name"`
	// Value is the original literal: a string, or an integer for integer
	// enumerations.
	Value any `json:"value"`
}

// Enumeration is a named enumeration over string or integer literals.
type Enumeration struct {
	Name        string        `json:"name"`
	Base        PrimitiveKind `json:"base"`
	Description string        `json:"description,omitempty"`
	Members     []EnumMember  `json:"members"`
}

func (e *Enumeration) DeclarationName() string { return e.Name }
func (e *Enumeration) DeclarationKind() Kind   { return KindEnumeration }

// Variant is one union variant. Tag is the discriminator literal selecting
// it, empty when unknown.
type Variant struct {
	Declaration string `json:"declaration"`
	Tag         string `json:"tag,omitempty"`
}

// Union is a disjunction of declarations. Discriminated unions are abstract
// (variants subclass the union base); undiscriminated unions are open and
// consumers fall back to an opaque representation.
type Union struct {
	Name          string    `json:"name"`
	Abstract      bool      `json:"abstract"`
	Discriminator string    `json:"discriminator,omitempty"`
	Description   string    `json:"description,omitempty"`
	Variants      []Variant `json:"variants"`
}

func (u *Union) DeclarationName() string { return u.Name }
func (u *Union) DeclarationKind() Kind   { return KindUnion }

// Alias is a single-field wrapper over a resolved underlying type.
type Alias struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Underlying  TypeRef `json:"underlying"`
}

func (a *Alias) DeclarationName() string { return a.Name }
func (a *Alias) DeclarationKind() Kind   { return KindAlias }
