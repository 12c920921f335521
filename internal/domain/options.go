// Package domain contains core domain types shared across the generator:
// the per-run options and the ordered schema collection handed to the engine.
package domain

// CasingStyle selects the identifier casing for canonical names.
type CasingStyle string

const (
	// PascalCase is the default casing for declaration and member names.
	PascalCase CasingStyle = "pascalcase"
	// CamelCase lowercases the first word of canonical identifiers.
	CamelCase CasingStyle = "camelcase"
)

// Options holds the configuration for one generation run. The value is
// constant for the run and passed explicitly; there is no global state.
type Options struct {
	// Casing is the canonical-name casing style.
	Casing CasingStyle

	// MutableCollections selects List/Dictionary over the read-only
	// collection interfaces for resolved array and map types.
	MutableCollections bool

	// DefaultAsNonNullable treats a member absent from the required set but
	// carrying a non-null default as non-nullable.
	DefaultAsNonNullable bool

	// PropagateDefaults emits default expressions into member initializers.
	// When disabled, members that would carry a default receive a placeholder
	// expression instead.
	PropagateDefaults bool

	// ReservedWords lists target-language identifiers that must be escaped.
	ReservedWords []string

	// MaxDepth bounds composition resolution so a pathological schema cannot
	// recurse without limit.
	MaxDepth int

	// Namespace is recorded in the output manifest for the syntax emitter.
	Namespace string
}

// DefaultOptions returns the options used when a caller configures nothing:
// PascalCase, read-only collections, defaults propagated, C# reserved words.
func DefaultOptions() Options {
	return Options{
		Casing:            PascalCase,
		PropagateDefaults: true,
		ReservedWords:     CSharpReservedWords(),
		MaxDepth:          128,
	}
}

// CSharpReservedWords returns the C# keyword list used for identifier
// escaping. Contextual keywords are excluded; they are valid identifiers.
func CSharpReservedWords() []string {
	return []string{
		"abstract", "as", "base", "bool", "break", "byte", "case", "catch",
		"char", "checked", "class", "const", "continue", "decimal", "default",
		"delegate", "do", "double", "else", "enum", "event", "explicit",
		"extern", "false", "finally", "fixed", "float", "for", "foreach",
		"goto", "if", "implicit", "in", "int", "interface", "internal", "is",
		"lock", "long", "namespace", "new", "null", "object", "operator",
		"out", "override", "params", "private", "protected", "public",
		"readonly", "ref", "return", "sbyte", "sealed", "short", "sizeof",
		"stackalloc", "static", "string", "struct", "switch", "this", "throw",
		"true", "try", "typeof", "uint", "ulong", "unchecked", "unsafe",
		"ushort", "using", "virtual", "void", "volatile", "while",
	}
}
