package synth

import (
	"github.com/go-openapi/spec"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/resolver"
)

// classification buckets every top-level schema into one of the four
// declaration variants.
type classification int

const (
	classAggregate classification = iota
	classEnum
	classUnion
	classAlias
)

// classify decides the declaration variant for a top-level schema:
// enumeration when it carries a representable enum list, union when it is a
// disjunction of two or more members, aggregate when it has own or
// allOf-merged properties (or is a bare object), and type alias when it is a
// single primitive with no properties, composition or enum.
func (s *Service) classify(raw string, schema *spec.Schema) classification {
	if len(schema.Enum) > 0 {
		if _, ok := enumBaseKind(schema); ok {
			return classEnum
		}
		s.diags.AddWarning(diagnostic.CodeUnrepresentableEnum,
			"enum base kind is neither string nor integer; keeping the raw primitive type",
			raw, "")
	}

	if len(schema.OneOf) >= 2 || len(schema.AnyOf) >= 2 {
		return classUnion
	}
	if len(schema.OneOf) == 1 || len(schema.AnyOf) == 1 {
		// A single-member disjunction degenerates to that member; classify
		// through it so the declaration keeps the member's shape.
		s.diags.AddWarning(diagnostic.CodeUnsupportedComposition,
			"single-member oneOf/anyOf collapses to its member",
			raw, "")
		inner := collapseDisjunction(schema)
		if resolver.RefName(inner) != "" {
			return classAlias
		}
		return s.classify(raw, inner)
	}

	if len(schema.Properties) > 0 || len(schema.AllOf) > 0 {
		return classAggregate
	}

	switch firstType(schema) {
	case "string", "integer", "number", "boolean":
		return classAlias
	default:
		return classAggregate
	}
}

// collapseDisjunction strips nested single-member oneOf/anyOf wrappers,
// returning the innermost member. Schemas that are not single-member
// disjunctions come back unchanged.
func collapseDisjunction(schema *spec.Schema) *spec.Schema {
	for {
		members := disjunctionMembers(schema)
		if len(members) != 1 {
			return schema
		}
		schema = &members[0]
	}
}

func firstType(schema *spec.Schema) string {
	for _, t := range schema.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}
