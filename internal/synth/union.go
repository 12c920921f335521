package synth

import (
	"sort"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
	"github.com/Nikcio-labs/openapi-code-generator/internal/resolver"
)

// discriminatorMappingExtension carries the explicit value-to-reference
// mapping when the document supplies one. Entries pointing at unknown
// declarations are dropped with a diagnostic, not a hard failure.
const discriminatorMappingExtension = "x-discriminator-mapping"

// assembleUnion builds the declaration for a top-level disjunction schema.
// With a discriminator the union is abstract and its variants carry tags;
// without one the union stays open and consumers fall back to an opaque
// representation.
func (s *Service) assembleUnion(raw string, schema *spec.Schema) error {
	union := s.buildUnion(s.declName[raw], raw, schema)
	s.built[raw] = union
	return nil
}

// assembleInlineUnion synthesizes a union declaration for a property-level
// discriminated disjunction, named from its owning property key.
func (s *Service) assembleInlineUnion(key string, node *spec.Schema) (string, error) {
	name, err := s.registry.Claim(key)
	if err != nil {
		return "", err
	}

	union := s.buildUnion(name, s.currentOwner(), node)
	s.addInline(union)
	return name, nil
}

func (s *Service) buildUnion(name, owner string, schema *spec.Schema) *model.Union {
	union := &model.Union{
		Name:          name,
		Description:   schema.Description,
		Discriminator: schema.Discriminator,
		Abstract:      schema.Discriminator != "",
	}

	if mapping := discriminatorMapping(schema); len(mapping) > 0 {
		// Iterate tags in sorted order; the extension arrives as a Go map
		// and must not leak hash-iteration order into the output.
		tags := make([]string, 0, len(mapping))
		for tag := range mapping {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		for _, tag := range tags {
			target := refTail(mapping[tag])
			declared, ok := s.declName[target]
			if !ok {
				s.diags.AddWarning(diagnostic.CodeUnresolvedDiscriminatorTarget,
					"discriminator value "+tag+" maps to unknown schema "+target+"; variant dropped",
					owner, "")
				continue
			}
			union.Variants = append(union.Variants, model.Variant{
				Declaration: declared,
				Tag:         tag,
			})
		}
		return union
	}

	members := disjunctionMembers(schema)
	for i := range members {
		ref := resolver.RefName(&members[i])
		if ref == "" {
			s.diags.AddWarning(diagnostic.CodeUnsupportedComposition,
				"non-reference member in oneOf/anyOf; variant dropped", owner, "")
			continue
		}
		declared, ok := s.declName[ref]
		if !ok {
			s.diags.AddWarning(diagnostic.CodeUnresolvedDiscriminatorTarget,
				"oneOf/anyOf references unknown schema "+ref+"; variant dropped", owner, "")
			continue
		}

		variant := model.Variant{Declaration: declared}
		if union.Discriminator != "" {
			// Implicit mapping: the discriminator value defaults to the
			// referenced schema's raw name.
			variant.Tag = ref
		}
		union.Variants = append(union.Variants, variant)
	}

	return union
}

// disjunctionMembers returns the oneOf members, falling back to anyOf.
func disjunctionMembers(schema *spec.Schema) []spec.Schema {
	if len(schema.OneOf) > 0 {
		return schema.OneOf
	}
	return schema.AnyOf
}

// discriminatorMapping reads the explicit value-to-reference mapping from
// the schema's vendor extensions.
func discriminatorMapping(schema *spec.Schema) map[string]string {
	rawMapping, ok := schema.Extensions[discriminatorMappingExtension]
	if !ok {
		return nil
	}

	entries, ok := rawMapping.(map[string]any)
	if !ok {
		return nil
	}

	mapping := make(map[string]string, len(entries))
	for tag, target := range entries {
		if ref, ok := target.(string); ok {
			mapping[tag] = ref
		}
	}
	return mapping
}

// refTail strips a reference pointer down to the raw definition name.
func refTail(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
