package synth

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
	"github.com/Nikcio-labs/openapi-code-generator/internal/naming"
	"github.com/Nikcio-labs/openapi-code-generator/internal/resolver"
)

// assembleEnum builds the declaration for a top-level enumeration schema.
func (s *Service) assembleEnum(raw string, schema *spec.Schema) error {
	base, _ := enumBaseKind(schema)

	enum, err := s.buildEnumeration(s.declName[raw], base, schema.Enum, schema.Description)
	if err != nil {
		return err
	}

	s.built[raw] = enum
	s.enumByName[enum.Name] = enum
	return nil
}

// inlineEnum is one distinct inline enumeration discovered during the
// collection walk, pending name allocation.
type inlineEnum struct {
	owner       string
	key         string
	sig         string
	base        model.PrimitiveKind
	values      []any
	description string
}

// collectInlineEnums walks every definition's property tree in document
// order, grouping inline enumerations by (property name, value set). Matching
// groups across unrelated schemas collapse into one shared declaration.
// Distinct groups whose keys canonicalize to the same identifier go through
// the same collision resolution as top-level names: the most natural raw key
// keeps the canonical identifier and the rest differentiate, with document
// order breaking ties.
func (s *Service) collectInlineEnums() error {
	var (
		pending []inlineEnum
		seen    = make(map[string]struct{})
	)

	for _, raw := range s.defs.Names() {
		if s.class[raw] == classEnum {
			continue
		}

		schema, _ := s.defs.Get(raw)
		for _, part := range s.propertyParts(raw, collapseDisjunction(&schema)) {
			for _, key := range s.order.PropertyKeys(part.path, part.props) {
				node := part.props[key]
				s.collectEnumNode(&pending, seen, raw, key, &node, part.path+"/"+key)
			}
		}
	}

	names, err := s.allocateInlineEnumNames(pending)
	if err != nil {
		return err
	}

	for i, p := range pending {
		enum, err := s.buildEnumeration(names[i], p.base, p.values, p.description)
		if err != nil {
			return err
		}
		s.enumBySig[p.sig] = enum
		s.enumByName[names[i]] = enum
		s.inlineOf[p.owner] = append(s.inlineOf[p.owner], enum)
	}

	return nil
}

// propPart is one source of properties for a definition: its own property
// block or an inline allOf component.
type propPart struct {
	path  string
	props map[string]spec.Schema
}

// propertyParts lists the property blocks of a top-level definition in
// document order: the schema's own properties first, then each inline allOf
// component's.
func (s *Service) propertyParts(raw string, schema *spec.Schema) []propPart {
	var parts []propPart

	base := "definitions/" + raw
	if len(schema.Properties) > 0 {
		parts = append(parts, propPart{path: base + "/properties", props: schema.Properties})
	}
	for i := range schema.AllOf {
		component := &schema.AllOf[i]
		if resolver.RefName(component) != "" || len(component.Properties) == 0 {
			continue
		}
		parts = append(parts, propPart{
			path:  base + "/allOf/" + strconv.Itoa(i) + "/properties",
			props: component.Properties,
		})
	}

	return parts
}

// collectEnumNode records the inline enumeration carried by a property node,
// descending into array items, map value schemas and nested inline objects.
func (s *Service) collectEnumNode(pending *[]inlineEnum, seen map[string]struct{}, owner, key string, node *spec.Schema, path string) {
	if node == nil || resolver.RefName(node) != "" {
		return
	}

	if len(node.Enum) > 0 {
		base, ok := enumBaseKind(node)
		if !ok {
			s.diags.AddWarning(diagnostic.CodeUnrepresentableEnum,
				"enum base kind is neither string nor integer; keeping the raw primitive type",
				owner, key)
			return
		}

		sig := enumSig(key, base, node.Enum)
		if _, dup := seen[sig]; dup {
			return
		}
		seen[sig] = struct{}{}

		*pending = append(*pending, inlineEnum{
			owner:       owner,
			key:         key,
			sig:         sig,
			base:        base,
			values:      node.Enum,
			description: node.Description,
		})
		return
	}

	if node.Items != nil && node.Items.Schema != nil {
		s.collectEnumNode(pending, seen, owner, key, node.Items.Schema, path+"/items")
		return
	}

	if ap := node.AdditionalProperties; ap != nil && ap.Schema != nil {
		s.collectEnumNode(pending, seen, owner, key, ap.Schema, path+"/additionalProperties")
	}

	if len(node.Properties) > 0 {
		for _, childKey := range s.order.PropertyKeys(path+"/properties", node.Properties) {
			child := node.Properties[childKey]
			s.collectEnumNode(pending, seen, owner, childKey, &child, path+"/properties/"+childKey)
		}
	}
}

// allocateInlineEnumNames routes the pending enumerations through the
// registry. Signatures sharing a canonical identifier form one collision
// group, claimed in naturalness order so the most natural raw key keeps the
// canonical name; the stable sort leaves equally natural keys in document
// order.
func (s *Service) allocateInlineEnumNames(pending []inlineEnum) ([]string, error) {
	var (
		canonOrder []string
		groups     = make(map[string][]int)
	)
	for i := range pending {
		canonical := s.registry.Canonicalize(pending[i].key)
		if _, ok := groups[canonical]; !ok {
			canonOrder = append(canonOrder, canonical)
		}
		groups[canonical] = append(groups[canonical], i)
	}

	names := make([]string, len(pending))
	for _, canonical := range canonOrder {
		group := groups[canonical]
		sort.SliceStable(group, func(a, b int) bool {
			return s.registry.Naturalness(pending[group[a]].key) < s.registry.Naturalness(pending[group[b]].key)
		})
		for _, idx := range group {
			name, err := s.registry.Claim(pending[idx].key)
			if err != nil {
				return nil, err
			}
			names[idx] = name
		}
	}

	return names, nil
}

// inlineEnumName returns the shared declaration name for a property node's
// inline enumeration, if one was registered.
func (s *Service) inlineEnumName(key string, node *spec.Schema) (string, bool) {
	base, ok := enumBaseKind(node)
	if !ok {
		return "", false
	}
	enum, exists := s.enumBySig[enumSig(key, base, node.Enum)]
	if !exists {
		return "", false
	}
	return enum.Name, true
}

// buildEnumeration builds an enumeration declaration, allocating member
// names in a scope local to the enumeration so collisions between literal
// values resolve without touching the run-wide namespace.
func (s *Service) buildEnumeration(name string, base model.PrimitiveKind, values []any, description string) (*model.Enumeration, error) {
	local := naming.NewRegistry(s.opts)
	local.Reserve(name)

	enum := &model.Enumeration{
		Name:        name,
		Base:        base,
		Description: description,
	}

	for _, value := range values {
		memberName, err := local.Claim(enumMemberRaw(value))
		if err != nil {
			return nil, err
		}
		enum.Members = append(enum.Members, model.EnumMember{
			Name:  memberName,
			Value: normalizeEnumValue(base, value),
		})
	}

	return enum, nil
}

// enumBaseKind determines the underlying primitive kind of an enum schema:
// the declared type when present, otherwise inferred from the first value.
func enumBaseKind(schema *spec.Schema) (model.PrimitiveKind, bool) {
	switch firstType(schema) {
	case "string":
		return model.PrimitiveString, true
	case "integer":
		return model.PrimitiveInt, true
	case "":
	default:
		return "", false
	}

	if len(schema.Enum) == 0 {
		return "", false
	}

	switch v := schema.Enum[0].(type) {
	case string:
		return model.PrimitiveString, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return model.PrimitiveInt, true
	case float64:
		if v == math.Trunc(v) {
			return model.PrimitiveInt, true
		}
		return "", false
	default:
		return "", false
	}
}

// enumMemberRaw derives the raw member name for an enum literal. String
// literals name themselves; integers become ValueN.
func enumMemberRaw(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v < 0 {
			return "ValueMinus" + strconv.FormatInt(int64(-v), 10)
		}
		return "Value" + strconv.FormatInt(int64(v), 10)
	case int64:
		if v < 0 {
			return "ValueMinus" + strconv.FormatInt(-v, 10)
		}
		return "Value" + strconv.FormatInt(v, 10)
	case int:
		return enumMemberRaw(int64(v))
	default:
		return "Value"
	}
}

// normalizeEnumValue keeps the original literal but folds JSON float64
// integers back to int64 for integer enumerations.
func normalizeEnumValue(base model.PrimitiveKind, value any) any {
	if base != model.PrimitiveInt {
		return value
	}
	if f, ok := value.(float64); ok && f == math.Trunc(f) {
		return int64(f)
	}
	return value
}

// enumSig is the grouping key for inline enumerations: property name plus
// the ordered value set.
func enumSig(key string, base model.PrimitiveKind, values []any) string {
	encoded, err := json.Marshal(values)
	if err != nil {
		encoded = []byte("!")
	}
	return key + "\x00" + string(base) + "\x00" + string(encoded)
}
