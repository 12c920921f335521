package synth

import (
	"github.com/go-openapi/spec"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
	"github.com/Nikcio-labs/openapi-code-generator/internal/naming"
	"github.com/Nikcio-labs/openapi-code-generator/internal/resolver"
)

// assembleAggregate builds the declaration for a top-level aggregate schema.
// Bases assemble recursively and memoized, so a definition referenced as a
// base before its own document position is still built exactly once. Returns
// nil (without error) when the schema cannot yield an aggregate here, which
// callers treat as "no base".
func (s *Service) assembleAggregate(raw string) (*model.Aggregate, error) {
	if decl, done := s.built[raw]; done {
		agg, _ := decl.(*model.Aggregate)
		return agg, nil
	}

	if s.onPath(raw) {
		s.diags.AddWarning(diagnostic.CodeCompositionCycle,
			"allOf chain revisits "+raw+"; breaking the cycle", raw, "")
		return nil, nil
	}
	if err := s.pushPath(raw); err != nil {
		s.diags.AddWarning(diagnostic.CodeCompositionCycle, err.Error(), raw, "")
		return nil, nil
	}
	s.owners = append(s.owners, raw)
	defer func() {
		s.owners = s.owners[:len(s.owners)-1]
		s.popPath()
	}()

	schema, _ := s.defs.Get(raw)
	node := collapseDisjunction(&schema)

	agg := &model.Aggregate{
		Name:        s.declName[raw],
		Description: node.Description,
	}

	baseRef, extraRefs := s.splitAllOfRefs(raw, node)

	var (
		inheritedKeys  = make(map[string]struct{})
		inheritedNames []string
	)
	if baseRef != "" {
		baseAgg, err := s.assembleAggregate(baseRef)
		if err != nil {
			return nil, err
		}
		if baseAgg != nil {
			agg.Base = baseAgg.Name
			s.rawBase[raw] = baseRef
			inheritedKeys, inheritedNames = s.collectInherited(baseRef)
		}
	}

	parts := s.propertyParts(raw, node)
	for _, extra := range extraRefs {
		extraSchema, ok := s.defs.Get(extra)
		if !ok {
			continue
		}
		parts = append(parts, s.propertyParts(extra, &extraSchema)...)
	}

	required := requiredSet(node)
	if err := s.buildMembers(agg, parts, required, inheritedKeys, inheritedNames, additionalOf(node)); err != nil {
		return nil, err
	}

	// Registered only after assembly completes; a base chain revisiting this
	// definition must hit the cycle check, not a half-built memo entry.
	s.built[raw] = agg
	return agg, nil
}

// splitAllOfRefs decomposes a schema's allOf into the single base reference
// and any further reference components, which are flattened into own members
// with a diagnostic since the target language has single inheritance only.
func (s *Service) splitAllOfRefs(raw string, schema *spec.Schema) (string, []string) {
	var refs []string
	for i := range schema.AllOf {
		if ref := resolver.RefName(&schema.AllOf[i]); ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return "", nil
	}

	base := refs[0]
	if !s.defs.Has(base) || s.class[base] != classAggregate {
		s.diags.AddWarning(diagnostic.CodeUnsupportedComposition,
			"allOf base "+base+" is not an aggregate; ignoring the inheritance edge",
			raw, "")
		base = ""
	}

	if len(refs) > 1 {
		s.diags.AddWarning(diagnostic.CodeUnsupportedComposition,
			"multiple reference components in allOf; flattening the extra references",
			raw, "")
	}

	return base, refs[1:]
}

// collectInherited walks the ancestor chain gathering every original schema
// key and every member name already declared above this aggregate. Keys stop
// re-declaration under inheritance; names pre-seed the local scope so a
// local property never collides with an inherited member.
func (s *Service) collectInherited(baseRaw string) (map[string]struct{}, []string) {
	keys := make(map[string]struct{})
	var names []string

	seen := make(map[string]struct{})
	for cur := baseRaw; cur != ""; cur = s.rawBase[cur] {
		if _, cycle := seen[cur]; cycle {
			break
		}
		seen[cur] = struct{}{}

		agg, ok := s.built[cur].(*model.Aggregate)
		if !ok {
			break
		}
		for _, member := range agg.Members {
			keys[member.WireName] = struct{}{}
			names = append(names, member.Name)
		}
		if agg.ExtensionData != nil {
			names = append(names, agg.ExtensionData.Name)
		}
	}

	return keys, names
}

// buildMembers assembles the ordered member list of an aggregate: ancestor
// keys are silently omitted, member-name collisions (including those
// introduced purely by case normalization or by inherited names) resolve in
// a scope local to the aggregate, and an extension-data member is attached
// when the schema combines declared properties with open additional
// properties.
func (s *Service) buildMembers(agg *model.Aggregate, parts []propPart, required map[string]struct{}, inheritedKeys map[string]struct{}, inheritedNames []string, additional *spec.SchemaOrBool) error {
	local := naming.NewRegistry(s.opts)
	local.Reserve(agg.Name)
	for _, name := range inheritedNames {
		local.Reserve(name)
	}

	type candidate struct {
		key  string
		node spec.Schema
		path string
	}

	var (
		candidates []candidate
		seenKeys   = make(map[string]struct{})
	)
	for _, part := range parts {
		for _, key := range s.order.PropertyKeys(part.path, part.props) {
			if _, dup := seenKeys[key]; dup {
				continue
			}
			seenKeys[key] = struct{}{}
			if _, inherited := inheritedKeys[key]; inherited {
				continue
			}
			candidates = append(candidates, candidate{
				key:  key,
				node: part.props[key],
				path: part.path + "/" + key,
			})
		}
	}

	memberNames, err := allocateGroup(local, keysOf(candidates, func(c candidate) string { return c.key }))
	if err != nil {
		return err
	}

	for _, c := range candidates {
		node := c.node
		_, isRequired := required[c.key]

		memberType, err := s.typeFor(&node, c.key, isRequired, c.path)
		if err != nil {
			return err
		}

		member := model.Member{
			Name:        memberNames[c.key],
			WireName:    c.key,
			Type:        memberType,
			Required:    isRequired,
			Description: node.Description,
		}
		member.Default = s.renderDefault(&node, memberType)

		agg.Members = append(agg.Members, member)
	}

	// Keyed on declared property blocks, not surviving candidates: an
	// aggregate whose declared properties were all inherited duplicates still
	// carries the overflow member.
	if len(parts) > 0 && allowsAdditionalOf(additional) {
		name, err := local.Claim("extensionData")
		if err != nil {
			return err
		}
		var value model.TypeRef
		if additional.Schema != nil {
			value = s.resolver.Resolve(additional.Schema, resolver.Field{Required: true})
		} else {
			value = model.Primitive(model.PrimitiveObject)
		}
		agg.ExtensionData = &model.Member{
			Name: name,
			Type: model.Map(value, s.opts.MutableCollections),
		}
	}

	return nil
}

// allocateGroup routes a document-ordered key list through a naming scope:
// canonical collision groups are resolved together, singletons claim
// directly.
func allocateGroup(scope *naming.Registry, keys []string) (map[string]string, error) {
	var (
		canonOrder []string
		groups     = make(map[string][]string)
	)
	for _, key := range keys {
		canonical := scope.Canonicalize(key)
		if _, ok := groups[canonical]; !ok {
			canonOrder = append(canonOrder, canonical)
		}
		groups[canonical] = append(groups[canonical], key)
	}

	names := make(map[string]string, len(keys))
	for _, canonical := range canonOrder {
		group := groups[canonical]
		if len(group) == 1 {
			name, err := scope.Claim(group[0])
			if err != nil {
				return nil, err
			}
			names[group[0]] = name
			continue
		}

		resolution, err := scope.ResolveGroup(group)
		if err != nil {
			return nil, err
		}
		for raw, name := range resolution.Names {
			names[raw] = name
		}
	}

	return names, nil
}

func keysOf[T any](items []T, key func(T) string) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = key(item)
	}
	return keys
}

// typeFor resolves a member type, synthesizing inline declarations
// (enumerations, discriminated unions, nested objects) where the node needs
// one, and delegating plain shapes to the resolver.
func (s *Service) typeFor(node *spec.Schema, key string, isRequired bool, nodePath string) (model.TypeRef, error) {
	field := resolver.Field{Required: isRequired}

	if node == nil || resolver.RefName(node) != "" {
		return s.resolver.Resolve(node, field), nil
	}

	wrap := func(t model.TypeRef) model.TypeRef {
		if s.resolver.Nullable(node, field) {
			return model.Nullable(t)
		}
		return t
	}

	if len(node.Enum) > 0 {
		if name, ok := s.inlineEnumName(key, node); ok {
			return wrap(model.Named(name)), nil
		}
		return s.resolver.Resolve(node, field), nil
	}

	if (len(node.OneOf) >= 2 || len(node.AnyOf) >= 2) && node.Discriminator != "" {
		name, err := s.assembleInlineUnion(key, node)
		if err != nil {
			return model.TypeRef{}, err
		}
		return wrap(model.Named(name)), nil
	}

	if node.Items != nil && node.Items.Schema != nil && (firstType(node) == "array" || firstType(node) == "") {
		elem, err := s.typeFor(node.Items.Schema, key, true, nodePath+"/items")
		if err != nil {
			return model.TypeRef{}, err
		}
		return wrap(model.Collection(elem, s.opts.MutableCollections)), nil
	}

	if len(node.Properties) == 0 && node.AdditionalProperties != nil && node.AdditionalProperties.Schema != nil &&
		(firstType(node) == "object" || firstType(node) == "") {
		value, err := s.typeFor(node.AdditionalProperties.Schema, key, true, nodePath+"/additionalProperties")
		if err != nil {
			return model.TypeRef{}, err
		}
		return wrap(model.Map(value, s.opts.MutableCollections)), nil
	}

	if len(node.Properties) > 0 {
		name, err := s.assembleInlineAggregate(key, node, nodePath)
		if err != nil {
			return model.TypeRef{}, err
		}
		if name == "" {
			return wrap(model.Primitive(model.PrimitiveObject)), nil
		}
		return wrap(model.Named(name)), nil
	}

	return s.resolver.Resolve(node, field), nil
}

// assembleInlineAggregate synthesizes a named aggregate for an inline object
// property, named from its owning property key. An empty name return means
// the depth guard fired and the member degrades to the opaque type.
func (s *Service) assembleInlineAggregate(key string, node *spec.Schema, nodePath string) (string, error) {
	if err := s.pushPath(nodePath); err != nil {
		s.diags.AddWarning(diagnostic.CodeCompositionCycle, err.Error(), s.currentOwner(), key)
		return "", nil
	}
	defer s.popPath()

	name, err := s.registry.Claim(key)
	if err != nil {
		return "", err
	}

	agg := &model.Aggregate{
		Name:        name,
		Description: node.Description,
	}

	parts := []propPart{{path: nodePath + "/properties", props: node.Properties}}
	if err := s.buildMembers(agg, parts, requiredSet(node), nil, nil, additionalOf(node)); err != nil {
		return "", err
	}

	s.addInline(agg)
	return name, nil
}

// renderDefault renders a member default through the literal renderer.
// Enumeration-typed members match the raw value against the enumeration's
// original literals. When propagation is disabled, a member that would carry
// a default receives the placeholder expression instead.
func (s *Service) renderDefault(node *spec.Schema, memberType model.TypeRef) string {
	if node == nil || node.Default == nil {
		return ""
	}

	inner := memberType.Unwrap()

	var (
		expr string
		ok   bool
	)
	if inner.Kind == model.RefNamed {
		if enum, found := s.enumByName[inner.Name]; found {
			expr, ok = s.renderer.RenderEnum(node.Default, enum)
		}
	} else {
		expr, ok = s.renderer.Render(node.Default, memberType)
	}

	if !ok {
		return ""
	}
	if !s.opts.PropagateDefaults {
		return s.renderer.Placeholder()
	}
	return expr
}

func requiredSet(schema *spec.Schema) map[string]struct{} {
	required := make(map[string]struct{})
	if schema == nil {
		return required
	}
	for _, key := range schema.Required {
		required[key] = struct{}{}
	}
	for i := range schema.AllOf {
		if resolver.RefName(&schema.AllOf[i]) != "" {
			continue
		}
		for _, key := range schema.AllOf[i].Required {
			required[key] = struct{}{}
		}
	}
	return required
}

// additionalOf returns the additionalProperties node of the schema or its
// inline allOf components.
func additionalOf(schema *spec.Schema) *spec.SchemaOrBool {
	if schema == nil {
		return nil
	}
	if schema.AdditionalProperties != nil {
		return schema.AdditionalProperties
	}
	for i := range schema.AllOf {
		component := &schema.AllOf[i]
		if resolver.RefName(component) == "" && component.AdditionalProperties != nil {
			return component.AdditionalProperties
		}
	}
	return nil
}

func allowsAdditionalOf(additional *spec.SchemaOrBool) bool {
	if additional == nil {
		return false
	}
	return additional.Schema != nil || additional.Allows
}
