package synth

import (
	"testing"

	"github.com/go-openapi/spec"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
	"github.com/Nikcio-labs/openapi-code-generator/internal/naming"
)

func synthesize(t *testing.T, opts domain.Options, defs *domain.OrderedDefinitions, order domain.KeyOrder) (*model.Set, *diagnostic.Diagnostics) {
	t.Helper()
	service := New(opts, naming.NewRegistry(opts), zerolog.Nop())
	set, diags, err := service.Synthesize(defs, order)
	require.NoError(t, err)
	return set, diags
}

func objectSchema(props map[string]spec.Schema, required ...string) spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       spec.StringOrArray{"object"},
		Properties: props,
		Required:   required,
	}}
}

func typedSchema(kind, format string) spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{
		Type:   spec.StringOrArray{kind},
		Format: format,
	}}
}

func stringEnum(values ...any) spec.Schema {
	return spec.Schema{SchemaProps: spec.SchemaProps{
		Type: spec.StringOrArray{"string"},
		Enum: values,
	}}
}

func warningCodes(diags *diagnostic.Diagnostics) []string {
	codes := make([]string, 0, len(diags.Warnings))
	for _, w := range diags.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func declNames(set *model.Set) []string {
	names := make([]string, 0, set.Len())
	for _, d := range set.Declarations() {
		names = append(names, d.DeclarationName())
	}
	return names
}

// ============================================================================
// Test Synthesize - Aggregates and inheritance
// ============================================================================

func TestSynthesize_SimpleAggregate(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Pet", objectSchema(map[string]spec.Schema{
		"id":   typedSchema("integer", "int64"),
		"name": typedSchema("string", ""),
		"tag":  typedSchema("string", ""),
	}, "id", "name"))

	order := domain.KeyOrder{
		"definitions/Pet/properties": {"id", "name", "tag"},
	}

	set, diags := synthesize(t, domain.DefaultOptions(), defs, order)
	assert.Empty(t, diags.Warnings)

	decl, ok := set.Get("Pet")
	require.True(t, ok)
	pet := decl.(*model.Aggregate)

	require.Len(t, pet.Members, 3)
	assert.Equal(t, "Id", pet.Members[0].Name)
	assert.Equal(t, "id", pet.Members[0].WireName)
	assert.Equal(t, "long", pet.Members[0].Type.String())
	assert.True(t, pet.Members[0].Required)

	assert.Equal(t, "Name", pet.Members[1].Name)
	assert.Equal(t, "string", pet.Members[1].Type.String())

	// Optional member wraps nullable
	assert.Equal(t, "Tag", pet.Members[2].Name)
	assert.Equal(t, "string?", pet.Members[2].Type.String())
	assert.False(t, pet.Members[2].Required)
}

func TestSynthesize_InheritanceViaSingleRefAllOf(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Pet", objectSchema(map[string]spec.Schema{
		"id":   typedSchema("integer", "int64"),
		"name": typedSchema("string", ""),
	}, "id", "name"))
	defs.Add("Cat", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/Pet"),
			objectSchema(map[string]spec.Schema{
				"indoor":   typedSchema("boolean", ""),
				"declawed": typedSchema("boolean", ""),
				"name":     typedSchema("string", ""),
			}, "indoor"),
		},
	}})

	order := domain.KeyOrder{
		"definitions/Pet/properties":         {"id", "name"},
		"definitions/Cat/allOf/1/properties": {"indoor", "declawed", "name"},
	}

	set, diags := synthesize(t, domain.DefaultOptions(), defs, order)
	assert.Empty(t, diags.Warnings)

	decl, ok := set.Get("Cat")
	require.True(t, ok)
	cat := decl.(*model.Aggregate)

	assert.Equal(t, "Pet", cat.Base)

	// "name" already lives on the base and is not re-declared
	require.Len(t, cat.Members, 2)
	assert.Equal(t, "Indoor", cat.Members[0].Name)
	assert.True(t, cat.Members[0].Required)
	assert.Equal(t, "Declawed", cat.Members[1].Name)
	assert.Equal(t, "bool?", cat.Members[1].Type.String())
}

func TestSynthesize_BaseAssembledBeforeItsDocumentTurn(t *testing.T) {
	// The derived schema appears first; the base assembles on demand and
	// exactly once
	defs := domain.NewOrderedDefinitions()
	defs.Add("Cat", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/Pet"),
			objectSchema(map[string]spec.Schema{"indoor": typedSchema("boolean", "")}),
		},
	}})
	defs.Add("Pet", objectSchema(map[string]spec.Schema{
		"name": typedSchema("string", ""),
	}, "name"))

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Empty(t, diags.Warnings)

	decl, _ := set.Get("Cat")
	assert.Equal(t, "Pet", decl.(*model.Aggregate).Base)
	assert.Equal(t, []string{"Cat", "Pet"}, declNames(set))
}

func TestSynthesize_MultiRefAllOfFlattensExtras(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Named", objectSchema(map[string]spec.Schema{"name": typedSchema("string", "")}))
	defs.Add("Aged", objectSchema(map[string]spec.Schema{"age": typedSchema("integer", "")}))
	defs.Add("Person", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/Named"),
			*spec.RefSchema("#/definitions/Aged"),
		},
	}})

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Contains(t, warningCodes(diags), diagnostic.CodeUnsupportedComposition)

	decl, _ := set.Get("Person")
	person := decl.(*model.Aggregate)
	assert.Equal(t, "Named", person.Base)

	// The second reference's properties flatten into own members
	require.Len(t, person.Members, 1)
	assert.Equal(t, "Age", person.Members[0].Name)
}

func TestSynthesize_CompositionCycleBreaksWithDiagnostic(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("A", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/B"),
			objectSchema(map[string]spec.Schema{"a": typedSchema("string", "")}),
		},
	}})
	defs.Add("B", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/A"),
			objectSchema(map[string]spec.Schema{"b": typedSchema("string", "")}),
		},
	}})

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Contains(t, warningCodes(diags), diagnostic.CodeCompositionCycle)

	// Both declarations still come out; the cycle edge is dropped once
	aDecl, _ := set.Get("A")
	bDecl, _ := set.Get("B")
	assert.Equal(t, "B", aDecl.(*model.Aggregate).Base)
	assert.Equal(t, "", bDecl.(*model.Aggregate).Base)
}

func TestSynthesize_MemberNameCollisionWithinAggregate(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Event", objectSchema(map[string]spec.Schema{
		"userId":  typedSchema("string", ""),
		"user_id": typedSchema("integer", ""),
	}))

	order := domain.KeyOrder{
		"definitions/Event/properties": {"userId", "user_id"},
	}

	set, diags := synthesize(t, domain.DefaultOptions(), defs, order)
	assert.Empty(t, diags.Warnings)

	decl, _ := set.Get("Event")
	event := decl.(*model.Aggregate)
	require.Len(t, event.Members, 2)
	assert.Equal(t, "UserId", event.Members[0].Name)
	assert.Equal(t, "UserUnderscoreId", event.Members[1].Name)
}

func TestSynthesize_MemberCannotShadowDeclarationName(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Status", objectSchema(map[string]spec.Schema{
		"status": typedSchema("string", ""),
	}))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Status")
	member := decl.(*model.Aggregate).Members[0]
	assert.NotEqual(t, "Status", member.Name)
	assert.Equal(t, "StatusLowercase", member.Name)
}

func TestSynthesize_ExtensionDataMember(t *testing.T) {
	schema := objectSchema(map[string]spec.Schema{
		"name": typedSchema("string", ""),
	})
	schema.AdditionalProperties = &spec.SchemaOrBool{Allows: true}

	defs := domain.NewOrderedDefinitions()
	defs.Add("Config", schema)

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Config")
	config := decl.(*model.Aggregate)
	require.NotNil(t, config.ExtensionData)
	assert.Equal(t, "ExtensionData", config.ExtensionData.Name)
	assert.Equal(t, "IReadOnlyDictionary<string, object>", config.ExtensionData.Type.String())
}

func TestSynthesize_PureMapSchemaHasNoExtensionData(t *testing.T) {
	// No declared properties means the whole schema is a map, not an
	// aggregate with an overflow member
	schema := spec.Schema{SchemaProps: spec.SchemaProps{
		Type:                 spec.StringOrArray{"object"},
		AdditionalProperties: &spec.SchemaOrBool{Schema: &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"string"}}}},
	}}

	defs := domain.NewOrderedDefinitions()
	defs.Add("Labels", schema)

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	decl, _ := set.Get("Labels")
	labels := decl.(*model.Aggregate)
	assert.Empty(t, labels.Members)
	assert.Nil(t, labels.ExtensionData)
}

func TestSynthesize_ExtensionDataSurvivesInheritedDuplicates(t *testing.T) {
	// Every declared property re-declares an inherited one; the overflow
	// member still attaches because the schema declared properties at all
	component := objectSchema(map[string]spec.Schema{
		"name": typedSchema("string", ""),
	})
	component.AdditionalProperties = &spec.SchemaOrBool{Allows: true}

	defs := domain.NewOrderedDefinitions()
	defs.Add("Pet", objectSchema(map[string]spec.Schema{
		"name": typedSchema("string", ""),
	}, "name"))
	defs.Add("Tagged", spec.Schema{SchemaProps: spec.SchemaProps{
		AllOf: []spec.Schema{
			*spec.RefSchema("#/definitions/Pet"),
			component,
		},
	}})

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Tagged")
	tagged := decl.(*model.Aggregate)
	assert.Equal(t, "Pet", tagged.Base)
	assert.Empty(t, tagged.Members)
	require.NotNil(t, tagged.ExtensionData)
	assert.Equal(t, "ExtensionData", tagged.ExtensionData.Name)
}

// ============================================================================
// Test Synthesize - Enumerations
// ============================================================================

func TestSynthesize_TopLevelEnum(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Color", stringEnum("red", "green", "blue"))

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Empty(t, diags.Warnings)

	decl, ok := set.Get("Color")
	require.True(t, ok)
	enum := decl.(*model.Enumeration)
	assert.Equal(t, model.PrimitiveString, enum.Base)
	require.Len(t, enum.Members, 3)
	assert.Equal(t, "Red", enum.Members[0].Name)
	assert.Equal(t, "red", enum.Members[0].Value)
}

func TestSynthesize_IntegerEnumMemberNames(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Priority", spec.Schema{SchemaProps: spec.SchemaProps{
		Type: spec.StringOrArray{"integer"},
		Enum: []any{float64(1), float64(2), float64(-1)},
	}})

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Priority")
	enum := decl.(*model.Enumeration)
	assert.Equal(t, model.PrimitiveInt, enum.Base)
	require.Len(t, enum.Members, 3)
	assert.Equal(t, "Value1", enum.Members[0].Name)
	assert.Equal(t, int64(1), enum.Members[0].Value)
	assert.Equal(t, "ValueMinus1", enum.Members[2].Name)
}

func TestSynthesize_SharedInlineEnum(t *testing.T) {
	// Identical (property, values) pairs across unrelated schemas collapse
	// into one declaration
	status := stringEnum("placed", "approved", "delivered")

	defs := domain.NewOrderedDefinitions()
	defs.Add("Order", objectSchema(map[string]spec.Schema{"status": status}, "status"))
	defs.Add("User", objectSchema(map[string]spec.Schema{"status": status}, "status"))

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Empty(t, diags.Warnings)

	// Emitted right after its first owner
	assert.Equal(t, []string{"Order", "Status", "User"}, declNames(set))

	orderDecl, _ := set.Get("Order")
	userDecl, _ := set.Get("User")
	assert.Equal(t, "Status", orderDecl.(*model.Aggregate).Members[0].Type.String())
	assert.Equal(t, "Status", userDecl.(*model.Aggregate).Members[0].Type.String())
}

func TestSynthesize_DistinctInlineEnumsDifferentiate(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Order", objectSchema(map[string]spec.Schema{
		"status": stringEnum("placed", "delivered"),
	}, "status"))
	defs.Add("User", objectSchema(map[string]spec.Schema{
		"status": stringEnum("active", "banned"),
	}, "status"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	assert.Equal(t, []string{"Order", "Status", "User", "StatusLowercase"}, declNames(set))

	userDecl, _ := set.Get("User")
	assert.Equal(t, "StatusLowercase", userDecl.(*model.Aggregate).Members[0].Type.String())
}

func TestSynthesize_InlineEnumCollisionPrefersExactForm(t *testing.T) {
	// Distinct value sets under case-variant keys: the raw key already in
	// canonical form keeps the identifier, regardless of document order
	defs := domain.NewOrderedDefinitions()
	defs.Add("Order", objectSchema(map[string]spec.Schema{
		"status": stringEnum("placed", "delivered"),
	}, "status"))
	defs.Add("User", objectSchema(map[string]spec.Schema{
		"Status": stringEnum("active", "banned"),
	}, "Status"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	assert.Equal(t, []string{"Order", "StatusLowercase", "User", "Status"}, declNames(set))

	orderDecl, _ := set.Get("Order")
	assert.Equal(t, "StatusLowercase", orderDecl.(*model.Aggregate).Members[0].Type.String())

	userDecl, _ := set.Get("User")
	assert.Equal(t, "Status", userDecl.(*model.Aggregate).Members[0].Type.String())

	kind, ok := set.KindOf("Status")
	require.True(t, ok)
	assert.Equal(t, model.KindEnumeration, kind)
}

func TestSynthesize_EnumAsMapValue(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Palette", objectSchema(map[string]spec.Schema{
		"colors": {SchemaProps: spec.SchemaProps{
			Type:                 spec.StringOrArray{"object"},
			AdditionalProperties: &spec.SchemaOrBool{Schema: &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"string"}, Enum: []any{"red", "green"}}}},
		}},
	}, "colors"))

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Empty(t, diags.Warnings)

	require.True(t, set.Has("Colors"))
	paletteDecl, _ := set.Get("Palette")
	assert.Equal(t, "IReadOnlyDictionary<string, Colors>", paletteDecl.(*model.Aggregate).Members[0].Type.String())
}

func TestSynthesize_InlineEnumInsideArrayItems(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Post", objectSchema(map[string]spec.Schema{
		"tags": {SchemaProps: spec.SchemaProps{
			Type:  spec.StringOrArray{"array"},
			Items: &spec.SchemaOrArray{Schema: &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"string"}, Enum: []any{"news", "opinion"}}}},
		}},
	}, "tags"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	require.True(t, set.Has("Tags"))
	postDecl, _ := set.Get("Post")
	assert.Equal(t, "IReadOnlyList<Tags>", postDecl.(*model.Aggregate).Members[0].Type.String())
}

func TestSynthesize_UnrepresentableEnumKeepsRawType(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Weights", objectSchema(map[string]spec.Schema{
		"factor": {SchemaProps: spec.SchemaProps{
			Type: spec.StringOrArray{"number"},
			Enum: []any{0.5, 1.5},
		}},
	}, "factor"))

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Contains(t, warningCodes(diags), diagnostic.CodeUnrepresentableEnum)

	decl, _ := set.Get("Weights")
	assert.Equal(t, "double", decl.(*model.Aggregate).Members[0].Type.String())
}

// ============================================================================
// Test Synthesize - Unions
// ============================================================================

func shapeDefs() *domain.OrderedDefinitions {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Circle", objectSchema(map[string]spec.Schema{"radius": typedSchema("number", "")}, "radius"))
	defs.Add("Square", objectSchema(map[string]spec.Schema{"side": typedSchema("number", "")}, "side"))
	return defs
}

func TestSynthesize_DiscriminatedUnionImplicitTags(t *testing.T) {
	defs := shapeDefs()
	defs.Add("Shape", spec.Schema{
		SchemaProps: spec.SchemaProps{
			OneOf: []spec.Schema{
				*spec.RefSchema("#/definitions/Circle"),
				*spec.RefSchema("#/definitions/Square"),
			},
		},
		SwaggerSchemaProps: spec.SwaggerSchemaProps{Discriminator: "kind"},
	})

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Empty(t, diags.Warnings)

	decl, _ := set.Get("Shape")
	union := decl.(*model.Union)
	assert.True(t, union.Abstract)
	assert.Equal(t, "kind", union.Discriminator)
	require.Len(t, union.Variants, 2)
	assert.Equal(t, model.Variant{Declaration: "Circle", Tag: "Circle"}, union.Variants[0])
	assert.Equal(t, model.Variant{Declaration: "Square", Tag: "Square"}, union.Variants[1])
}

func TestSynthesize_DiscriminatedUnionExplicitMapping(t *testing.T) {
	defs := shapeDefs()
	defs.Add("Shape", spec.Schema{
		SchemaProps: spec.SchemaProps{
			OneOf: []spec.Schema{
				*spec.RefSchema("#/definitions/Circle"),
				*spec.RefSchema("#/definitions/Square"),
			},
		},
		SwaggerSchemaProps: spec.SwaggerSchemaProps{Discriminator: "kind"},
		VendorExtensible: spec.VendorExtensible{Extensions: spec.Extensions{
			"x-discriminator-mapping": map[string]any{
				"round": "#/definitions/Circle",
				"boxy":  "#/definitions/Square",
			},
		}},
	})

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Shape")
	union := decl.(*model.Union)
	require.Len(t, union.Variants, 2)

	// Mapping iterates in sorted tag order
	assert.Equal(t, model.Variant{Declaration: "Square", Tag: "boxy"}, union.Variants[0])
	assert.Equal(t, model.Variant{Declaration: "Circle", Tag: "round"}, union.Variants[1])
}

func TestSynthesize_UnionDanglingTargetDropped(t *testing.T) {
	defs := shapeDefs()
	defs.Add("Shape", spec.Schema{
		SchemaProps: spec.SchemaProps{
			OneOf: []spec.Schema{
				*spec.RefSchema("#/definitions/Circle"),
				*spec.RefSchema("#/definitions/Hexagon"),
			},
		},
		SwaggerSchemaProps: spec.SwaggerSchemaProps{Discriminator: "kind"},
	})

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Contains(t, warningCodes(diags), diagnostic.CodeUnresolvedDiscriminatorTarget)

	decl, _ := set.Get("Shape")
	union := decl.(*model.Union)
	require.Len(t, union.Variants, 1)
	assert.Equal(t, "Circle", union.Variants[0].Declaration)
}

func TestSynthesize_UndiscriminatedUnionIsOpen(t *testing.T) {
	defs := shapeDefs()
	defs.Add("Shape", spec.Schema{SchemaProps: spec.SchemaProps{
		AnyOf: []spec.Schema{
			*spec.RefSchema("#/definitions/Circle"),
			*spec.RefSchema("#/definitions/Square"),
		},
	}})

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Shape")
	union := decl.(*model.Union)
	assert.False(t, union.Abstract)
	assert.Empty(t, union.Discriminator)
	require.Len(t, union.Variants, 2)
	assert.Empty(t, union.Variants[0].Tag)
}

func TestSynthesize_InlineDiscriminatedUnionMember(t *testing.T) {
	defs := shapeDefs()
	defs.Add("Canvas", objectSchema(map[string]spec.Schema{
		"shape": {
			SchemaProps: spec.SchemaProps{
				OneOf: []spec.Schema{
					*spec.RefSchema("#/definitions/Circle"),
					*spec.RefSchema("#/definitions/Square"),
				},
			},
			SwaggerSchemaProps: spec.SwaggerSchemaProps{Discriminator: "kind"},
		},
	}, "shape"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	require.True(t, set.Has("Shape"))
	kind, _ := set.KindOf("Shape")
	assert.Equal(t, model.KindUnion, kind)

	canvasDecl, _ := set.Get("Canvas")
	assert.Equal(t, "Shape", canvasDecl.(*model.Aggregate).Members[0].Type.String())
}

// ============================================================================
// Test Synthesize - Aliases, defaults and naming across the run
// ============================================================================

func TestSynthesize_PrimitiveAlias(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("UserId", typedSchema("string", "uuid"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("UserId")
	alias := decl.(*model.Alias)
	assert.Equal(t, "Guid", alias.Underlying.String())
}

func TestSynthesize_SingleMemberDisjunctionCollapses(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Identifier", spec.Schema{SchemaProps: spec.SchemaProps{
		OneOf: []spec.Schema{typedSchema("string", "uuid")},
	}})

	set, diags := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})
	assert.Contains(t, warningCodes(diags), diagnostic.CodeUnsupportedComposition)

	decl, ok := set.Get("Identifier")
	require.True(t, ok)
	alias := decl.(*model.Alias)
	assert.Equal(t, "Guid", alias.Underlying.String())
}

func TestSynthesize_SingleRefDisjunctionAliases(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Pet", objectSchema(map[string]spec.Schema{
		"name": typedSchema("string", ""),
	}, "name"))
	defs.Add("Animal", spec.Schema{SchemaProps: spec.SchemaProps{
		AnyOf: []spec.Schema{*spec.RefSchema("#/definitions/Pet")},
	}})

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Animal")
	alias := decl.(*model.Alias)
	assert.Equal(t, "Pet", alias.Underlying.String())
}

func TestSynthesize_TopLevelNameCollision(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("user_id", typedSchema("string", ""))
	defs.Add("UserId", typedSchema("string", ""))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	// The exact-form raw name keeps the canonical identifier
	assert.True(t, set.Has("UserId"))
	assert.True(t, set.Has("UserUnderscoreId"))
	assert.Equal(t, []string{"UserUnderscoreId", "UserId"}, declNames(set))
}

func TestSynthesize_MemberDefaultRendered(t *testing.T) {
	count := typedSchema("integer", "")
	count.Default = float64(10)

	defs := domain.NewOrderedDefinitions()
	defs.Add("Page", objectSchema(map[string]spec.Schema{"count": count}, "count"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Page")
	assert.Equal(t, "10", decl.(*model.Aggregate).Members[0].Default)
}

func TestSynthesize_EnumMemberDefault(t *testing.T) {
	status := stringEnum("placed", "approved")
	status.Default = "placed"

	defs := domain.NewOrderedDefinitions()
	defs.Add("Order", objectSchema(map[string]spec.Schema{"status": status}, "status"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	decl, _ := set.Get("Order")
	assert.Equal(t, "Status.Placed", decl.(*model.Aggregate).Members[0].Default)
}

func TestSynthesize_PlaceholderWhenPropagationDisabled(t *testing.T) {
	count := typedSchema("integer", "")
	count.Default = float64(10)

	defs := domain.NewOrderedDefinitions()
	defs.Add("Page", objectSchema(map[string]spec.Schema{"count": count}, "count"))

	opts := domain.DefaultOptions()
	opts.PropagateDefaults = false
	set, _ := synthesize(t, opts, defs, domain.KeyOrder{})

	decl, _ := set.Get("Page")
	assert.Equal(t, "default!", decl.(*model.Aggregate).Members[0].Default)
}

func TestSynthesize_InlineObjectMember(t *testing.T) {
	defs := domain.NewOrderedDefinitions()
	defs.Add("Order", objectSchema(map[string]spec.Schema{
		"customer": objectSchema(map[string]spec.Schema{
			"email": typedSchema("string", ""),
		}, "email"),
	}, "customer"))

	set, _ := synthesize(t, domain.DefaultOptions(), defs, domain.KeyOrder{})

	require.True(t, set.Has("Customer"))
	orderDecl, _ := set.Get("Order")
	assert.Equal(t, "Customer", orderDecl.(*model.Aggregate).Members[0].Type.String())

	customerDecl, _ := set.Get("Customer")
	customer := customerDecl.(*model.Aggregate)
	require.Len(t, customer.Members, 1)
	assert.Equal(t, "Email", customer.Members[0].Name)
}

func TestSynthesize_DeterministicAcrossRuns(t *testing.T) {
	build := func() *domain.OrderedDefinitions {
		defs := domain.NewOrderedDefinitions()
		defs.Add("Order", objectSchema(map[string]spec.Schema{
			"status": stringEnum("placed", "delivered"),
		}, "status"))
		defs.Add("User", objectSchema(map[string]spec.Schema{
			"status": stringEnum("active", "banned"),
		}, "status"))
		return defs
	}

	first, _ := synthesize(t, domain.DefaultOptions(), build(), domain.KeyOrder{})
	second, _ := synthesize(t, domain.DefaultOptions(), build(), domain.KeyOrder{})

	assert.Equal(t, declNames(first), declNames(second))
	assert.Equal(t, first.Index(), second.Index())
}
