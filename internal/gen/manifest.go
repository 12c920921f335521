package gen

import (
	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
)

// Manifest is the serialized form of one generation run: the declaration set
// in emission order plus everything a syntax emitter needs to render it.
type Manifest struct {
	// Namespace is the target namespace the emitter should place
	// declarations in. Empty when the caller did not configure one.
	Namespace string `json:"namespace,omitempty"`

	// Source is the path of the schema document this manifest came from.
	Source string `json:"source"`

	// Declarations lists every synthesized declaration in emission order.
	Declarations []ManifestEntry `json:"declarations"`

	// Index maps declaration names to their kinds for quick lookup.
	Index map[string]model.Kind `json:"index"`

	// Diagnostics carries the non-fatal findings of the run.
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics,omitempty"`
}

// ManifestEntry wraps one declaration with its kind so consumers can decode
// the polymorphic payload.
type ManifestEntry struct {
	Kind        model.Kind        `json:"kind"`
	Declaration model.Declaration `json:"declaration"`
}

// NewManifest assembles the manifest for one synthesized declaration set.
func NewManifest(namespace, source string, set *model.Set, diags *diagnostic.Diagnostics) *Manifest {
	manifest := &Manifest{
		Namespace:    namespace,
		Source:       source,
		Declarations: make([]ManifestEntry, 0, set.Len()),
		Index:        set.Index(),
		Diagnostics:  diags.Warnings,
	}

	for _, decl := range set.Declarations() {
		manifest.Declarations = append(manifest.Declarations, ManifestEntry{
			Kind:        decl.DeclarationKind(),
			Declaration: decl,
		})
	}

	return manifest
}
