package domain

import (
	"sort"

	"github.com/go-openapi/spec"
)

// KeyOrder records, for every object of interest in the source document, the
// order its keys were declared in. Keys are slash-joined document paths such
// as "definitions/Pet/properties". The loader fills it; the engine consults
// it so emitted member order follows the document rather than Go map
// iteration.
type KeyOrder map[string][]string

// PropertyKeys returns the property names of props in document order. Names
// with no recorded position (schemas built programmatically, merged parts)
// are appended in sorted order so the result stays deterministic.
func (k KeyOrder) PropertyKeys(path string, props map[string]spec.Schema) []string {
	keys := make([]string, 0, len(props))
	seen := make(map[string]struct{}, len(props))

	for _, name := range k[path] {
		if _, ok := props[name]; ok {
			if _, dup := seen[name]; dup {
				continue
			}
			keys = append(keys, name)
			seen[name] = struct{}{}
		}
	}

	var rest []string
	for name := range props {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}
