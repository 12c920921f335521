// Package loader reads OpenAPI documents from disk and hands the engine an
// ordered definition map. JSON and YAML are both supported; either way the
// raw bytes are walked once to extract the order keys were declared in,
// because the parsed schema model stores objects in Go maps and determinism
// requires the document order.
package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
)

// Document is one loaded schema document.
type Document struct {
	// Source is the path the document was loaded from.
	Source string

	// Swagger is the parsed document; references inside it are already
	// resolved to stable "#/definitions/<name>" identifiers.
	Swagger *spec.Swagger

	// Definitions is the top-level schema collection in document order.
	Definitions *domain.OrderedDefinitions

	// Order records declaration order for the definition map and every
	// properties object.
	Order domain.KeyOrder
}

// Load reads and parses a schema document. The format is determined from the
// file extension; YAML is converted to JSON before parsing so both formats
// flow through one codec.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	var (
		jsonData []byte
		order    domain.KeyOrder
	)

	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		jsonData, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("loader: convert %s: %w", path, err)
		}
		order, err = extractKeyOrderYAML(data)
		if err != nil {
			return nil, fmt.Errorf("loader: key order of %s: %w", path, err)
		}
	case strings.HasSuffix(path, ".json"):
		jsonData = data
		order, err = extractKeyOrderJSON(data)
		if err != nil {
			return nil, fmt.Errorf("loader: key order of %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("loader: unsupported document format: %s", path)
	}

	var swagger spec.Swagger
	if err := json.Unmarshal(jsonData, &swagger); err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", path, err)
	}

	return &Document{
		Source:      path,
		Swagger:     &swagger,
		Definitions: orderedDefinitions(&swagger, order),
		Order:       order,
	}, nil
}

// orderedDefinitions arranges the parsed definition map in document order.
// Definitions absent from the recorded order (a document without one, or a
// programmatic caller) are appended in sorted order.
func orderedDefinitions(swagger *spec.Swagger, order domain.KeyOrder) *domain.OrderedDefinitions {
	defs := domain.NewOrderedDefinitions()

	seen := make(map[string]struct{})
	for _, name := range order["definitions"] {
		if schema, ok := swagger.Definitions[name]; ok {
			defs.Add(name, schema)
			seen[name] = struct{}{}
		}
	}

	var rest []string
	for name := range swagger.Definitions {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		defs.Add(name, swagger.Definitions[name])
	}

	return defs
}
