package loader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
)

// interestingPath reports whether key order at this document path affects
// the output: the top-level definition map and every properties object.
func interestingPath(path string) bool {
	return path == "definitions" || strings.HasSuffix(path, "/properties")
}

// extractKeyOrderJSON walks the raw JSON token stream and records key order
// for every object of interest. The parsed schema model cannot supply this;
// its objects are Go maps.
func extractKeyOrderJSON(data []byte) (domain.KeyOrder, error) {
	order := make(domain.KeyOrder)
	dec := json.NewDecoder(bytes.NewReader(data))

	var walk func(path string) error
	walk = func(path string) error {
		token, err := dec.Token()
		if err != nil {
			return err
		}

		delim, ok := token.(json.Delim)
		if !ok {
			return nil
		}

		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyToken.(string)
				if !ok {
					return fmt.Errorf("unexpected object key token %v", keyToken)
				}
				keys = append(keys, key)

				child := key
				if path != "" {
					child = path + "/" + key
				}
				if err := walk(child); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			if interestingPath(path) {
				order[path] = keys
			}
		case '[':
			idx := 0
			for dec.More() {
				if err := walk(path + "/" + strconv.Itoa(idx)); err != nil {
					return err
				}
				idx++
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		}

		return nil
	}

	return order, walk("")
}

// extractKeyOrderYAML walks the YAML node tree, which preserves mapping
// order, and records the same paths as the JSON walk.
func extractKeyOrderYAML(data []byte) (domain.KeyOrder, error) {
	var root yamlv3.Node
	if err := yamlv3.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	order := make(domain.KeyOrder)

	var walk func(node *yamlv3.Node, path string)
	walk = func(node *yamlv3.Node, path string) {
		switch node.Kind {
		case yamlv3.DocumentNode:
			for _, child := range node.Content {
				walk(child, path)
			}
		case yamlv3.MappingNode:
			var keys []string
			for i := 0; i+1 < len(node.Content); i += 2 {
				key := node.Content[i].Value
				keys = append(keys, key)

				child := key
				if path != "" {
					child = path + "/" + key
				}
				walk(node.Content[i+1], child)
			}
			if interestingPath(path) {
				order[path] = keys
			}
		case yamlv3.SequenceNode:
			for i, child := range node.Content {
				walk(child, path+"/"+strconv.Itoa(i))
			}
		}
	}
	walk(&root, "")

	return order, nil
}
