// Package gen is the generation entry point: it loads documents, runs the
// synthesis engine per document and writes the declaration manifests an
// external syntax emitter consumes.
package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/loader"
	"github.com/Nikcio-labs/openapi-code-generator/internal/naming"
	"github.com/Nikcio-labs/openapi-code-generator/internal/synth"
)

// Version of the generator.
const Version = "v1.0.0"

type manifestWriter func(*Gen, *Config, *Manifest, string) error

// Gen presents the generate tool.
type Gen struct {
	json       func(data any) ([]byte, error)
	jsonIndent func(data any) ([]byte, error)
	jsonToYAML func(data []byte) ([]byte, error)

	outputTypeMap map[string]manifestWriter
	log           zerolog.Logger
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data any) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		log:        zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	gen.outputTypeMap = map[string]manifestWriter{
		"json": (*Gen).writeJSONManifest,
		"yaml": (*Gen).writeYAMLManifest,
		"yml":  (*Gen).writeYAMLManifest,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	// InputFiles are the schema documents to generate from, comma separated.
	// Documents share no state and generate in parallel.
	InputFiles string

	// OutputDir represents the output directory for all generated manifests.
	OutputDir string

	// OutputTypes define the manifest formats to write (json, yaml).
	OutputTypes []string

	// Casing is the canonical-name casing style: pascalcase or camelcase.
	Casing string

	// MutableCollections selects mutable collection and map types.
	MutableCollections bool

	// DefaultAsNonNullable treats optional members carrying a default as
	// non-nullable.
	DefaultAsNonNullable bool

	// PropagateDefaults emits default expressions into member initializers.
	PropagateDefaults bool

	// Namespace is recorded in the manifest for the syntax emitter.
	Namespace string

	// MaxDepth bounds composition resolution.
	MaxDepth int

	// Quiet silences the logger.
	Quiet bool

	// Debug enables debug logging and a dump of the synthesized set.
	Debug bool
}

// Build generates declaration manifests for all configured input documents.
func (g *Gen) Build(config *Config) error {
	switch config.Casing {
	case "", string(domain.PascalCase), string(domain.CamelCase):
	default:
		return fmt.Errorf("not supported %s casing", config.Casing)
	}

	if config.Quiet {
		g.log = zerolog.New(io.Discard)
	} else if config.Debug {
		g.log = g.log.Level(zerolog.DebugLevel)
	} else {
		g.log = g.log.Level(zerolog.InfoLevel)
	}

	inputs := splitInputs(config.InputFiles)
	if len(inputs) == 0 {
		return fmt.Errorf("no input documents specified")
	}

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	opts := g.options(config)

	// Independent documents share no state; runs are parallel by design.
	var group errgroup.Group
	for _, input := range inputs {
		input := input
		group.Go(func() error {
			return g.generate(config, opts, input)
		})
	}

	return group.Wait()
}

func (g *Gen) options(config *Config) domain.Options {
	opts := domain.DefaultOptions()
	if config.Casing == string(domain.CamelCase) {
		opts.Casing = domain.CamelCase
	}
	opts.MutableCollections = config.MutableCollections
	opts.DefaultAsNonNullable = config.DefaultAsNonNullable
	opts.PropagateDefaults = config.PropagateDefaults
	opts.Namespace = config.Namespace
	if config.MaxDepth > 0 {
		opts.MaxDepth = config.MaxDepth
	}
	return opts
}

func (g *Gen) generate(config *Config, opts domain.Options, input string) error {
	log := g.log.With().Str("document", input).Logger()
	log.Debug().Msg("loading schema document")

	doc, err := loader.Load(input)
	if err != nil {
		return err
	}

	service := synth.New(opts, naming.NewRegistry(opts), log)
	set, diags, err := service.Synthesize(doc.Definitions, doc.Order)
	if err != nil {
		return fmt.Errorf("generate %s: %w", input, err)
	}

	for _, warning := range diags.Warnings {
		log.Warn().Str("code", warning.Code).Msg(warning.String())
	}
	log.Info().
		Int("declarations", set.Len()).
		Int("warnings", len(diags.Warnings)).
		Msg("generated declaration set")

	if config.Debug {
		log.Debug().Msg(spew.Sdump(set.Declarations()))
	}

	manifest := NewManifest(opts.Namespace, input, set, diags)

	base := manifestBase(input)
	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		writer, ok := g.outputTypeMap[outputType]
		if !ok {
			log.Warn().Msgf("output type '%s' not supported", outputType)
			continue
		}
		if err := writer(g, config, manifest, base); err != nil {
			return err
		}
	}

	return nil
}

func (g *Gen) writeJSONManifest(config *Config, manifest *Manifest, base string) error {
	b, err := g.jsonIndent(manifest)
	if err != nil {
		return err
	}

	target := filepath.Join(config.OutputDir, base+".declarations.json")
	if err := g.writeFile(b, target); err != nil {
		return err
	}

	g.log.Debug().Msgf("create declarations manifest at %+v", target)
	return nil
}

func (g *Gen) writeYAMLManifest(config *Config, manifest *Manifest, base string) error {
	b, err := g.json(manifest)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot convert json to yaml error: %s", err)
	}

	target := filepath.Join(config.OutputDir, base+".declarations.yaml")
	if err := g.writeFile(y, target); err != nil {
		return err
	}

	g.log.Debug().Msgf("create declarations manifest at %+v", target)
	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// manifestBase derives the manifest file base name from the input path.
func manifestBase(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// splitInputs converts the comma-separated input string to a slice.
func splitInputs(inputs string) []string {
	var result []string
	for _, input := range strings.Split(inputs, ",") {
		input = strings.TrimSpace(input)
		if input != "" {
			result = append(result, input)
		}
	}
	return result
}
