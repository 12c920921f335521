// Package synth builds the final declaration set from the resolved schema
// graph. It runs two passes over the full definition map: classification and
// naming first, assembly second, so every name goes through the registry
// exactly once in document order and the output is reproducible run to run.
package synth

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/rs/zerolog"

	"github.com/Nikcio-labs/openapi-code-generator/internal/diagnostic"
	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/literal"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
	"github.com/Nikcio-labs/openapi-code-generator/internal/naming"
	"github.com/Nikcio-labs/openapi-code-generator/internal/resolver"
)

// Service synthesizes declarations for one generation run. All mutable state
// is scoped to the service; independent services may run in parallel.
type Service struct {
	opts     domain.Options
	registry *naming.Registry
	renderer *literal.Renderer
	resolver *resolver.Resolver
	log      zerolog.Logger

	defs  *domain.OrderedDefinitions
	order domain.KeyOrder
	diags *diagnostic.Diagnostics

	// class and declName are the pass-1 outputs: classification and canonical
	// declaration name per raw definition name.
	class    map[string]classification
	declName map[string]string

	// enumBySig maps an inline-enumeration signature to its shared
	// declaration; enumByName indexes all enumerations for default matching.
	enumBySig  map[string]*model.Enumeration
	enumByName map[string]*model.Enumeration

	// rawBase records the raw base definition of each aggregate so the
	// ancestor chain can be walked for inherited-member de-duplication.
	rawBase map[string]string

	// built holds assembled top-level declarations; inlineOf holds the
	// declarations synthesized while assembling a given owner, in creation
	// order. The emission pass interleaves them in document order.
	built    map[string]model.Declaration
	inlineOf map[string][]model.Declaration

	// path is the explicit resolution stack used for composition-cycle
	// detection; owners tracks which top-level definition inline
	// declarations belong to.
	path   []string
	owners []string
}

// New creates a synthesizer over a fresh registry for one run.
func New(opts domain.Options, registry *naming.Registry, log zerolog.Logger) *Service {
	return &Service{
		opts:     opts,
		registry: registry,
		renderer: literal.New(opts),
		log:      log,
	}
}

// Synthesize consumes the ordered definition map and produces the full
// declaration set plus the diagnostics collected along the way. Only name
// exhaustion aborts the run; every other finding degrades one declaration
// and generation continues.
func (s *Service) Synthesize(defs *domain.OrderedDefinitions, order domain.KeyOrder) (*model.Set, *diagnostic.Diagnostics, error) {
	s.defs = defs
	s.order = order
	s.diags = &diagnostic.Diagnostics{}
	s.class = make(map[string]classification)
	s.declName = make(map[string]string)
	s.enumBySig = make(map[string]*model.Enumeration)
	s.enumByName = make(map[string]*model.Enumeration)
	s.built = make(map[string]model.Declaration)
	s.inlineOf = make(map[string][]model.Declaration)
	s.rawBase = make(map[string]string)
	s.resolver = resolver.New(s.opts, nameTable{s})

	if err := s.classifyAndName(); err != nil {
		s.diags.AddError(diagnostic.CodeNameExhaustion, err.Error(), "", "")
		return nil, s.diags, err
	}

	if err := s.assemble(); err != nil {
		s.diags.AddError(diagnostic.CodeNameExhaustion, err.Error(), "", "")
		return nil, s.diags, err
	}

	set := model.NewSet()
	for _, raw := range s.defs.Names() {
		if decl, ok := s.built[raw]; ok {
			set.Add(decl)
		}
		for _, inline := range s.inlineOf[raw] {
			set.Add(inline)
		}
	}

	s.log.Debug().
		Int("declarations", set.Len()).
		Int("warnings", len(s.diags.Warnings)).
		Msg("synthesis complete")

	return set, s.diags, nil
}

// classifyAndName is pass 1: classify every top-level schema, allocate all
// top-level declaration names through the registry (collision groups resolved
// at first appearance), then collect and name the inline enumerations.
func (s *Service) classifyAndName() error {
	for _, raw := range s.defs.Names() {
		schema, _ := s.defs.Get(raw)
		s.class[raw] = s.classify(raw, &schema)
	}

	var (
		canonOrder []string
		groups     = make(map[string][]string)
	)
	for _, raw := range s.defs.Names() {
		canonical := s.registry.Canonicalize(raw)
		if _, ok := groups[canonical]; !ok {
			canonOrder = append(canonOrder, canonical)
		}
		groups[canonical] = append(groups[canonical], raw)
	}

	for _, canonical := range canonOrder {
		group := groups[canonical]
		if len(group) == 1 {
			name, err := s.registry.Claim(group[0])
			if err != nil {
				return err
			}
			s.declName[group[0]] = name
			continue
		}

		resolution, err := s.registry.ResolveGroup(group)
		if err != nil {
			return err
		}
		for raw, name := range resolution.Names {
			s.declName[raw] = name
		}
	}

	return s.collectInlineEnums()
}

// assemble is pass 2: build every classified declaration in document order.
// Aggregates may assemble out of order when a base is referenced before its
// own turn; the memo in built keeps each one assembled exactly once.
func (s *Service) assemble() error {
	for _, raw := range s.defs.Names() {
		if _, done := s.built[raw]; done {
			continue
		}

		schema, _ := s.defs.Get(raw)
		node := collapseDisjunction(&schema)

		var err error
		switch s.class[raw] {
		case classEnum:
			err = s.assembleEnum(raw, node)
		case classUnion:
			err = s.assembleUnion(raw, node)
		case classAlias:
			s.assembleAlias(raw, node)
		default:
			_, err = s.assembleAggregate(raw)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) assembleAlias(raw string, schema *spec.Schema) {
	s.built[raw] = &model.Alias{
		Name:        s.declName[raw],
		Description: schema.Description,
		Underlying:  s.resolver.Resolve(schema, resolver.Field{Required: true}),
	}
}

// currentOwner returns the top-level definition currently being assembled.
func (s *Service) currentOwner() string {
	if len(s.owners) == 0 {
		return ""
	}
	return s.owners[len(s.owners)-1]
}

func (s *Service) addInline(decl model.Declaration) {
	owner := s.currentOwner()
	s.inlineOf[owner] = append(s.inlineOf[owner], decl)
}

// onPath reports whether a raw definition name is already on the resolution
// path, meaning a composition cycle.
func (s *Service) onPath(raw string) bool {
	for _, entry := range s.path {
		if entry == raw {
			return true
		}
	}
	return false
}

func (s *Service) pushPath(raw string) error {
	if len(s.path) >= s.opts.MaxDepth {
		return fmt.Errorf("synth: composition depth exceeds %d at %q", s.opts.MaxDepth, raw)
	}
	s.path = append(s.path, raw)
	return nil
}

func (s *Service) popPath() {
	s.path = s.path[:len(s.path)-1]
}

// nameTable exposes the pass-1 name assignments to the resolver.
type nameTable struct {
	s *Service
}

func (t nameTable) DeclaredName(ref string) (string, bool) {
	name, ok := t.s.declName[ref]
	return name, ok
}
