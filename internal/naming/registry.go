package naming

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
)

// maxNumericSuffix bounds the numeric fallback strategy. Exhausting it means
// ten thousand collisions on one canonical name; treat that as fatal rather
// than risk silent duplication.
const maxNumericSuffix = 10000

// Registry allocates canonical identifiers for one generation run. It tracks
// every name handed out so collision resolution can test candidates against
// "not already used". Create one per run; the zero value is not usable.
type Registry struct {
	casing   domain.CasingStyle
	reserved map[string]struct{}

	// used maps every allocated identifier to the raw names that produced it,
	// in allocation order. Only membership affects output; the raw list is
	// kept for collision reporting.
	used  map[string][]string
	order []string
}

// NewRegistry creates a registry for the given options.
func NewRegistry(opts domain.Options) *Registry {
	reserved := make(map[string]struct{}, len(opts.ReservedWords))
	for _, word := range opts.ReservedWords {
		reserved[word] = struct{}{}
	}

	return &Registry{
		casing:   opts.Casing,
		reserved: reserved,
		used:     make(map[string][]string),
	}
}

// Canonicalize converts a raw schema or property name into a target-language
// identifier: case-folding, separator-aware word splitting, strip of
// characters outside the identifier alphabet, leading-digit marker and
// reserved-word escape. Pure and deterministic; canonicalizing an already
// canonical identifier returns it unchanged.
func (r *Registry) Canonicalize(raw string) string {
	words := splitWords(raw)

	var name string
	if r.casing == domain.CamelCase {
		name = joinCamel(words)
	} else {
		name = joinPascal(words)
	}

	if name == "" {
		// All-symbol names carry no identifier material; differentiation
		// strategies expand the symbols into words later.
		name = "Empty"
	}

	if startsWithDigit(name) {
		name = "_" + name
	}

	if _, ok := r.reserved[name]; ok {
		name = "@" + name
	}

	return name
}

// Used reports whether an identifier has already been allocated or reserved.
func (r *Registry) Used(name string) bool {
	_, ok := r.used[name]
	return ok
}

// Reserve marks an identifier as taken without binding a raw name. Intended
// for pre-seeding inherited member names and for tests.
func (r *Registry) Reserve(name string) {
	r.take(name, "")
}

// Origins returns the raw names that produced an allocated identifier.
func (r *Registry) Origins(name string) []string {
	return r.used[name]
}

func (r *Registry) take(name, raw string) {
	if _, ok := r.used[name]; !ok {
		r.order = append(r.order, name)
		r.used[name] = []string{}
	}
	if raw != "" {
		r.used[name] = append(r.used[name], raw)
	}
}

// Claim allocates an identifier for a single raw name: the canonical form
// when free, otherwise the first non-colliding differentiated candidate.
func (r *Registry) Claim(raw string) (string, error) {
	canonical := r.Canonicalize(raw)
	if !r.Used(canonical) {
		r.take(canonical, raw)
		return canonical, nil
	}

	name, err := r.differentiate(raw, canonical)
	if err != nil {
		return "", err
	}
	r.take(name, raw)
	return name, nil
}

// Resolution is the outcome of resolving one collision group.
type Resolution struct {
	// Winner is the raw name that keeps the canonical identifier.
	Winner string
	// Names maps every raw name in the group to its assigned identifier.
	Names map[string]string
}

// ResolveGroup resolves a set of raw names whose canonical forms collide.
// The raw name with the lowest naturalness score keeps the canonical
// identifier (ties broken by input order, first wins); every other member
// receives a differentiated name. Group order must be document order for
// reproducible output.
func (r *Registry) ResolveGroup(raws []string) (Resolution, error) {
	if len(raws) == 0 {
		return Resolution{}, fmt.Errorf("naming: empty collision group")
	}

	canonical := r.Canonicalize(raws[0])

	winner := raws[0]
	best := naturalness(raws[0], canonical)
	for _, raw := range raws[1:] {
		if score := naturalness(raw, canonical); score < best {
			winner, best = raw, score
		}
	}

	res := Resolution{
		Winner: winner,
		Names:  make(map[string]string, len(raws)),
	}

	if r.Used(canonical) {
		// The canonical identifier was taken by an earlier allocation; even
		// the winner has to differentiate.
		name, err := r.differentiate(winner, canonical)
		if err != nil {
			return Resolution{}, err
		}
		r.take(name, winner)
		res.Names[winner] = name
	} else {
		r.take(canonical, winner)
		res.Names[winner] = canonical
	}

	for _, raw := range raws {
		if raw == winner {
			continue
		}
		name, err := r.differentiate(raw, canonical)
		if err != nil {
			return Resolution{}, err
		}
		r.take(name, raw)
		res.Names[raw] = name
	}

	return res, nil
}

// naturalness scores how close a raw name already is to its canonical form:
// 0 exact, 10+k with k special characters, 1 for a pure case change
// (all-lower or all-upper raw), 2 for any other symbol-free transform such as
// camelCase to PascalCase.
func naturalness(raw, canonical string) int {
	if raw == canonical {
		return 0
	}
	if k := countSpecials(raw); k > 0 {
		return 10 + k
	}
	if strings.EqualFold(raw, canonical) &&
		(raw == strings.ToLower(raw) || raw == strings.ToUpper(raw)) {
		return 1
	}
	return 2
}

// Naturalness scores how close a raw name is to its own canonical form;
// lower is more natural. Callers claiming a collision group member by member
// claim in this order so the raw name closest to the identifier keeps it.
func (r *Registry) Naturalness(raw string) int {
	return naturalness(raw, r.Canonicalize(raw))
}

// differentiate computes an alternate identifier for a raw name whose
// canonical form is taken. Strategies in priority order: expand the leading
// symbol run into words, expand all symbols, append the detected naming-style
// suffix, append the smallest free integer.
func (r *Registry) differentiate(raw, canonical string) (string, error) {
	candidates := []string{
		r.Canonicalize(expandSymbols(raw, true)),
		r.Canonicalize(expandSymbols(raw, false)),
	}
	if style := DetectStyle(raw); style != "" {
		candidates = append(candidates, canonical+style)
	}

	for _, candidate := range candidates {
		if candidate != canonical && !r.Used(candidate) {
			return candidate, nil
		}
	}

	for i := 2; i < maxNumericSuffix; i++ {
		candidate := canonical + strconv.Itoa(i)
		if candidate != canonical && !r.Used(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("naming: exhausted all candidates for %q (canonical %q)", raw, canonical)
}

// expandSymbols rewrites non-alphanumeric runes into their descriptive words.
// With leadingOnly set, only the leading run of symbols is expanded and the
// remainder of the name is kept verbatim. Unknown symbols contribute a plain
// word boundary.
func expandSymbols(raw string, leadingOnly bool) string {
	var sb strings.Builder
	runes := []rune(raw)

	i := 0
	for i < len(runes) {
		r := runes[i]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if leadingOnly {
				sb.WriteString(string(runes[i:]))
				return sb.String()
			}
			sb.WriteRune(r)
			i++
			continue
		}

		if word, ok := symbolWords[r]; ok {
			sb.WriteRune(' ')
			sb.WriteString(word)
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(' ')
		}
		i++
	}

	return sb.String()
}
