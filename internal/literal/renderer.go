// Package literal converts schema default values into target-language
// literal or constructor expressions. Rendering is independent of identifier
// naming; values whose shape cannot be represented as a constant expression
// yield Absent rather than a lossy encoding.
package literal

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/model"
)

// Renderer renders defaults for one generation run.
type Renderer struct {
	opts domain.Options
}

// New creates a renderer over the run options.
func New(opts domain.Options) *Renderer {
	return &Renderer{opts: opts}
}

// Placeholder is the expression used instead of a default when default
// propagation is disabled: it suppresses non-null-assumption warnings
// without asserting a real value.
func (r *Renderer) Placeholder() string {
	return "default!"
}

// Render converts a default value into an expression for the given resolved
// type. The second return is false when no default should be emitted.
func (r *Renderer) Render(value any, t model.TypeRef) (string, bool) {
	if value == nil {
		if t.IsNullable() {
			return "null", true
		}
		return "", false
	}

	switch inner := t.Unwrap(); inner.Kind {
	case model.RefPrimitive:
		return r.renderPrimitive(value, inner.Primitive)
	case model.RefCollection:
		if items, ok := value.([]any); ok && len(items) == 0 {
			return "new()", true
		}
		return "", false
	default:
		// Maps, named aggregates and arbitrary-object shapes have no
		// constant expression form.
		return "", false
	}
}

// RenderEnum renders an enumeration default as a qualified member reference,
// matching the raw default against the enumeration's original literal values.
func (r *Renderer) RenderEnum(value any, enum *model.Enumeration) (string, bool) {
	for _, member := range enum.Members {
		if literalEqual(value, member.Value) {
			return enum.Name + "." + member.Name, true
		}
	}
	return "", false
}

func (r *Renderer) renderPrimitive(value any, kind model.PrimitiveKind) (string, bool) {
	switch kind {
	case model.PrimitiveBool:
		b, ok := value.(bool)
		if !ok {
			return "", false
		}
		return strconv.FormatBool(b), true

	case model.PrimitiveInt, model.PrimitiveShort, model.PrimitiveByte:
		n, ok := asInteger(value)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(n, 10), true

	case model.PrimitiveLong:
		n, ok := asInteger(value)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(n, 10) + "L", true

	case model.PrimitiveFloat:
		f, ok := asFloat(value)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'g', -1, 32) + "f", true

	case model.PrimitiveDouble:
		f, ok := asFloat(value)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'g', -1, 64) + "d", true

	case model.PrimitiveDecimal:
		return renderDecimal(value)

	case model.PrimitiveString:
		s, ok := value.(string)
		if !ok {
			return "", false
		}
		return quote(s), true

	case model.PrimitiveDate:
		return parseExpr("DateOnly.Parse", value)
	case model.PrimitiveDateTime:
		return parseExpr("DateTimeOffset.Parse", value)
	case model.PrimitiveTime:
		return parseExpr("TimeOnly.Parse", value)
	case model.PrimitiveDuration:
		return parseExpr("TimeSpan.Parse", value)
	case model.PrimitiveUUID:
		return parseExpr("Guid.Parse", value)
	case model.PrimitiveURI:
		s, ok := value.(string)
		if !ok {
			return "", false
		}
		return "new Uri(" + quote(s) + ")", true

	default:
		return "", false
	}
}

// parseExpr renders a formatted-string default as a parse expression over
// the raw string.
func parseExpr(fn string, value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return fn + "(" + quote(s) + ")", true
}

func renderDecimal(value any) (string, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v).String() + "m", true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return "", false
		}
		return d.String() + "m", true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return "", false
		}
		return d.String() + "m", true
	default:
		return "", false
	}
}

// quote escapes a string literal. Go's escaping rules for the printable
// subset coincide with the target language's.
func quote(s string) string {
	return strconv.Quote(s)
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// literalEqual compares a raw default against an original enum literal:
// case-insensitive for strings, numeric equality for numbers.
func literalEqual(a, b any) bool {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && strings.EqualFold(as, bs)
	}

	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}
