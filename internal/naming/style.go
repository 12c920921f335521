package naming

import "unicode"

// Naming conventions recognized by DetectStyle. The names double as the
// suffix appended by the style-suffix differentiation strategy.
const (
	SnakeCase   = "SnakeCase"
	KebabCase   = "KebabCase"
	DotNotation = "DotNotation"
	CamelCase   = "CamelCase"
	PascalCase  = "PascalCase"
	Lowercase   = "Lowercase"
	Uppercase   = "Uppercase"
)

// symbolWords maps separator runes to the descriptive word used when a
// differentiation strategy expands them. Runes absent from the table
// contribute a plain word boundary.
var symbolWords = map[rune]string{
	'_':  "Underscore",
	'-':  "Dash",
	'.':  "Dot",
	'@':  "At",
	'#':  "Hash",
	'$':  "Dollar",
	'%':  "Percent",
	'&':  "And",
	'+':  "Plus",
	'!':  "Bang",
	'~':  "Tilde",
	'*':  "Star",
	'/':  "Slash",
	'\\': "Backslash",
	':':  "Colon",
	';':  "Semicolon",
	'?':  "Question",
	'=':  "Equals",
	'\'': "Quote",
	'"':  "Quote",
	',':  "Comma",
}

// DetectStyle classifies the naming convention of a raw name. Symbol-based
// conventions are checked first; a name matching none returns the empty
// string and the style-suffix strategy is skipped for it.
func DetectStyle(raw string) string {
	if raw == "" {
		return ""
	}

	var (
		hasUnderscore, hasDash, hasDot bool
		hasUpper, hasLower, hasOther   bool
		firstLetter                    rune
		sawLetter                      bool
	)

	for _, r := range raw {
		switch {
		case r == '_':
			hasUnderscore = true
		case r == '-':
			hasDash = true
		case r == '.':
			hasDot = true
		case unicode.IsUpper(r):
			hasUpper = true
			if !sawLetter {
				firstLetter, sawLetter = r, true
			}
		case unicode.IsLower(r):
			hasLower = true
			if !sawLetter {
				firstLetter, sawLetter = r, true
			}
		case unicode.IsDigit(r):
			// digits are style-neutral
		default:
			hasOther = true
		}
	}

	switch {
	case hasOther:
		return ""
	case hasUnderscore:
		return SnakeCase
	case hasDash:
		return KebabCase
	case hasDot:
		return DotNotation
	case !sawLetter:
		return ""
	case hasUpper && hasLower && unicode.IsLower(firstLetter):
		return CamelCase
	case hasUpper && hasLower:
		return PascalCase
	case hasLower:
		return Lowercase
	default:
		return Uppercase
	}
}
