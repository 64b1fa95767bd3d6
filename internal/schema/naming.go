package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// NamingStrategy is a pure function from a type or field identifier to a
// table or column name.
type NamingStrategy int

const (
	// NamingRaw keeps the identifier unchanged
	NamingRaw NamingStrategy = iota
	// NamingKebab separates words with dashes, lower case
	NamingKebab
	// NamingLower lower-cases the identifier
	NamingLower
	// NamingUpper upper-cases the identifier
	NamingUpper
	// NamingSnakeLower separates words with underscores, lower case (the default)
	NamingSnakeLower
	// NamingSnakeUpper separates words with underscores, upper case
	NamingSnakeUpper
)

// DefaultNaming is the strategy applied when no override is declared.
const DefaultNaming = NamingSnakeLower

// String returns the declared name of the strategy
func (s NamingStrategy) String() string {
	switch s {
	case NamingRaw:
		return "RAW"
	case NamingKebab:
		return "KEBAB_CASE"
	case NamingLower:
		return "LOWER_CASE"
	case NamingUpper:
		return "UPPER_CASE"
	case NamingSnakeLower:
		return "UNDERSCORE_SEPARATED_LOWER_CASE"
	case NamingSnakeUpper:
		return "UNDERSCORE_SEPARATED_UPPER_CASE"
	default:
		return "unknown"
	}
}

// ParseNamingStrategy converts a declared strategy name to a NamingStrategy.
// An empty name selects the default.
func ParseNamingStrategy(name string) (NamingStrategy, error) {
	switch name {
	case "":
		return DefaultNaming, nil
	case "RAW":
		return NamingRaw, nil
	case "KEBAB_CASE":
		return NamingKebab, nil
	case "LOWER_CASE":
		return NamingLower, nil
	case "UPPER_CASE":
		return NamingUpper, nil
	case "UNDERSCORE_SEPARATED_LOWER_CASE":
		return NamingSnakeLower, nil
	case "UNDERSCORE_SEPARATED_UPPER_CASE":
		return NamingSnakeUpper, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedNamingStrategy, name)
	}
}

// Apply derives a table or column name from an identifier
func (s NamingStrategy) Apply(identifier string) string {
	switch s {
	case NamingRaw:
		return identifier
	case NamingKebab:
		return separateWords(identifier, '-')
	case NamingLower:
		return strings.ToLower(identifier)
	case NamingUpper:
		return strings.ToUpper(identifier)
	case NamingSnakeUpper:
		return strings.ToUpper(separateWords(identifier, '_'))
	default:
		return separateWords(identifier, '_')
	}
}

// separateWords converts CamelCase to lower case words joined by sep.
// Handles acronyms properly (HTTPServer -> http_server).
func separateWords(s string, sep rune) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) {
					result.WriteRune(sep)
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune(sep)
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
