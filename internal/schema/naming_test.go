package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingStrategyApply(t *testing.T) {
	tests := []struct {
		name       string
		strategy   NamingStrategy
		identifier string
		want       string
	}{
		{"raw keeps identifier", NamingRaw, "AuthorName", "AuthorName"},
		{"kebab", NamingKebab, "AuthorName", "author-name"},
		{"lower", NamingLower, "AuthorName", "authorname"},
		{"upper", NamingUpper, "AuthorName", "AUTHORNAME"},
		{"snake lower", NamingSnakeLower, "AuthorName", "author_name"},
		{"snake upper", NamingSnakeUpper, "AuthorName", "AUTHOR_NAME"},
		{"snake handles acronyms", NamingSnakeLower, "HTTPServer", "http_server"},
		{"snake single word", NamingSnakeLower, "Author", "author"},
		{"snake already lower", NamingSnakeLower, "id", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.Apply(tt.identifier))
		})
	}
}

func TestParseNamingStrategy(t *testing.T) {
	t.Run("empty name selects the default", func(t *testing.T) {
		s, err := ParseNamingStrategy("")
		require.NoError(t, err)
		assert.Equal(t, NamingSnakeLower, s)
	})

	t.Run("known names", func(t *testing.T) {
		for _, s := range []NamingStrategy{
			NamingRaw, NamingKebab, NamingLower, NamingUpper, NamingSnakeLower, NamingSnakeUpper,
		} {
			parsed, err := ParseNamingStrategy(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := ParseNamingStrategy("CAMEL_CASE")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedNamingStrategy)
	})
}
