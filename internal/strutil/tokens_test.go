package strutil

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func asIterator(elems ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, elem := range elems {
			if !yield(elem) {
				return
			}
		}
	}
}

func TestTokens(t *testing.T) {
	t.Run("tabs", func(t *testing.T) {
		tokens := slices.Collect(Tokens("text/html\thtm html", '\t'))
		require.Equal(t, []string{"text/html", "htm html"}, tokens)
	})

	t.Run("empty pieces", func(t *testing.T) {
		tokens := slices.Collect(Tokens("\t\ttext/html\t\t\thtm  html \t", '\t'))
		require.Equal(t, []string{"text/html", "htm  html"}, tokens)
	})

	t.Run("spaces", func(t *testing.T) {
		tokens := slices.Collect(Tokens(" htm  html ", ' '))
		require.Equal(t, []string{"htm", "html"}, tokens)
	})

	t.Run("no separator", func(t *testing.T) {
		tokens := slices.Collect(Tokens("text/html", '\t'))
		require.Equal(t, []string{"text/html"}, tokens)
	})

	t.Run("nothing", func(t *testing.T) {
		require.Empty(t, slices.Collect(Tokens("", '\t')))
		require.Empty(t, slices.Collect(Tokens(" \t ", '\t')))
	})

	t.Run("early break", func(t *testing.T) {
		var first string
		for token := range Tokens("a b c", ' ') {
			first = token
			break
		}

		require.Equal(t, "a", first)
	})
}

func TestDistinct(t *testing.T) {
	got := slices.Collect(Distinct(asIterator("b", "a", "b", "c", "a")))
	require.Equal(t, []string{"b", "a", "c"}, got)
}

func TestJoin(t *testing.T) {
	str := Join(asIterator(), ", ")
	require.Empty(t, str)

	str = Join(asIterator("hello"), ", ")
	require.Equal(t, "hello", str)

	str = Join(asIterator("hello", "world", "as usual"), ", ")
	require.Equal(t, "hello, world, as usual", str)
}
