package strutil

import (
	"iter"
	"strings"
)

// Tokens walks over pieces of str separated by sep. Every piece is stripped of whitespaces,
// and empty pieces are skipped.
func Tokens(str string, sep byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(str) > 0 {
			var piece string

			if i := strings.IndexByte(str, sep); i == -1 {
				piece, str = str, ""
			} else {
				piece, str = str[:i], str[i+1:]
			}

			if piece = StripWS(piece); len(piece) == 0 {
				continue
			}

			if !yield(piece) {
				return
			}
		}
	}
}

// Distinct filters out repeating elements, keeping the order they are first met in.
func Distinct(elems iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})

		for elem := range elems {
			if _, found := seen[elem]; found {
				continue
			}

			seen[elem] = struct{}{}
			if !yield(elem) {
				return
			}
		}
	}
}

// Join works in the same way as the strings.Join does, except that it operates an iterator
// as opposed to greedy string slice.
func Join(elems iter.Seq[string], sep string) string {
	var b strings.Builder

	for elem := range elems {
		if b.Len() > 0 {
			b.WriteString(sep)
		}

		b.WriteString(elem)
	}

	return b.String()
}
