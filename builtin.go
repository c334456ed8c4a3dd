package mediatype

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed mime.types
var builtinTypes string

// NewBuiltin returns a table populated with the compiled-in media types.
func NewBuiltin() *Table {
	return newBuiltin(builtinTypes)
}

func newBuiltin(data string) *Table {
	t := New()
	if err := t.AddFrom(strings.NewReader(data)); err != nil {
		panic(fmt.Errorf("compiled-in media types: %w", err))
	}

	return t
}
