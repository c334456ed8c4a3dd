package mediatype

import (
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"github.com/tidwall/btree"

	"github.com/indigo-web/mediatype/internal/strutil"
)

// Named is anything that knows its own name, e.g. *os.File, fs.FileInfo or fs.DirEntry.
type Named interface {
	Name() string
}

// Table is a static-table Provider. It stores suffix to media type pairs as they are given,
// so no case normalization is applied neither on insertion nor on lookup.
//
// Every operation is serialized by a single mutex, therefore Table is safe for concurrent use.
type Table struct {
	mu       sync.Mutex
	entries  *btree.Map[string, MediaType]
	fallback MediaType
}

// New returns an empty table with DefaultMediaType as the default media type.
func New() *Table {
	return &Table{
		entries:  new(btree.Map[string, MediaType]),
		fallback: DefaultMediaType,
	}
}

// NewFromFile returns a table populated from the mime.types file at the path.
func NewFromFile(path string) (*Table, error) {
	t := New()
	if err := t.LoadFile(path); err != nil {
		return nil, err
	}

	return t, nil
}

// ForSuffix returns the media type mapped to the suffix. If there's none, the default media
// type is returned instead.
func (t *Table) ForSuffix(suffix string) MediaType {
	t.mu.Lock()
	defer t.mu.Unlock()

	if m, found := t.entries.Get(suffix); found {
		return m
	}

	return t.fallback
}

// Resolve returns the media type for the suffix along with whether it is explicitly mapped.
// If it isn't, the default media type is returned. Both are observed at once.
func (t *Table) Resolve(suffix string) (m MediaType, explicit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if m, found := t.entries.Get(suffix); found {
		return m, true
	}

	return t.fallback, false
}

// ForPath returns the media type for the path's suffix, which is everything after the last
// dot of the final path segment.
func (t *Table) ForPath(path string) MediaType {
	return t.ForSuffix(strutil.Suffix(path))
}

// ForFile returns the media type for the file, resolved by its name.
func (t *Table) ForFile(file Named) MediaType {
	return t.ForPath(file.Name())
}

// Find returns the media type explicitly mapped to the suffix. Unlike ForSuffix, it never
// falls back to the default media type and reports whether the mapping exists instead.
func (t *Table) Find(suffix string) (m MediaType, found bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entries.Get(suffix)
}

// Add maps the suffix to the media type, overriding the previous mapping if any.
func (t *Table) Add(suffix string, m MediaType) {
	t.mu.Lock()
	t.entries.Set(suffix, m)
	t.mu.Unlock()
}

// AddFrom merges everything parsed from the mime.types stream into the table. Entries are
// inserted as soon as they are parsed, so in case of read error those already read are kept.
func (t *Table) AddFrom(r io.Reader) error {
	return Walk(r, t.Add)
}

// Load replaces the table content by what is parsed from the mime.types stream. It is
// equivalent to calling Clear and AddFrom subsequently. The default media type is left
// untouched.
func (t *Table) Load(r io.Reader) error {
	t.Clear()
	return t.AddFrom(r)
}

// LoadFile does the same as Load, but reads the mime.types file at the path. If the file
// can't be opened, the table stays unmodified.
func (t *Table) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mime.types: %w", err)
	}

	defer file.Close()

	return t.Load(file)
}

// Replace swaps the whole table content for the entries at once, so concurrent lookups
// observe either the old or the new content, but never a mix of them. The default media
// type is left untouched.
func (t *Table) Replace(entries map[string]MediaType) {
	fresh := new(btree.Map[string, MediaType])
	for suffix, m := range entries {
		fresh.Set(suffix, m)
	}

	t.mu.Lock()
	t.entries = fresh
	t.mu.Unlock()
}

// Clear removes all the mappings. The default media type is left untouched.
func (t *Table) Clear() {
	t.mu.Lock()
	t.entries = new(btree.Map[string, MediaType])
	t.mu.Unlock()
}

// Default returns the media type used for suffixes without a mapping.
func (t *Table) Default() MediaType {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fallback
}

// SetDefault sets the media type used for suffixes without a mapping.
func (t *Table) SetDefault(m MediaType) {
	t.mu.Lock()
	t.fallback = m
	t.mu.Unlock()
}

// Len returns the number of stored mappings.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entries.Len()
}

// Iter returns an iterator over the mappings, ordered by suffix. It walks a snapshot taken
// at the moment of the call, so the table may be freely modified meanwhile, including from
// inside the loop.
func (t *Table) Iter() iter.Seq2[string, MediaType] {
	t.mu.Lock()
	snapshot := t.entries.Copy()
	t.mu.Unlock()

	return func(yield func(string, MediaType) bool) {
		snapshot.Scan(yield)
	}
}
