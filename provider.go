package mediatype

import (
	"sync"
)

// Provider resolves media types. Table is the static-table implementation, however anything
// else, e.g. a network-backed lookup, may be installed via Use.
type Provider interface {
	// ForSuffix returns the media type for the suffix, or the default one if the suffix is
	// unknown.
	ForSuffix(suffix string) MediaType
	// ForPath returns the media type for the suffix of the path.
	ForPath(path string) MediaType
	// Default returns the media type used for unknown suffixes.
	Default() MediaType
	// SetDefault sets the media type used for unknown suffixes.
	SetDefault(m MediaType)
}

var _ Provider = new(Table)

var (
	sharedOnce  sync.Once
	sharedTable *Table

	providerMu sync.RWMutex
	provider   Provider
)

// Shared returns the process-wide table, populated with the compiled-in media types. It is
// constructed once upon the first call and lives until the process exits; there's nothing to
// release. Every caller observes the same mutable instance, so modifications are visible
// process-wide.
func Shared() *Table {
	sharedOnce.Do(func() {
		sharedTable = NewBuiltin()
	})

	return sharedTable
}

// Use installs the provider consulted by the package-level lookup functions. Passing nil
// restores the Shared table.
func Use(p Provider) {
	providerMu.Lock()
	provider = p
	providerMu.Unlock()
}

// Current returns the provider consulted by the package-level lookup functions. Unless
// another one is installed via Use, it is the Shared table.
func Current() Provider {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()

	if p == nil {
		return Shared()
	}

	return p
}

// ForSuffix returns the media type for the suffix using the current provider.
func ForSuffix(suffix string) MediaType {
	return Current().ForSuffix(suffix)
}

// ForPath returns the media type for the path using the current provider.
func ForPath(path string) MediaType {
	return Current().ForPath(path)
}

// ForFile returns the media type for the file using the current provider.
func ForFile(file Named) MediaType {
	return Current().ForPath(file.Name())
}
