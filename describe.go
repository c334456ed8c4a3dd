package mediatype

import "sync"

// Describer produces a human-readable description of a file. If examineCompressed is set,
// it may look into compressed files in order to refine the description.
type Describer interface {
	Describe(path string, examineCompressed bool) (string, error)
}

// DescriberFunc adapts an ordinary function to the Describer interface.
type DescriberFunc func(path string, examineCompressed bool) (string, error)

// Describe calls d(path, examineCompressed).
func (d DescriberFunc) Describe(path string, examineCompressed bool) (string, error) {
	return d(path, examineCompressed)
}

var (
	describerMu sync.RWMutex
	describer   Describer
)

// SetDescriber installs the describer used by Description. Passing nil restores the default
// one, which describes a file merely by its media type.
func SetDescriber(d Describer) {
	describerMu.Lock()
	describer = d
	describerMu.Unlock()
}

// Description describes the file at the path using the installed describer.
func Description(path string, examineCompressed bool) (string, error) {
	describerMu.RLock()
	d := describer
	describerMu.RUnlock()

	if d == nil {
		return ForPath(path), nil
	}

	return d.Describe(path, examineCompressed)
}
