// Package describe provides a mediatype.Describer able to look inside compressed files.
package describe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/internal/strutil"
)

var _ mediatype.Describer = new(Compressed)

// Compressed describes files by their media type. When asked to examine compressed files, it
// additionally reports the media types of what is inside gzip, zip and zstd files. Inner
// media types are resolved by names only, contents are never sniffed.
type Compressed struct {
	provider mediatype.Provider
}

// New returns a describer resolving media types via the provider. If nil is passed, the
// current package-level provider is consulted on every call.
func New(provider mediatype.Provider) *Compressed {
	return &Compressed{provider: provider}
}

func (c *Compressed) Describe(path string, examineCompressed bool) (string, error) {
	outer := c.forPath(path)
	if !examineCompressed {
		return outer, nil
	}

	var (
		inner string
		err   error
	)

	switch strings.ToLower(strutil.Suffix(path)) {
	case "gz":
		inner, err = c.gzip(path, strutil.TrimSuffix(path))
	case "tgz":
		inner, err = c.gzip(path, strutil.TrimSuffix(path)+".tar")
	case "zip":
		inner, err = c.zip(path)
	case "zst":
		inner, err = c.zstd(path)
	default:
		return outer, nil
	}

	if err != nil {
		return "", err
	}

	return outer + " (" + inner + ")", nil
}

func (c *Compressed) forPath(path string) mediatype.MediaType {
	if c.provider == nil {
		return mediatype.ForPath(path)
	}

	return c.provider.ForPath(path)
}

// gzip reports the media type of the original file name, stored in the gzip header. If it
// isn't stored, the fallback name is used instead.
func (c *Compressed) gzip(path, fallback string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}

	defer file.Close()

	reader, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("%s: gzip: %w", path, err)
	}

	defer reader.Close()

	name := reader.Header.Name
	if len(name) == 0 {
		name = fallback
	}

	return c.forPath(name), nil
}

func (c *Compressed) zip(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%s: zip: %w", path, err)
	}

	defer archive.Close()

	var entries int
	types := func(yield func(string) bool) {
		for _, file := range archive.File {
			if strings.HasSuffix(file.Name, "/") {
				continue
			}

			entries++
			if !yield(c.forPath(file.Name)) {
				return
			}
		}
	}

	joined := strutil.Join(strutil.Distinct(types), ", ")
	switch entries {
	case 0:
		return "empty", nil
	case 1:
		return "1 entry: " + joined, nil
	default:
		return fmt.Sprintf("%d entries: %s", entries, joined), nil
	}
}

// zstd makes sure the file starts with a valid zstd frame and reports the media type of the
// file name without the .zst suffix, as zstd frames don't store original names.
func (c *Compressed) zstd(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}

	defer file.Close()

	decoder, err := zstd.NewReader(file, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return "", fmt.Errorf("%s: zstd: %w", path, err)
	}

	defer decoder.Close()

	var first [1]byte
	if _, err = decoder.Read(first[:]); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: zstd: %w", path, err)
	}

	return c.forPath(strutil.TrimSuffix(path)), nil
}
