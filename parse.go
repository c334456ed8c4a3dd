package mediatype

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/indigo-web/mediatype/internal/strutil"
)

// Walk reads an Apache mime.types formatted stream and calls fn for every suffix met. Each
// record takes a single line, consisting of a media type and a space-separated list of
// suffixes, separated by a tab:
//
//	text/html	htm html
//
// Empty lines and lines starting with '#' are skipped. Lines not consisting of exactly two
// tab-separated fields are silently skipped as well.
//
// Lines aren't limited in length. A read error stops the walk and is returned. Entries
// reported before it stay reported.
func Walk(r io.Reader, fn func(suffix string, m MediaType)) error {
	reader := bufio.NewReader(r)
	// accumulates lines not fitting into the reader's buffer
	var long []byte

	for {
		chunk, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			long = append(long, chunk...)
			continue
		}

		if err != nil && !errors.Is(err, io.EOF) {
			// the line might be cut by the error, so it is dropped
			return fmt.Errorf("read mime.types: %w", err)
		}

		line := chunk
		if len(long) > 0 {
			long = append(long, chunk...)
			line = long
		}

		// the line is only valid until the next read, so everything that escapes from
		// walkLine must be copied
		walkLine(uf.B2S(trimEOL(line)), fn)
		long = long[:0]

		if err != nil {
			return nil
		}
	}
}

func walkLine(line string, fn func(suffix string, m MediaType)) {
	if len(line) == 0 || line[0] == '#' {
		return
	}

	mediaType, suffixes, ok := fields(line)
	if !ok {
		return
	}

	mediaType = strings.Clone(mediaType)
	for suffix := range strutil.Tokens(suffixes, ' ') {
		fn(strings.Clone(suffix), mediaType)
	}
}

func trimEOL(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line
}

// Parse reads the whole mime.types stream and returns a fresh suffix to media type mapping
// of everything parsed. In case of read error, entries parsed before it are returned along
// with the error.
func Parse(r io.Reader) (map[string]MediaType, error) {
	entries := make(map[string]MediaType)
	err := Walk(r, func(suffix string, m MediaType) {
		entries[suffix] = m
	})

	return entries, err
}

// fields splits the line by tabs, expecting exactly two non-empty fields.
func fields(line string) (mediaType, suffixes string, ok bool) {
	var n int

	for token := range strutil.Tokens(line, '\t') {
		switch n {
		case 0:
			mediaType = token
		case 1:
			suffixes = token
		default:
			return "", "", false
		}

		n++
	}

	return mediaType, suffixes, n == 2
}
