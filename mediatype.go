// Package mediatype maps file suffixes (extensions) to MIME media types. The mapping is
// backed by an Apache mime.types table, either compiled-in or loaded from a file.
package mediatype

import (
	"github.com/indigo-web/mediatype/internal/strutil"
)

// MediaType is a MIME type in a form of type/subtype, optionally followed by parameters.
type MediaType = string

const (
	OctetStream MediaType = "application/octet-stream"
	Plain       MediaType = "text/plain"
	HTML        MediaType = "text/html"
	CSS         MediaType = "text/css"
	JS          MediaType = "text/javascript"
	JSON        MediaType = "application/json"
	XML         MediaType = "application/xml"
	PDF         MediaType = "application/pdf"
	ZIP         MediaType = "application/zip"
	GZIP        MediaType = "application/gzip"
	ZSTD        MediaType = "application/zstd"
	TAR         MediaType = "application/x-tar"
	PNG         MediaType = "image/png"
	JPEG        MediaType = "image/jpeg"
	GIF         MediaType = "image/gif"
	SVG         MediaType = "image/svg+xml"
	WEBP        MediaType = "image/webp"
	WASM        MediaType = "application/wasm"
)

// DefaultMediaType is returned for suffixes having no explicit mapping, unless changed
// via Table.SetDefault.
const DefaultMediaType = OctetStream

// Essence returns the media type without its parameters, e.g. "text/html; charset=utf8"
// results in "text/html".
func Essence(m MediaType) MediaType {
	essence, _ := strutil.CutHeader(m)
	return essence
}

// Complies returns whether two media types are compatible. Parameters are ignored, and an
// empty media type is considered compatible with any other one.
func Complies(m MediaType, with MediaType) bool {
	with = Essence(with)
	return len(with) == 0 || with == Essence(m)
}
