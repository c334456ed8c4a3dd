package strutil

import "strings"

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		if !isSpace(str[i]) {
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		if !isSpace(str[i-1]) {
			return str[:i]
		}
	}

	return ""
}

// StripWS strips whitespaces from both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutHeader splits a header-like value into the value itself and its parameters,
// e.g. "text/html; charset=utf8" results in "text/html" and "charset=utf8".
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return RStripWS(header), ""
	}

	return RStripWS(header[:sep]), LStripWS(header[sep+1:])
}
