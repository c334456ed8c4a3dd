package strutil

// Suffix returns everything after the last dot of the final path segment. Both slashes
// and backslashes are treated as segment separators. If the final segment has no dots,
// an empty string is returned.
func Suffix(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i+1:]
		case '/', '\\':
			return ""
		}
	}

	return ""
}

// TrimSuffix cuts the suffix together with its dot off the path. Paths without suffix are
// returned unchanged.
func TrimSuffix(path string) string {
	suffix := Suffix(path)
	if len(suffix) == 0 && (len(path) == 0 || path[len(path)-1] != '.') {
		return path
	}

	return path[:len(path)-len(suffix)-1]
}
