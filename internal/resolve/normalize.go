package resolve

import (
	"strings"
)

// Normalize turns a request path into a clean relative slash path with no
// "." or ".." segments and no root marker. It performs no I/O.
//
//	/a               -> a
//	a/../b           -> b
//	/a/b/../c/./d    -> a/c/d
//	../../x          -> x
//	C:\a             -> rejected
//
// A ".." never climbs above the logical root; surplus ones are dropped.
// Segments carrying a drive or volume prefix, a backslash or a NUL byte
// are rejected with ErrTypePathRejected.
func Normalize(p string) (string, error) {
	segments := make([]string, 0, strings.Count(p, "/")+1)

	for _, seg := range strings.Split(p, "/") {
		switch {
		case seg == "" || seg == ".":
			// root marker, repeated separator or current directory
		case seg == "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		case !isPlainName(seg):
			return "", &Error{Type: ErrTypePathRejected, Path: p, Message: "unsupported path form"}
		default:
			segments = append(segments, seg)
		}
	}

	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || !isPlainName(seg) {
			return "", &Error{Type: ErrTypePathRejected, Path: p, Message: "normalized path contains a non-name segment"}
		}
	}

	return strings.Join(segments, "/"), nil
}

// isPlainName reports whether seg can only ever name an entry inside its
// parent directory, on every platform.
func isPlainName(seg string) bool {
	if strings.ContainsAny(seg, "\\\x00") {
		return false
	}
	return !hasVolumePrefix(seg)
}

// hasVolumePrefix matches Windows drive letters ("C:") and device or
// stream prefixes ("COM1:", "file.txt:stream") by rejecting any colon.
func hasVolumePrefix(seg string) bool {
	return strings.ContainsRune(seg, ':')
}
