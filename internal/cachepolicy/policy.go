package cachepolicy

import (
	"fmt"
	"strings"
)

// Policy is the caching directive set attached to a served asset.
type Policy int

const (
	// Undetermined emits no Cache-Control header; browsers apply heuristics.
	Undetermined Policy = iota
	// NoCache forces revalidation on every load. Used for HTML entry documents.
	NoCache
	// ShouldCache marks the asset public for the configured max-age.
	ShouldCache
)

// String returns a human-readable name for the policy
func (p Policy) String() string {
	switch p {
	case Undetermined:
		return "undetermined"
	case NoCache:
		return "no-cache"
	case ShouldCache:
		return "should-cache"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Classify maps a MIME type, and for a few font types the raw extension, to
// a Policy. Rules are checked in order and the first match wins:
//
//	text/html                                   -> NoCache
//	application/javascript, text/*, image/*,
//	font/*, .otf, .woff                         -> ShouldCache
//	anything else                               -> Undetermined
func Classify(mimeType, ext string) Policy {
	typ, sub := splitMediaType(mimeType)

	switch {
	case typ == "text" && sub == "html":
		return NoCache
	case typ == "application" && sub == "javascript":
		return ShouldCache
	case typ == "text", typ == "image", typ == "font":
		return ShouldCache
	}

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "otf", "woff":
		return ShouldCache
	}
	return Undetermined
}

// Header renders the Cache-Control value for p. It returns "" for
// Undetermined, meaning no header should be written.
func (p Policy) Header(maxAge uint32) string {
	switch p {
	case NoCache:
		return "no-cache, no-store"
	case ShouldCache:
		return fmt.Sprintf("public, max-age=%d", maxAge)
	default:
		return ""
	}
}

// splitMediaType lower-cases and splits "type/subtype; params".
func splitMediaType(mimeType string) (string, string) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	typ, sub, ok := strings.Cut(mimeType, "/")
	if !ok {
		return mimeType, ""
	}
	return typ, sub
}
