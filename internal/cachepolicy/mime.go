package cachepolicy

import (
	"mime"
	"strings"
)

// OctetStream is returned for extensions with no known type.
const OctetStream = "application/octet-stream"

// extensionTypes pins the types that matter for classification so results do
// not depend on the host's mime.types files.
var extensionTypes = map[string]string{
	"html":        "text/html",
	"htm":         "text/html",
	"css":         "text/css",
	"js":          "application/javascript",
	"mjs":         "application/javascript",
	"json":        "application/json",
	"map":         "application/json",
	"webmanifest": "application/manifest+json",
	"txt":         "text/plain",
	"csv":         "text/csv",
	"md":          "text/markdown",
	"xml":         "text/xml",
	"svg":         "image/svg+xml",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"webp":        "image/webp",
	"avif":        "image/avif",
	"ico":         "image/x-icon",
	"bmp":         "image/bmp",
	"woff":        "application/font-woff",
	"woff2":       "font/woff2",
	"ttf":         "font/ttf",
	"otf":         "application/font-sfnt",
	"eot":         "application/vnd.ms-fontobject",
	"wasm":        "application/wasm",
	"pdf":         "application/pdf",
	"zip":         "application/zip",
	"mp4":         "video/mp4",
	"webm":        "video/webm",
	"mp3":         "audio/mpeg",
	"ogg":         "audio/ogg",
}

// TypeByExtension returns the MIME type for a file extension, with or
// without the leading dot. Unknown extensions yield OctetStream.
func TypeByExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return OctetStream
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return OctetStream
}

// ContentType returns the Content-Type header value for a MIME type,
// adding a UTF-8 charset to text types.
func ContentType(mimeType string) string {
	typ, _ := splitMediaType(mimeType)
	if typ == "text" || mimeType == "application/javascript" {
		return mimeType + "; charset=utf-8"
	}
	return mimeType
}
