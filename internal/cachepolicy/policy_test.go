package cachepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		ext      string
		want     Policy
	}{
		{"html entry document", "text/html", "html", NoCache},
		{"html with params", "text/html; charset=utf-8", "html", NoCache},
		{"javascript", "application/javascript", "js", ShouldCache},
		{"css", "text/css", "css", ShouldCache},
		{"plain text", "text/plain", "txt", ShouldCache},
		{"any image", "image/x-whatever", "xyz", ShouldCache},
		{"svg", "image/svg+xml", "svg", ShouldCache},
		{"font family", "font/woff2", "woff2", ShouldCache},
		{"woff by extension", "application/font-woff", "woff", ShouldCache},
		{"otf by extension", "application/font-sfnt", ".otf", ShouldCache},
		{"json", "application/json", "json", Undetermined},
		{"wasm", "application/wasm", "wasm", Undetermined},
		{"unknown", OctetStream, "", Undetermined},
		{"upper case type", "TEXT/HTML", "HTML", NoCache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mimeType, tt.ext))
		})
	}
}

func TestClassify_ByExtension(t *testing.T) {
	assert.Equal(t, NoCache, Classify(TypeByExtension("html"), "html"))
	for _, ext := range []string{"js", "css", "png", "woff"} {
		assert.Equal(t, ShouldCache, Classify(TypeByExtension(ext), ext), ext)
	}
}

func TestPolicy_Header(t *testing.T) {
	assert.Equal(t, "no-cache, no-store", NoCache.Header(3600))
	assert.Equal(t, "public, max-age=3600", ShouldCache.Header(3600))
	assert.Equal(t, "public, max-age=0", ShouldCache.Header(0))
	assert.Empty(t, Undetermined.Header(3600))
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "no-cache", NoCache.String())
	assert.Equal(t, "Policy(9)", Policy(9).String())
}

func TestTypeByExtension(t *testing.T) {
	assert.Equal(t, "text/html", TypeByExtension(".html"))
	assert.Equal(t, "text/html", TypeByExtension("HTM"))
	assert.Equal(t, "application/javascript", TypeByExtension("js"))
	assert.Equal(t, OctetStream, TypeByExtension(""))
	assert.Equal(t, OctetStream, TypeByExtension("definitely-not-a-real-ext"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", ContentType("text/html"))
	assert.Equal(t, "application/javascript; charset=utf-8", ContentType("application/javascript"))
	assert.Equal(t, "image/png", ContentType("image/png"))
}
