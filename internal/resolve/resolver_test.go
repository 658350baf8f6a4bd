package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/muurk/zy/internal/config"
)

// newSite lays out a small static site and returns a config rooted at it.
func newSite(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"index.html":           "<h1>home</h1>",
		"app.js":               "console.log('app')",
		"404.html":             "<h1>missing</h1>",
		".env":                 "SECRET=1",
		"docs/index.html":      "<h1>docs</h1>",
		"docs/guide.txt":       "guide",
		"empty/.keep":          "",
		"LICENSE":              "MIT License\n\nPermission is hereby granted, free of charge.\n",
		".well-known/ai.txt":   "hello",
		"nested/deep/file.css": "body{}",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}

	root, err := config.CanonicalRoot(dir)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Root = root
	cfg.Listen = []string{"127.0.0.1:0"}
	return cfg
}

func TestResolver_Resolve(t *testing.T) {
	cfg := newSite(t)
	r := NewResolver(cfg, nil)

	tests := []struct {
		name     string
		path     string
		wantRel  string
		wantMIME string
	}{
		{"root serves index", "", "index.html", "text/html"},
		{"slash serves index", "/", "index.html", "text/html"},
		{"script", "/app.js", "app.js", "application/javascript"},
		{"directory index", "/docs", "docs/index.html", "text/html"},
		{"directory index with slash", "/docs/", "docs/index.html", "text/html"},
		{"traversal is clamped", "/../../app.js", "app.js", "application/javascript"},
		{"dot segments", "/docs/./../docs/guide.txt", "docs/guide.txt", "text/plain"},
		{"hidden directory, visible file", "/.well-known/ai.txt", ".well-known/ai.txt", "text/plain"},
		{"nested", "/nested/deep/file.css", "nested/deep/file.css", "text/css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := r.Resolve(tt.path, Client)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRel, asset.Rel)
			assert.Equal(t, tt.wantMIME, asset.MIME)
			assert.True(t, filepath.IsAbs(asset.Path))
			assert.True(t, asset.Info.Mode().IsRegular())
		})
	}
}

func TestResolver_Failures(t *testing.T) {
	cfg := newSite(t)
	r := NewResolver(cfg, nil)

	tests := []struct {
		name  string
		path  string
		check func(error) bool
	}{
		{"missing file", "/nope.js", IsNotFound},
		{"directory without index", "/empty", IsNotFound},
		{"hidden file", "/.env", IsHidden},
		{"hidden file in subdir", "/empty/.keep", IsHidden},
		{"unsupported form", `/C:\boot.ini`, IsPathRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := r.Resolve(tt.path, Client)
			require.Error(t, err)
			assert.Nil(t, asset)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestResolver_HiddenFiles(t *testing.T) {
	cfg := newSite(t)

	_, err := NewResolver(cfg, nil).Resolve("/.env", Client)
	assert.True(t, IsHidden(err))

	// server-chosen paths are trusted
	asset, err := NewResolver(cfg, nil).Resolve(".env", Server)
	require.NoError(t, err)
	assert.Equal(t, ".env", asset.Rel)

	cfg.All = true
	asset, err = NewResolver(cfg, nil).Resolve("/.env", Client)
	require.NoError(t, err)
	assert.Equal(t, ".env", asset.Rel)
}

func TestResolver_SymlinkOutsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	cfg := newSite(t)
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0644))
	require.NoError(t, os.Symlink(secret, filepath.Join(cfg.Root, "link.txt")))
	require.NoError(t, os.Symlink(outside, filepath.Join(cfg.Root, "linkdir")))

	r := NewResolver(cfg, nil)
	for _, p := range []string{"/link.txt", "/linkdir/secret.txt"} {
		_, err := r.Resolve(p, Client)
		assert.True(t, IsOutsideRoot(err), "%s: %v", p, err)
	}

	cfg.FollowLinks = true
	asset, err := NewResolver(cfg, nil).Resolve("/link.txt", Client)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(secret)
	require.NoError(t, err)
	assert.Equal(t, want, asset.Path)
}

func TestResolver_SymlinkInsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	cfg := newSite(t)
	require.NoError(t, os.Symlink(filepath.Join(cfg.Root, "app.js"), filepath.Join(cfg.Root, "latest.js")))

	asset, err := NewResolver(cfg, nil).Resolve("/latest.js", Client)
	require.NoError(t, err)
	assert.Equal(t, "app.js", asset.Rel)
}

func TestResolver_DirectoryIndexSymlinkOutsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	cfg := newSite(t)
	outside := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(outside, []byte("elsewhere"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(cfg.Root, "trap"), 0755))
	require.NoError(t, os.Symlink(outside, filepath.Join(cfg.Root, "trap", "index.html")))

	_, err := NewResolver(cfg, nil).Resolve("/trap", Client)
	assert.True(t, IsOutsideRoot(err), "unexpected error: %v", err)
}

func TestResolver_RootIndexSymlinkOutsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	cfg := newSite(t)
	outside := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(outside, []byte("elsewhere"), 0644))
	index := filepath.Join(cfg.Root, "index.html")
	require.NoError(t, os.Remove(index))
	require.NoError(t, os.Symlink(outside, index))

	r := NewResolver(cfg, nil)
	for _, p := range []string{"", "/", "/index.html"} {
		_, err := r.Resolve(p, Client)
		assert.True(t, IsOutsideRoot(err), "%q: %v", p, err)
	}

	cfg.FollowLinks = true
	asset, err := NewResolver(cfg, nil).Resolve("/", Client)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)
	assert.Equal(t, want, asset.Path)
}

func TestResolver_Idempotent(t *testing.T) {
	cfg := newSite(t)
	r := NewResolver(cfg, nil)

	for _, p := range []string{"", "/app.js", "/docs", "/missing", "/.env"} {
		a1, err1 := r.Resolve(p, Client)
		a2, err2 := r.Resolve(p, Client)
		if err1 != nil {
			require.Error(t, err2)
			assert.Equal(t, err1.Error(), err2.Error())
			continue
		}
		require.NoError(t, err2)
		assert.Equal(t, a1.Path, a2.Path)
		assert.Equal(t, a1.MIME, a2.MIME)
	}
}

func TestResolver_ContentType(t *testing.T) {
	cfg := newSite(t)
	r := NewResolver(cfg, nil)

	asset, err := r.Resolve("/index.html", Client)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", asset.ContentType)

	asset, err = r.Resolve("/LICENSE", Client)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", asset.MIME)
	assert.Equal(t, "text/plain; charset=utf-8", asset.ContentType)
}

func TestResolver_VerboseLogging(t *testing.T) {
	cfg := newSite(t)
	cfg.Verbose = true
	core, logs := observer.New(zap.DebugLevel)

	_, err := NewResolver(cfg, zap.New(core)).Resolve("/docs/guide.txt", Client)
	require.NoError(t, err)

	entries := logs.FilterMessage("Resolved asset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "docs/guide.txt", entries[0].ContextMap()["path"])

	cfg.Verbose = false
	core, logs = observer.New(zap.DebugLevel)
	_, err = NewResolver(cfg, zap.New(core)).Resolve("/docs/guide.txt", Client)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestWithin(t *testing.T) {
	root := filepath.FromSlash("/srv/www")
	assert.True(t, Within(root, root))
	assert.True(t, Within(root, filepath.FromSlash("/srv/www/a/b")))
	assert.True(t, Within(root, filepath.FromSlash("/srv/www/..hidden")))
	assert.False(t, Within(root, filepath.FromSlash("/srv/www2/a")))
	assert.False(t, Within(root, filepath.FromSlash("/srv")))
	assert.False(t, Within(root, filepath.FromSlash("/etc/passwd")))
}
