package resolve

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/muurk/zy/internal/cachepolicy"
	"github.com/muurk/zy/internal/config"
)

// Origin tells the resolver who chose a path.
type Origin int

const (
	// Client paths come from the request and get the full security policy.
	Client Origin = iota
	// Server paths are operator-configured fallbacks (index, not-found page)
	// and skip the hidden-file and containment checks.
	Server
)

// String returns the origin name used in logs
func (o Origin) String() string {
	if o == Server {
		return "server"
	}
	return "client"
}

// DirectoryIndex is the file looked up when a path names a directory.
const DirectoryIndex = "index.html"

// Asset is a resolved regular file.
type Asset struct {
	// Path is the absolute, canonical filesystem path.
	Path string
	// Rel is Path relative to the root, slash separated.
	Rel string
	// Ext is the lower-case extension without the dot.
	Ext string
	// MIME is derived from Ext and drives cache classification.
	MIME string
	// ContentType is the response Content-Type. Unknown extensions are
	// sniffed from the file content.
	ContentType string
	// Info is the stat result taken during resolution.
	Info os.FileInfo
}

// Resolver maps request paths to files under the configured root.
// It only reads the configuration and is safe for concurrent use.
type Resolver struct {
	cfg *config.Config
	log *zap.Logger
}

// NewResolver creates a resolver for cfg.Root.
func NewResolver(cfg *config.Config, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{cfg: cfg, log: log}
}

// Resolve returns the asset for p, or an *Error. Callers treat every error
// as "not found".
func (r *Resolver) Resolve(p string, origin Origin) (*Asset, error) {
	rel, err := Normalize(p)
	if err != nil {
		return nil, err
	}

	if origin == Client && !r.cfg.All && rel != "" && strings.HasPrefix(path.Base(rel), ".") {
		return nil, &Error{Type: ErrTypeHidden, Path: p}
	}

	root := r.cfg.Root
	name := filepath.FromSlash(rel)
	if rel == "" {
		name = r.cfg.Index
	}
	target, err := filepath.EvalSymlinks(filepath.Join(root, name))
	if err != nil {
		return nil, &Error{Type: ErrTypeNotFound, Path: p, Err: err}
	}

	if err := r.checkContained(p, target, origin); err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, &Error{Type: ErrTypeNotFound, Path: p, Err: err}
	}

	if info.IsDir() {
		target, err = filepath.EvalSymlinks(filepath.Join(target, DirectoryIndex))
		if err != nil {
			return nil, &Error{Type: ErrTypeNotFound, Path: p, Err: err}
		}
		if err := r.checkContained(p, target, origin); err != nil {
			return nil, err
		}
		info, err = os.Stat(target)
		if err != nil {
			return nil, &Error{Type: ErrTypeNotFound, Path: p, Err: err}
		}
	}

	if !info.Mode().IsRegular() {
		return nil, &Error{Type: ErrTypeNotFound, Path: p, Message: "not a regular file"}
	}

	asset := &Asset{
		Path: target,
		Rel:  relativeTo(root, target),
		Ext:  strings.ToLower(strings.TrimPrefix(filepath.Ext(target), ".")),
		Info: info,
	}
	asset.MIME = cachepolicy.TypeByExtension(asset.Ext)
	asset.ContentType = contentType(asset)

	if r.cfg.Verbose {
		r.log.Debug("Resolved asset",
			zap.String("path", asset.Rel),
			zap.Stringer("origin", origin),
		)
	}
	return asset, nil
}

// checkContained enforces that client targets stay under the root once
// symlinks are resolved, unless following links out of it is allowed.
func (r *Resolver) checkContained(p, target string, origin Origin) error {
	if origin != Client || r.cfg.FollowLinks {
		return nil
	}
	if !Within(r.cfg.Root, target) {
		return &Error{Type: ErrTypeOutsideRoot, Path: p, Message: "resolves outside the root"}
	}
	return nil
}

// Within reports whether target is root or lies lexically beneath it.
func Within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func relativeTo(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

func contentType(a *Asset) string {
	if a.MIME != cachepolicy.OctetStream {
		return cachepolicy.ContentType(a.MIME)
	}
	mt, err := mimetype.DetectFile(a.Path)
	if err != nil {
		return cachepolicy.OctetStream
	}
	return mt.String()
}
