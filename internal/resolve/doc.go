// Package resolve maps request paths to files under the served root.
//
// # Normalization
//
// Normalize cleans a raw request path lexically, before any filesystem
// access:
//
//	/a/b/../c/./d  -> a/c/d
//	../../x        -> x      (never climbs above the root)
//	C:\a           -> rejected
//
// # Resolution
//
// Resolver.Resolve applies the serving policy in order:
//  1. Normalize the path; a rejected form fails resolution.
//  2. For Client paths, refuse dotfiles unless hidden files are enabled.
//  3. Empty path -> root/<index>; otherwise join with the root and resolve
//     symlinks.
//  4. For Client paths, the canonical target must stay under the root
//     unless following links is enabled.
//  5. A directory resolves to its index.html, re-canonicalized and
//     re-checked.
//  6. Anything but a regular file fails resolution.
//
// Server paths (the configured index and not-found pages) skip steps 2 and 4.
//
// Every failure is an *Error. Callers never show the type to clients; a
// rejected, hidden, escaping or missing path all look like "not found".
package resolve
