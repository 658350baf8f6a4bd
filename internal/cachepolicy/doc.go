// Package cachepolicy decides the Cache-Control directives for served files.
//
// HTML entry documents are always revalidated so that references to
// fingerprinted assets stay consistent after a deploy. Scripts, styles,
// images and fonts are public for the configured max-age. Everything else
// gets no directive and is left to browser heuristics.
//
// MIME types come from a fixed extension table (TypeByExtension) so the
// classification is the same on every host.
package cachepolicy
