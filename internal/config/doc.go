// Package config builds the zy server configuration.
//
// The configuration is assembled once at startup and never mutated; every
// request handler reads the same *Config.
//
// # Sources
//
// Values are layered in increasing precedence:
//
//	defaults (struct tags)  <  config file  <  ZY_* environment  <  flags
//
// The positional DIR argument overrides the "root" key. The plain PORT
// variable is honoured when no explicit port is given; an unparseable PORT
// is logged and ignored rather than rejected.
//
// # Configuration File Location
//
// Without --config the file is looked up in the platform directory:
//   - Linux: $XDG_CONFIG_HOME/zy/config.yaml or $HOME/.config/zy/config.yaml
//   - macOS: $HOME/.config/zy/config.yaml
//   - Windows: %LOCALAPPDATA%\zy\config.yaml
//
// A missing default file is not an error.
//
// # Fields
//
//	┌──────────────┬──────────────┬──────────────────────────────────────────┐
//	│ Key          │ Default      │ Description                              │
//	├──────────────┼──────────────┼──────────────────────────────────────────┤
//	│ root         │ "."          │ Directory to serve (canonicalized)       │
//	│ listen       │ 127.0.0.1    │ PORT, HOST, HOST:PORT or [IPv6]:PORT     │
//	│ port         │ 3000         │ Port for listen entries without one      │
//	│ index        │ index.html   │ Index file and SPA entry document        │
//	│ not-found    │ 404.html     │ Page served with status 404              │
//	│ cache        │ 3600         │ max-age in seconds for static assets     │
//	│ all          │ false        │ Serve dotfiles                           │
//	│ follow-links │ false        │ Allow symlinks that leave the root       │
//	│ spa          │ false        │ Serve index for unknown HTML requests    │
//	│ no-cors      │ false        │ Omit Access-Control-Allow-Origin         │
//	│ anonymize    │ false        │ Omit the Server header                   │
//	│ verbose      │ false        │ Per-request debug logging                │
//	│ confirm-exit │ false        │ Require a second Ctrl-C within 5s        │
//	│ mdns         │ false        │ Advertise listen ports over mDNS         │
//	└──────────────┴──────────────┴──────────────────────────────────────────┘
//
// # Errors
//
// Every validation failure wraps ErrInvalid:
//
//	cfg, err := config.Load(v, dir, logger)
//	if errors.Is(err, config.ErrInvalid) {
//	    // bad cache time, listen address, root …
//	}
package config
