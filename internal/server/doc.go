// Package server implements the HTTP side of zy: the request dispatcher,
// the gin handler around it and the listener lifecycle.
//
// # Request Handling
//
// Every GET or HEAD request goes through the same middleware stack:
//
//	gzhttp (compression)
//	  -> gin recovery (ginzap)
//	  -> access log (verbose only)
//	  -> Headers (Server, Access-Control-Allow-Origin)
//	  -> Ping (/ping -> "pong")
//	  -> Dispatcher.Handle
//
// The Dispatcher walks a fixed fallback chain: the requested file, the SPA
// index for HTML navigations, the not-found page with status 404, and
// finally an empty 404. A failed step never becomes an error response; it
// only moves on to the next one.
//
// # Caching
//
// Successful file responses carry an ETag (modification time and size) and
// Last-Modified, and conditional requests are answered with 304 by
// http.ServeContent. Cache-Control comes from the cachepolicy package and is
// only attached to 200 and 206 responses:
//
//	text/html            no-cache, no-store
//	scripts, styles ...  public, max-age=<cache>
//	other                (none)
//
// # Headers
//
//   - Server: zy, unless anonymize is set
//   - Access-Control-Allow-Origin: *, unless no-cors is set; this includes
//     404 responses and requests with other methods
//
// # Lifecycle
//
//	srv := server.New(cfg, log)
//	if err := srv.Listen(); err != nil {
//	    return err
//	}
//	go srv.Serve()
//	...
//	srv.Stop(ctx, graceful)
//
// Listen binds every address before anything is served. Serve runs one
// accept loop per listener on a shared http.Server and returns nil once
// Stop has run.
package server
