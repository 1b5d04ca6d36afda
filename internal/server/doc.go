// Package server exposes the web remote: a JSON API over the daemon client,
// the auto-fill settings, the refill history, and a websocket stream of
// monitor notifications.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Surface
//
//	GET  /api/status        → playback snapshot
//	GET  /api/queue         → current queue contents
//	GET  /api/autofill      → auto-fill settings
//	PUT  /api/autofill      → update auto-fill settings (validated)
//	POST /api/player/play   → start playback
//	POST /api/player/pause  → pause playback
//	POST /api/player/next   → skip to the next track
//	POST /api/player/clear  → clear the queue
//	POST /api/fill          → force one refill pass
//	GET  /api/refills       → recent refill outcomes
//	GET  /ws                → websocket notification stream
//
// Every daemon-touching endpoint maps the client's error taxonomy onto HTTP
// status codes: unreachable and malformed responses become 502, timeouts 504.
package server
