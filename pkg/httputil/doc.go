// Package httputil provides HTTP helpers shared by the bpmnlayout API server.
//
// # Overview
//
//   - [WriteJSON] and [WriteError]: JSON responses with structured errors
//   - [StatusFor]: maps an error code from pkg/errors to an HTTP status
//   - [RequestID]: middleware that tags every request with a UUID
//
// # Errors
//
// Errors are written as a JSON object carrying the machine-readable code
// and the user-facing message:
//
//	{"code": "DUPLICATE_ID", "message": "duplicate element id \"t1\""}
//
// Validation codes map to 400, not-found codes to 404, timeouts to 504 and
// everything else to 500.
//
// # Request IDs
//
// [RequestID] reuses a well-formed X-Request-ID header from the client and
// otherwise generates a fresh one. Handlers read it back with
// [RequestIDFrom].
package httputil
