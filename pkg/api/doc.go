// Package api serves the layout pipeline over HTTP.
//
// # Routes
//
//	POST   /v1/layout        process JSON in, layout JSON out
//	POST   /v1/layout/svg    process JSON in, SVG preview out
//	POST   /v1/relayout      {"process", "prior", "toggles"} in, layout JSON out
//	GET    /v1/layouts/{id}  stored layout record
//	DELETE /v1/layouts/{id}  remove a stored layout
//	GET    /healthz          liveness probe
//
// When a [store.Store] is configured, every computed layout is persisted and
// its record id is returned in the X-Layout-ID header. Passing ?refresh=true
// bypasses the layout cache.
//
// Every request carries an X-Request-ID (see [httputil.RequestID]) that is
// echoed in the response and included in the access log. Errors are JSON
// objects of the form {"code": "...", "message": "..."}.
package api
