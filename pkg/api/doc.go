// Package api exposes the solver over HTTP.
//
// [Server] wires the search into a JSON API:
//
//	GET  /health               liveness probe
//	POST /api/v1/solve         solve an instance posted in the request body
//	GET  /api/v1/runs          list archived runs
//	GET  /api/v1/runs/{id}     fetch one archived run
//	DELETE /api/v1/runs/{id}   remove an archived run
//
// Solve responses are cached by content: the same instance and
// configuration hit the cache instead of re-running the search. Caching
// and archiving are pluggable through [cache.Cache] and [store.Store];
// both default to in-process implementations.
package api
