// Package http implements the local control API of the sync engine.
//
// UI collaborators use it to trigger pulls and pushes, cancel a running
// sync, inspect the pending queue and history, and record offline edits.
// Tracing, access logging and the optional bearer token check are handled
// here before requests reach the service layer.
package http
