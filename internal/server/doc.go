// Package server implements the HTTP server and HTTP handlers for
// og-share. It wires together the HTTP routes, the shared-folder
// store, and provides lifecycle helpers used by tests and the
// production binary.
package server
