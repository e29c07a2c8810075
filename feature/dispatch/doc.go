// Package dispatch exposes the single-endpoint command interface:
// POST /command?command=<name> with a JSON body per command.
//
// It maps the command name onto the uploads and fields services, covering
// the six multipart-upload operations plus updateField and relink. The
// endpoint exists for upload clients built around a command-style AJAX
// surface; the per-feature REST routes expose the same operations.
//
// An unrecognized command fails the request with HTTP 400 before any
// storage or field access happens.
package dispatch
