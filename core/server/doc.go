// Package server holds the HTTP server configuration.
//
// It only defines the partial Config consumed by core/config; the server
// itself is assembled in the start command from Fiber, the middleware stack,
// and the feature loader.
package server
