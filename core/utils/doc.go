// Package utils provides common utility functions for the medialink application.
// It includes helper functions for type conversion of loosely typed JSON
// values (post IDs arrive as numbers or strings depending on the client).
package utils
