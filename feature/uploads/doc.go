// Package uploads proxies the multipart-upload lifecycle of the object
// store through authenticated JSON endpoints.
//
// Browsers upload large media directly to the bucket: the service starts
// the session (create), hands out presigned per-part URLs (sign), and
// finishes or discards the session (complete/abort). The service itself
// never touches part data.
//
// Request bodies are typed per operation and validated before any storage
// call; a missing required field fails with ErrMissingField instead of
// being forwarded to the SDK. Storage errors propagate to the handler
// unretried.
package uploads
