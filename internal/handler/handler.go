// Package handler contains the HTTP handlers.
//
// Handlers are thin: they bind and validate the request through the generic
// Handle pipeline, call one service method and pick the response shape.
// Errors are returned to echo and rendered by the global error handler.
package handler
