// Package router provides an abstraction layer for HTTP routing.
// It defines interfaces that allow pluggable router implementations
// (net/http, gin-gonic, gorilla/mux).
package router

import "net/http"

// Router defines the interface for HTTP routing. The site only serves GET
// pages and POST form endpoints, so the contract stays at those two verbs.
type Router interface {
	// GET registers a handler for HTTP GET requests at the specified path
	GET(path string, handler HandlerFunc, middleware ...MiddlewareFunc)

	// POST registers a handler for HTTP POST requests at the specified path
	POST(path string, handler HandlerFunc, middleware ...MiddlewareFunc)

	// Group creates a route group with common prefix and middleware
	Group(prefix string, middleware ...MiddlewareFunc) Router

	// Use applies middleware to all routes
	Use(middleware ...MiddlewareFunc)

	// ServeHTTP implements http.Handler
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// HandlerFunc is the function signature for route handlers.
type HandlerFunc func(Context) error

// MiddlewareFunc wraps a HandlerFunc and returns a new HandlerFunc.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Context provides access to request and response in a router-agnostic way.
type Context interface {
	// Request returns the underlying HTTP request
	Request() *http.Request

	// SetRequest sets the HTTP request (useful for middleware that modifies the request)
	SetRequest(r *http.Request)

	// Response returns the response writer
	Response() ResponseWriter

	// SetResponse sets the HTTP response writer (useful for middleware that wraps responses)
	SetResponse(w ResponseWriter)

	// Param returns a URL parameter by name (e.g., /events/:id)
	Param(name string) string

	// Query returns a query parameter by name
	Query(name string) string

	// Cookie returns the value of the named request cookie.
	// Returns http.ErrNoCookie when absent.
	Cookie(name string) (string, error)

	// SetCookie adds a Set-Cookie header to the response
	SetCookie(cookie *http.Cookie)

	// Redirect sends an HTTP redirect to the given location
	Redirect(code int, location string) error

	// JSON sends a JSON response with the given status code
	JSON(code int, v interface{}) error

	// HTML sends a rendered HTML response with the given status code
	HTML(code int, body []byte) error

	// String sends a plain text response with the given status code
	String(code int, s string) error

	// Get retrieves a value from the context by key
	Get(key string) interface{}

	// Set stores a value in the context by key
	Set(key string, value interface{})
}

// ResponseWriter wraps http.ResponseWriter to track response status.
type ResponseWriter interface {
	http.ResponseWriter

	// Status returns the HTTP status code of the response
	Status() int

	// Written returns whether the response has been written
	Written() bool
}
