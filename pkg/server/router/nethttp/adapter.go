// Package nethttp provides a net/http-based implementation of the router.Router interface.
package nethttp

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pytogo/website/pkg/server/router"
)

// NetHTTPRouter implements router.Router using net/http and a simple pattern matcher.
type NetHTTPRouter struct {
	routes     *[]route
	middleware []router.MiddlewareFunc
	prefix     string
	mu         *sync.RWMutex
}

type route struct {
	method     string
	pattern    string
	handler    router.HandlerFunc
	middleware []router.MiddlewareFunc
}

// NewRouter creates a new NetHTTPRouter.
func NewRouter() *NetHTTPRouter {
	routes := make([]route, 0)
	return &NetHTTPRouter{
		routes: &routes,
		mu:     &sync.RWMutex{},
	}
}

// GET registers a GET route.
func (r *NetHTTPRouter) GET(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodGet, path, handler, middleware)
}

// POST registers a POST route.
func (r *NetHTTPRouter) POST(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodPost, path, handler, middleware)
}

// Group creates a route group with common prefix and middleware.
func (r *NetHTTPRouter) Group(prefix string, middleware ...router.MiddlewareFunc) router.Router {
	return &NetHTTPRouter{
		routes:     r.routes,
		middleware: append(append([]router.MiddlewareFunc{}, r.middleware...), middleware...),
		prefix:     r.prefix + prefix,
		mu:         r.mu,
	}
}

// Use applies middleware to all routes registered afterwards.
func (r *NetHTTPRouter) Use(middleware ...router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// ServeHTTP implements http.Handler.
func (r *NetHTTPRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range *r.routes {
		params, ok := matchRoute(rt.pattern, req.URL.Path)
		if !ok || rt.method != req.Method {
			continue
		}

		ctx := newContext(w, req, params)
		handler := rt.handler

		// Middleware snapshot taken at registration time, applied in reverse.
		for i := len(rt.middleware) - 1; i >= 0; i-- {
			handler = rt.middleware[i](handler)
		}

		if err := handler(ctx); err != nil {
			if !ctx.Response().Written() {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
		return
	}

	http.NotFound(w, req)
}

func (r *NetHTTPRouter) addRoute(method, path string, handler router.HandlerFunc, middleware []router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := append([]router.MiddlewareFunc{}, r.middleware...)
	all = append(all, middleware...)

	*r.routes = append(*r.routes, route{
		method:     method,
		pattern:    r.prefix + path,
		handler:    handler,
		middleware: all,
	})
}

// matchRoute checks if a pattern matches a path and extracts parameters.
// Supports patterns like /events/:id.
func matchRoute(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

type netHTTPContext struct {
	request  *http.Request
	response router.ResponseWriter
	params   map[string]string
	store    map[string]interface{}
	mu       sync.RWMutex
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *netHTTPContext {
	return &netHTTPContext{
		request:  r,
		response: &responseWriter{ResponseWriter: w},
		params:   params,
		store:    make(map[string]interface{}),
	}
}

func (c *netHTTPContext) Request() *http.Request {
	return c.request
}

func (c *netHTTPContext) SetRequest(r *http.Request) {
	c.request = r
}

func (c *netHTTPContext) Response() router.ResponseWriter {
	return c.response
}

func (c *netHTTPContext) SetResponse(w router.ResponseWriter) {
	c.response = w
}

func (c *netHTTPContext) Param(name string) string {
	return c.params[name]
}

func (c *netHTTPContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *netHTTPContext) Cookie(name string) (string, error) {
	cookie, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *netHTTPContext) SetCookie(cookie *http.Cookie) {
	http.SetCookie(c.response, cookie)
}

func (c *netHTTPContext) Redirect(code int, location string) error {
	http.Redirect(c.response, c.request, location, code)
	return nil
}

func (c *netHTTPContext) JSON(code int, v interface{}) error {
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)

	return json.NewEncoder(c.response).Encode(v)
}

func (c *netHTTPContext) HTML(code int, body []byte) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)

	_, err := c.response.Write(body)
	return err
}

func (c *netHTTPContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain")
	c.response.WriteHeader(code)

	_, err := io.WriteString(c.response, s)
	return err
}

func (c *netHTTPContext) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store[key]
}

func (c *netHTTPContext) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}

// responseWriter wraps http.ResponseWriter to track status and written state.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.status = code
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Status() int {
	if !w.written {
		return http.StatusOK
	}
	return w.status
}

func (w *responseWriter) Written() bool {
	return w.written
}
