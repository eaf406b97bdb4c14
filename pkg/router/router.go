// Package router wraps chi with named routes and nestable groups. Handlers
// register under a name so the CLI can list the table and tests can build
// URLs without hardcoding paths.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the standard net/http middleware shape.
type Middleware func(http.Handler) http.Handler

// Router owns the chi mux and the name → path table.
type Router struct {
	mux   chi.Router
	mu    sync.RWMutex
	named map[string]string
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		named: make(map[string]string),
	}
}

// Handler returns the mux for http.Server or httptest.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends middleware applied to every route registered afterwards.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// Group scopes subsequent registrations under a path prefix and a shared
// middleware chain. Groups nest; the child inherits the parent's prefix and
// middleware.
func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{root: r, prefix: cleanPath(prefix), mws: append([]Middleware(nil), mws...)}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodPatch, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodDelete, cleanPath(path), name, h, mws)
}

// handle is the single registration point for routes and groups.
func (r *Router) handle(method, fullPath, name string, h http.Handler, mws []Middleware) {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	r.mux.Method(method, fullPath, h)

	if name != "" {
		r.mu.Lock()
		r.named[name] = fullPath
		r.mu.Unlock()
	}
}

// Path returns the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.named[name]
	return path, ok
}

// Names returns all route names, sorted.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL substitutes params into a named route's path. Every {param} must be
// supplied.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

// Group registers routes under a shared prefix and middleware chain.
type Group struct {
	root   *Router
	prefix string
	mws    []Middleware
}

// Group derives a nested group.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		root:   g.root,
		prefix: join(g.prefix, prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.handle(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.handle(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.handle(http.MethodPut, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.handle(http.MethodDelete, path, name, h, mws)
}

func (g *Group) handle(method, path, name string, h http.Handler, mws []Middleware) {
	combined := append(append([]Middleware(nil), g.mws...), mws...)
	g.root.handle(method, join(g.prefix, path), name, h, combined)
}

// join merges path segments, trimming redundant slashes. Empty input maps
// to "/".
func join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.Trim(p, "/"); t != "" {
			segs = append(segs, t)
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	return join(path)
}
