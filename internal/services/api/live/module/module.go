// Package module wires live sessions into the API using modkit
package module

import (
	"net/http"

	modkit "mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	str "mouthwash/internal/platform/strings"
	livehttp "mouthwash/internal/services/api/live/http"
	livesvc "mouthwash/internal/services/api/live/service"
	livedom "mouthwash/internal/services/live/domain"
)

// Ports declares the worker ports this module expects via modkit.WithPorts
type Ports struct {
	Live livedom.ServicePort
}

// Module implements the live api module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc livesvc.Service
}

// New constructs the live api module.
// The live worker is injected by the composer; there is no local fallback
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("live"), modkit.WithPrefix("/live")}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("live api module: expected WithPorts(live module Ports)")
	}
	if injected.Live == nil {
		panic("live api module: Ports missing Live service (from services/live)")
	}

	svc := livesvc.New(injected.Live)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptLivePort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		livehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
