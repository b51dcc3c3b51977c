// Package module wires flags queries into the API using modkit
package module

import (
	"net/http"

	modkit "mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	str "mouthwash/internal/platform/strings"
	flagshttp "mouthwash/internal/services/api/flags/http"
	flagssvc "mouthwash/internal/services/api/flags/service"
	fldom "mouthwash/internal/services/flags/domain"
)

// Ports declares the worker ports this module expects via modkit.WithPorts
type Ports struct {
	Flags fldom.ReaderPort
}

// Module implements the flags api module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc flagssvc.Service
}

// New constructs the flags api module.
// The flags reader is injected by the composer; there is no local fallback
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("flags"), modkit.WithPrefix("/flags")}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("flags api module: expected WithPorts(flags module Ports)")
	}
	if injected.Flags == nil {
		panic("flags api module: Ports missing Flags reader (from services/flags)")
	}

	svc := flagssvc.New(injected.Flags)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptFlagsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		flagshttp.Register(r, m.svc)
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
