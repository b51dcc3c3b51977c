// Package module wires analyze into the API using modkit
package module

import (
	"net/http"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/topic"
	modkit "mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	str "mouthwash/internal/platform/strings"
	analyzehttp "mouthwash/internal/services/api/analyze/http"
	analyzesvc "mouthwash/internal/services/api/analyze/service"
	moddom "mouthwash/internal/services/moderation/domain"
)

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Moderation moddom.ServicePort
}

// Options carries wiring-only inputs the module cannot read from config
type Options struct {
	Matcher *lexicon.Matcher
	Topic   topic.Config
}

// Module implements the analyze module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc analyzesvc.Service
}

// New constructs the analyze module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
		modkit.WithPrefix("/analyze"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Moderation == nil {
		panic("analyze API module requires Moderation port (from services/moderation)")
	}

	m := overrides.Matcher
	if m == nil {
		pack, err := lexicon.Load()
		if err != nil {
			panic(err)
		}
		m = lexicon.NewMatcher(pack)
	}

	svc := analyzesvc.New(m, injected.Moderation, overrides.Topic)

	mod := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	mod.ports = adaptAnalyzePort{svc: svc}

	external := b.Register
	mod.register = func(r httpkit.Router) {
		analyzehttp.Register(r, mod.svc)
		if external != nil {
			external(r)
		}
	}
	return mod
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
