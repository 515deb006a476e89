// Package module wires mail dispatch into the API using modkit
package module

import (
	"net/http"

	modkit "resumeranker/internal/modkit"
	"resumeranker/internal/modkit/httpkit"

	"resumeranker/internal/services/api/mailer/domain"
	mhttp "resumeranker/internal/services/api/mailer/http"
	msvc "resumeranker/internal/services/api/mailer/service"
)

// Module implements the mail API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc msvc.Service
}

// Ports exposes the mail dispatch port
type Ports struct {
	Mail domain.ServicePort
}

// New constructs the mail module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("mailer"),
		modkit.WithPrefix("/mail"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	svc := msvc.New(msvc.Options{
		SMTPAddr: cfg.SMTPAddr,
		User:     cfg.User,
		Pass:     cfg.Pass,
		Missing:  cfg.Missing,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Mail: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		mhttp.Register(r, m.svc)
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
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
