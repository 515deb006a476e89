// Package module wires quota into the API using modkit
package module

import (
	"net/http"

	modkit "resumeranker/internal/modkit"
	"resumeranker/internal/modkit/httpkit"

	"resumeranker/internal/services/api/quota/domain"
	qhttp "resumeranker/internal/services/api/quota/http"
	qrepo "resumeranker/internal/services/api/quota/repo"
	qsvc "resumeranker/internal/services/api/quota/service"
)

// Module implements the quota API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc qsvc.Service
}

// Ports exposes the ledger port for cross module wiring
type Ports struct {
	Ledger domain.ServicePort
}

// New constructs the quota module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("quota"),
		modkit.WithPrefix("/quota"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var ledger qrepo.Repo
	switch cfg.Backend {
	case "postgres":
		if deps.PG == nil {
			panic("quota module: postgres backend requires an open store")
		}
		ledger = qrepo.NewPG().Bind(deps.PG)
	default:
		ledger = qrepo.NewMemory()
	}

	svc := qsvc.New(ledger, qsvc.Options{Allot: cfg.Tiers.Allot})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Ledger: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		qhttp.Register(r, m.svc)
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
