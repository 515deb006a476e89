// Package module wires record sync into the API using modkit
package module

import (
	"net/http"

	"resumeranker/internal/adapters/gateway/servicenow"
	modkit "resumeranker/internal/modkit"
	"resumeranker/internal/modkit/httpkit"

	"resumeranker/internal/services/api/sync/domain"
	shttp "resumeranker/internal/services/api/sync/http"
	ssvc "resumeranker/internal/services/api/sync/service"
)

// Module implements the sync API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ssvc.Service
}

// Ports exposes the record sync port for cross module wiring
type Ports struct {
	Records domain.ServicePort
}

// New constructs the sync module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("sync"),
		modkit.WithPrefix("/servicenow"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	svcOpt := ssvc.Options{Table: cfg.Table, MissingConfig: cfg.Missing}
	if len(cfg.Missing) == 0 {
		svcOpt.Client = servicenow.NewClient(servicenow.Options{
			InstanceURL: cfg.InstanceURL,
			Username:    cfg.Username,
			Password:    cfg.Password,
			Timeout:     cfg.Timeout,
		})
	}
	svc := ssvc.New(svcOpt)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Records: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		shttp.Register(r, m.svc)
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
