// Package module wires the screening pipeline into the API using modkit
package module

import (
	"context"
	"net/http"

	"resumeranker/internal/adapters/gateway/agentic"
	"resumeranker/internal/adapters/gateway/authgate"
	modkit "resumeranker/internal/modkit"
	"resumeranker/internal/modkit/httpkit"

	qdom "resumeranker/internal/services/api/quota/domain"
	"resumeranker/internal/services/api/screening/domain"
	shttp "resumeranker/internal/services/api/screening/http"
	ssvc "resumeranker/internal/services/api/screening/service"
	syncdom "resumeranker/internal/services/api/sync/domain"
)

// In are the cross module ports screening consumes, injected via WithPorts
type In struct {
	Quota   qdom.ServicePort
	Records syncdom.ServicePort
}

// Ports exposes the screening service port
type Ports struct {
	Screening domain.ServicePort
}

// Module implements the screening API module
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

// New constructs the screening module
// callers must inject In via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("screening"),
		modkit.WithPrefix("/screening"),
	}, opts...)...)

	in, ok := b.Ports.(In)
	if !ok {
		panic("screening module requires In ports (quota, records)")
	}

	cfg := FromConfig(deps.Cfg)

	svc := ssvc.New(ssvc.Options{
		Validator: &validatorAdapter{c: authgate.NewClient(authgate.Options{
			BaseURL: cfg.AuthgateURL,
		})},
		Scorer: &scorerAdapter{c: agentic.NewClient(agentic.Options{
			BaseURL:    cfg.ScoringURL,
			Timeout:    cfg.ScoringTimeout,
			MaxRetries: cfg.MaxRetries,
			RetryBase:  cfg.RetryBase,
		})},
		Quota:                  in.Quota,
		Records:                in.Records,
		Tiers:                  cfg.Tiers,
		RefundOnScoringFailure: cfg.RefundOnScoringFailure,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Screening: svc}

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

// validatorAdapter maps the authgate client onto the domain port
type validatorAdapter struct{ c *authgate.Client }

func (a *validatorAdapter) Validate(ctx context.Context, email string) (domain.Decision, error) {
	dec, err := a.c.Validate(ctx, email)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.Decision{Authorized: dec.Authorized, Reason: dec.Reason}, nil
}

// scorerAdapter maps the agentic client onto the domain port
type scorerAdapter struct{ c *agentic.Client }

func (a *scorerAdapter) Score(ctx context.Context, p domain.ScorePayload, resumes []domain.ResumeFile) (domain.ScoreResult, error) {
	files := make([]agentic.Resume, 0, len(resumes))
	for _, r := range resumes {
		files = append(files, agentic.Resume{Filename: r.Filename, Content: r.Content})
	}
	res, err := a.c.Submit(ctx, agentic.Payload{
		OrgID:          p.OrgID,
		JobTitle:       p.JobTitle,
		ExeName:        p.ExeName,
		WorkflowID:     agentic.WorkflowID,
		JobDescription: p.JobDescription,
	}, files)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	return domain.ScoreResult{CaseID: res.CaseID, Raw: res.Raw}, nil
}
