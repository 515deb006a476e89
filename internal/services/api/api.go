// Package api provides the HTTP API for the application
package api

import (
	"resumeranker/internal/platform/config"
	"resumeranker/internal/platform/logger"
	phttp "resumeranker/internal/platform/net/http"
	"resumeranker/internal/platform/store"

	"resumeranker/internal/modkit"
	"resumeranker/internal/modkit/httpkit"
	"resumeranker/internal/modkit/module"

	mailermod "resumeranker/internal/services/api/mailer/module"
	metamod "resumeranker/internal/services/api/meta/module"
	quotamod "resumeranker/internal/services/api/quota/module"
	screeningmod "resumeranker/internal/services/api/screening/module"
	syncmod "resumeranker/internal/services/api/sync/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules, the store is optional (memory quota backend)
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// leaf modules first so their ports exist before the orchestrator needs them
	quota := quotamod.New(deps)
	records := syncmod.New(deps)

	screening := screeningmod.New(
		deps,
		modkit.WithPorts(screeningmod.In{
			Quota:   module.MustPortsOf[quotamod.Ports](quota).Ledger,
			Records: module.MustPortsOf[syncmod.Ports](records).Records,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		quota,
		records,
		screening,
		mailermod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
