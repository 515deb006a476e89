// Package http provides http transport for record sync
package http

import (
	stdhttp "net/http"

	"resumeranker/internal/modkit/httpkit"
	"resumeranker/internal/services/api/sync/domain"
	svc "resumeranker/internal/services/api/sync/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Fields](r, "/store", h.store)
}

type handlers struct{ svc svc.Service }

func (h *handlers) store(r *stdhttp.Request, in domain.Fields) (any, error) {
	return h.svc.Upsert(r.Context(), in)
}
