// Package http provides http transport for quota
package http

import (
	stdhttp "net/http"

	"resumeranker/internal/modkit/httpkit"
	"resumeranker/internal/services/api/quota/domain"
	svc "resumeranker/internal/services/api/quota/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.BalanceQuery](r, "/balance", h.balance)
}

type handlers struct{ svc svc.Service }

func (h *handlers) balance(r *stdhttp.Request, in domain.BalanceQuery) (any, error) {
	return h.svc.Balance(r.Context(), in.Domain)
}
