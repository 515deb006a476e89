// Package http wires mail routes
package http

import (
	"net/http"

	"resumeranker/internal/modkit/httpkit"
	"resumeranker/internal/services/api/mailer/domain"
	"resumeranker/internal/services/api/mailer/service"
)

// Register mounts mail routes on the given router
func Register(r httpkit.Router, svc service.Service) {
	httpkit.PostJSON(r, "/send", func(req *http.Request, in domain.MailRequest) (any, error) {
		return svc.Send(req.Context(), in)
	})
}
