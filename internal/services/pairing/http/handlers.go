// Package http provides http transport for IAC pairing
package http

import (
	stdhttp "net/http"

	"beaconpair/internal/modkit/httpkit"
	"beaconpair/internal/services/pairing/domain"
)

// Register mounts the IAC endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ReceiveInput](r, "/receive", h.receive)
	httpkit.Get(r, "/handlers", h.handlers)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /iac/receive IAC iacReceive
// @Summary Offer an IAC payload to the registered handlers
// @Description Unrecognised payloads are not errors; they report status "unsupported"
// @Tags IAC
// @Accept json
// @Produce json
// @Param payload body domain.ReceiveInput true "Payload or chunks"
// @Success 200 {object} iac.Outcome "ok"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Router /iac/receive [post]
func (h *handlers) receive(r *stdhttp.Request, in domain.ReceiveInput) (any, error) {
	return h.svc.Receive(r.Context(), in)
}

// swagger:route GET /iac/handlers IAC iacHandlers
// @Summary Registered IAC handlers in dispatch order
// @Tags IAC
// @Produce json
// @Success 200 {array} domain.HandlerInfo "ok"
// @Router /iac/handlers [get]
func (h *handlers) handlers(r *stdhttp.Request) (any, error) {
	return h.svc.Handlers(r.Context()), nil
}
