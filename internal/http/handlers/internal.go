package handlers

import (
	"net/http"

	"greentasty-reservation-services/pkg/response"
)

// ReconcileTrigger runs one reconcile pass on demand, outside the
// scheduled loop. Guarded by the internal task token.
func (h *Handler) ReconcileTrigger(w http.ResponseWriter, r *http.Request) {
	h.Reconciler.Reconcile(r.Context())
	response.Message(w, "Reconcile pass completed")
}
