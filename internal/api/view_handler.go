package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexiquiz/lexiquiz-api/internal/api/middleware"
	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
)

// ViewHandler lets clients ask whether a view may be shown before they
// render it.
type ViewHandler struct {
	gate *middleware.ViewGate
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(gate *middleware.ViewGate) *ViewHandler {
	return &ViewHandler{gate: gate}
}

// CheckView handles GET /views/{view}. It always answers 200; the body says
// whether access is granted and where to go otherwise.
func (h *ViewHandler) CheckView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if view == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "View name required")
		return
	}

	_, authenticated := shared.UserIDFromContext(r.Context())
	d := h.gate.Evaluate(view, authenticated)

	shared.RespondWithJSON(w, r, http.StatusOK, ViewResponse{
		View:     d.View,
		Class:    string(d.Class),
		Granted:  d.Granted,
		Redirect: d.Redirect,
	})
}
