package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lexiquiz/lexiquiz-api/internal/access"
	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
)

// ViewGate checks the access gate before a view-scoped handler runs.
type ViewGate struct {
	gate      *access.Gate
	loginView string
	homeView  string
	prefix    string
}

// NewViewGate creates a ViewGate. Denied anonymous callers are sent to
// loginView and denied authenticated callers to homeView; Location headers
// are built as prefix + "/" + view.
func NewViewGate(gate *access.Gate, loginView, homeView, prefix string) *ViewGate {
	return &ViewGate{gate: gate, loginView: loginView, homeView: homeView, prefix: prefix}
}

// Decision is the outcome of evaluating a view for a caller.
type Decision struct {
	View     string
	Class    access.Class
	Granted  bool
	Redirect string // empty when granted
}

// Evaluate decides whether the caller may see view.
func (g *ViewGate) Evaluate(view string, authenticated bool) Decision {
	d := Decision{
		View:    view,
		Class:   g.gate.Classify(view),
		Granted: g.gate.IsAccessGranted(view, authenticated),
	}
	if !d.Granted {
		d.Redirect = g.loginView
		if authenticated {
			d.Redirect = g.homeView
		}
	}
	return d
}

// Location returns the URL of the view endpoint for view.
func (g *ViewGate) Location(view string) string {
	return g.prefix + "/" + view
}

// Require returns middleware that answers 303 See Other instead of running
// the handler when the caller may not see view.
func (g *ViewGate) Require(view string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, authenticated := shared.UserIDFromContext(r.Context())

			d := g.Evaluate(view, authenticated)
			if d.Granted {
				next.ServeHTTP(w, r)
				return
			}

			logger.FromContext(r.Context()).Debug("view access denied",
				slog.String("view", view),
				slog.String("class", string(d.Class)),
				slog.Bool("authenticated", authenticated),
				slog.String("redirect", d.Redirect))

			shared.RespondWithRedirect(w, r, g.Location(d.Redirect), d.Redirect, "Access denied")
		})
	}
}
