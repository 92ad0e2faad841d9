package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/access"
	"github.com/lexiquiz/lexiquiz-api/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckView(t *testing.T) {
	gate, err := access.NewGate(access.Table{
		PermitAll:         []string{"login", "home"},
		AuthenticatedOnly: []string{"wordList", "quiz"},
		AdminRole:         []string{"adminPanel"},
	})
	require.NoError(t, err)
	h := NewViewHandler(middleware.NewViewGate(gate, "login", "home", "/api/views"))

	tests := []struct {
		name         string
		view         string
		user         uuid.UUID
		wantGranted  bool
		wantClass    string
		wantRedirect string
	}{
		{name: "public anonymous", view: "home", wantGranted: true, wantClass: "permit_all"},
		{name: "private anonymous", view: "quizView", wantClass: "authenticated_only", wantRedirect: "login"},
		{name: "private authenticated", view: "quiz", user: uuid.New(), wantGranted: true, wantClass: "authenticated_only"},
		{name: "admin authenticated", view: "adminPanel", user: uuid.New(), wantClass: "admin_role", wantRedirect: "home"},
		{name: "unknown authenticated", view: "settings", user: uuid.New(), wantClass: "unknown", wantRedirect: "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withURLParam(newRequest(t, http.MethodGet, "/api/views/"+tt.view, nil, tt.user), "view", tt.view)
			w := httptest.NewRecorder()
			h.CheckView(w, r)

			require.Equal(t, http.StatusOK, w.Code)
			resp := decodeBody[ViewResponse](t, w)
			assert.Equal(t, tt.view, resp.View)
			assert.Equal(t, tt.wantGranted, resp.Granted)
			assert.Equal(t, tt.wantClass, resp.Class)
			assert.Equal(t, tt.wantRedirect, resp.Redirect)
		})
	}
}
