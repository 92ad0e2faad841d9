package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/access"
	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJWTService accepts "good" for goodUser and fails every other token
// with the configured error.
type stubJWTService struct {
	goodUser uuid.UUID
	err      error
}

func (s *stubJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return "good", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if token == "good" {
		return &auth.Claims{UserID: s.goodUser, TokenType: "access"}, nil
	}
	return nil, s.err
}

// userEcho writes the context user ID, or "anonymous".
var userEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if id, ok := shared.UserIDFromContext(r.Context()); ok {
		_, _ = w.Write([]byte(id.String()))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
})

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestOptional(t *testing.T) {
	user := uuid.New()
	m := NewAuthMiddleware(&stubJWTService{goodUser: user, err: auth.ErrExpiredToken})
	h := m.Optional(userEcho)

	assert.Equal(t, user.String(), serve(h, "Bearer good").Body.String())
	assert.Equal(t, "anonymous", serve(h, "").Body.String())
	assert.Equal(t, "anonymous", serve(h, "Bearer expired").Body.String())
	assert.Equal(t, "anonymous", serve(h, "garbage").Body.String())
	assert.Equal(t, "anonymous", serve(h, "Basic good").Body.String())
}

func newTestViewGate(t *testing.T) *ViewGate {
	t.Helper()
	gate, err := access.NewGate(access.Table{
		PermitAll:         []string{"login", "register"},
		AuthenticatedOnly: []string{"home", "quiz"},
		AdminRole:         []string{"adminPanel"},
	})
	require.NoError(t, err)
	return NewViewGate(gate, "login", "home", "/api/views")
}

func TestViewGateRequire(t *testing.T) {
	g := newTestViewGate(t)
	user := uuid.New()

	tests := []struct {
		name         string
		view         string
		user         *uuid.UUID
		wantStatus   int
		wantLocation string
	}{
		{name: "public view anonymous", view: "login", wantStatus: http.StatusOK},
		{name: "public view authenticated", view: "register", user: &user, wantStatus: http.StatusOK},
		{name: "private view anonymous", view: "quiz", wantStatus: http.StatusSeeOther, wantLocation: "/api/views/login"},
		{name: "private view authenticated", view: "quizView", user: &user, wantStatus: http.StatusOK},
		{name: "role view authenticated", view: "adminPanel", user: &user, wantStatus: http.StatusSeeOther, wantLocation: "/api/views/home"},
		{name: "unknown view authenticated", view: "settings", user: &user, wantStatus: http.StatusSeeOther, wantLocation: "/api/views/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				r = r.WithContext(shared.WithUserID(r.Context(), *tt.user))
			}
			w := httptest.NewRecorder()

			g.Require(tt.view)(userEcho).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestViewGateEvaluate(t *testing.T) {
	g := newTestViewGate(t)

	d := g.Evaluate("homeView", false)
	assert.False(t, d.Granted)
	assert.Equal(t, access.ClassAuthenticatedOnly, d.Class)
	assert.Equal(t, "login", d.Redirect)

	d = g.Evaluate("homeView", true)
	assert.True(t, d.Granted)
	assert.Empty(t, d.Redirect)
}

func TestTraceMiddleware(t *testing.T) {
	l, buf := logger.NewTestLogger(t)

	var seenTrace string
	var seenLogger bool
	h := NewTraceMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenLogger = logger.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	}))

	w := serve(h, "")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, seenTrace)
	assert.True(t, seenLogger)
	assert.Equal(t, seenTrace, w.Header().Get("X-Trace-ID"))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "request completed", last["msg"])
	assert.Equal(t, seenTrace, last["trace_id"])
	assert.EqualValues(t, http.StatusTeapot, last["status"])
}
