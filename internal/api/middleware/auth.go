package middleware

import (
	"net/http"
	"strings"

	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/redact"
	"github.com/lexiquiz/lexiquiz-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. ok is false when the header is absent; err is set when it is
// present but malformed.
func bearerToken(r *http.Request) (token string, ok bool, err error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false, nil
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true, auth.ErrInvalidToken
	}
	return parts[1], true, nil
}

// Optional adds the user ID to the context when the request carries a valid
// access token. Requests without one, or with an unusable one, continue
// anonymously so the view gate can redirect them to the login view.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present, err := bearerToken(r)
		if !present || err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("ignoring unusable access token", redact.ErrorAttr(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}
