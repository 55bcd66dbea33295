package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

type contextKey string

const (
	// UserContextKey holds the authenticated *models.User, if any.
	UserContextKey contextKey = "user"
	// SessionTokenKey is the gorilla session value carrying the server-side
	// session id.
	SessionTokenKey = "session_id"
)

// AuthMiddleware resolves the session user and enforces route guards.
type AuthMiddleware struct {
	authService services.AuthServiceInterface
	store       sessions.Store
	sessionName string
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(authService services.AuthServiceInterface, store sessions.Store, sessionName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		store:       store,
		sessionName: sessionName,
	}
}

// LoadUser resolves the current session on every request and stores the user
// in the request context. A failing backend lookup settles to "no user"; the
// request proceeds anonymously rather than erroring.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, m.sessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[SessionTokenKey].(string)
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authService.ValidateSession(token)
		if err != nil {
			// Expired or revoked; drop the stale token.
			delete(session.Values, SessionTokenKey)
			_ = session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth ensures a user is signed in.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.guard(next, "")
}

// RequirePermission ensures the signed-in user's role grants a permission.
func (m *AuthMiddleware) RequirePermission(p models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.guard(next, p)
	}
}

func (m *AuthMiddleware) guard(next http.Handler, required models.Permission) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())

		switch Resolve(SessionResolved, user, required) {
		case VerdictAllow:
			next.ServeHTTP(w, r)
		case VerdictSignIn:
			writeGuardResponse(w, http.StatusUnauthorized, "authentication required",
				"/login?redirect="+url.QueryEscape(r.URL.RequestURI()))
		case VerdictForbidden:
			writeGuardResponse(w, http.StatusForbidden, "insufficient permissions", "/unauthorized")
		default:
			// VerdictDefer never happens here: the session is resolved by
			// the time the guard runs.
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
}

func writeGuardResponse(w http.ResponseWriter, status int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":    message,
		"redirect": redirect,
	})
}

// GetUserFromContext returns the authenticated user, or nil.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
