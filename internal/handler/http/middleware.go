package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/nuvoshop/wishlist-service/pkg/httputil"

	"github.com/nuvoshop/wishlist-service/internal/auth"
	"github.com/nuvoshop/wishlist-service/internal/domain"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// sessionKey is the context key for the resolved storefront session.
const sessionKey contextKey = "session"

// ResolveSession is middleware that builds the storefront session from request
// headers: X-Store-ID identifies the tenant, a bearer token identifies an
// authenticated user, and X-Guest-Session identifies a guest. A request must
// carry at least one identity; a bad bearer token is rejected outright rather
// than downgraded to a guest.
func ResolveSession(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storeID := r.Header.Get("X-Store-ID")
			if storeID == "" {
				httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Store-ID header is required"},
				})
				return
			}

			session := domain.Session{
				StoreID: storeID,
				GuestID: r.Header.Get("X-Guest-Session"),
			}

			if authz := r.Header.Get("Authorization"); authz != "" {
				token, ok := strings.CutPrefix(authz, "Bearer ")
				if !ok {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "Authorization header must use the Bearer scheme"},
					})
					return
				}
				claims, err := verifier.Verify(token)
				if err != nil {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
					})
					return
				}
				session.UserID = claims.UserID
				session.Token = token
			}

			if !session.Authenticated() && session.GuestID == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "a bearer token or X-Guest-Session header is required"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext extracts the resolved session from the request context.
func sessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
