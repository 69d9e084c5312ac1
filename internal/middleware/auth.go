package middleware

import (
	"net/http"
	"strings"

	"showroom/internal/auth"
	"showroom/internal/httputil"
)

// publicPrefixes are routes served without a session: health checks, the
// scene preset registry, and share-token resolution for the viewer page.
var publicPrefixes = []string{
	"/health",
	"/api/presets",
	"/api/shared/",
}

// AuthMiddleware validates the Bearer token on every non-public route and
// stamps the authenticated user's id into the request context.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRoute(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
