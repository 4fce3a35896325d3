package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	pkghttp "github.com/userdesk/userdesk/pkg/http"
)

// RequireAPIKey gates requests behind a static bearer key. The API ships
// with this off (AUTH_REQUIRED=false); the middleware exists so the
// unauthenticated posture is a configuration choice rather than a missing
// capability.
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				pkghttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
