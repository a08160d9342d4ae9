package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens.
// If apiKeys is empty, authentication is disabled (pass-through).
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			validKeys = append(validKeys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		// No keys configured: auth disabled
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := []byte(auth[len(bearerPrefix):])
			if !keyMatches(validKeys, token) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// keyMatches compares token against every key in constant time.
func keyMatches(keys [][]byte, token []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, token)
	}
	return found == 1
}
