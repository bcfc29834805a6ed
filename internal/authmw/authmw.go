// Package authmw provides HTTP middleware authenticating the web frontend
// to this service.
package authmw

import (
	"crypto/subtle"
	"net/http"
)

// HeaderName carries the shared key on every frontend request.
const HeaderName = "X-Internal-Key"

// InternalKey returns middleware that validates the X-Internal-Key header
// against the expected value. Comparison uses constant-time equality to
// prevent timing side-channel attacks. An empty expected key disables the
// check, for local development only.
func InternalKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(HeaderName))

			if subtle.ConstantTimeCompare(got, expected) != 1 {
				http.Error(w, `{"error":"invalid or missing api key"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
