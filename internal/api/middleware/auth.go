package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ogrenci-destek/destekai/internal/api"
)

type contextKey string

// adminUsername is the only accepted Basic auth user.
const adminUsername = "admin"

// AdminBasicAuth protects the admin surface with HTTP Basic auth. Both the
// username and the password are compared in constant time.
func AdminBasicAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(adminUsername)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if !userOK || !passOK {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
	api.Error(w, http.StatusUnauthorized, "invalid credentials")
}
