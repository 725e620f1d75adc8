package statusserver

import (
	"crypto/subtle"
	"net/http"
)

type basicAuth struct {
	user   string
	secret string
	realm  string
}

func (a *basicAuth) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(a.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+a.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
