package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dropDatabas3/boardz/internal/http/errors"
)

// RequireAdminKey protege las rutas de administración con una API key
// compartida (header X-Admin-Key).
// Reglas (en este orden):
//  1. Si no hay key configurada: permitir (modo desarrollo).
//  2. Si el header coincide en tiempo constante: permitir.
//     Si no, 401.
func RequireAdminKey(key string) Middleware {
	key = strings.TrimSpace(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := strings.TrimSpace(r.Header.Get("X-Admin-Key"))
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
