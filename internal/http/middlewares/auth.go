package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/jwt"
)

// Authenticator valida un bearer token y devuelve la sesión asociada.
// La implementación real (services/auth) verifica firma, expiración y
// que el jti no esté revocado.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (jwt.Session, error)
}

// WithAuth exige un token Bearer válido y deja la sesión en el contexto.
// Sin token o con token inválido responde 401 con WWW-Authenticate.
func WithAuth(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="boardz"`)
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("missing bearer token"))
				return
			}

			sess, err := a.Authenticate(r.Context(), raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="boardz", error="invalid_token"`)
				errors.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
		})
	}
}

// bearerToken extrae el token del header Authorization.
// Retorna cadena vacía si no hay token o el esquema no es Bearer.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
