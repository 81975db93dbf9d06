package middlewares

import (
	"context"

	"github.com/dropDatabas3/boardz/internal/jwt"
)

type ctxKey string

const (
	// ctxSessionKey guarda la sesión extraída del token
	ctxSessionKey ctxKey = "session"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// withSession inyecta la sesión en el contexto (interno, usado por WithAuth)
func withSession(ctx context.Context, s jwt.Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey, s)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetSession obtiene la sesión del contexto.
// Retorna (Session{}, false) si la ruta no pasó por WithAuth.
func GetSession(ctx context.Context) (jwt.Session, bool) {
	if v := ctx.Value(ctxSessionKey); v != nil {
		if s, ok := v.(jwt.Session); ok {
			return s, true
		}
	}
	return jwt.Session{}, false
}

// GetUserID obtiene el user ID del contexto.
// Retorna cadena vacía si no hay sesión.
func GetUserID(ctx context.Context) string {
	if s, ok := GetSession(ctx); ok {
		return s.UserID
	}
	return ""
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
