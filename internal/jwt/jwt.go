// Package jwt emite y verifica los tokens de sesión del servicio.
//
// Tokens HS256 con claims estándar más email. Cada token lleva un jti
// único: el logout lo agrega a una denylist en cache hasta su exp, así la
// revocación funciona igual con uno o varios replicas del servicio.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("jwt: invalid token")
	ErrExpiredToken = errors.New("jwt: token expired")
)

// Session son los claims verificados de un token vigente.
type Session struct {
	UserID    string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// Issuer firma y verifica tokens de sesión.
type Issuer struct {
	secret []byte
	iss    string
	ttl    time.Duration

	// now es inyectable para tests.
	now func() time.Time
}

// NewIssuer crea un Issuer HS256.
func NewIssuer(secret, iss string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		iss:    iss,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue emite un token para el usuario. Retorna el token firmado y la
// sesión con el jti y exp asignados.
func (i *Issuer) Issue(userID, email string) (string, Session, error) {
	now := i.now().UTC()
	sess := Session{
		UserID:    userID,
		Email:     email,
		JTI:       uuid.NewString(),
		ExpiresAt: now.Add(i.ttl),
	}

	claims := jwtv5.MapClaims{
		"iss":   i.iss,
		"sub":   userID,
		"email": email,
		"jti":   sess.JTI,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   sess.ExpiresAt.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, sess, nil
}

// Verify parsea y valida firma, issuer y expiración. No consulta la
// denylist: eso es del servicio de auth, que tiene el cache a mano.
func (i *Issuer) Verify(token string) (Session, error) {
	parsed, err := jwtv5.Parse(token, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwtv5.WithIssuer(i.iss),
		jwtv5.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	jti, _ := claims["jti"].(string)
	if sub == "" || jti == "" {
		return Session{}, ErrInvalidToken
	}

	sess := Session{UserID: sub, Email: email, JTI: jti}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}
