// Package auth implementa signup, login, logout y validación de sesión.
//
// Los tokens son HS256 de corta vida; logout revoca el jti en el cache
// hasta el exp del token, así la revocación funciona con cualquier
// backend de cache compartido entre réplicas.
package auth

import (
	"context"
	"time"

	"github.com/dropDatabas3/boardz/internal/cache"
	"github.com/dropDatabas3/boardz/internal/domain/repository"
	"github.com/dropDatabas3/boardz/internal/email"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/jwt"
	"github.com/dropDatabas3/boardz/internal/metrics"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
	"github.com/dropDatabas3/boardz/internal/security/password"
	"github.com/dropDatabas3/boardz/internal/validation"
)

// denylistPrefix antecede al jti revocado en el cache.
const denylistPrefix = "denylist:jti:"

// AuthResult es el resultado de signup y login: el token firmado, la
// sesión asociada y el usuario.
type AuthResult struct {
	Token   string
	Session jwt.Session
	User    *repository.User
}

// Service define las operaciones de autenticación.
type Service interface {
	Signup(ctx context.Context, rawEmail, plainPassword string) (*AuthResult, error)
	Login(ctx context.Context, rawEmail, plainPassword string) (*AuthResult, error)
	Logout(ctx context.Context, sess jwt.Session) error
	// Authenticate valida un token firmado y que su jti no esté revocado.
	// Es la implementación detrás del middleware de auth.
	Authenticate(ctx context.Context, token string) (jwt.Session, error)
	Me(ctx context.Context, sess jwt.Session) (*repository.User, error)
}

type service struct {
	users  repository.UserRepository
	issuer *jwt.Issuer
	cache  cache.Client
	sender email.Sender
	hash   password.Params
}

// New crea el servicio de auth. sender puede ser email.Noop.
func New(users repository.UserRepository, issuer *jwt.Issuer, c cache.Client, sender email.Sender) Service {
	return &service{
		users:  users,
		issuer: issuer,
		cache:  c,
		sender: sender,
		hash:   password.Default,
	}
}

func (s *service) Signup(ctx context.Context, rawEmail, plainPassword string) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Signup"),
	)

	addr := validation.SanitizeEmail(rawEmail)

	fields := map[string]string{}
	if msg := validation.ValidateEmail(addr); msg != "" {
		fields["email"] = msg
	}
	if err := password.Validate(plainPassword); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, apperrors.ErrValidationFailed.WithFields(fields)
	}

	phc, err := password.Hash(s.hash, plainPassword)
	if err != nil {
		log.Error("failed to hash password", logger.Err(err))
		return nil, err
	}

	user, err := s.users.Create(ctx, repository.CreateUserInput{
		Email:        addr,
		PasswordHash: phc,
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, apperrors.ErrEmailAlreadyInUse
		}
		log.Error("failed to create user", logger.Err(err))
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	log.Info("user signed up", logger.UserID(user.ID))

	// Welcome email es best-effort: un SMTP caído no puede romper el
	// signup ni demorarlo.
	go func(ctx context.Context, to string) {
		if err := email.SendWelcome(ctx, s.sender, to); err != nil {
			log.Warn("failed to send welcome email", logger.Err(err))
		}
	}(context.WithoutCancel(ctx), user.Email)

	return s.issueFor(ctx, user)
}

func (s *service) Login(ctx context.Context, rawEmail, plainPassword string) (*AuthResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Login"),
	)

	addr := validation.SanitizeEmail(rawEmail)

	user, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if repository.IsNotFound(err) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		log.Error("failed to load user", logger.Err(err))
		return nil, err
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	log.Info("user logged in", logger.UserID(user.ID))
	return s.issueFor(ctx, user)
}

func (s *service) Logout(ctx context.Context, sess jwt.Session) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Logout"),
		logger.UserID(sess.UserID),
	)

	// Revocar solo hasta el exp: después el token muere solo.
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, denylistPrefix+sess.JTI, "revoked", ttl); err != nil {
		log.Error("failed to revoke session", logger.Err(err))
		return err
	}

	log.Info("session revoked")
	return nil
}

func (s *service) Authenticate(ctx context.Context, token string) (jwt.Session, error) {
	sess, err := s.issuer.Verify(token)
	if err != nil {
		if err == jwt.ErrExpiredToken {
			return jwt.Session{}, apperrors.ErrTokenExpired
		}
		return jwt.Session{}, apperrors.ErrTokenInvalid
	}

	revoked, err := s.cache.Exists(ctx, denylistPrefix+sess.JTI)
	if err != nil {
		logger.From(ctx).Error("failed to check denylist",
			logger.Layer("service"),
			logger.Component("auth"),
			logger.Op("Authenticate"),
			logger.Err(err),
		)
		return jwt.Session{}, apperrors.ErrServiceUnavailable.WithCause(err)
	}
	if revoked {
		return jwt.Session{}, apperrors.ErrTokenRevoked
	}

	return sess, nil
}

func (s *service) Me(ctx context.Context, sess jwt.Session) (*repository.User, error) {
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.From(ctx).Error("failed to load user",
			logger.Layer("service"),
			logger.Component("auth"),
			logger.Op("Me"),
			logger.Err(err),
		)
		return nil, err
	}
	return user, nil
}

func (s *service) issueFor(ctx context.Context, user *repository.User) (*AuthResult, error) {
	token, sess, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		logger.From(ctx).Error("failed to issue token",
			logger.Layer("service"),
			logger.Component("auth"),
			logger.Err(err),
		)
		return nil, err
	}
	return &AuthResult{Token: token, Session: sess, User: user}, nil
}
