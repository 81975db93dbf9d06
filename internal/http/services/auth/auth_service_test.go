package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/boardz/internal/cache"
	"github.com/dropDatabas3/boardz/internal/email"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	svc "github.com/dropDatabas3/boardz/internal/http/services/auth"
	"github.com/dropDatabas3/boardz/internal/jwt"
	"github.com/dropDatabas3/boardz/internal/store/memory"
)

func newAuthFixture(t *testing.T) svc.Service {
	t.Helper()
	mem := memory.New()
	cc, err := cache.New(cache.Config{Driver: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	issuer := jwt.NewIssuer("test-secret-0123456789abcdef0123456789", "boardz-test", time.Hour)
	return svc.New(mem.Users(), issuer, cc, email.Noop{})
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	result, err := auth.Signup(ctx, "  Ada@Example.COM ", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", result.User.Email, "email gets normalized")
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.Session.JTI)

	login, err := auth.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, result.User.ID, login.User.ID)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	_, err := auth.Signup(ctx, "not-an-email", "short")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "VALIDATION_FAILED", appErr.Code)
	require.Contains(t, appErr.Fields, "email")
	require.Contains(t, appErr.Fields, "password")
	require.Equal(t, "Password must be at least 8 characters", appErr.Fields["password"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	_, err := auth.Signup(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = auth.Signup(ctx, "ada@example.com", "otherpassword")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "EMAIL_ALREADY_IN_USE", appErr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	_, err := auth.Signup(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	// Usuario inexistente y password incorrecto responden igual.
	for _, tc := range []struct{ email, pass string }{
		{"nobody@example.com", "hunter2hunter2"},
		{"ada@example.com", "wrong-password"},
	} {
		_, err := auth.Login(ctx, tc.email, tc.pass)
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	result, err := auth.Signup(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	sess, err := auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, sess.UserID)
	require.Equal(t, "ada@example.com", sess.Email)

	_, err = auth.Authenticate(ctx, "garbage.token.here")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "TOKEN_INVALID", appErr.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	result, err := auth.Signup(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	// Vigente antes del logout.
	_, err = auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, result.Session))

	_, err = auth.Authenticate(ctx, result.Token)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "TOKEN_REVOKED", appErr.Code)

	// Un segundo token del mismo usuario sigue vigente: se revoca el
	// jti, no la cuenta.
	login, err := auth.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	result, err := auth.Signup(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	user, err := auth.Me(ctx, result.Session)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)

	_, err = auth.Me(ctx, jwt.Session{UserID: "00000000-0000-0000-0000-000000000000"})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "USER_NOT_FOUND", appErr.Code)
}
