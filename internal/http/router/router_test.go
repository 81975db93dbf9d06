package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dropDatabas3/boardz/internal/cache"
	"github.com/dropDatabas3/boardz/internal/email"
	adminctrl "github.com/dropDatabas3/boardz/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/boardz/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/boardz/internal/http/controllers/health"
	onbctrl "github.com/dropDatabas3/boardz/internal/http/controllers/onboarding"
	mw "github.com/dropDatabas3/boardz/internal/http/middlewares"
	"github.com/dropDatabas3/boardz/internal/http/router"
	adminsvc "github.com/dropDatabas3/boardz/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/boardz/internal/http/services/auth"
	onbsvc "github.com/dropDatabas3/boardz/internal/http/services/onboarding"
	"github.com/dropDatabas3/boardz/internal/jwt"
	"github.com/dropDatabas3/boardz/internal/rate"
	"github.com/dropDatabas3/boardz/internal/store/memory"
)

const adminKey = "test-admin-key"

// newHandler arma el stack completo sobre store y cache en memoria,
// con el mismo wiring que el server real.
func newHandler(t *testing.T) http.Handler {
	t.Helper()

	mem := memory.New()
	cc, err := cache.New(cache.Config{Driver: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	issuer := jwt.NewIssuer("test-secret-0123456789abcdef0123456789", "boardz-test", time.Hour)

	onboarding := onbsvc.New(mem.Users(), mem.Profiles(), mem.Components(), mem.Pages(), []int{2, 3}, 30*time.Second)
	components := adminsvc.NewComponentService(mem.Components(), onboarding)
	pages := adminsvc.NewPageService(mem.Pages(), mem.Components(), []int{2, 3}, onboarding)
	profiles := adminsvc.NewProfileService(mem.Profiles())
	auth := authsvc.New(mem.Users(), issuer, cc, email.Noop{})

	return router.New(router.Deps{
		Auth:       authctrl.NewController(auth),
		Components: adminctrl.NewComponentsController(components),
		Pages:      adminctrl.NewPagesController(pages),
		Profiles:   adminctrl.NewProfilesController(profiles),
		Onboarding: onbctrl.NewController(onboarding),
		Health:     healthctrl.NewController(mem, cc),

		RequireAuth: mw.WithAuth(auth),
		AdminGuard:  mw.RequireAdminKey(adminKey),
		RateLimit:   mw.WithRateLimit(rate.NewMemoryLimiter(100, time.Minute)),
		Base: []mw.Middleware{
			mw.WithRequestID(),
			mw.WithLogging(zap.NewNop()),
			mw.WithRecover(),
		},
	})
}

type reqOpts struct {
	token    string
	adminKey string
}

func do(t *testing.T, h http.Handler, method, path string, body any, opts reqOpts) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.adminKey != "" {
		req.Header.Set("X-Admin-Key", opts.adminKey)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoints(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/readyz", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/admin/components", nil, reqOpts{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/components", nil, reqOpts{adminKey: "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/components", nil, reqOpts{adminKey: adminKey})
	require.Equal(t, http.StatusOK, rec.Code)
}

// TestOnboardingFlow recorre el camino completo: setup de admin, signup,
// wizard con errores de validación, merge de perfil y revocación de sesión.
func TestOnboardingFlow(t *testing.T) {
	h := newHandler(t)
	asAdmin := reqOpts{adminKey: adminKey}

	// --- Registry de componentes ---
	for _, c := range []map[string]any{
		{"name": "about_me", "label": "About Me", "type": "textarea", "required": true, "placeholder": "Tell us about yourself..."},
		{"name": "birthdate", "label": "Birthdate", "type": "date"},
		{"name": "address", "label": "Address", "type": "address", "required": true},
	} {
		rec := do(t, h, http.MethodPost, "/v1/admin/components", c, asAdmin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// Nombre duplicado
	rec := do(t, h, http.MethodPost, "/v1/admin/components", map[string]any{
		"name": "about_me", "label": "Dup", "type": "text",
	}, asAdmin)
	require.Equal(t, http.StatusConflict, rec.Code)

	// --- Páginas por defecto ---
	rec = do(t, h, http.MethodPost, "/v1/admin/pages/defaults", nil, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var defaults struct {
		Initialized bool `json:"initialized"`
	}
	decode(t, rec, &defaults)
	require.True(t, defaults.Initialized)

	// --- Config pública del wizard ---
	rec = do(t, h, http.MethodGet, "/v1/onboarding/config", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)
	var config struct {
		Steps []struct {
			Step       int `json:"step"`
			Components []struct {
				Name string `json:"name"`
			} `json:"components"`
		} `json:"steps"`
	}
	decode(t, rec, &config)
	require.Len(t, config.Steps, 2)
	require.Equal(t, 2, config.Steps[0].Step)
	require.Equal(t, "about_me", config.Steps[0].Components[0].Name)
	require.Equal(t, "address", config.Steps[1].Components[0].Name)

	// Filtro por paso
	rec = do(t, h, http.MethodGet, "/v1/onboarding/config?step=3", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &config)
	require.Len(t, config.Steps, 1)
	require.Equal(t, 3, config.Steps[0].Step)

	// --- Signup ---
	rec = do(t, h, http.MethodPost, "/v1/auth/signup", map[string]any{
		"email": "ada@example.com", "password": "hunter2hunter2",
	}, reqOpts{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var signup struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, rec, &signup)
	require.NotEmpty(t, signup.Token)
	require.Equal(t, "ada@example.com", signup.User.Email)
	token := reqOpts{token: signup.Token}

	// --- Submit sin sesión ---
	rec = do(t, h, http.MethodPost, "/v1/onboarding/steps/2", map[string]any{
		"values": map[string]any{"about_me": "Hi"},
	}, reqOpts{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// --- Submit inválido: 200 con success=false ---
	rec = do(t, h, http.MethodPost, "/v1/onboarding/steps/2", map[string]any{
		"values": map[string]any{},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var invalid struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	decode(t, rec, &invalid)
	require.False(t, invalid.Success)
	require.Contains(t, invalid.Errors, "about_me")

	// --- Submit válido ---
	rec = do(t, h, http.MethodPost, "/v1/onboarding/steps/2", map[string]any{
		"values": map[string]any{"about_me": "Hello!", "birthdate": "1990-12-01"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var valid struct {
		Success bool           `json:"success"`
		Profile map[string]any `json:"profile"`
	}
	decode(t, rec, &valid)
	require.True(t, valid.Success)
	require.Equal(t, "Hello!", valid.Profile["about_me"])
	require.Equal(t, "ada@example.com", valid.Profile["email"])
	require.Contains(t, valid.Profile, "last_updated")

	// --- Prefill ---
	rec = do(t, h, http.MethodGet, "/v1/onboarding/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var prefill struct {
		Profile map[string]any `json:"profile"`
	}
	decode(t, rec, &prefill)
	require.Equal(t, "Hello!", prefill.Profile["about_me"])

	// --- Vista de admin ---
	rec = do(t, h, http.MethodGet, "/v1/admin/profiles", nil, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []struct {
		Email string `json:"email"`
	}
	decode(t, rec, &entries)
	require.Len(t, entries, 1)
	require.Equal(t, "ada@example.com", entries[0].Email)

	// --- Logout revoca el token ---
	rec = do(t, h, http.MethodPost, "/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/auth/me", nil, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var revoked struct {
		Code string `json:"code"`
	}
	decode(t, rec, &revoked)
	require.Equal(t, "TOKEN_REVOKED", revoked.Code)
}

// TestAdminWritesRefreshCatalog verifica que una escritura de admin se vea
// en la config pública aun con el cache de catálogo caliente.
func TestAdminWritesRefreshCatalog(t *testing.T) {
	h := newHandler(t)
	asAdmin := reqOpts{adminKey: adminKey}

	rec := do(t, h, http.MethodPost, "/v1/admin/components", map[string]any{
		"name": "website", "label": "Website", "type": "url",
	}, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPut, "/v1/admin/pages/2", map[string]any{
		"components": []string{"website"},
	}, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Primer GET puebla el cache.
	rec = do(t, h, http.MethodGet, "/v1/onboarding/steps/2", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/admin/components", map[string]any{
		"name": "nickname", "label": "Nickname", "type": "text",
	}, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPut, "/v1/admin/pages/2", map[string]any{
		"components": []string{"website", "nickname"},
	}, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/onboarding/steps/2", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)
	var step struct {
		Components []struct {
			Name string `json:"name"`
		} `json:"components"`
	}
	decode(t, rec, &step)
	require.Len(t, step.Components, 2)
	require.Equal(t, "nickname", step.Components[1].Name)
}

func TestRateLimitOnCredentials(t *testing.T) {
	mem := memory.New()
	cc, err := cache.New(cache.Config{Driver: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	issuer := jwt.NewIssuer("test-secret-0123456789abcdef0123456789", "boardz-test", time.Hour)
	auth := authsvc.New(mem.Users(), issuer, cc, email.Noop{})
	onboarding := onbsvc.New(mem.Users(), mem.Profiles(), mem.Components(), mem.Pages(), []int{2, 3}, time.Second)

	h := router.New(router.Deps{
		Auth:        authctrl.NewController(auth),
		Components:  adminctrl.NewComponentsController(adminsvc.NewComponentService(mem.Components(), onboarding)),
		Pages:       adminctrl.NewPagesController(adminsvc.NewPageService(mem.Pages(), mem.Components(), []int{2, 3}, onboarding)),
		Profiles:    adminctrl.NewProfilesController(adminsvc.NewProfileService(mem.Profiles())),
		Onboarding:  onbctrl.NewController(onboarding),
		Health:      healthctrl.NewController(mem, cc),
		RequireAuth: mw.WithAuth(auth),
		AdminGuard:  mw.RequireAdminKey(adminKey),
		RateLimit:   mw.WithRateLimit(rate.NewMemoryLimiter(2, time.Minute)),
	})

	body := map[string]any{"email": "ada@example.com", "password": "wrong-password"}
	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/v1/auth/login", body, reqOpts{})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/v1/auth/login", body, reqOpts{})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// El resto del API no está limitado.
	rec = do(t, h, http.MethodGet, "/v1/onboarding/config", nil, reqOpts{})
	require.Equal(t, http.StatusOK, rec.Code)
}
