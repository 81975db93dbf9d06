// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminctrl "github.com/dropDatabas3/boardz/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/boardz/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/boardz/internal/http/controllers/health"
	onbctrl "github.com/dropDatabas3/boardz/internal/http/controllers/onboarding"
	mw "github.com/dropDatabas3/boardz/internal/http/middlewares"
)

// Deps contiene todo lo que el router necesita para armar el árbol.
type Deps struct {
	// Controllers
	Auth       *authctrl.Controller
	Components *adminctrl.ComponentsController
	Pages      *adminctrl.PagesController
	Profiles   *adminctrl.ProfilesController
	Onboarding *onbctrl.Controller
	Health     *healthctrl.Controller

	// Middlewares
	RequireAuth mw.Middleware // validación de bearer token
	AdminGuard  mw.Middleware // API key de admin
	RateLimit   mw.Middleware // fixed window sobre login/signup
	Base        []mw.Middleware
	Metrics     http.Handler // handler de /metrics
}

// New construye el router chi con todos los endpoints montados.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	for _, m := range deps.Base {
		r.Use(m)
	}

	// Operacional
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(mw.WithNoStore())

			r.Group(func(r chi.Router) {
				if deps.RateLimit != nil {
					r.Use(deps.RateLimit)
				}
				r.Post("/signup", deps.Auth.Signup)
				r.Post("/login", deps.Auth.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(deps.RequireAuth)
				r.Post("/logout", deps.Auth.Logout)
				r.Get("/me", deps.Auth.Me)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.AdminGuard)

			r.Get("/components", deps.Components.List)
			r.Post("/components", deps.Components.Create)
			r.Put("/components/{id}", deps.Components.Update)
			r.Delete("/components/{id}", deps.Components.Delete)

			r.Get("/pages", deps.Pages.List)
			r.Post("/pages/defaults", deps.Pages.Defaults)
			r.Put("/pages/{page}", deps.Pages.Upsert)

			r.Get("/profiles", deps.Profiles.List)
		})

		r.Route("/onboarding", func(r chi.Router) {
			// La config del wizard es pública: el cliente la pide
			// para renderizar antes de tener sesión.
			r.Get("/config", deps.Onboarding.Config)
			r.Get("/steps/{step}", deps.Onboarding.Step)

			r.Group(func(r chi.Router) {
				r.Use(deps.RequireAuth)
				r.Post("/steps/{step}", deps.Onboarding.Submit)
				r.Get("/profile", deps.Onboarding.Profile)
			})
		})
	})

	return r
}
