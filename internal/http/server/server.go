// Package server arma el servidor HTTP: wiring de dependencias y ciclo
// de vida (arranque y shutdown graceful).
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/boardz/internal/cache"
	"github.com/dropDatabas3/boardz/internal/config"
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
	"github.com/dropDatabas3/boardz/internal/metrics"
	"github.com/dropDatabas3/boardz/internal/rate"
	"github.com/dropDatabas3/boardz/internal/store"
)

// shutdownTimeout acota el drenado de requests en vuelo.
const shutdownTimeout = 10 * time.Second

// Server es el servicio HTTP armado y listo para correr.
type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	http  *http.Server
	store store.Store
	cache cache.Client
}

// Build instancia todas las dependencias y arma el handler.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	// 1. Store
	st, err := store.New(ctx, store.Config{
		Driver:       cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("server: init store: %w", err)
	}

	// 2. Cache
	cc, err := cache.New(cache.Config{
		Driver:   cfg.Cache.Kind,
		Host:     cfg.Cache.Redis.Host,
		Port:     cfg.Cache.Redis.Port,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("server: init cache: %w", err)
	}

	// 3. Issuer + email
	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTTL())
	sender := email.New(email.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.From,
		TLSMode:   cfg.SMTP.TLS,
	})

	// 4. Services. El servicio de onboarding dueño del cache de
	// catálogo; los services de admin lo invalidan al escribir.
	onboarding := onbsvc.New(
		st.Users(), st.Profiles(), st.Components(), st.Pages(),
		cfg.Onboarding.Pages, cfg.CatalogTTL(),
	)
	components := adminsvc.NewComponentService(st.Components(), onboarding)
	pages := adminsvc.NewPageService(st.Pages(), st.Components(), cfg.Onboarding.Pages, onboarding)
	profiles := adminsvc.NewProfileService(st.Profiles())
	auth := authsvc.New(st.Users(), issuer, cc, sender)

	// 5. Rate limiter de credenciales: redis cuando el cache es redis
	// (compartido entre réplicas), in-process en caso contrario.
	var limiter rate.Limiter
	if cfg.RateLimit.Max > 0 {
		if cfg.Cache.Kind == "redis" {
			limiter = rate.NewRedisLimiter(redis.NewClient(&redis.Options{
				Addr:     fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			}), cfg.Cache.Redis.Prefix+"rl:", cfg.RateLimit.Max, cfg.RateWindow())
		} else {
			limiter = rate.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateWindow())
		}
	}

	// 6. Métricas
	metricsHandler, err := metrics.Register(nil)
	if err != nil {
		_ = st.Close()
		_ = cc.Close()
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}

	// 7. Router
	handler := router.New(router.Deps{
		Auth:       authctrl.NewController(auth),
		Components: adminctrl.NewComponentsController(components),
		Pages:      adminctrl.NewPagesController(pages),
		Profiles:   adminctrl.NewProfilesController(profiles),
		Onboarding: onbctrl.NewController(onboarding),
		Health:     healthctrl.NewController(st, cc),

		RequireAuth: mw.WithAuth(auth),
		AdminGuard:  mw.RequireAdminKey(cfg.Admin.APIKey),
		RateLimit:   mw.WithRateLimit(limiter),
		Base: []mw.Middleware{
			mw.WithRequestID(),
			mw.WithLogging(log),
			mw.WithMetrics(),
			mw.WithRecover(),
			mw.WithCORS(cfg.Server.CORSAllowedOrigins),
		},
		Metrics: metricsHandler,
	})

	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store: st,
		cache: cc,
	}, nil
}

// Run arranca el listener y bloquea hasta que ctx se cancele o el
// listener falle. Al salir drena las conexiones y cierra store y cache.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	if cerr := s.store.Close(); cerr != nil {
		s.log.Warn("store close failed", zap.Error(cerr))
	}
	if cerr := s.cache.Close(); cerr != nil {
		s.log.Warn("cache close failed", zap.Error(cerr))
	}

	return err
}
