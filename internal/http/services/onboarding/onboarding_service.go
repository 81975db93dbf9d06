// Package onboarding implementa el flujo de pasos del wizard: config
// dinámica de formularios, validación, merge de perfil y prefill.
package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/jwt"
	"github.com/dropDatabas3/boardz/internal/metrics"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
	"github.com/dropDatabas3/boardz/internal/validation"
)

// StepView es un paso del wizard con sus componentes resueltos, en el
// orden configurado. Names sin definición en el registry se omiten.
type StepView struct {
	Step       int
	Components []repository.ComponentDefinition
}

// SubmitResult es el resultado de un envío de paso.
// Cuando ValidationErrors no está vacío el merge no ocurrió y Profile es nil.
type SubmitResult struct {
	Profile          map[string]any
	ValidationErrors map[string]string
}

// Service define las operaciones del flujo de onboarding.
type Service interface {
	Config(ctx context.Context) ([]StepView, error)
	Step(ctx context.Context, step int) (*StepView, error)
	Submit(ctx context.Context, sess jwt.Session, step int, values map[string]any) (*SubmitResult, error)
	Profile(ctx context.Context, sess jwt.Session) (map[string]any, error)
}

// Invalidate expone la invalidación del cache de catálogo para que las
// escrituras de admin la llamen (vía admin.CatalogInvalidator).
func (s *Onboarding) Invalidate() { s.catalog.Invalidate() }

type Onboarding struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	// Páginas del wizard con formulario dinámico, en orden.
	steps   []int
	catalog *catalogCache

	// now estampa last_updated; inyectable para tests.
	now func() time.Time
}

// New crea el servicio de onboarding. steps son las páginas dinámicas
// del wizard y ttl la ventana del cache de catálogo.
func New(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	components repository.ComponentRepository,
	pages repository.PageConfigRepository,
	steps []int,
	ttl time.Duration,
) *Onboarding {
	s := &Onboarding{
		users:    users,
		profiles: profiles,
		steps:    steps,
		now:      time.Now,
	}
	s.catalog = newCatalogCache(ttl, func(ctx context.Context) (*Catalog, error) {
		defs, err := components.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		cfgs, err := pages.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return &Catalog{Definitions: defs, Pages: cfgs}, nil
	})
	return s
}

func (s *Onboarding) Config(ctx context.Context) ([]StepView, error) {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to load catalog",
			logger.Layer("service"),
			logger.Component("onboarding"),
			logger.Op("Config"),
			logger.Err(err),
		)
		return nil, err
	}

	views := make([]StepView, 0, len(s.steps))
	for _, step := range s.steps {
		views = append(views, resolveStep(cat, step))
	}
	return views, nil
}

func (s *Onboarding) Step(ctx context.Context, step int) (*StepView, error) {
	if !s.isStep(step) {
		return nil, apperrors.ErrNotFound.WithDetail(fmt.Sprintf("step %d does not exist", step))
	}

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to load catalog",
			logger.Layer("service"),
			logger.Component("onboarding"),
			logger.Op("Step"),
			logger.Step(step),
			logger.Err(err),
		)
		return nil, err
	}

	view := resolveStep(cat, step)
	return &view, nil
}

func (s *Onboarding) Submit(ctx context.Context, sess jwt.Session, step int, values map[string]any) (*SubmitResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("onboarding"),
		logger.Op("Submit"),
		logger.UserID(sess.UserID),
		logger.Step(step),
	)

	if !s.isStep(step) {
		return nil, apperrors.ErrNotFound.WithDetail(fmt.Sprintf("step %d does not exist", step))
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		log.Error("failed to load user", logger.Err(err))
		return nil, err
	}

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		log.Error("failed to load catalog", logger.Err(err))
		return nil, err
	}
	cfg := cat.PageConfig(step)

	validator := validation.NewFormValidator(cfg, cat.Definitions)
	if errs := validator.Validate(values); len(errs) > 0 {
		metrics.SubmissionsTotal.WithLabelValues(fmt.Sprint(step), "invalid").Inc()
		log.Info("submission rejected", logger.Count(len(errs)))
		return &SubmitResult{ValidationErrors: errs}, nil
	}

	// Solo entran al merge los campos configurados para esta página,
	// ya sanitizados por tipo.
	fields := validation.SanitizeSubmission(values, cfg, cat.Definitions)
	fields["email"] = user.Email
	fields["last_updated"] = s.now().UTC().Format(time.RFC3339)

	profile, err := s.profiles.Merge(ctx, user.ID, fields)
	if err != nil {
		log.Error("failed to merge profile", logger.Err(err))
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(fmt.Sprint(step), "ok").Inc()
	log.Info("step submitted", logger.Count(len(fields)))
	return &SubmitResult{Profile: profile.ProfileData}, nil
}

// Profile devuelve el profile_data acumulado, {} si todavía no hay.
// La ausencia de perfil no es un error: el wizard arranca vacío.
func (s *Onboarding) Profile(ctx context.Context, sess jwt.Session) (map[string]any, error) {
	profile, err := s.profiles.GetByUserID(ctx, sess.UserID)
	if err != nil {
		logger.From(ctx).Error("failed to load profile",
			logger.Layer("service"),
			logger.Component("onboarding"),
			logger.Op("Profile"),
			logger.UserID(sess.UserID),
			logger.Err(err),
		)
		return nil, err
	}
	if profile == nil || profile.ProfileData == nil {
		return map[string]any{}, nil
	}
	return profile.ProfileData, nil
}

func (s *Onboarding) isStep(step int) bool {
	for _, p := range s.steps {
		if p == step {
			return true
		}
	}
	return false
}

// resolveStep arma la vista de un paso: names de la config resueltos
// contra el registry, preservando el orden configurado.
func resolveStep(cat *Catalog, step int) StepView {
	view := StepView{Step: step, Components: []repository.ComponentDefinition{}}
	cfg := cat.PageConfig(step)
	if cfg == nil {
		return view
	}
	byName := cat.ByName()
	for _, name := range cfg.Components {
		if def, ok := byName[name]; ok {
			view.Components = append(view.Components, def)
		}
	}
	return view
}
