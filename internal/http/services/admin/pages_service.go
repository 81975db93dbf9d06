package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// Componentes preferidos por el setup por defecto, en orden.
const (
	defaultAboutMe   = "about_me"
	defaultBirthdate = "birthdate"
	defaultAddress   = "address"
)

// DefaultsResult es el resultado de InitializeDefaults.
type DefaultsResult struct {
	// Initialized es false cuando las páginas ya estaban configuradas
	// y no se escribió nada.
	Initialized bool
	Pages       []repository.PageConfig
}

// PageService define las operaciones sobre la configuración de páginas.
type PageService interface {
	List(ctx context.Context) ([]repository.PageConfig, error)
	Upsert(ctx context.Context, page int, components []string) (*repository.PageConfig, error)
	InitializeDefaults(ctx context.Context) (*DefaultsResult, error)
}

type pageService struct {
	pages      repository.PageConfigRepository
	components repository.ComponentRepository
	// Páginas configurables del wizard; cada una exige al menos un componente.
	configurable []int
	catalog      CatalogInvalidator
}

// NewPageService crea el servicio de configuración de páginas.
// configurable son las páginas del wizard (típicamente 2 y 3).
func NewPageService(pages repository.PageConfigRepository, components repository.ComponentRepository, configurable []int, catalog CatalogInvalidator) PageService {
	if catalog == nil {
		catalog = noopInvalidator{}
	}
	return &pageService{
		pages:        pages,
		components:   components,
		configurable: configurable,
		catalog:      catalog,
	}
}

func (s *pageService) List(ctx context.Context) ([]repository.PageConfig, error) {
	configs, err := s.pages.FindAll(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to list page configs",
			logger.Layer("service"),
			logger.Component("admin.pages"),
			logger.Op("List"),
			logger.Err(err),
		)
		return nil, err
	}
	return configs, nil
}

func (s *pageService) Upsert(ctx context.Context, page int, components []string) (*repository.PageConfig, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.pages"),
		logger.Op("Upsert"),
		logger.Page(page),
	)

	if !s.isConfigurable(page) {
		return nil, apperrors.ErrInvalidParameter.WithDetail(
			fmt.Sprintf("page %d is not part of the onboarding flow", page))
	}

	if len(components) == 0 {
		return nil, apperrors.New(400, "PAGE_CONFIG_INVALID",
			fmt.Sprintf("Page %d must have at least one component", page))
	}

	// Integridad referencial contra el registry: todos los names deben
	// resolver, y el error lista todos los que no.
	defs, err := s.components.FindAll(ctx)
	if err != nil {
		log.Error("failed to load component registry", logger.Err(err))
		return nil, err
	}
	known := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		known[d.Name] = struct{}{}
	}
	var invalid []string
	for _, name := range components {
		if _, ok := known[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return nil, apperrors.New(400, "PAGE_CONFIG_INVALID",
			"Invalid components: "+strings.Join(invalid, ", "))
	}

	cfg, err := s.pages.Upsert(ctx, page, components)
	if err != nil {
		log.Error("failed to upsert page config", logger.Err(err))
		return nil, err
	}

	s.catalog.Invalidate()
	log.Info("page config updated", logger.Count(len(components)))
	return cfg, nil
}

// InitializeDefaults arma la configuración inicial de las páginas del
// wizard a partir del registry. Idempotente: si todas las páginas
// configurables ya tienen config, no escribe nada.
func (s *pageService) InitializeDefaults(ctx context.Context) (*DefaultsResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.pages"),
		logger.Op("InitializeDefaults"),
	)

	existing, err := s.pages.FindAll(ctx)
	if err != nil {
		log.Error("failed to load page configs", logger.Err(err))
		return nil, err
	}
	configured := make(map[int]struct{}, len(existing))
	for _, c := range existing {
		configured[c.Page] = struct{}{}
	}
	all := true
	for _, p := range s.configurable {
		if _, ok := configured[p]; !ok {
			all = false
			break
		}
	}
	if all {
		return &DefaultsResult{Initialized: false, Pages: existing}, nil
	}

	defs, err := s.components.FindAll(ctx)
	if err != nil {
		log.Error("failed to load component registry", logger.Err(err))
		return nil, err
	}
	if len(defs) == 0 {
		return nil, apperrors.New(400, "NO_COMPONENTS",
			"No components available for default setup")
	}

	names := make([]string, len(defs))
	has := make(map[string]bool, len(defs))
	for i, d := range defs {
		names[i] = d.Name
		has[d.Name] = true
	}

	// Página 2: about_me, si no birthdate, si no el primero disponible.
	var page2 []string
	switch {
	case has[defaultAboutMe]:
		page2 = []string{defaultAboutMe}
	case has[defaultBirthdate]:
		page2 = []string{defaultBirthdate}
	default:
		page2 = []string{names[0]}
	}

	// Página 3: address, si no el primero que no usó la página 2,
	// si no el segundo componente, si no el único que hay.
	var page3 []string
	if has[defaultAddress] {
		page3 = []string{defaultAddress}
	} else {
		used := make(map[string]bool, len(page2))
		for _, n := range page2 {
			used[n] = true
		}
		var remaining []string
		for _, n := range names {
			if !used[n] {
				remaining = append(remaining, n)
			}
		}
		switch {
		case len(remaining) > 0:
			page3 = []string{remaining[0]}
		case len(names) > 1:
			page3 = []string{names[1]}
		default:
			page3 = []string{names[0]}
		}
	}

	result := &DefaultsResult{Initialized: true}
	for _, d := range []struct {
		page       int
		components []string
	}{{2, page2}, {3, page3}} {
		cfg, err := s.pages.Upsert(ctx, d.page, d.components)
		if err != nil {
			log.Error("failed to write default page config",
				logger.Page(d.page), logger.Err(err))
			return nil, err
		}
		result.Pages = append(result.Pages, *cfg)
	}

	s.catalog.Invalidate()
	log.Info("default page configs initialized", logger.Count(len(result.Pages)))
	return result, nil
}

func (s *pageService) isConfigurable(page int) bool {
	for _, p := range s.configurable {
		if p == page {
			return true
		}
	}
	return false
}
