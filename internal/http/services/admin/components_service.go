// Package admin provee los servicios del panel de administración:
// registry de componentes, configuración de páginas y vista de datos.
package admin

import (
	"context"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
	"github.com/dropDatabas3/boardz/internal/validation"
)

// CatalogInvalidator descarta el cache de catálogo tras una escritura
// de admin, para que el flujo de onboarding vea el cambio de inmediato.
type CatalogInvalidator interface {
	Invalidate()
}

// noopInvalidator para wiring sin cache (tests).
type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

// CreateComponentInput es el input crudo de creación; el service
// sanitiza y valida antes de tocar el store.
type CreateComponentInput struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Placeholder string
	Options     []string
}

// UpdateComponentInput es el input crudo de actualización.
// Campos nil no se tocan; Name es inmutable.
type UpdateComponentInput struct {
	Label       *string
	Required    *bool
	Placeholder *string
	Options     []string
}

// ComponentService define las operaciones del registry de componentes.
type ComponentService interface {
	Create(ctx context.Context, input CreateComponentInput) (*repository.ComponentDefinition, error)
	List(ctx context.Context) ([]repository.ComponentDefinition, error)
	Update(ctx context.Context, id string, input UpdateComponentInput) (*repository.ComponentDefinition, error)
	Delete(ctx context.Context, id string) error
}

type componentService struct {
	components repository.ComponentRepository
	catalog    CatalogInvalidator
}

// NewComponentService crea el servicio del registry.
// catalog puede ser nil (sin cache que invalidar).
func NewComponentService(components repository.ComponentRepository, catalog CatalogInvalidator) ComponentService {
	if catalog == nil {
		catalog = noopInvalidator{}
	}
	return &componentService{components: components, catalog: catalog}
}

func (s *componentService) Create(ctx context.Context, input CreateComponentInput) (*repository.ComponentDefinition, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.components"),
		logger.Op("Create"),
	)

	name := validation.SanitizeComponentName(input.Name)
	label := validation.SanitizeString(input.Label)

	// Acumular todos los errores de campo en una pasada.
	fields := map[string]string{}
	if msg := validation.ValidateComponentName(name); msg != "" {
		fields["name"] = msg
	}
	if label == "" {
		fields["label"] = "Label is required"
	}
	ctype, err := repository.ParseComponentType(input.Type)
	if err != nil {
		fields["type"] = "Invalid component type"
	}
	if len(fields) > 0 {
		return nil, apperrors.ErrValidationFailed.WithFields(fields)
	}

	// Chequeo explícito antes del insert para devolver el mensaje de
	// dominio; la constraint UNIQUE cubre la carrera.
	existing, err := s.components.FindByName(ctx, name)
	if err != nil {
		log.Error("failed to check component name", logger.Err(err))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrComponentNameTaken
	}

	def, err := s.components.Create(ctx, repository.CreateComponentInput{
		Name:        name,
		Label:       label,
		Type:        ctype,
		Required:    input.Required,
		Placeholder: validation.SanitizeString(input.Placeholder),
		Options:     sanitizeOptions(input.Options),
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, apperrors.ErrComponentNameTaken
		}
		log.Error("failed to create component", logger.Err(err))
		return nil, err
	}

	s.catalog.Invalidate()
	log.Info("component created", logger.ComponentName(def.Name))
	return def, nil
}

func (s *componentService) List(ctx context.Context) ([]repository.ComponentDefinition, error) {
	defs, err := s.components.FindAll(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to list components",
			logger.Layer("service"),
			logger.Component("admin.components"),
			logger.Op("List"),
			logger.Err(err),
		)
		return nil, err
	}
	return defs, nil
}

func (s *componentService) Update(ctx context.Context, id string, input UpdateComponentInput) (*repository.ComponentDefinition, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.components"),
		logger.Op("Update"),
	)

	upd := repository.UpdateComponentInput{
		Required: input.Required,
		Options:  sanitizeOptions(input.Options),
	}
	if input.Label != nil {
		label := validation.SanitizeString(*input.Label)
		if label == "" {
			return nil, apperrors.ErrValidationFailed.WithFields(map[string]string{
				"label": "Label is required",
			})
		}
		upd.Label = &label
	}
	if input.Placeholder != nil {
		ph := validation.SanitizeString(*input.Placeholder)
		upd.Placeholder = &ph
	}

	def, err := s.components.Update(ctx, id, upd)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrComponentNotFound
		}
		log.Error("failed to update component", logger.Err(err))
		return nil, err
	}

	s.catalog.Invalidate()
	log.Info("component updated", logger.ComponentName(def.Name))
	return def, nil
}

func (s *componentService) Delete(ctx context.Context, id string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.components"),
		logger.Op("Delete"),
	)

	if err := s.components.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrComponentNotFound
		}
		log.Error("failed to delete component", logger.Err(err))
		return err
	}

	s.catalog.Invalidate()
	log.Info("component deleted", logger.String("component_id", id))
	return nil
}

func sanitizeOptions(opts []string) []string {
	if opts == nil {
		return nil
	}
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if s := validation.SanitizeString(o); s != "" {
			out = append(out, s)
		}
	}
	return out
}
