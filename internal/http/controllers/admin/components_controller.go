// Package admin contiene los controllers del panel de administración.
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	dto "github.com/dropDatabas3/boardz/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	svc "github.com/dropDatabas3/boardz/internal/http/services/admin"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// ComponentsController maneja las rutas /v1/admin/components
type ComponentsController struct {
	service svc.ComponentService
}

// NewComponentsController crea el controller del registry.
func NewComponentsController(service svc.ComponentService) *ComponentsController {
	return &ComponentsController{service: service}
}

// List maneja GET /v1/admin/components
func (c *ComponentsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defs, err := c.service.List(ctx)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := make([]dto.ComponentResponse, 0, len(defs))
	for _, d := range defs {
		resp = append(resp, toComponentResponse(d))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create maneja POST /v1/admin/components
func (c *ComponentsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ComponentsController.Create"),
	)

	var req dto.ComponentRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	def, err := c.service.Create(ctx, svc.CreateComponentInput{
		Name:        req.Name,
		Label:       req.Label,
		Type:        req.Type,
		Required:    req.Required,
		Placeholder: req.Placeholder,
		Options:     req.Options,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	log.Info("component created", logger.ComponentName(def.Name))
	helpers.WriteJSON(w, http.StatusCreated, toComponentResponse(*def))
}

// Update maneja PUT /v1/admin/components/{id}
func (c *ComponentsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("missing component id"))
		return
	}

	var req dto.ComponentUpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	def, err := c.service.Update(ctx, id, svc.UpdateComponentInput{
		Label:       req.Label,
		Required:    req.Required,
		Placeholder: req.Placeholder,
		Options:     req.Options,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toComponentResponse(*def))
}

// Delete maneja DELETE /v1/admin/components/{id}
func (c *ComponentsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("missing component id"))
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toComponentResponse(d repository.ComponentDefinition) dto.ComponentResponse {
	return dto.ComponentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Label:       d.Label,
		Type:        string(d.Type),
		Required:    d.Required,
		Placeholder: d.Placeholder,
		Options:     d.Options,
		CreatedAt:   d.CreatedAt,
	}
}
