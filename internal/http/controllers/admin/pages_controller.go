package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	dto "github.com/dropDatabas3/boardz/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	svc "github.com/dropDatabas3/boardz/internal/http/services/admin"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// PagesController maneja las rutas /v1/admin/pages
type PagesController struct {
	service svc.PageService
}

// NewPagesController crea el controller de configuración de páginas.
func NewPagesController(service svc.PageService) *PagesController {
	return &PagesController{service: service}
}

// List maneja GET /v1/admin/pages
func (c *PagesController) List(w http.ResponseWriter, r *http.Request) {
	configs, err := c.service.List(r.Context())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := make([]dto.PageConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		resp = append(resp, toPageConfigResponse(cfg))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Upsert maneja PUT /v1/admin/pages/{page}
func (c *PagesController) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("PagesController.Upsert"),
	)

	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("page must be a number"))
		return
	}

	var req dto.PageConfigRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	cfg, err := c.service.Upsert(ctx, page, req.Components)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	log.Info("page config updated", logger.Page(page))
	helpers.WriteJSON(w, http.StatusOK, toPageConfigResponse(*cfg))
}

// Defaults maneja POST /v1/admin/pages/defaults
func (c *PagesController) Defaults(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.InitializeDefaults(r.Context())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := dto.DefaultsResponse{Initialized: result.Initialized}
	for _, cfg := range result.Pages {
		resp.Pages = append(resp.Pages, toPageConfigResponse(cfg))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

func toPageConfigResponse(cfg repository.PageConfig) dto.PageConfigResponse {
	return dto.PageConfigResponse{
		Page:       cfg.Page,
		Components: cfg.Components,
		UpdatedAt:  cfg.UpdatedAt,
	}
}
