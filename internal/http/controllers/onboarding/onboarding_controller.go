// Package onboarding contiene los controllers del flujo de onboarding.
package onboarding

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/boardz/internal/http/dto/onboarding"
	httperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	"github.com/dropDatabas3/boardz/internal/http/middlewares"
	svc "github.com/dropDatabas3/boardz/internal/http/services/onboarding"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// Controller maneja las rutas /v1/onboarding
type Controller struct {
	service svc.Service
}

// NewController crea el controller de onboarding.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Config maneja GET /v1/onboarding/config. Con ?step=n devuelve solo
// ese paso, mismo shape que la respuesta completa.
func (c *Controller) Config(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("step"); raw != "" {
		step, err := strconv.Atoi(raw)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("step must be a number"))
			return
		}
		view, err := c.service.Step(r.Context(), step)
		if err != nil {
			httperrors.WriteError(w, err)
			return
		}
		helpers.WriteJSON(w, http.StatusOK, dto.ConfigResponse{Steps: []dto.StepConfig{toStepConfig(*view)}})
		return
	}

	views, err := c.service.Config(r.Context())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := dto.ConfigResponse{Steps: make([]dto.StepConfig, 0, len(views))}
	for _, v := range views {
		resp.Steps = append(resp.Steps, toStepConfig(v))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Step maneja GET /v1/onboarding/steps/{step}
func (c *Controller) Step(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("step must be a number"))
		return
	}

	view, err := c.service.Step(r.Context(), step)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toStepConfig(*view))
}

// Submit maneja POST /v1/onboarding/steps/{step}. Requiere sesión.
func (c *Controller) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("OnboardingController.Submit"),
	)

	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("step must be a number"))
		return
	}

	sess, ok := middlewares.GetSession(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Submit(ctx, sess, step, req.Values)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if len(result.ValidationErrors) > 0 {
		// 200 con success=false: los errores de campo son parte del
		// contrato del wizard, no un fallo del request.
		helpers.WriteJSON(w, http.StatusOK, dto.SubmitResponse{
			Success: false,
			Errors:  result.ValidationErrors,
		})
		return
	}

	log.Info("step submitted", logger.Step(step))
	helpers.WriteJSON(w, http.StatusOK, dto.SubmitResponse{
		Success: true,
		Profile: result.Profile,
	})
}

// Profile maneja GET /v1/onboarding/profile. Requiere sesión.
func (c *Controller) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := middlewares.GetSession(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	profile, err := c.service.Profile(ctx, sess)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.ProfileResponse{Profile: profile})
}

func toStepConfig(v svc.StepView) dto.StepConfig {
	cfg := dto.StepConfig{Step: v.Step, Components: make([]dto.ComponentView, 0, len(v.Components))}
	for _, d := range v.Components {
		cfg.Components = append(cfg.Components, dto.ComponentView{
			Name:        d.Name,
			Label:       d.Label,
			Type:        string(d.Type),
			Required:    d.Required,
			Placeholder: d.Placeholder,
			Options:     d.Options,
		})
	}
	return cfg
}
