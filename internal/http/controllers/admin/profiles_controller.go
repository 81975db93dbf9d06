package admin

import (
	"net/http"

	dto "github.com/dropDatabas3/boardz/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	svc "github.com/dropDatabas3/boardz/internal/http/services/admin"
)

// ProfilesController maneja la vista de datos recolectados.
type ProfilesController struct {
	service svc.ProfileService
}

// NewProfilesController crea el controller de la vista de datos.
func NewProfilesController(service svc.ProfileService) *ProfilesController {
	return &ProfilesController{service: service}
}

// List maneja GET /v1/admin/profiles
func (c *ProfilesController) List(w http.ResponseWriter, r *http.Request) {
	entries, err := c.service.List(r.Context())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := make([]dto.ProfileEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.ProfileEntryResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			Email:       e.Email,
			ProfileData: e.ProfileData,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
