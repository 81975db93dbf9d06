package admin

import (
	"context"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// ProfileService expone la vista de datos recolectados para el admin.
type ProfileService interface {
	List(ctx context.Context) ([]repository.ProfileListEntry, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService crea el servicio de la vista de datos.
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) List(ctx context.Context) ([]repository.ProfileListEntry, error) {
	entries, err := s.profiles.ListAll(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to list profiles",
			logger.Layer("service"),
			logger.Component("admin.profiles"),
			logger.Op("List"),
			logger.Err(err),
		)
		return nil, err
	}
	return entries, nil
}
