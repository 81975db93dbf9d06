package repository

import (
	"context"
	"time"
)

// UserProfile es el documento JSON acumulado de un usuario a lo largo del
// onboarding. Las keys de ProfileData las determina el registry de
// componentes; el store no impone schema sobre ellas.
type UserProfile struct {
	ID          string
	UserID      string
	ProfileData map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileListEntry es un perfil aplanado con el email del usuario,
// para la vista de datos del admin.
type ProfileListEntry struct {
	ID          string
	UserID      string
	Email       string
	ProfileData map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileRepository define operaciones sobre perfiles de usuario.
//
// Merge es la única mutación: shallow-merge upsert por user_id. Keys nuevas
// sobreescriben, keys omitidas se preservan. No hay historial ni tokens de
// concurrencia: dos merges concurrentes resuelven last-write-wins.
type ProfileRepository interface {
	// GetByUserID busca el perfil de un usuario.
	// Retorna (nil, nil) si no existe; la ausencia de perfil no es un error.
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)

	// Merge hace shallow-merge de fields sobre el profile_data existente
	// (documento vacío si no hay fila) y upsert ON CONFLICT (user_id).
	Merge(ctx context.Context, userID string, fields map[string]any) (*UserProfile, error)

	// ListAll retorna todos los perfiles con el email del usuario,
	// ordenados por created_at desc.
	ListAll(ctx context.Context) ([]ProfileListEntry, error)
}
