package admin

import "time"

// PageConfigRequest es el payload para configurar los componentes de una página.
type PageConfigRequest struct {
	Components []string `json:"components"`
}

// PageConfigResponse es la vista pública de la configuración de una página.
type PageConfigResponse struct {
	Page       int       `json:"page"`
	Components []string  `json:"components"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultsResponse es el resultado de inicializar las páginas por defecto.
type DefaultsResponse struct {
	Initialized bool                 `json:"initialized"`
	Pages       []PageConfigResponse `json:"pages"`
}

// ProfileEntryResponse es una fila de la vista de datos del admin.
type ProfileEntryResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Email       string         `json:"email"`
	ProfileData map[string]any `json:"profile_data"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
