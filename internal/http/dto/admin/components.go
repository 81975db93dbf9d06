// Package admin contiene los DTOs del panel de administración.
package admin

import "time"

// ComponentRequest es el payload para crear un componente del registry.
type ComponentRequest struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options,omitempty"`
}

// ComponentUpdateRequest es el payload para actualizar un componente.
// Solo los campos presentes se tocan; name es inmutable.
type ComponentUpdateRequest struct {
	Label       *string  `json:"label,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	Placeholder *string  `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// ComponentResponse es la vista pública de un componente.
type ComponentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
