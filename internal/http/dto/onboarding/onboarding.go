// Package onboarding contiene los DTOs del flujo de onboarding.
package onboarding

// ComponentView es la vista de un componente tal como la consume el
// renderer dinámico del cliente.
type ComponentView struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// StepConfig describe un paso del wizard: número de página y los
// componentes activos en ella, en orden.
type StepConfig struct {
	Step       int             `json:"step"`
	Components []ComponentView `json:"components"`
}

// ConfigResponse es la configuración completa del flujo.
type ConfigResponse struct {
	Steps []StepConfig `json:"steps"`
}

// SubmitRequest es el payload de envío de un paso.
type SubmitRequest struct {
	Values map[string]any `json:"values"`
}

// SubmitResponse es el resultado de un envío. Cuando Success es false,
// Errors trae un mensaje por campo inválido y Profile viene vacío.
type SubmitResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors,omitempty"`
	Profile map[string]any    `json:"profile,omitempty"`
}

// ProfileResponse es el profile_data acumulado del usuario, usado por
// el cliente para repoblar formularios al volver atrás.
// Profile es {} cuando todavía no hay datos; nunca un 404.
type ProfileResponse struct {
	Profile map[string]any `json:"profile"`
}
