package repository

import (
	"context"
	"fmt"
	"time"
)

// ComponentType es el tipo de campo de formulario de un componente.
// Se parsea en el boundary de storage: el valor guardado en la DB es un
// string y nunca se confía implícitamente aguas abajo.
type ComponentType string

const (
	TypeText     ComponentType = "text"
	TypeTextarea ComponentType = "textarea"
	TypeDate     ComponentType = "date"
	TypeNumber   ComponentType = "number"
	TypeEmail    ComponentType = "email"
	TypePhone    ComponentType = "phone"
	TypeURL      ComponentType = "url"
	TypeAddress  ComponentType = "address"
)

// ComponentTypes lista todos los tipos válidos, en el orden que los muestra
// el panel de administración.
var ComponentTypes = []ComponentType{
	TypeText, TypeTextarea, TypeDate, TypeNumber,
	TypeEmail, TypePhone, TypeURL, TypeAddress,
}

// ParseComponentType valida y convierte un string almacenado a ComponentType.
// Retorna error si el valor no pertenece al conjunto conocido.
func ParseComponentType(s string) (ComponentType, error) {
	for _, t := range ComponentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown component type %q", ErrInvalidInput, s)
}

// ComponentDefinition es un campo de formulario definido por un admin.
// Name es la identidad: único, lowercase + underscores, 2-50 chars.
type ComponentDefinition struct {
	ID          string
	Name        string
	Label       string
	Type        ComponentType
	Required    bool
	Placeholder string
	Options     []string // nil salvo para componentes con opciones predefinidas
	CreatedAt   time.Time
}

// CreateComponentInput contiene los datos para crear un componente.
type CreateComponentInput struct {
	Name        string
	Label       string
	Type        ComponentType
	Required    bool
	Placeholder string
	Options     []string
}

// UpdateComponentInput contiene los campos actualizables de un componente.
// Name es inmutable una vez creado.
type UpdateComponentInput struct {
	Label       *string
	Required    *bool
	Placeholder *string
	Options     []string
}

// ComponentRepository define operaciones sobre el registry de componentes.
type ComponentRepository interface {
	// Create inserta un componente nuevo.
	// Retorna ErrConflict si el name ya existe (match exacto, case-sensitive).
	Create(ctx context.Context, input CreateComponentInput) (*ComponentDefinition, error)

	// FindAll retorna todos los componentes ordenados por created_at desc.
	FindAll(ctx context.Context) ([]ComponentDefinition, error)

	// FindByName busca por nombre. Retorna (nil, nil) si no existe: la
	// ausencia no es un error para los flujos que consultan el registry.
	FindByName(ctx context.Context, name string) (*ComponentDefinition, error)

	// FindByID busca por ID. Retorna ErrNotFound si no existe.
	FindByID(ctx context.Context, id string) (*ComponentDefinition, error)

	// Update actualiza campos de un componente. Retorna ErrNotFound si no existe.
	Update(ctx context.Context, id string, input UpdateComponentInput) (*ComponentDefinition, error)

	// Delete elimina un componente. Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
