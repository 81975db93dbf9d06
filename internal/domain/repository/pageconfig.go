package repository

import (
	"context"
	"time"
)

// PageConfig asigna una lista ordenada de componentes (por name) a una
// página del onboarding. La integridad referencial contra el registry se
// valida en el service, no en el store.
type PageConfig struct {
	Page       int
	Components []string
	UpdatedAt  time.Time
}

// PageConfigRepository define operaciones sobre la configuración de páginas.
type PageConfigRepository interface {
	// FindAll retorna las configs ordenadas por número de página.
	FindAll(ctx context.Context) ([]PageConfig, error)

	// FindByPage busca la config de una página. Retorna (nil, nil) si no existe.
	FindByPage(ctx context.Context, page int) (*PageConfig, error)

	// Upsert sobreescribe la lista de componentes de una página
	// (ON CONFLICT (page)) y estampa UpdatedAt.
	Upsert(ctx context.Context, page int, components []string) (*PageConfig, error)
}
