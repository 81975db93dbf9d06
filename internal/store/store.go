// Package store expone la fábrica de persistencia.
//
// Un Store agrupa los repositorios del dominio detrás de una conexión:
//   - postgres: pgxpool contra la base configurada (producción)
//   - memory:   maps con mutex (desarrollo y tests)
//
// El driver se elige por configuración; los servicios solo ven las
// interfaces de domain/repository.
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	"github.com/dropDatabas3/boardz/internal/store/memory"
	"github.com/dropDatabas3/boardz/internal/store/pg"
)

// Store agrupa los repositorios activos de una conexión.
type Store interface {
	Components() repository.ComponentRepository
	Pages() repository.PageConfigRepository
	Users() repository.UserRepository
	Profiles() repository.ProfileRepository

	// Ping verifica la conexión subyacente.
	Ping(ctx context.Context) error

	// Close libera la conexión.
	Close() error
}

// Config selecciona e inicializa el backend.
type Config struct {
	Driver       string // "postgres" | "memory"
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// New crea el Store según el driver configurado.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "postgres", "pg":
		return pg.Connect(ctx, pg.Config{
			DSN:          cfg.DSN,
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		})
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
