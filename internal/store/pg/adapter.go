// Package pg implementa los repositorios sobre PostgreSQL.
// Usa pgxpool directamente; los errores de driver se traducen a los
// sentinels de domain/repository en este boundary.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

// Config de conexión.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// PG es la conexión activa a PostgreSQL.
type PG struct {
	pool *pgxpool.Pool
}

// Connect crea el pool y verifica la conexión.
func Connect(ctx context.Context, cfg Config) (*PG, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &PG{pool: pool}, nil
}

func (p *PG) Components() repository.ComponentRepository { return &componentRepo{pool: p.pool} }
func (p *PG) Pages() repository.PageConfigRepository     { return &pageRepo{pool: p.pool} }
func (p *PG) Users() repository.UserRepository           { return &userRepo{pool: p.pool} }
func (p *PG) Profiles() repository.ProfileRepository     { return &profileRepo{pool: p.pool} }

func (p *PG) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *PG) Close() error {
	p.pool.Close()
	return nil
}

// Pool expone el pool subyacente para migraciones.
func (p *PG) Pool() *pgxpool.Pool { return p.pool }

// isUniqueViolation detecta el código 23505 de PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
