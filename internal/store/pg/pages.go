package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type pageRepo struct{ pool *pgxpool.Pool }

func scanPage(row pgx.Row) (*repository.PageConfig, error) {
	var cfg repository.PageConfig
	var components []byte
	if err := row.Scan(&cfg.Page, &components, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	if len(components) > 0 {
		if err := json.Unmarshal(components, &cfg.Components); err != nil {
			return nil, fmt.Errorf("pg: page %d components: %w", cfg.Page, err)
		}
	}
	if cfg.Components == nil {
		cfg.Components = []string{}
	}
	return &cfg, nil
}

func (r *pageRepo) FindAll(ctx context.Context) ([]repository.PageConfig, error) {
	const query = `
		SELECT page, components, updated_at
		FROM page_components
		ORDER BY page
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list pages: %w", err)
	}
	defer rows.Close()

	var configs []repository.PageConfig
	for rows.Next() {
		cfg, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}
	return configs, rows.Err()
}

func (r *pageRepo) FindByPage(ctx context.Context, page int) (*repository.PageConfig, error) {
	const query = `SELECT page, components, updated_at FROM page_components WHERE page = $1`
	cfg, err := scanPage(r.pool.QueryRow(ctx, query, page))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pg: find page: %w", err)
	}
	return cfg, nil
}

func (r *pageRepo) Upsert(ctx context.Context, page int, components []string) (*repository.PageConfig, error) {
	const query = `
		INSERT INTO page_components (page, components, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (page)
		DO UPDATE SET components = EXCLUDED.components, updated_at = NOW()
		RETURNING page, components, updated_at
	`
	if components == nil {
		components = []string{}
	}
	raw, err := json.Marshal(components)
	if err != nil {
		return nil, err
	}

	cfg, err := scanPage(r.pool.QueryRow(ctx, query, page, raw))
	if err != nil {
		return nil, fmt.Errorf("pg: upsert page: %w", err)
	}
	return cfg, nil
}
