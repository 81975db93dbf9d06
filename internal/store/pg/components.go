package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type componentRepo struct{ pool *pgxpool.Pool }

// scanComponent lee una fila de custom_components. El type guardado se parsea
// acá: una fila con type corrupto es un error, no un componente degradado.
func scanComponent(row pgx.Row) (*repository.ComponentDefinition, error) {
	var def repository.ComponentDefinition
	var rawType string
	var options []byte
	err := row.Scan(
		&def.ID, &def.Name, &def.Label, &rawType,
		&def.Required, &def.Placeholder, &options, &def.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	def.Type, err = repository.ParseComponentType(rawType)
	if err != nil {
		return nil, fmt.Errorf("pg: component %s: %w", def.ID, err)
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &def.Options); err != nil {
			return nil, fmt.Errorf("pg: component %s options: %w", def.ID, err)
		}
	}
	return &def, nil
}

func marshalOptions(options []string) (any, error) {
	if options == nil {
		return nil, nil
	}
	return json.Marshal(options)
}

func (r *componentRepo) Create(ctx context.Context, input repository.CreateComponentInput) (*repository.ComponentDefinition, error) {
	const query = `
		INSERT INTO custom_components (id, name, label, type, required, placeholder, options, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, name, label, type, required, placeholder, options, created_at
	`
	options, err := marshalOptions(input.Options)
	if err != nil {
		return nil, err
	}

	def, err := scanComponent(r.pool.QueryRow(ctx, query,
		uuid.NewString(), input.Name, input.Label, string(input.Type),
		input.Required, input.Placeholder, options,
	))
	if isUniqueViolation(err) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("pg: create component: %w", err)
	}
	return def, nil
}

func (r *componentRepo) FindAll(ctx context.Context) ([]repository.ComponentDefinition, error) {
	const query = `
		SELECT id, name, label, type, required, placeholder, options, created_at
		FROM custom_components
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list components: %w", err)
	}
	defer rows.Close()

	var defs []repository.ComponentDefinition
	for rows.Next() {
		def, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

func (r *componentRepo) FindByName(ctx context.Context, name string) (*repository.ComponentDefinition, error) {
	const query = `
		SELECT id, name, label, type, required, placeholder, options, created_at
		FROM custom_components WHERE name = $1
	`
	def, err := scanComponent(r.pool.QueryRow(ctx, query, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pg: find component by name: %w", err)
	}
	return def, nil
}

func (r *componentRepo) FindByID(ctx context.Context, id string) (*repository.ComponentDefinition, error) {
	const query = `
		SELECT id, name, label, type, required, placeholder, options, created_at
		FROM custom_components WHERE id = $1
	`
	def, err := scanComponent(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: find component by id: %w", err)
	}
	return def, nil
}

func (r *componentRepo) Update(ctx context.Context, id string, input repository.UpdateComponentInput) (*repository.ComponentDefinition, error) {
	const query = `
		UPDATE custom_components SET
			label       = COALESCE($2, label),
			required    = COALESCE($3, required),
			placeholder = COALESCE($4, placeholder),
			options     = COALESCE($5, options)
		WHERE id = $1
		RETURNING id, name, label, type, required, placeholder, options, created_at
	`
	options, err := marshalOptions(input.Options)
	if err != nil {
		return nil, err
	}

	def, err := scanComponent(r.pool.QueryRow(ctx, query,
		id, input.Label, input.Required, input.Placeholder, options,
	))
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: update component: %w", err)
	}
	return def, nil
}

func (r *componentRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM custom_components WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pg: delete component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
