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

type profileRepo struct{ pool *pgxpool.Pool }

func scanProfile(row pgx.Row) (*repository.UserProfile, error) {
	var p repository.UserProfile
	var data []byte
	if err := row.Scan(&p.ID, &p.UserID, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p.ProfileData); err != nil {
			return nil, fmt.Errorf("pg: profile %s data: %w", p.ID, err)
		}
	}
	if p.ProfileData == nil {
		p.ProfileData = map[string]any{}
	}
	return &p, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*repository.UserProfile, error) {
	const query = `
		SELECT id, user_id, profile_data, created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Merge(ctx context.Context, userID string, fields map[string]any) (*repository.UserProfile, error) {
	// El operador || de jsonb hace exactamente el shallow-merge del contrato:
	// keys nuevas pisan, keys ausentes se preservan.
	const query = `
		INSERT INTO user_profiles (id, user_id, profile_data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			profile_data = user_profiles.profile_data || EXCLUDED.profile_data,
			updated_at   = NOW()
		RETURNING id, user_id, profile_data, created_at, updated_at
	`
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	p, err := scanProfile(r.pool.QueryRow(ctx, query, uuid.NewString(), userID, raw))
	if err != nil {
		return nil, fmt.Errorf("pg: merge profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) ListAll(ctx context.Context) ([]repository.ProfileListEntry, error) {
	const query = `
		SELECT p.id, p.user_id, u.email, p.profile_data, p.created_at, p.updated_at
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list profiles: %w", err)
	}
	defer rows.Close()

	var entries []repository.ProfileListEntry
	for rows.Next() {
		var e repository.ProfileListEntry
		var data []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &data, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &e.ProfileData); err != nil {
				return nil, fmt.Errorf("pg: profile %s data: %w", e.ID, err)
			}
		}
		if e.ProfileData == nil {
			e.ProfileData = map[string]any{}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
