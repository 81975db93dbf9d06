package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type profileRepo struct{ m *Memory }

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*repository.UserProfile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, nil
	}
	p.ProfileData = cloneMap(p.ProfileData)
	return &p, nil
}

func (r *profileRepo) Merge(ctx context.Context, userID string, fields map[string]any) (*repository.UserProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	now := r.m.now()
	p, ok := r.m.profiles[userID]
	if !ok {
		p = repository.UserProfile{
			ID:          newID(),
			UserID:      userID,
			ProfileData: make(map[string]any),
			CreatedAt:   now,
		}
		r.m.nextSequence(p.ID)
	}

	merged := cloneMap(p.ProfileData)
	for k, v := range fields {
		merged[k] = v
	}
	p.ProfileData = merged
	p.UpdatedAt = now
	r.m.profiles[userID] = p

	out := p
	out.ProfileData = cloneMap(p.ProfileData)
	return &out, nil
}

func (r *profileRepo) ListAll(ctx context.Context) ([]repository.ProfileListEntry, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]repository.ProfileListEntry, 0, len(r.m.profiles))
	for userID, p := range r.m.profiles {
		entry := repository.ProfileListEntry{
			ID:          p.ID,
			UserID:      p.UserID,
			ProfileData: cloneMap(p.ProfileData),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if u, ok := r.m.users[userID]; ok {
			entry.Email = u.Email
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.m.seq[out[i].ID] > r.m.seq[out[j].ID]
	})
	return out, nil
}
