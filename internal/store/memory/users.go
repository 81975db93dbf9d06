package memory

import (
	"context"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type userRepo struct{ m *Memory }

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.emailIdx[input.Email]; exists {
		return nil, repository.ErrConflict
	}

	u := repository.User{
		ID:           newID(),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    r.m.now(),
	}
	r.m.users[u.ID] = u
	r.m.emailIdx[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	id, ok := r.m.emailIdx[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.m.users[id]
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
