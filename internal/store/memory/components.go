package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type componentRepo struct{ m *Memory }

func (r *componentRepo) Create(ctx context.Context, input repository.CreateComponentInput) (*repository.ComponentDefinition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, c := range r.m.components {
		if c.Name == input.Name {
			return nil, repository.ErrConflict
		}
	}

	def := repository.ComponentDefinition{
		ID:          newID(),
		Name:        input.Name,
		Label:       input.Label,
		Type:        input.Type,
		Required:    input.Required,
		Placeholder: input.Placeholder,
		Options:     cloneStrings(input.Options),
		CreatedAt:   r.m.now(),
	}
	r.m.components[def.ID] = def
	r.m.nextSequence(def.ID)

	out := def
	return &out, nil
}

func (r *componentRepo) FindAll(ctx context.Context) ([]repository.ComponentDefinition, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]repository.ComponentDefinition, 0, len(r.m.components))
	for _, c := range r.m.components {
		c.Options = cloneStrings(c.Options)
		out = append(out, c)
	}
	// created_at desc; el seq de inserción desempata timestamps iguales
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.m.seq[out[i].ID] > r.m.seq[out[j].ID]
	})
	return out, nil
}

func (r *componentRepo) FindByName(ctx context.Context, name string) (*repository.ComponentDefinition, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, c := range r.m.components {
		if c.Name == name {
			c.Options = cloneStrings(c.Options)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *componentRepo) FindByID(ctx context.Context, id string) (*repository.ComponentDefinition, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	c, ok := r.m.components[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Options = cloneStrings(c.Options)
	return &c, nil
}

func (r *componentRepo) Update(ctx context.Context, id string, input repository.UpdateComponentInput) (*repository.ComponentDefinition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	c, ok := r.m.components[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Label != nil {
		c.Label = *input.Label
	}
	if input.Required != nil {
		c.Required = *input.Required
	}
	if input.Placeholder != nil {
		c.Placeholder = *input.Placeholder
	}
	if input.Options != nil {
		c.Options = cloneStrings(input.Options)
	}
	r.m.components[id] = c

	out := c
	out.Options = cloneStrings(c.Options)
	return &out, nil
}

func (r *componentRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.components[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.components, id)
	delete(r.m.seq, id)
	return nil
}
