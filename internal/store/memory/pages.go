package memory

import (
	"context"
	"sort"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

type pageRepo struct{ m *Memory }

func (r *pageRepo) FindAll(ctx context.Context) ([]repository.PageConfig, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]repository.PageConfig, 0, len(r.m.pages))
	for _, p := range r.m.pages {
		p.Components = cloneStrings(p.Components)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out, nil
}

func (r *pageRepo) FindByPage(ctx context.Context, page int) (*repository.PageConfig, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p, ok := r.m.pages[page]
	if !ok {
		return nil, nil
	}
	p.Components = cloneStrings(p.Components)
	return &p, nil
}

func (r *pageRepo) Upsert(ctx context.Context, page int, components []string) (*repository.PageConfig, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	p := repository.PageConfig{
		Page:       page,
		Components: cloneStrings(components),
		UpdatedAt:  r.m.now(),
	}
	r.m.pages[page] = p

	out := p
	out.Components = cloneStrings(p.Components)
	return &out, nil
}
