package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	"github.com/dropDatabas3/boardz/internal/metrics"
)

// Catalog es una foto consistente del registry de componentes y la
// configuración de páginas, tomada en una sola carga.
type Catalog struct {
	Definitions []repository.ComponentDefinition
	Pages       []repository.PageConfig
}

// ByName indexa las definiciones por nombre.
func (c *Catalog) ByName() map[string]repository.ComponentDefinition {
	m := make(map[string]repository.ComponentDefinition, len(c.Definitions))
	for _, d := range c.Definitions {
		m[d.Name] = d
	}
	return m
}

// PageConfig busca la config de una página en la foto. nil si no existe.
func (c *Catalog) PageConfig(page int) *repository.PageConfig {
	for i := range c.Pages {
		if c.Pages[i].Page == page {
			return &c.Pages[i]
		}
	}
	return nil
}

// catalogCache es un read-through con TTL corto sobre el catálogo.
// El catálogo se lee en cada request de onboarding y cambia poco; unos
// segundos de ventana evitan dos queries por request sin que los cambios
// de admin tarden en verse (las escrituras además invalidan explícito).
type catalogCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	load func(ctx context.Context) (*Catalog, error)

	// now es inyectable para tests.
	now func() time.Time

	value *Catalog
	exp   time.Time
}

func newCatalogCache(ttl time.Duration, loader func(ctx context.Context) (*Catalog, error)) *catalogCache {
	return &catalogCache{
		ttl:  ttl,
		load: loader,
		now:  time.Now,
	}
}

func (c *catalogCache) Get(ctx context.Context) (*Catalog, error) {
	now := c.now()

	c.mu.RLock()
	if c.value != nil && now.Before(c.exp) {
		v := c.value
		c.mu.RUnlock()
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return v, nil
	}
	c.mu.RUnlock()

	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	value, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.value = value
	c.exp = now.Add(c.ttl)
	c.mu.Unlock()
	return value, nil
}

// Invalidate descarta la foto cacheada. Lo llaman las escrituras de admin.
func (c *catalogCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}
