// Package memory implementa los repositorios sobre maps con mutex.
// Backend por defecto para desarrollo y tests; no persiste nada.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

// Memory es el Store en memoria. Un solo mutex protege todas las tablas:
// los repos comparten estado (ListAll de perfiles joinea contra users).
type Memory struct {
	mu sync.RWMutex

	components map[string]repository.ComponentDefinition // por ID
	pages      map[int]repository.PageConfig
	users      map[string]repository.User // por ID
	emailIdx   map[string]string          // email → user ID
	profiles   map[string]repository.UserProfile // por user ID

	// seq desempata CreatedAt iguales en los ordenamientos.
	seq    map[string]int64
	nextSeq int64

	now func() time.Time
}

// New crea un Store en memoria vacío.
func New() *Memory {
	return &Memory{
		components: make(map[string]repository.ComponentDefinition),
		pages:      make(map[int]repository.PageConfig),
		users:      make(map[string]repository.User),
		emailIdx:   make(map[string]string),
		profiles:   make(map[string]repository.UserProfile),
		seq:        make(map[string]int64),
		now:        time.Now,
	}
}

func (m *Memory) Components() repository.ComponentRepository { return &componentRepo{m} }
func (m *Memory) Pages() repository.PageConfigRepository     { return &pageRepo{m} }
func (m *Memory) Users() repository.UserRepository           { return &userRepo{m} }
func (m *Memory) Profiles() repository.ProfileRepository     { return &profileRepo{m} }

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

func (m *Memory) nextSequence(id string) {
	m.nextSeq++
	m.seq[id] = m.nextSeq
}

func newID() string { return uuid.NewString() }

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
