package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

func newTestStore() *Memory {
	m := New()
	// reloj determinístico para los ordenamientos
	var tick int64
	m.now = func() time.Time {
		tick++
		return time.Unix(1700000000+tick, 0).UTC()
	}
	return m
}

func TestComponentCreateConflict(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Components()

	_, err := repo.Create(ctx, repository.CreateComponentInput{Name: "about_me", Label: "About Me", Type: repository.TypeTextarea})
	if err != nil {
		t.Fatal(err)
	}
	_, err = repo.Create(ctx, repository.CreateComponentInput{Name: "about_me", Label: "Other", Type: repository.TypeText})
	if !repository.IsConflict(err) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestComponentFindAllOrder(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Components()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, repository.CreateComponentInput{Name: name, Label: name, Type: repository.TypeText}); err != nil {
			t.Fatal(err)
		}
	}

	defs, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{defs[0].Name, defs[1].Name, defs[2].Name}
	want := []string{"third", "second", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestComponentFindByNameAbsent(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()

	def, err := m.Components().FindByName(ctx, "nope")
	if err != nil || def != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", def, err)
	}
}

func TestComponentUpdatePartial(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Components()

	created, err := repo.Create(ctx, repository.CreateComponentInput{
		Name: "bio", Label: "Bio", Type: repository.TypeTextarea, Required: true, Placeholder: "tell us",
	})
	if err != nil {
		t.Fatal(err)
	}

	newLabel := "Biography"
	updated, err := repo.Update(ctx, created.ID, repository.UpdateComponentInput{Label: &newLabel})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Label != "Biography" || !updated.Required || updated.Placeholder != "tell us" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
	if updated.Name != "bio" {
		t.Fatalf("name must be immutable, got %q", updated.Name)
	}
}

func TestComponentDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	if err := m.Components().Delete(ctx, "missing"); !repository.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Pages()

	if _, err := repo.Upsert(ctx, 2, []string{"about_me", "birthdate"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := repo.Upsert(ctx, 2, []string{"address"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Components) != 1 || cfg.Components[0] != "address" {
		t.Fatalf("upsert should replace, got %v", cfg.Components)
	}

	got, err := repo.FindByPage(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Components) != 1 || got.Components[0] != "address" {
		t.Fatalf("got %v", got.Components)
	}
}

func TestPageFindByPageAbsent(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	cfg, err := m.Pages().FindByPage(ctx, 3)
	if err != nil || cfg != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", cfg, err)
	}
}

func TestUserCreateConflictOnEmail(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Users()

	if _, err := repo.Create(ctx, repository.CreateUserInput{Email: "a@b.com", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	_, err := repo.Create(ctx, repository.CreateUserInput{Email: "a@b.com", PasswordHash: "h2"})
	if !repository.IsConflict(err) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	if _, err := m.Users().GetByEmail(ctx, "ghost@x.com"); !repository.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Merge con keys disjuntas produce la unión; keys repetidas pisan.
func TestProfileMergeUnion(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	repo := m.Profiles()

	u, err := m.Users().Create(ctx, repository.CreateUserInput{Email: "a@b.com", PasswordHash: "h"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Merge(ctx, u.ID, map[string]any{"about_me": "hi", "city": "NY"}); err != nil {
		t.Fatal(err)
	}
	p, err := repo.Merge(ctx, u.ID, map[string]any{"birthdate": "1990-05-01", "city": "LA"})
	if err != nil {
		t.Fatal(err)
	}

	if p.ProfileData["about_me"] != "hi" {
		t.Fatalf("merge dropped existing key: %v", p.ProfileData)
	}
	if p.ProfileData["birthdate"] != "1990-05-01" {
		t.Fatalf("merge missed new key: %v", p.ProfileData)
	}
	if p.ProfileData["city"] != "LA" {
		t.Fatalf("merge should overwrite repeated key: %v", p.ProfileData)
	}
}

func TestProfileGetAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()
	p, err := m.Profiles().GetByUserID(ctx, "nobody")
	if err != nil || p != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", p, err)
	}
}

func TestProfileListAllIncludesEmail(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()

	u1, _ := m.Users().Create(ctx, repository.CreateUserInput{Email: "one@x.com", PasswordHash: "h"})
	u2, _ := m.Users().Create(ctx, repository.CreateUserInput{Email: "two@x.com", PasswordHash: "h"})
	_, _ = m.Profiles().Merge(ctx, u1.ID, map[string]any{"a": 1})
	_, _ = m.Profiles().Merge(ctx, u2.ID, map[string]any{"b": 2})

	entries, err := m.Profiles().ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	// created_at desc: el perfil de u2 primero
	if entries[0].Email != "two@x.com" || entries[1].Email != "one@x.com" {
		t.Fatalf("order/email: %v, %v", entries[0].Email, entries[1].Email)
	}
}

// Las copias que devuelve el store no comparten memoria con el estado interno.
func TestProfileDataIsolation(t *testing.T) {
	ctx := context.Background()
	m := newTestStore()

	u, _ := m.Users().Create(ctx, repository.CreateUserInput{Email: "a@b.com", PasswordHash: "h"})
	p1, _ := m.Profiles().Merge(ctx, u.ID, map[string]any{"k": "v"})
	p1.ProfileData["k"] = "mutated"

	p2, _ := m.Profiles().GetByUserID(ctx, u.ID)
	if p2.ProfileData["k"] != "v" {
		t.Fatalf("internal state leaked: %v", p2.ProfileData)
	}
}
