package pg

import (
	"testing"
	"testing/fstest"
)

func TestParseMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_add_profiles.sql": {Data: []byte("CREATE TABLE user_profiles ()")},
		"0001_init.sql":         {Data: []byte("CREATE TABLE users ()")},
		"notes.md":              {Data: []byte("ignored")},
		"broken.sql":            {Data: []byte("ignored, no version prefix")},
	}

	migrations, err := parseMigrations(fsys, ".")
	if err != nil {
		t.Fatalf("parseMigrations: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_profiles" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
	if migrations[0].SQL != "CREATE TABLE users ()" {
		t.Errorf("unexpected SQL: %q", migrations[0].SQL)
	}
}
