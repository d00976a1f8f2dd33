package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMigrationFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "003_create_assignment_and_registration_tables.sql")
	if err := os.WriteFile(path, []byte("CREATE TABLE t ();"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	migration, err := readMigrationFile(path)
	if err != nil {
		t.Fatalf("reading migration: %v", err)
	}
	if migration.ID != "003" {
		t.Errorf("expected id 003, got %q", migration.ID)
	}
	if migration.Description != "create assignment and registration tables" {
		t.Errorf("unexpected description %q", migration.Description)
	}
	if migration.SQL != "CREATE TABLE t ();" {
		t.Errorf("unexpected sql %q", migration.SQL)
	}
}

func TestReadMigrationFileRejectsUnprefixedName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bootstrap.sql")
	if err := os.WriteFile(path, []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := readMigrationFile(path); err == nil {
		t.Fatal("expected a filename without an id prefix to be rejected")
	}
}

func TestMigrationFilesSortedByID(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "010_c.sql", "001_a.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	mr := &MigrationRunner{migrationsDir: dir}
	files, err := mr.migrationFiles()
	if err != nil {
		t.Fatalf("listing migrations: %v", err)
	}

	want := []string{"001_a.sql", "002_b.sql", "010_c.sql"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i, w := range want {
		if filepath.Base(files[i]) != w {
			t.Errorf("position %d: expected %s, got %s", i, w, filepath.Base(files[i]))
		}
	}
}
