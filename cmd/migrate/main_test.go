package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-10-19-002-create-diet-reports.sql", "create diet reports"},
		{"2026-10-19-001-create-migrations.sql", "create migrations"},
		{"no-prefix-here.sql", "no prefix here"},
	}
	for _, tc := range cases {
		if got := descriptionFromFilename(tc.in); got != tc.want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestMigrationFiles_Sorted verifies files come back in filename order and
// non-SQL files are ignored.
func TestMigrationFiles_Sorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-10-19-002-b.sql", "2026-10-19-001-a.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "2026-10-19-001-a.sql" || filepath.Base(files[1]) != "2026-10-19-002-b.sql" {
		t.Errorf("unexpected order: %v", files)
	}
}

// TestRepoMigrations verifies the shipped db/ directory parses.
func TestRepoMigrations(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "db"))
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected shipped migrations in db/")
	}
	if got := descriptionFromFilename(filepath.Base(files[0])); got != "create migrations" {
		t.Errorf("first migration should create the migrations table, got %q", got)
	}
}
