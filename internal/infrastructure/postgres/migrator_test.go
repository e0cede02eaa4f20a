package postgres

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMigrationsMissingSource(t *testing.T) {
	err := RunMigrations("postgres://walletledger@127.0.0.1:1/walletledger?sslmode=disable&connect_timeout=1", filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
}

func TestMigrationsArePaired(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("migrations", "*.up.sql"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("expected at least one migration")
	}

	for _, up := range files {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Errorf("migration %s has no down file: %v", filepath.Base(up), err)
		}
	}
}
