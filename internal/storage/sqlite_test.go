package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gds_translator/internal/lookup"
)

func openTestSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteImportAndLoad(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	n, err := db.ImportDirectory(ctx, lookup.Airlines, lookup.Directory{"AA": "American Airlines", "IB": "Iberia"})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d rows, want 2", n)
	}
	if _, err := db.ImportDirectory(ctx, lookup.Airports, lookup.Directory{"CCS": "Caracas"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	airlines, err := db.LoadDirectory(ctx, lookup.Airlines)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(airlines) != 2 || airlines["IB"] != "Iberia" {
		t.Errorf("airlines = %v", airlines)
	}

	airports, err := db.LoadDirectory(ctx, lookup.Airports)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(airports) != 1 || airports["CCS"] != "Caracas" {
		t.Errorf("airports = %v", airports)
	}
}

func TestSQLiteImportUpserts(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	if _, err := db.ImportDirectory(ctx, lookup.Airlines, lookup.Directory{"V0": "Conviasa"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if _, err := db.ImportDirectory(ctx, lookup.Airlines, lookup.Directory{"V0": "Consorcio Venezolano de Industrias Aeronáuticas"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	name, ok, err := db.Name(ctx, lookup.Airlines, "V0")
	if err != nil || !ok {
		t.Fatalf("Name: ok=%v err=%v", ok, err)
	}
	if name != "Consorcio Venezolano de Industrias Aeronáuticas" {
		t.Errorf("name = %q, want the second import", name)
	}

	counts, err := db.CountByKind(ctx)
	if err != nil {
		t.Fatalf("CountByKind: %v", err)
	}
	if counts[lookup.Airlines] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestSQLiteNameMissing(t *testing.T) {
	db := openTestSQLite(t)
	_, ok, err := db.Name(context.Background(), lookup.Airports, "XXX")
	if err != nil || ok {
		t.Errorf("Name(XXX): ok=%v err=%v, want not found", ok, err)
	}
}

func TestSQLiteDeleteDirectory(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	if _, err := db.ImportDirectory(ctx, lookup.Airports, lookup.Directory{"CCS": "Caracas", "MIA": "Miami"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if _, err := db.ImportDirectory(ctx, lookup.Airlines, lookup.Directory{"AA": "American Airlines"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	n, err := db.DeleteDirectory(ctx, lookup.Airports)
	if err != nil {
		t.Fatalf("DeleteDirectory: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d rows, want 2", n)
	}
	airlines, _ := db.LoadDirectory(ctx, lookup.Airlines)
	if len(airlines) != 1 {
		t.Errorf("airlines should be untouched, got %v", airlines)
	}
}

func TestLoadDirectoriesFromSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirs.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	ctx := context.Background()
	if _, err := db.ImportDirectory(ctx, lookup.Airlines, lookup.Directory{"AA": "American Airlines"}); err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	_ = db.Close()

	cfg := DefaultConfig()
	cfg.Source = SourceSQLite
	cfg.SQLitePath = path

	airlines, airports, err := LoadDirectories(ctx, cfg)
	if err != nil {
		t.Fatalf("LoadDirectories: %v", err)
	}
	if airlines["AA"] != "American Airlines" || len(airports) != 0 {
		t.Errorf("airlines=%v airports=%v", airlines, airports)
	}
}

func TestLoadDirectoriesFromFiles(t *testing.T) {
	dir := t.TempDir()
	airlinesPath := filepath.Join(dir, "airlines.yaml")
	if err := os.WriteFile(airlinesPath, []byte("AA: American Airlines\nib: Iberia\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.AirlinesFile = airlinesPath
	cfg.AirportsFile = ""

	airlines, airports, err := LoadDirectories(context.Background(), cfg)
	if err != nil {
		t.Fatalf("LoadDirectories: %v", err)
	}
	if airlines["IB"] != "Iberia" || len(airports) != 0 {
		t.Errorf("airlines=%v airports=%v", airlines, airports)
	}
}

func TestOpenDirectoryStoreUnknownSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "mongo"
	if _, err := OpenDirectoryStore(context.Background(), cfg); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource", err)
	}
	if _, _, err := LoadDirectories(context.Background(), cfg); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource", err)
	}
}
