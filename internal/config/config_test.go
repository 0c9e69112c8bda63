package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-existe.json"))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.HTTPAddr != def.HTTPAddr || cfg.Model.HighSupportN != def.Model.HighSupportN {
		t.Fatalf("cfg = %+v, se esperaban defaults", cfg)
	}
}

func TestLoadFileWithBackfill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"mongo_db":"pruebas","model":{"k":15}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MongoDB != "pruebas" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.Model.K != 15 {
		t.Errorf("Model.K = %d, want 15", cfg.Model.K)
	}
	// lo no especificado vuelve a defaults
	if cfg.Model.Alpha != Default().Model.Alpha {
		t.Errorf("Model.Alpha = %v sin backfill", cfg.Model.Alpha)
	}
	if cfg.Query.MinSeeds != Default().Query.MinSeeds {
		t.Errorf("Query.MinSeeds = %d sin backfill", cfg.Query.MinSeeds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://testhost:27017")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MongoURI != "mongodb://testhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
}
