package config

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
dataset:
  path: /var/lib/bikedash/day_clean.csv
controllers:
  - type: rest
    rest:
      port: 9000
      page-title: Capital Bikeshare
  - type: restserver
logging:
  file: /var/log/bikedash.log
  max-backups: 7
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkLoaded(t *testing.T, cfg *ConfigData) {
	t.Helper()

	if cfg.Dataset.Path != "/var/lib/bikedash/day_clean.csv" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if len(cfg.Controllers) != 2 {
		t.Fatalf("got %d controllers, want 2", len(cfg.Controllers))
	}

	first := cfg.Controllers[0].RESTServer
	if first.Port != 9000 || first.PageTitle != "Capital Bikeshare" || first.ListenAddr != DefaultListenAddr {
		t.Errorf("first controller = %+v", first)
	}
	second := cfg.Controllers[1].RESTServer
	if second == nil || second.Port != DefaultHTTPPort || second.PageTitle != DefaultPageTitle {
		t.Errorf("second controller = %+v, want defaults", second)
	}

	if cfg.Logging.File != "/var/log/bikedash.log" || cfg.Logging.MaxBackups != 7 || cfg.Logging.MaxSizeMB != 100 || cfg.Logging.MaxAgeDays != 28 {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestYAMLProvider(t *testing.T) {
	t.Setenv(DatasetEnvVar, "")
	p := NewYAMLProvider(writeFile(t, "config.yaml", testYAML))
	defer p.Close()

	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	checkLoaded(t, cfg)

	logging, err := p.GetLogging()
	if err != nil || logging.MaxBackups != 7 {
		t.Errorf("GetLogging() = %+v, %v", logging, err)
	}
	if !p.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderErrors(t *testing.T) {
	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := NewYAMLProvider(writeFile(t, "bad.yaml", "dataset: [unclosed")).LoadConfig(); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestSQLiteProvider(t *testing.T) {
	t.Setenv(DatasetEnvVar, "")

	yamlCfg, err := NewYAMLProvider(writeFile(t, "config.yaml", testYAML)).LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(t.TempDir(), "config.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteSQLite(db, yamlCfg); err != nil {
		t.Fatalf("WriteSQLite() error = %v", err)
	}
	// Writing twice replaces the default configuration rather than duplicating it
	if err := WriteSQLite(db, yamlCfg); err != nil {
		t.Fatalf("second WriteSQLite() error = %v", err)
	}
	db.Close()

	p, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error = %v", err)
	}
	defer p.Close()

	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	checkLoaded(t, cfg)
}

func TestSQLiteProviderEmptyDatabase(t *testing.T) {
	t.Setenv(DatasetEnvVar, "")

	dbPath := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(SQLiteSchema); err != nil {
		t.Fatal(err)
	}
	db.Close()

	p, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !errors.Is(cfg.Validate(), ErrNoDataset) {
		t.Errorf("Validate() = %v, want ErrNoDataset", cfg.Validate())
	}
}

func TestDatasetEnvOverride(t *testing.T) {
	t.Setenv(DatasetEnvVar, "/tmp/override.csv")

	cfg, err := NewYAMLProvider(writeFile(t, "config.yaml", testYAML)).LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dataset.Path != "/tmp/override.csv" {
		t.Errorf("Dataset.Path = %q, want the environment override", cfg.Dataset.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ConfigData
		wantErr error
	}{
		{"valid", ConfigData{Dataset: DatasetData{Path: "d.csv"}, Controllers: []ControllerData{{Type: "rest"}}}, nil},
		{"no dataset", ConfigData{Controllers: []ControllerData{{Type: "rest"}}}, ErrNoDataset},
		{"no controllers", ConfigData{Dataset: DatasetData{Path: "d.csv"}}, ErrNoControllers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := ConfigData{Dataset: DatasetData{Path: "d.csv"}, Controllers: []ControllerData{{Type: "grpc"}}}
	if err := bad.Validate(); err == nil {
		t.Error("unknown controller type should fail")
	}
}
