package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.DB.Engine != EngineSQLite {
		t.Errorf("DB.Engine = %v, want %v", cfg.DB.Engine, EngineSQLite)
	}

	if cfg.Store.Slot != DefaultSlot {
		t.Errorf("Store.Slot = %v, want %v", cfg.Store.Slot, DefaultSlot)
	}

	if cfg.Log.File.AccessLog != "access.log" {
		t.Errorf("Log.File.AccessLog = %v, want access.log", cfg.Log.File.AccessLog)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080"},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: ""},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown engine",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{Engine: "oracle"},
			},
			wantErr: ErrUnknownDBEngine,
		},
		{
			name: "unknown backend",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Store:     Store{Backend: "redis"},
			},
			wantErr: ErrUnknownStoreBackend,
		},
		{
			name: "kv on sqlite",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Store:     Store{Backend: BackendKV},
			},
			wantErr: ErrKVNeedsServerDB,
		},
		{
			name: "kv on postgres",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{Engine: "Postgres"},
				Store:     Store{Backend: BackendKV},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil && err != nil {
				t.Errorf("validate() error = %v, want nil", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Webserver.ShutDownTime != defaultShutDownTime {
		t.Errorf("ShutDownTime = %v, want %v", cfg.Webserver.ShutDownTime, defaultShutDownTime)
	}

	if cfg.DB.Path != defaultSQLitePath {
		t.Errorf("DB.Path = %v, want %v", cfg.DB.Path, defaultSQLitePath)
	}

	if cfg.Store.Backend != BackendDB {
		t.Errorf("Store.Backend = %v, want %v", cfg.Store.Backend, BackendDB)
	}

	if cfg.Store.Table != defaultKVTable {
		t.Errorf("Store.Table = %v, want %v", cfg.Store.Table, defaultKVTable)
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	// Set JSON override environment variable
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090},"Store":{"Backend":"memory"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}

	// untouched by the override
	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should survive the override")
	}

	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Store.Backend = %v, want %v", cfg.Store.Backend, BackendMemory)
	}
}

func TestReadConfigBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	if _, err := ReadConfig(projectConfigPath(t)); err == nil {
		t.Error("ReadConfig() expected error for broken JSON override")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir() + string(filepath.Separator)); err == nil {
		t.Error("ReadConfig() expected error for missing main.toml")
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Store: Store{Backend: BackendMemory, Slot: DefaultSlot},
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}

	// Check if output contains expected values
	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}

	if !strings.Contains(tomlStr, DefaultSlot) {
		t.Error("DumpConfig() output should contain the store slot")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonStr == "" {
		t.Error("DumpConfigJSON() returned empty string")
	}

	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
