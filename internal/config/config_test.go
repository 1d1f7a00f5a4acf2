package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir() + string(filepath.Separator)
	if err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	return dir
}

const minimalConfig = `
Title = "hmdm-server"

[Webserver]
Port = 8080
URL = "http://localhost:8080"
`

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port != 8080 {
		t.Errorf("Webserver.Port = %v, want 8080", cfg.Webserver.Port)
	}

	// defaults filled by validation
	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("Webserver.ShutDownTime = %v, want default 5", cfg.Webserver.ShutDownTime)
	}

	if cfg.Provision.QRCodeSize != 250 {
		t.Errorf("Provision.QRCodeSize = %v, want default 250", cfg.Provision.QRCodeSize)
	}

	if cfg.Provision.WifiSecurityType != "WPA" {
		t.Errorf("Provision.WifiSecurityType = %v, want default WPA", cfg.Provision.WifiSecurityType)
	}

	if cfg.DB.Engine != "postgres" {
		t.Errorf("DB.Engine = %v, want default postgres", cfg.DB.Engine)
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090}}`
	t.Setenv("HMDM_CONFIG_JSON", jsonOverride)

	cfg, err := ReadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: false,
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{
					Port: 0,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: true,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown db engine",
			config: Config{
				DB: DB{Engine: "oracle"},
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
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
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}
}
