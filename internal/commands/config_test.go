package commands

import (
	"testing"

	"github.com/tmaia/bugreport/internal/config"
)

func TestApplySetting_Theme(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"light", "light", false},
		{"dark", "dark", false},
		{"auto", "", false},
		{"solarized", "", true},
	}

	for _, tt := range tests {
		cfg := config.DefaultConfig()
		err := applySetting(&cfg, "theme", tt.value)

		if tt.wantErr {
			if err == nil {
				t.Errorf("applySetting(theme, %q) expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("applySetting(theme, %q) returned error: %v", tt.value, err)
			continue
		}
		if cfg.Theme != tt.want {
			t.Errorf("theme = %q, want %q", cfg.Theme, tt.want)
		}
	}
}

func TestApplySetting_Endpoint(t *testing.T) {
	cfg := config.DefaultConfig()

	if err := applySetting(&cfg, "endpoint", "http://proxy:9000"); err != nil {
		t.Fatalf("applySetting() returned error: %v", err)
	}
	if cfg.Endpoint != "http://proxy:9000" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}

	if err := applySetting(&cfg, "endpoint", ""); err == nil {
		t.Error("Expected error for empty endpoint")
	}
}

func TestApplySetting_CopyToClipboard(t *testing.T) {
	cfg := config.DefaultConfig()

	if err := applySetting(&cfg, "copy_to_clipboard", "true"); err != nil {
		t.Fatalf("applySetting() returned error: %v", err)
	}
	if !cfg.CopyToClipboard {
		t.Error("copy_to_clipboard should be true")
	}

	if err := applySetting(&cfg, "copy_to_clipboard", "maybe"); err == nil {
		t.Error("Expected error for invalid boolean")
	}
}

func TestApplySetting_UnknownKey(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := applySetting(&cfg, "volume", "11"); err == nil {
		t.Error("Expected error for unknown key")
	}
}
