package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Valid File", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")

			content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"

[database]
path = "test.db"
max_open_conns = 3
max_idle_conns = 1
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Credentials.Spotify.ClientID != "abc" {
				t.Errorf("expected client_id abc, got %q", config.Credentials.Spotify.ClientID)
			}
			if config.Credentials.Spotify.ClientSecret != "def" {
				t.Errorf("expected client_secret def, got %q", config.Credentials.Spotify.ClientSecret)
			}
			if config.Database.Path != "test.db" {
				t.Errorf("expected database path test.db, got %q", config.Database.Path)
			}
			if config.Database.MaxOpenConns != 3 {
				t.Errorf("expected max_open_conns 3, got %d", config.Database.MaxOpenConns)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("Invalid TOML", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for invalid TOML")
			}
		})
	})

	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "tdx.db" {
			t.Errorf("expected default database path tdx.db, got %q", config.Database.Path)
		}
		if config.Credentials.Spotify.ClientID != "" {
			t.Error("expected empty default client_id")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("Creates Template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created config should parse: %v", err)
			}
			if config.Database.Path != "tdx.db" {
				t.Errorf("expected template defaults, got %q", config.Database.Path)
			}
		})

		t.Run("Refuses To Overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error for existing file")
			}
		})
	})

	t.Run("SaveConfig Roundtrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "roundtrip_id"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.Credentials.Spotify.ClientID != "roundtrip_id" {
			t.Errorf("expected saved value, got %q", loaded.Credentials.Spotify.ClientID)
		}
	})
}
